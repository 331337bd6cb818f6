// Package assign implements the auto-distribution engine: a rule-driven,
// multi-pass heuristic that hands a day's catalog of recurring tasks to
// the staff working that day.
//
// The engine is deliberately greedy rather than optimal. Each pass
// mutates a shared in-progress book, so later passes always see the load
// created by earlier ones, and every tie-break reads current load in
// stable roster order, which keeps re-runs on identical inputs
// deterministic (instance ids aside).
package assign

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kingrea/shiftboard/internal/logbook"
	"github.com/kingrea/shiftboard/internal/roster"
	"github.com/kingrea/shiftboard/internal/shifttime"
	"github.com/kingrea/shiftboard/internal/tasks"
)

// ErrNoActiveStaff signals that distribution aborted before touching the
// book because nobody works the requested day.
var ErrNoActiveStaff = errors.New("no active staff for day")

// Filler is the synthetic task handed to anyone who would otherwise end
// the run with an empty worklist.
var Filler = tasks.Rule{
	ID:            tasks.FillerRuleID,
	Code:          "GEN",
	Name:          "General Department Support",
	Type:          tasks.TypeGeneral,
	Effort:        60,
	Frequency:     tasks.FrequencyDaily,
	FallbackChain: []string{},
}

// Summary reports what one distribution run did. Fillers are counted
// separately from catalog assignments so "the run worked but no rules
// were live today" is distinguishable from a healthy day.
type Summary struct {
	Assigned  int // catalog tasks placed on worklists
	Fillers   int // synthetic gap-fill tasks added
	Staff     int // active staff covered
	LiveRules int // rules that survived the day filter
}

// Engine distributes a task catalog over the active staff of one day.
type Engine struct {
	parser *shifttime.Parser
	pinned map[int]bool
	log    *logbook.Logbook
}

// New builds an engine. pinnedIDs may be nil; log may be nil for silence.
func New(parser *shifttime.Parser, pinnedIDs []int, log *logbook.Logbook) *Engine {
	return &Engine{
		parser: parser,
		pinned: tasks.PinnedSet(pinnedIDs),
		log:    log,
	}
}

// Distribute rebuilds the given day's assignments from scratch.
//
// The run is destructive for that day: existing worklists, including
// manual edits, are discarded (callers confirm with the user first). The
// existing book itself is never mutated; the result is a clone with the
// day's sub-map rebuilt and spliced in whole, so a failed run leaves no
// partial state anywhere.
func (e *Engine) Distribute(day roster.DayKey, sched roster.Schedule, catalog []tasks.Rule, existing tasks.Book, dateOfMonth int) (book tasks.Book, sum Summary, err error) {
	defer func() {
		// Catalog data arrives from imports and hand edits; a malformed
		// entry must surface as an error with zero partial writes, not
		// take the application down.
		if r := recover(); r != nil {
			book, sum = nil, Summary{}
			err = fmt.Errorf("distribution failed: %v", r)
			e.log.Error("distribution for %s panicked: %v", day, r)
		}
	}()

	active := roster.ActiveForDay(sched, day, e.parser)
	if len(active) == 0 {
		return nil, Summary{}, ErrNoActiveStaff
	}

	live := tasks.SortForDistribution(tasks.ActiveOn(catalog, day, dateOfMonth), e.pinned)

	tr := e.log.BeginTrace(fmt.Sprintf("distribute %s", day))
	tr.Step("%d active staff, %d live rules", len(active), len(live))

	book = existing.Clone()
	book.SpliceDay(day, make(map[string][]tasks.AssignedTask))
	run := &runState{day: day, book: book, active: active, trace: tr}

	run.allStaffPass(live)
	run.skilledPass(live)
	run.shiftBasedPass(live)
	run.generalPass(live)
	run.fillGaps()

	if len(book[day]) == 0 {
		book.SpliceDay(day, nil)
	}

	sum = Summary{
		Assigned:  run.assigned,
		Fillers:   run.fillers,
		Staff:     len(active),
		LiveRules: len(live),
	}
	tr.Done("%d tasks + %d fillers across %d staff", sum.Assigned, sum.Fillers, sum.Staff)
	return book, sum, nil
}

// runState carries the mutable in-progress view of one distribution run.
type runState struct {
	day      roster.DayKey
	book     tasks.Book
	active   []roster.ActiveStaff
	trace    *logbook.Trace
	assigned int
	fillers  int
}

// push places one rule instance on a worklist, refusing duplicates of the
// same rule id on the same person. displayName overrides the task name
// when non-empty (shift-based replicas carry their bucket label).
func (r *runState) push(name string, rule tasks.Rule, displayName string) bool {
	if r.book.HasRule(r.day, name, rule.ID) {
		return false
	}
	t := tasks.AssignedTask{Rule: rule, InstanceID: uuid.NewString()}
	if displayName != "" {
		t.Name = displayName
	}
	r.book.Append(r.day, name, t)
	if rule.ID == tasks.FillerRuleID {
		r.fillers++
	} else {
		r.assigned++
	}
	r.trace.Step("assigned [%s] %s -> %s", rule.Code, t.Name, name)
	return true
}

func (r *runState) load(name string) int {
	return r.book.Load(r.day, name)
}

// leastLoaded returns the candidate with the lowest current load,
// breaking ties by position (stable roster order).
func leastLoaded(candidates []roster.ActiveStaff, load func(string) int) (roster.ActiveStaff, bool) {
	if len(candidates) == 0 {
		return roster.ActiveStaff{}, false
	}
	best := candidates[0]
	bestLoad := load(best.Name())
	for _, c := range candidates[1:] {
		if l := load(c.Name()); l < bestLoad {
			best, bestLoad = c, l
		}
	}
	return best, true
}

// compatible filters the active staff down to those whose shift window
// can honor the rule's due time.
func (r *runState) compatible(rule tasks.Rule) []roster.ActiveStaff {
	var out []roster.ActiveStaff
	for _, a := range r.active {
		if compatibleWithDue(rule.DueTime, a.Window) {
			out = append(out, a)
		}
	}
	return out
}

// matchChain walks a fallback chain strictly in order and returns the
// first active, time-compatible staff member it names.
func (r *runState) matchChain(rule tasks.Rule) (roster.ActiveStaff, bool) {
	for _, preferred := range rule.FallbackChain {
		for _, a := range r.active {
			if !NamesMatch(preferred, a.Name()) {
				continue
			}
			if !compatibleWithDue(rule.DueTime, a.Window) {
				r.trace.Step("[%s] %s: %s is working but time-incompatible", rule.Code, rule.Name, a.Name())
				continue
			}
			return a, true
		}
	}
	return roster.ActiveStaff{}, false
}

// allStaffPass hands every all-staff rule to every active person.
func (r *runState) allStaffPass(live []tasks.Rule) {
	for _, rule := range live {
		if rule.Type != tasks.TypeAllStaff {
			continue
		}
		for _, a := range r.active {
			r.push(a.Name(), rule, "")
		}
	}
}

// skilledPass walks each skilled rule's fallback chain; when the whole
// chain misses, the least-loaded compatible person takes the task. A rule
// nobody can honor stays unassigned.
func (r *runState) skilledPass(live []tasks.Rule) {
	for _, rule := range live {
		if rule.Type != tasks.TypeSkilled {
			continue
		}
		if a, ok := r.matchChain(rule); ok {
			r.push(a.Name(), rule, "")
			continue
		}
		if a, ok := leastLoaded(r.compatible(rule), r.load); ok {
			r.trace.Step("[%s] %s: chain exhausted, falling back to least loaded", rule.Code, rule.Name)
			r.push(a.Name(), rule, "")
			continue
		}
		r.trace.Warn("[%s] %s: nobody compatible, left unassigned", rule.Code, rule.Name)
	}
}

// shiftBasedPass replicates each shift-based rule once per non-empty
// shift-category bucket, tagging the instance with the bucket label.
func (r *runState) shiftBasedPass(live []tasks.Rule) {
	buckets := make(map[shifttime.Category][]roster.ActiveStaff)
	for _, a := range r.active {
		buckets[a.Shift.Category] = append(buckets[a.Shift.Category], a)
	}
	for _, rule := range live {
		if rule.Type != tasks.TypeShiftBased {
			continue
		}
		for _, cat := range shifttime.Categories {
			group := buckets[cat]
			if len(group) == 0 {
				continue
			}
			a, _ := leastLoaded(group, r.load)
			r.push(a.Name(), rule, fmt.Sprintf("%s (%s)", rule.Name, cat))
		}
	}
}

// generalPass first honors preference chains, then deals the remaining
// pool greedily: each rule goes to whoever is least loaded and
// time-compatible at that moment.
func (r *runState) generalPass(live []tasks.Rule) {
	var pool []tasks.Rule
	for _, rule := range live {
		if rule.Type != tasks.TypeGeneral {
			continue
		}
		if len(rule.FallbackChain) == 0 {
			pool = append(pool, rule)
			continue
		}
		if a, ok := r.matchChain(rule); ok {
			r.push(a.Name(), rule, "")
		} else {
			r.trace.Step("[%s] %s: no preferred match active, moved to pool", rule.Code, rule.Name)
			pool = append(pool, rule)
		}
	}
	for _, rule := range pool {
		a, ok := leastLoaded(r.compatible(rule), r.load)
		if !ok {
			r.trace.Warn("[%s] %s: nobody compatible, left unassigned", rule.Code, rule.Name)
			continue
		}
		r.push(a.Name(), rule, "")
	}
}

// fillGaps guarantees nobody leaves with an empty worklist.
func (r *runState) fillGaps() {
	for _, a := range r.active {
		if r.load(a.Name()) == 0 {
			r.push(a.Name(), Filler, "")
		}
	}
}
