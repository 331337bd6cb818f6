package tasks

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/kingrea/shiftboard/internal/roster"
)

// Book is the central assignment state: day -> staff name -> worklist.
//
// The two-level shape exists so a day can be rebuilt off to the side and
// spliced in atomically, and so names containing the old "day-name" key
// separator cannot collide. On the wire the Book still flattens to the
// composite-key object the export bundle has always used.
type Book map[roster.DayKey]map[string][]AssignedTask

// Worklist returns one person's task list for a day. The returned slice
// is the live list; callers that mutate should use Put.
func (b Book) Worklist(day roster.DayKey, name string) []AssignedTask {
	return b[day][name]
}

// Put replaces one person's worklist for a day.
func (b Book) Put(day roster.DayKey, name string, list []AssignedTask) {
	if b[day] == nil {
		b[day] = make(map[string][]AssignedTask)
	}
	if len(list) == 0 {
		delete(b[day], name)
		if len(b[day]) == 0 {
			delete(b, day)
		}
		return
	}
	b[day][name] = list
}

// Append adds a task to one person's worklist.
func (b Book) Append(day roster.DayKey, name string, t AssignedTask) {
	if b[day] == nil {
		b[day] = make(map[string][]AssignedTask)
	}
	b[day][name] = append(b[day][name], t)
}

// Remove deletes the task with the given instance id from a worklist.
// It reports whether anything was removed.
func (b Book) Remove(day roster.DayKey, name, instanceID string) bool {
	list := b[day][name]
	for i, t := range list {
		if t.InstanceID == instanceID {
			b.Put(day, name, append(list[:i:i], list[i+1:]...))
			return true
		}
	}
	return false
}

// ClearStaff drops the worklists of the named staff for a day, leaving
// any orphaned keys (departed staff) untouched.
func (b Book) ClearStaff(day roster.DayKey, names []string) {
	for _, n := range names {
		b.Put(day, n, nil)
	}
}

// SpliceDay replaces the entire day with a freshly built sub-map in one
// step, so no observer sees a half-cleared day.
func (b Book) SpliceDay(day roster.DayKey, sub map[string][]AssignedTask) {
	if len(sub) == 0 {
		delete(b, day)
		return
	}
	b[day] = sub
}

// Clone returns a deep copy. The engine builds against a clone so a
// failed run leaves the caller's book untouched.
func (b Book) Clone() Book {
	out := make(Book, len(b))
	for day, staff := range b {
		sub := make(map[string][]AssignedTask, len(staff))
		for name, list := range staff {
			sub[name] = append([]AssignedTask(nil), list...)
		}
		out[day] = sub
	}
	return out
}

// Load sums the effort minutes on one person's worklist for a day. This
// is the greedy balancing metric: it reads the live book, so assignments
// pushed earlier in the same run are always reflected.
func (b Book) Load(day roster.DayKey, name string) int {
	total := 0
	for _, t := range b[day][name] {
		total += t.EffortMinutes()
	}
	return total
}

// HasRule reports whether a worklist already carries the rule id. The
// same rule must never appear twice on one person's day.
func (b Book) HasRule(day roster.DayKey, name string, ruleID int) bool {
	for _, t := range b[day][name] {
		if t.ID == ruleID {
			return true
		}
	}
	return false
}

// MarshalJSON flattens the book to the legacy "<day>-<name>" object form.
func (b Book) MarshalJSON() ([]byte, error) {
	flat := make(map[string][]AssignedTask)
	for day, staff := range b {
		for name, list := range staff {
			flat[string(day)+"-"+name] = list
		}
	}
	return json.Marshal(flat)
}

// UnmarshalJSON reads the flattened form back into the two-level shape.
// Only the first dash is a separator and it must follow a valid day key,
// so names containing dashes round-trip safely.
func (b *Book) UnmarshalJSON(data []byte) error {
	var flat map[string][]AssignedTask
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	out := make(Book)
	for key, list := range flat {
		day, name, ok := splitBookKey(key)
		if !ok {
			continue // tolerate junk keys rather than failing the load
		}
		out.Put(day, name, list)
	}
	*b = out
	return nil
}

func splitBookKey(key string) (roster.DayKey, string, bool) {
	i := strings.IndexByte(key, '-')
	if i <= 0 || i == len(key)-1 {
		return "", "", false
	}
	day, ok := roster.ParseDay(key[:i])
	if !ok {
		return "", "", false
	}
	return day, key[i+1:], true
}

// StaffNames returns the names holding assignments for a day, sorted for
// stable iteration.
func (b Book) StaffNames(day roster.DayKey) []string {
	names := make([]string, 0, len(b[day]))
	for n := range b[day] {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
