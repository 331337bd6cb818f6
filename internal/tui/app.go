// internal/tui/app.go
//
// The main TUI for shiftboard, built on bubbletea's Elm architecture:
// the App model holds all state, Update reacts to messages, View renders
// the current screen. Heavy work (distribution, huddle generation) runs
// inside tea.Cmd functions so the UI never blocks.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/kingrea/shiftboard/internal/ai"
	"github.com/kingrea/shiftboard/internal/assign"
	"github.com/kingrea/shiftboard/internal/config"
	"github.com/kingrea/shiftboard/internal/logbook"
	"github.com/kingrea/shiftboard/internal/roster"
	"github.com/kingrea/shiftboard/internal/shifttime"
	"github.com/kingrea/shiftboard/internal/store"
	"github.com/kingrea/shiftboard/internal/tasks"
)

// viewTab identifies which main screen is showing.
type viewTab int

const (
	tabWorklists viewTab = iota
	tabSchedule
	tabTeam
	tabCatalog
)

var tabLabels = map[viewTab]string{
	tabWorklists: "Worklists",
	tabSchedule:  "Schedule",
	tabTeam:      "Team",
	tabCatalog:   "Catalog",
}

var tabOrder = []viewTab{tabWorklists, tabSchedule, tabTeam, tabCatalog}

// modalKind identifies the active confirmation dialog, if any.
type modalKind int

const (
	modalNone modalKind = iota
	modalDistribute
	modalClearDay
	modalImport
)

// inputMode identifies which text input currently owns the keyboard.
type inputMode int

const (
	inputNone inputMode = iota
	inputManualTask
	inputTeamMember
	inputSearch
)

type distributeDoneMsg struct {
	book tasks.Book
	sum  assign.Summary
	err  error
}

type huddleMsg struct {
	text string
}

type exportDoneMsg struct {
	path string
	err  error
}

// App is the main application model.
type App struct {
	cfg    *config.Config
	store  *store.Store
	log    *logbook.Logbook
	engine *assign.Engine
	parser *shifttime.Parser
	huddle ai.HuddleWriter

	state store.State
	day   roster.DayKey
	tab   viewTab

	modal     modalKind
	input     inputMode
	textEntry textinput.Model

	staffCursor int
	taskCursor  int
	rowCursor   int

	searchMatches []roster.StaffRow
	huddleText    string
	statusMsg     string

	width  int
	height int
}

// NewApp loads persisted state and builds the application model.
func NewApp(cfg *config.Config, st *store.Store, log *logbook.Logbook, huddle ai.HuddleWriter) (*App, error) {
	state, err := st.Load()
	if err != nil {
		return nil, err
	}
	parser := shifttime.NewParser(cfg.Heuristics())

	entry := textinput.New()
	entry.CharLimit = 120

	app := &App{
		cfg:       cfg,
		store:     st,
		log:       log,
		engine:    assign.New(parser, cfg.PinnedRules(), log),
		parser:    parser,
		huddle:    huddle,
		state:     state,
		day:       todayKey(time.Now()),
		tab:       tabWorklists,
		textEntry: entry,
		statusMsg: "Ready",
	}
	log.Info("session opened: %d staff, %d catalog rules", len(state.Schedule.Rows), len(state.Catalog))
	return app, nil
}

// todayKey maps a wall-clock day to its schedule column.
func todayKey(now time.Time) roster.DayKey {
	return roster.Days[int(now.Weekday())]
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case distributeDoneMsg:
		if msg.err != nil {
			if errors.Is(msg.err, assign.ErrNoActiveStaff) {
				a.statusMsg = fmt.Sprintf("Nobody works %s, nothing to distribute", a.day.Label())
			} else {
				a.statusMsg = fmt.Sprintf("Distribution failed: %v", msg.err)
			}
			return a, nil
		}
		a.state.Book = msg.book
		a.statusMsg = fmt.Sprintf("Distributed %d tasks (+%d fillers) across %d staff",
			msg.sum.Assigned, msg.sum.Fillers, msg.sum.Staff)
		a.clampCursors()
		a.store.ScheduleSave(a.state)
		return a, nil

	case huddleMsg:
		a.huddleText = msg.text
		a.statusMsg = "Huddle ready"
		return a, nil

	case exportDoneMsg:
		if msg.err != nil {
			a.statusMsg = fmt.Sprintf("Export failed: %v", msg.err)
		} else {
			a.statusMsg = fmt.Sprintf("Exported to %s", msg.path)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.modal != modalNone {
		return a.handleModalKey(msg)
	}
	if a.input != inputNone {
		return a.handleInputKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		if err := a.store.Flush(a.state); err != nil {
			a.log.Error("final save failed: %v", err)
		}
		a.log.Info("session closed")
		return a, tea.Quit

	case "left", "h":
		a.day = roster.PrevDay(a.day)
		a.clampCursors()
	case "right", "l":
		a.day = nextDay(a.day)
		a.clampCursors()

	case "tab":
		a.tab = nextTab(a.tab)
	case "shift+tab":
		a.tab = prevTab(a.tab)

	case "up", "k":
		a.moveRow(-1)
	case "down", "j":
		a.moveRow(1)
	case ",":
		a.moveTask(-1)
	case ".":
		a.moveTask(1)

	case " ":
		a.toggleSelectedTask()
	case "backspace", "delete":
		switch a.tab {
		case tabWorklists:
			a.removeSelectedTask()
		case tabTeam:
			a.removeTeamMember()
		}

	case "d":
		a.modal = modalDistribute
	case "x":
		a.modal = modalClearDay
	case "i":
		a.modal = modalImport

	case "a":
		switch a.tab {
		case tabWorklists:
			a.input = inputManualTask
			a.textEntry.Placeholder = "Task name"
			a.textEntry.SetValue("")
			a.textEntry.Focus()
		case tabTeam:
			a.input = inputTeamMember
			a.textEntry.Placeholder = "Name, Role"
			a.textEntry.SetValue("")
			a.textEntry.Focus()
		}
	case "t":
		a.toggleTeamMember()
	case "/":
		a.input = inputSearch
		a.textEntry.Placeholder = "Find staff"
		a.textEntry.SetValue("")
		a.textEntry.Focus()
		a.searchMatches = nil

	case "g":
		a.statusMsg = "Writing huddle..."
		return a, a.generateHuddle()
	case "e":
		return a, a.exportBundle()
	case "m":
		added := roster.MergeTeamIntoSchedule(&a.state.Schedule, a.state.Team)
		a.state.Team, _ = roster.MergeScheduleIntoTeam(a.state.Schedule, a.state.Team)
		a.statusMsg = fmt.Sprintf("Synced team and schedule (%d rows added)", added)
		a.store.ScheduleSave(a.state)
	}

	return a, nil
}

func (a *App) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		kind := a.modal
		a.modal = modalNone
		switch kind {
		case modalDistribute:
			a.statusMsg = fmt.Sprintf("Distributing %s...", a.day.Label())
			return a, a.distribute()
		case modalClearDay:
			// Only active staff keys are cleared; orphaned entries for
			// departed staff stay untouched.
			staff := a.activeStaff()
			names := make([]string, 0, len(staff))
			for _, s := range staff {
				names = append(names, s.Name())
			}
			a.state.Book.ClearStaff(a.day, names)
			a.statusMsg = fmt.Sprintf("Cleared assignments for %s", a.day.Label())
			a.log.Info("cleared %s by hand", a.day)
			a.clampCursors()
			a.store.ScheduleSave(a.state)
		case modalImport:
			a.importLatestBundle()
		}
	case "n", "esc":
		a.modal = modalNone
		a.statusMsg = "Cancelled"
	}
	return a, nil
}

func (a *App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.input = inputNone
		a.textEntry.Blur()
		a.searchMatches = nil
		return a, nil
	case "enter":
		value := strings.TrimSpace(a.textEntry.Value())
		mode := a.input
		a.input = inputNone
		a.textEntry.Blur()
		switch mode {
		case inputManualTask:
			a.addManualTask(value)
		case inputTeamMember:
			a.addTeamMember(value)
		case inputSearch:
			a.jumpToMatch()
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.textEntry, cmd = a.textEntry.Update(msg)
	if a.input == inputSearch {
		a.searchMatches = roster.SearchRows(a.state.Schedule.Rows, a.textEntry.Value())
	}
	return a, cmd
}

// addManualTask appends a hand-typed entry to the selected worklist.
func (a *App) addManualTask(name string) {
	if name == "" {
		a.statusMsg = "Cancelled"
		return
	}
	staff := a.activeStaff()
	if len(staff) == 0 {
		a.statusMsg = "Nobody to assign to"
		return
	}
	person := staff[a.staffCursor].Name()
	a.state.Book.Append(a.day, person, tasks.AssignedTask{
		Rule: tasks.Rule{
			ID:            tasks.ManualRuleID,
			Code:          "MAN",
			Name:          name,
			Type:          tasks.TypeManual,
			Effort:        tasks.DefaultEffort,
			FallbackChain: []string{},
		},
		InstanceID: uuid.NewString(),
	})
	a.statusMsg = fmt.Sprintf("Added %q for %s", name, person)
	a.log.Info("manual task %q added for %s (%s)", name, person, a.day)
	a.store.ScheduleSave(a.state)
}

// addTeamMember records a new active member from "Name, Role" input.
func (a *App) addTeamMember(value string) {
	if value == "" {
		a.statusMsg = "Cancelled"
		return
	}
	name, role := value, ""
	if i := strings.LastIndex(value, ","); i > 0 {
		name, role = strings.TrimSpace(value[:i]), strings.TrimSpace(value[i+1:])
	}
	a.state.Team = append(a.state.Team, roster.TeamMember{
		ID:       uuid.NewString(),
		Name:     name,
		Role:     role,
		IsActive: true,
	})
	a.statusMsg = fmt.Sprintf("Added %s to the team", name)
	a.store.ScheduleSave(a.state)
}

// toggleTeamMember flips the active flag under the cursor.
func (a *App) toggleTeamMember() {
	if a.tab != tabTeam || a.rowCursor >= len(a.state.Team) {
		return
	}
	m := &a.state.Team[a.rowCursor]
	m.IsActive = !m.IsActive
	a.statusMsg = fmt.Sprintf("%s is now %s", m.Name, activeWord(m.IsActive))
	a.store.ScheduleSave(a.state)
}

func activeWord(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

// removeTeamMember drops the member under the cursor.
func (a *App) removeTeamMember() {
	if a.rowCursor >= len(a.state.Team) {
		return
	}
	removed := a.state.Team[a.rowCursor]
	a.state.Team = append(a.state.Team[:a.rowCursor], a.state.Team[a.rowCursor+1:]...)
	a.rowCursor = clamp(a.rowCursor, len(a.state.Team))
	a.statusMsg = fmt.Sprintf("Removed %s from the team", removed.Name)
	a.store.ScheduleSave(a.state)
}

// importLatestBundle replaces all state with the newest backup bundle.
func (a *App) importLatestBundle() {
	path, err := a.store.LatestExport()
	if err != nil {
		a.statusMsg = fmt.Sprintf("Import failed: %v", err)
		return
	}
	st, err := a.store.Import(path)
	if err != nil {
		a.statusMsg = fmt.Sprintf("Import failed: %v", err)
		return
	}
	a.state = st
	a.clampCursors()
	a.statusMsg = fmt.Sprintf("Imported %s", path)
	a.store.ScheduleSave(a.state)
}

// jumpToMatch moves the cursor to the first fuzzy search hit.
func (a *App) jumpToMatch() {
	if len(a.searchMatches) == 0 {
		a.statusMsg = "No match"
		a.searchMatches = nil
		return
	}
	target := a.searchMatches[0].Name
	a.searchMatches = nil
	for i, s := range a.activeStaff() {
		if s.Name() == target {
			a.staffCursor = i
			a.taskCursor = 0
			a.statusMsg = fmt.Sprintf("Jumped to %s", target)
			return
		}
	}
	a.statusMsg = fmt.Sprintf("%s is not working %s", target, a.day.Label())
}

// toggleSelectedTask flips completion on the task under the cursor.
func (a *App) toggleSelectedTask() {
	person, list := a.selectedWorklist()
	if person == "" || a.taskCursor >= len(list) {
		return
	}
	list[a.taskCursor].IsComplete = !list[a.taskCursor].IsComplete
	a.store.ScheduleSave(a.state)
}

// removeSelectedTask deletes the task under the cursor.
func (a *App) removeSelectedTask() {
	person, list := a.selectedWorklist()
	if person == "" || a.taskCursor >= len(list) {
		return
	}
	removed := list[a.taskCursor]
	if a.state.Book.Remove(a.day, person, removed.InstanceID) {
		a.statusMsg = fmt.Sprintf("Removed %q from %s", removed.Name, person)
		a.clampCursors()
		a.store.ScheduleSave(a.state)
	}
}

// selectedWorklist resolves the worklist under the staff cursor.
func (a *App) selectedWorklist() (string, []tasks.AssignedTask) {
	if a.tab != tabWorklists {
		return "", nil
	}
	staff := a.activeStaff()
	if len(staff) == 0 || a.staffCursor >= len(staff) {
		return "", nil
	}
	name := staff[a.staffCursor].Name()
	return name, a.state.Book.Worklist(a.day, name)
}

func (a *App) activeStaff() []roster.ActiveStaff {
	return roster.ActiveForDay(a.state.Schedule, a.day, a.parser)
}

func (a *App) moveRow(delta int) {
	switch a.tab {
	case tabWorklists:
		n := len(a.activeStaff())
		a.staffCursor = clamp(a.staffCursor+delta, n)
		a.taskCursor = 0
	case tabSchedule:
		a.rowCursor = clamp(a.rowCursor+delta, len(a.state.Schedule.Rows))
	case tabTeam:
		a.rowCursor = clamp(a.rowCursor+delta, len(a.state.Team))
	case tabCatalog:
		a.rowCursor = clamp(a.rowCursor+delta, len(a.state.Catalog))
	}
}

func (a *App) moveTask(delta int) {
	_, list := a.selectedWorklist()
	a.taskCursor = clamp(a.taskCursor+delta, len(list))
}

func (a *App) clampCursors() {
	a.staffCursor = clamp(a.staffCursor, len(a.activeStaff()))
	_, list := a.selectedWorklist()
	a.taskCursor = clamp(a.taskCursor, len(list))
}

func clamp(v, n int) int {
	if n <= 0 {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

func nextDay(d roster.DayKey) roster.DayKey {
	for i, day := range roster.Days {
		if day == d {
			return roster.Days[(i+1)%len(roster.Days)]
		}
	}
	return d
}

func nextTab(t viewTab) viewTab {
	return tabOrder[(int(t)+1)%len(tabOrder)]
}

func prevTab(t viewTab) viewTab {
	return tabOrder[(int(t)+len(tabOrder)-1)%len(tabOrder)]
}

// distribute runs the engine off the UI goroutine. The state is
// snapshotted before the closure is handed to the runtime: the update
// loop keeps editing the live book while the engine reads.
func (a *App) distribute() tea.Cmd {
	day := a.day
	date := time.Now().Day()
	snap := store.Snapshot(a.state)
	return func() tea.Msg {
		result, sum, err := a.engine.Distribute(day, snap.Schedule, snap.Catalog, snap.Book, date)
		return distributeDoneMsg{book: result, sum: sum, err: err}
	}
}

// generateHuddle asks the model for the pre-shift speech, feeding it the
// day's highest priority live rules as focus areas.
func (a *App) generateHuddle() tea.Cmd {
	day := a.day
	count := len(a.activeStaff())
	focus := focusAreas(a.state.Catalog, a.cfg.PinnedRules(), day, time.Now().Day())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return huddleMsg{text: a.huddle.DailyHuddle(ctx, day.Label(), count, focus)}
	}
}

// focusAreas picks up to three live pinned rule names for the huddle.
func focusAreas(catalog []tasks.Rule, pinned []int, day roster.DayKey, date int) []string {
	live := tasks.SortForDistribution(tasks.ActiveOn(catalog, day, date), tasks.PinnedSet(pinned))
	var out []string
	for _, r := range live {
		out = append(out, tasks.CleanName(r.Name))
		if len(out) == 3 {
			break
		}
	}
	return out
}

func (a *App) exportBundle() tea.Cmd {
	st := store.Snapshot(a.state)
	return func() tea.Msg {
		path, err := a.store.Export(st, time.Now())
		return exportDoneMsg{path: path, err: err}
	}
}
