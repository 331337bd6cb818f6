package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/shiftboard/internal/roster"
	"github.com/kingrea/shiftboard/internal/tasks"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#27AE60")).MarginBottom(1)
	activeTab   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#27AE60")).Padding(0, 1)
	idleTab     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Padding(0, 1)
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
	selectStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#27AE60")).Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E67E22"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")).Strikethrough(true)
	footStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).MarginTop(1)
)

// View renders the current state to a string.
func (a *App) View() string {
	sections := []string{
		headerStyle.Render("◆ SHIFTBOARD"),
		a.renderDayBar(),
		a.renderTabBar(),
		"",
	}

	switch a.tab {
	case tabWorklists:
		sections = append(sections, a.renderWorklists())
	case tabSchedule:
		sections = append(sections, a.renderScheduleGrid())
	case tabTeam:
		sections = append(sections, a.renderTeam())
	case tabCatalog:
		sections = append(sections, a.renderCatalog())
	}

	if a.huddleText != "" {
		sections = append(sections, "", cardStyle.Render("HUDDLE\n"+wrap(a.huddleText, 76)))
	}
	if a.modal != modalNone {
		sections = append(sections, "", a.renderModal())
	}
	if a.input != inputNone {
		sections = append(sections, "", a.renderInput())
	}
	if panel := a.renderLogPanel(); panel != "" {
		sections = append(sections, "", panel)
	}
	sections = append(sections, a.renderFooter())
	return strings.Join(sections, "\n")
}

func (a *App) renderDayBar() string {
	var cells []string
	for _, d := range roster.Days {
		label := strings.ToUpper(string(d))
		if d == a.day {
			cells = append(cells, activeTab.Render(label))
		} else {
			cells = append(cells, idleTab.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	if wp := strings.TrimSpace(a.state.Schedule.WeekPeriod); wp != "" {
		bar = lipgloss.JoinHorizontal(lipgloss.Top, bar, dimStyle.Render("  "+wp))
	}
	return bar
}

func (a *App) renderTabBar() string {
	var cells []string
	for _, t := range tabOrder {
		if t == a.tab {
			cells = append(cells, activeTab.Render(tabLabels[t]))
		} else {
			cells = append(cells, idleTab.Render(tabLabels[t]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// renderWorklists draws one card per active person for the selected day.
func (a *App) renderWorklists() string {
	staff := a.activeStaff()
	if len(staff) == 0 {
		return dimStyle.Render(fmt.Sprintf("Nobody is scheduled for %s.", a.day.Label()))
	}
	var cards []string
	for i, s := range staff {
		cards = append(cards, a.renderStaffCard(s, i == a.staffCursor))
	}
	return strings.Join(cards, "\n")
}

func (a *App) renderStaffCard(s roster.ActiveStaff, selected bool) string {
	list := a.state.Book.Worklist(a.day, s.Name())
	sorted := append([]tasks.AssignedTask(nil), list...)
	tasks.SortWorklist(sorted)

	load := a.state.Book.Load(a.day, s.Name())
	title := fmt.Sprintf("%s · %s · %s · %d min", s.Name(), s.Row.Role, s.Shift.Label, load)

	lines := []string{lipgloss.NewStyle().Bold(true).Render(title)}
	if len(sorted) == 0 {
		lines = append(lines, dimStyle.Render("  no tasks assigned"))
	}
	for j, t := range sorted {
		mark := "[ ]"
		if t.IsComplete {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s [%s] %s (%dm)", mark, t.Code, tasks.CleanName(t.Name), t.EffortMinutes())
		if due := strings.TrimSpace(t.DueTime); due != "" {
			line += warnStyle.Render(" due " + due)
		}
		switch {
		case selected && j == a.taskCursor:
			line = "› " + line
		default:
			line = "  " + line
		}
		if t.IsComplete {
			line = doneStyle.Render(line)
		}
		lines = append(lines, line)
	}
	card := strings.Join(lines, "\n")
	if selected {
		return selectStyle.Render(card)
	}
	return cardStyle.Render(card)
}

// renderScheduleGrid draws the raw weekly schedule as entered.
func (a *App) renderScheduleGrid() string {
	rows := a.state.Schedule.Rows
	if len(rows) == 0 {
		return dimStyle.Render("No schedule loaded. Scan one or sync from the team (m).")
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-22s %-14s", "NAME", "ROLE"))
	for _, d := range roster.Days {
		b.WriteString(fmt.Sprintf(" %-10s", strings.ToUpper(string(d))))
	}
	b.WriteString("\n")
	for i, row := range rows {
		cursor := "  "
		if i == a.rowCursor {
			cursor = "› "
		}
		b.WriteString(fmt.Sprintf("%s%-20s %-14s", cursor, trunc(row.Name, 20), trunc(row.Role, 14)))
		for _, d := range roster.Days {
			b.WriteString(fmt.Sprintf(" %-10s", trunc(row.Cell(d), 10)))
		}
		b.WriteString("\n")
	}
	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (a *App) renderTeam() string {
	if len(a.state.Team) == 0 {
		return dimStyle.Render("Team database is empty. Sync from the schedule (m).")
	}
	var lines []string
	for i, m := range a.state.Team {
		cursor := "  "
		if i == a.rowCursor {
			cursor = "› "
		}
		status := "active"
		if !m.IsActive {
			status = "inactive"
		}
		line := fmt.Sprintf("%s%-22s %-16s %s", cursor, trunc(m.Name, 22), trunc(m.Role, 16), status)
		if m.Email != "" {
			line += dimStyle.Render("  " + m.Email)
		}
		lines = append(lines, line)
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderCatalog() string {
	if len(a.state.Catalog) == 0 {
		return dimStyle.Render("Catalog is empty.")
	}
	var lines []string
	for i, r := range a.state.Catalog {
		cursor := "  "
		if i == a.rowCursor {
			cursor = "› "
		}
		line := fmt.Sprintf("%s%-5s [%-4s] %-42s %-11s %3dm", cursor, fmt.Sprint(r.ID), r.Code, trunc(r.Name, 42), r.Type, r.EffortMinutes())
		if r.DueTime != "" {
			line += warnStyle.Render(" due " + r.DueTime)
		}
		lines = append(lines, line)
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderModal() string {
	var text string
	switch a.modal {
	case modalDistribute:
		text = fmt.Sprintf("Auto-distribute %s?\nThis rebuilds the whole day and discards manual edits.", a.day.Label())
	case modalClearDay:
		text = fmt.Sprintf("Clear every assignment for %s?", a.day.Label())
	case modalImport:
		text = "Import backup?\nThis replaces the schedule, catalog, assignments and team."
	}
	return selectStyle.Render(text + "\n\n" + dimStyle.Render("y/enter confirm · n/esc cancel"))
}

func (a *App) renderInput() string {
	label := "Manual task"
	if a.input == inputTeamMember {
		label = "New team member"
	}
	if a.input == inputSearch {
		label = "Search"
		if len(a.searchMatches) > 0 {
			label = fmt.Sprintf("Search (%d matches, top: %s)", len(a.searchMatches), a.searchMatches[0].Name)
		}
	}
	return selectStyle.Render(label + "\n" + a.textEntry.View())
}

func (a *App) renderLogPanel() string {
	lines := a.log.Tail(5)
	if len(lines) == 0 {
		return ""
	}
	return cardStyle.Render(dimStyle.Render(strings.Join(lines, "\n")))
}

func (a *App) renderFooter() string {
	hints := "←→ day · tab view · ↑↓ staff · ,. task · space done · d distribute · x clear · a add · / find · g huddle · e export · i import · m sync · q quit"
	return footStyle.Render(a.statusMsg + "\n" + hints)
}

// trunc shortens s to n runes, never splitting a multi-byte name.
func trunc(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// wrap breaks text on spaces so huddle output fits the card.
func wrap(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}
	var b strings.Builder
	line := 0
	for i, w := range words {
		if i > 0 {
			if line+1+len(w) > width {
				b.WriteString("\n")
				line = 0
			} else {
				b.WriteString(" ")
				line++
			}
		}
		b.WriteString(w)
		line += len(w)
	}
	return b.String()
}
