// Package roster holds the schedule and team data model: who exists, what
// role they carry, and which raw shift string sits in each day cell of the
// current week.
package roster

import (
	"strings"

	"github.com/google/uuid"
)

// DayKey identifies a day column of the weekly schedule.
type DayKey string

const (
	Sun DayKey = "sun"
	Mon DayKey = "mon"
	Tue DayKey = "tue"
	Wed DayKey = "wed"
	Thu DayKey = "thu"
	Fri DayKey = "fri"
	Sat DayKey = "sat"
)

// Days lists the week in schedule-column order.
var Days = []DayKey{Sun, Mon, Tue, Wed, Thu, Fri, Sat}

// DayLabels maps day keys to their full display names.
var DayLabels = map[DayKey]string{
	Sun: "Sunday",
	Mon: "Monday",
	Tue: "Tuesday",
	Wed: "Wednesday",
	Thu: "Thursday",
	Fri: "Friday",
	Sat: "Saturday",
}

// ParseDay resolves a day key from loose input ("fri", "Friday", "FRI").
func ParseDay(s string) (DayKey, bool) {
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, d := range Days {
		if lower == string(d) || lower == strings.ToLower(DayLabels[d]) {
			return d, true
		}
	}
	if len(lower) >= 3 {
		for _, d := range Days {
			if strings.HasPrefix(strings.ToLower(DayLabels[d]), lower) {
				return d, true
			}
		}
	}
	return "", false
}

// PrevDay returns the calendar day before d, wrapping Sunday to Saturday.
func PrevDay(d DayKey) DayKey {
	for i, day := range Days {
		if day == d {
			if i == 0 {
				return Days[len(Days)-1]
			}
			return Days[i-1]
		}
	}
	return d
}

// Label returns the full display name for d.
func (d DayKey) Label() string { return DayLabels[d] }

// StaffRow is one line of the weekly schedule: a person plus seven raw
// shift cells. Cell text is free-form; interpretation belongs to the
// shifttime parser. The JSON field layout matches the exported bundle
// format of earlier versions of this tool.
type StaffRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
	Sun  string `json:"sun"`
	Mon  string `json:"mon"`
	Tue  string `json:"tue"`
	Wed  string `json:"wed"`
	Thu  string `json:"thu"`
	Fri  string `json:"fri"`
	Sat  string `json:"sat"`
}

// Cell returns the raw shift text for the given day.
func (r StaffRow) Cell(d DayKey) string {
	switch d {
	case Sun:
		return r.Sun
	case Mon:
		return r.Mon
	case Tue:
		return r.Tue
	case Wed:
		return r.Wed
	case Thu:
		return r.Thu
	case Fri:
		return r.Fri
	case Sat:
		return r.Sat
	}
	return ""
}

// SetCell overwrites the raw shift text for the given day.
func (r *StaffRow) SetCell(d DayKey, v string) {
	switch d {
	case Sun:
		r.Sun = v
	case Mon:
		r.Mon = v
	case Tue:
		r.Tue = v
	case Wed:
		r.Wed = v
	case Thu:
		r.Thu = v
	case Fri:
		r.Fri = v
	case Sat:
		r.Sat = v
	}
}

// Identity returns the stable key used to deduplicate a person across
// spillover and same-day entries.
func (r StaffRow) Identity() string {
	if r.ID != "" {
		return r.ID
	}
	return r.Name
}

// NewStaffRow creates an all-OFF row for a named person.
func NewStaffRow(name, role string) StaffRow {
	row := StaffRow{ID: uuid.NewString(), Name: name, Role: role}
	for _, d := range Days {
		row.SetCell(d, "OFF")
	}
	return row
}

// Schedule is the full weekly schedule being distributed against.
type Schedule struct {
	WeekPeriod string     `json:"week_period"`
	Rows       []StaffRow `json:"shifts"`
}

// TeamMember is a long-lived entry of the team database, independent of
// any particular week's schedule.
type TeamMember struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// MergeTeamIntoSchedule appends an all-OFF row for every active team
// member not already present on the schedule. Returns how many rows were
// added.
func MergeTeamIntoSchedule(sched *Schedule, team []TeamMember) int {
	existing := make(map[string]bool, len(sched.Rows))
	for _, r := range sched.Rows {
		existing[strings.ToLower(r.Name)] = true
	}
	added := 0
	for _, m := range team {
		if !m.IsActive || existing[strings.ToLower(m.Name)] {
			continue
		}
		row := NewStaffRow(m.Name, m.Role)
		row.ID = m.ID
		sched.Rows = append(sched.Rows, row)
		existing[strings.ToLower(m.Name)] = true
		added++
	}
	return added
}

// MergeScheduleIntoTeam imports schedule names missing from the team
// database as active members. Returns the grown team and how many were
// imported.
func MergeScheduleIntoTeam(sched Schedule, team []TeamMember) ([]TeamMember, int) {
	existing := make(map[string]bool, len(team))
	for _, m := range team {
		existing[strings.ToLower(m.Name)] = true
	}
	added := 0
	for _, r := range sched.Rows {
		key := strings.ToLower(r.Name)
		if r.Name == "" || existing[key] {
			continue
		}
		team = append(team, TeamMember{
			ID:       uuid.NewString(),
			Name:     r.Name,
			Role:     r.Role,
			IsActive: true,
		})
		existing[key] = true
		added++
	}
	return team, added
}
