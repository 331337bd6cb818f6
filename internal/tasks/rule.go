// Package tasks models the recurring task catalog and the per-day
// assignment book the distribution engine writes into.
package tasks

import (
	"regexp"
	"sort"
	"strings"

	"github.com/kingrea/shiftboard/internal/roster"
)

// Type controls which distribution pass handles a rule.
type Type string

const (
	// TypeSkilled tasks carry a ranked preference chain and go to the
	// first available, time-compatible name on it.
	TypeSkilled Type = "skilled"
	// TypeGeneral tasks are distributed by current-load fairness.
	TypeGeneral Type = "general"
	// TypeShiftBased tasks are replicated once per shift-category bucket.
	TypeShiftBased Type = "shift_based"
	// TypeAllStaff tasks go to every active person that day.
	TypeAllStaff Type = "all_staff"
	// TypeManual marks hand-added worklist entries; the engine never
	// creates or distributes these.
	TypeManual Type = "manual"
)

// Frequency controls which days a rule is live on.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// DefaultEffort is the assumed duration, in minutes, of a rule that does
// not state one.
const DefaultEffort = 30

// Reserved rule-id ranges. Catalog entries live below these; ids handed
// out at runtime stay above them so they can never collide with the
// catalog.
const (
	// SuggestionIDBase seeds ids for rules proposed by workplace analysis.
	SuggestionIDBase = 8000
	// FillerRuleID is the synthetic gap-fill task id.
	FillerRuleID = 9000
	// ManualRuleID is shared by all hand-typed worklist entries.
	ManualRuleID = 9999
)

// Rule is one catalog entry: a recurring task definition. The JSON field
// names match the exported bundle format.
type Rule struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
	Type Type   `json:"type"`

	// FallbackChain lists preferred assignees, highest priority first.
	// The chain is consumed strictly in order.
	FallbackChain []string `json:"fallbackChain"`

	// DueTime is a loose deadline label: "9:00 AM", "Store Open",
	// "Closing", or empty for anytime.
	DueTime string `json:"dueTime,omitempty"`

	// Effort is the estimated duration in minutes.
	Effort int `json:"effort,omitempty"`

	Frequency     Frequency       `json:"frequency,omitempty"`
	FrequencyDay  roster.DayKey   `json:"frequencyDay,omitempty"`
	FrequencyDate int             `json:"frequencyDate,omitempty"`
	ExcludedDays  []roster.DayKey `json:"excludedDays,omitempty"`
}

// EffortMinutes returns the rule's effort, falling back to DefaultEffort
// for entries that predate normalization.
func (r Rule) EffortMinutes() int {
	if r.Effort <= 0 {
		return DefaultEffort
	}
	return r.Effort
}

// AssignedTask is a Rule snapshot placed on one person's worklist. The
// instance id keeps copies of the same rule distinct across people.
type AssignedTask struct {
	Rule
	InstanceID string `json:"instanceId"`
	IsComplete bool   `json:"isComplete,omitempty"`
}

var suffixNoise = regexp.MustCompile(`(?i)\((?:sat only|fri only|excl[^)]*)\)`)

// CleanName strips scheduling hints like "(Sat Only)" from a task name
// for display; the frequency fields carry that information now.
func CleanName(name string) string {
	return strings.TrimSpace(suffixNoise.ReplaceAllString(name, ""))
}

// SortWorklist orders one person's tasks for display: skilled work first,
// manual notes last, everything else in between. The sort is stable so
// assignment order is preserved within a band.
func SortWorklist(list []AssignedTask) {
	score := func(t AssignedTask) int {
		switch {
		case t.Type == TypeSkilled:
			return 1
		case t.Code == "MAN":
			return 5
		default:
			return 3
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return score(list[i]) < score(list[j])
	})
}
