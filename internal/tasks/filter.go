package tasks

import (
	"sort"
	"strings"

	"github.com/kingrea/shiftboard/internal/roster"
)

// ActiveOn selects the catalog rules that are live for the given day.
// dateOfMonth is today's 1-31 calendar date, used by monthly rules.
func ActiveOn(catalog []Rule, day roster.DayKey, dateOfMonth int) []Rule {
	var live []Rule
	for _, r := range catalog {
		if excluded(r, day) {
			continue
		}
		switch r.Frequency {
		case FrequencyWeekly:
			target := r.FrequencyDay
			if target == "" {
				target = roster.Fri
			}
			if target != day {
				continue
			}
		case FrequencyMonthly:
			if r.FrequencyDate == 0 || r.FrequencyDate != dateOfMonth {
				continue
			}
		}
		live = append(live, r)
	}
	return live
}

func excluded(r Rule, day roster.DayKey) bool {
	for _, d := range r.ExcludedDays {
		if d == day {
			return true
		}
	}
	return false
}

// SortForDistribution orders rules for the assignment passes: pinned
// priorities first, then stocking/front-of-house sets (T/W codes), then
// everything else, stable within each band.
func SortForDistribution(rules []Rule, pinned map[int]bool) []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	band := func(r Rule) int {
		switch {
		case pinned[r.ID]:
			return 0
		case strings.HasPrefix(r.Code, "T") || strings.HasPrefix(r.Code, "W"):
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return band(out[i]) < band(out[j]) })
	return out
}

// PinnedSet converts a pinned-id list to the lookup form the engine uses.
func PinnedSet(ids []int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
