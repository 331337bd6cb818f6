package assign

import (
	"strings"

	"github.com/kingrea/shiftboard/internal/shifttime"
)

// lateClockCutoff marks the point past which a clock-style due time stops
// constraining anyone: a "10:30 PM" deadline is effectively "before we
// lock up" and every shift can meet it.
const lateClockCutoff = 2200

// closingShiftEnd is the earliest shift end that still counts as being
// around for closing duties.
const closingShiftEnd = 1800

// compatibleWithDue reports whether a shift window can honor a rule's
// due-time label.
//
// Two constraints exist: a "Closing" task needs the person there until at
// least 18:00, and a clock deadline needs the person clocked in before it
// strikes. Labels without digits ("Store Open") and unknown shift ends
// resolve permissively; a guess that blocks an assignment is worse than
// one that allows it.
func compatibleWithDue(due string, w shifttime.Range) bool {
	due = strings.TrimSpace(due)
	if due == "" {
		return true
	}
	if strings.Contains(strings.ToLower(due), "closing") {
		return !w.HasEnd || w.End >= closingShiftEnd
	}
	clock, ok := shifttime.ClockValue(due)
	if !ok {
		return true
	}
	if clock < lateClockCutoff && w.Start >= clock {
		return false
	}
	return true
}
