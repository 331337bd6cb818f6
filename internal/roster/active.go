package roster

import "github.com/kingrea/shiftboard/internal/shifttime"

// ActiveStaff is one person confirmed to be working on a target day, with
// their shift already resolved by the time parser.
type ActiveStaff struct {
	Row       StaffRow
	Shift     shifttime.Shift
	Window    shifttime.Range
	Spillover bool
}

// Name returns the display name used as the assignment key.
func (a ActiveStaff) Name() string { return a.Row.Name }

// ActiveForDay resolves which staff are on the clock for the given day.
//
// Two sources feed the result: rows whose cell for the day itself parses
// to a working category, and rows whose previous-day cell parses to an
// overnight shift, which spills past midnight into the target day. A
// person appearing in both is represented once, as today's shift.
func ActiveForDay(sched Schedule, day DayKey, parser *shifttime.Parser) []ActiveStaff {
	prev := PrevDay(day)

	var candidates []ActiveStaff
	for _, row := range sched.Rows {
		cell := row.Cell(prev)
		shift := parser.Parse(cell, row.Role, true)
		if shift.Category != shifttime.CategoryOvernight {
			continue
		}
		candidates = append(candidates, ActiveStaff{
			Row:       row,
			Shift:     shift,
			Window:    spilloverWindow(parser, cell, row.Role),
			Spillover: true,
		})
	}
	for _, row := range sched.Rows {
		cell := row.Cell(day)
		shift := parser.Parse(cell, row.Role, false)
		if !shift.Working() {
			continue
		}
		window, _ := parser.ParseRange(cell, row.Role)
		candidates = append(candidates, ActiveStaff{
			Row:    row,
			Shift:  shift,
			Window: window,
		})
	}

	seen := make(map[string]int)
	var active []ActiveStaff
	for _, c := range candidates {
		id := c.Row.Identity()
		if idx, ok := seen[id]; ok {
			// A person continuing overnight and also freshly scheduled
			// today is represented once, as today's shift.
			if active[idx].Spillover && !c.Spillover {
				active[idx] = c
			}
			continue
		}
		seen[id] = len(active)
		active = append(active, c)
	}
	return active
}

// spilloverWindow maps the previous day's overnight range onto the target
// day: the portion that falls on "today" starts at midnight and ends when
// the overnight shift does.
func spilloverWindow(parser *shifttime.Parser, cell, role string) shifttime.Range {
	r, ok := parser.ParseRange(cell, role)
	if !ok {
		return shifttime.Range{}
	}
	w := shifttime.Range{Start: 0}
	if r.HasEnd && r.End >= 2400 {
		// A shift ending exactly at midnight yields a zero-width window,
		// not an open-ended one.
		w.End = r.End - 2400
		w.HasEnd = true
	}
	return w
}
