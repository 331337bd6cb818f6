package assign

import (
	"testing"

	"github.com/kingrea/shiftboard/internal/shifttime"
)

func TestCompatibleWithDue(t *testing.T) {
	cases := []struct {
		name string
		due  string
		w    shifttime.Range
		want bool
	}{
		{"empty due always fits", "", shifttime.Range{Start: 1400, End: 2200, HasEnd: true}, true},
		{"closing needs late end", "Closing", shifttime.Range{Start: 900, End: 1700, HasEnd: true}, false},
		{"closing with late end", "Closing", shifttime.Range{Start: 1200, End: 2000, HasEnd: true}, true},
		{"closing at the boundary", "Closing", shifttime.Range{Start: 1000, End: 1800, HasEnd: true}, true},
		{"closing with unknown end", "Closing", shifttime.Range{Start: 1600}, true},
		{"morning due vs afternoon start", "9:00 AM", shifttime.Range{Start: 1400, End: 2200, HasEnd: true}, false},
		{"morning due vs morning start", "9:00 AM", shifttime.Range{Start: 700, End: 1500, HasEnd: true}, true},
		{"due at exact start", "9:00 AM", shifttime.Range{Start: 900, End: 1700, HasEnd: true}, false},
		{"late clock never constrains", "10:30 PM", shifttime.Range{Start: 2300, End: 3000, HasEnd: true}, true},
		{"no digits is permissive", "Store Open", shifttime.Range{Start: 1600, End: 2400, HasEnd: true}, true},
		{"spillover window meets morning due", "9:00 AM", shifttime.Range{Start: 0, End: 600, HasEnd: true}, true},
	}
	for _, c := range cases {
		if got := compatibleWithDue(c.due, c.w); got != c.want {
			t.Errorf("%s: compatibleWithDue(%q, %+v) = %v, want %v", c.name, c.due, c.w, got, c.want)
		}
	}
}
