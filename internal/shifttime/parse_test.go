package shifttime

import "testing"

func TestParseOffVocabulary(t *testing.T) {
	p := NewParser(DefaultHeuristics())
	cells := []string{"", "OFF", "off", "X", "x", "-", "VAC", "Sick Day", "Loaned Out", "PTO", "O"}
	for _, cell := range cells {
		got := p.Parse(cell, "Stock", false)
		if got.Category != CategoryOff {
			t.Fatalf("Parse(%q) category = %s, want OFF", cell, got.Category)
		}
	}
}

func TestParseExplicitSuffix(t *testing.T) {
	p := NewParser(DefaultHeuristics())
	cases := []struct {
		cell  string
		hour  int
		label string
	}{
		{"9:00AM", 9, "9:00AM"},
		{"9:00 am", 9, "9:00AM"},
		{"4:30PM", 16, "4:30PM"},
		{"4:30p", 16, "4:30PM"},
		{"12PM", 12, "12:00PM"},
		{"12AM", 0, "12:00AM"},
		{"10:15PM", 22, "10:15PM"},
	}
	for _, tc := range cases {
		got := p.Parse(tc.cell, "Produce", false)
		if got.StartHour != tc.hour {
			t.Fatalf("Parse(%q) hour = %d, want %d", tc.cell, got.StartHour, tc.hour)
		}
		if got.Label != tc.label {
			t.Fatalf("Parse(%q) label = %q, want %q", tc.cell, got.Label, tc.label)
		}
	}
}

func TestParseInfersMissingSuffix(t *testing.T) {
	p := NewParser(DefaultHeuristics())
	cases := []struct {
		cell string
		role string
		hour int
	}{
		{"1:00", "Produce", 13},  // 1-3 reads PM
		{"3", "Produce", 15},
		{"5:00", "Stock Lead", 5}, // early role wins the ambiguous band
		{"5:00", "Cashier", 17},
		{"4", "Overnight Flow", 4},
		{"7:30", "Cashier", 7}, // 7-11 reads AM
		{"11", "Produce", 11},
		{"12:00", "Produce", 12}, // noon
		{"14:00", "Produce", 14}, // already 24-hour
	}
	for _, tc := range cases {
		got := p.Parse(tc.cell, tc.role, false)
		if got.StartHour != tc.hour {
			t.Fatalf("Parse(%q, role %q) hour = %d, want %d", tc.cell, tc.role, got.StartHour, tc.hour)
		}
	}
}

func TestParseCategories(t *testing.T) {
	p := NewParser(DefaultHeuristics())
	cases := []struct {
		cell     string
		role     string
		category Category
	}{
		{"4:00AM", "Stock", CategoryOpen},
		{"6AM", "Stock", CategoryOpen},
		{"9:00AM", "Produce", CategoryMid},
		{"3:00PM", "Produce", CategoryMid},
		{"4:00PM", "Cashier", CategoryClose},
		{"7:00PM", "Cashier", CategoryClose},
		{"10:00PM", "Overnight", CategoryOvernight},
		{"12AM", "Overnight", CategoryOvernight},
		{"2:00AM", "Overnight", CategoryOvernight},
	}
	for _, tc := range cases {
		got := p.Parse(tc.cell, tc.role, false)
		if got.Category != tc.category {
			t.Fatalf("Parse(%q) category = %s, want %s", tc.cell, got.Category, tc.category)
		}
	}
}

func TestParseSpillover(t *testing.T) {
	p := NewParser(DefaultHeuristics())

	got := p.Parse("10:00PM-6:00AM", "Overnight", true)
	if got.Category != CategoryOvernight {
		t.Fatalf("overnight spillover category = %s, want Overnight", got.Category)
	}
	if got.Label != "10:00PM (Prev)" {
		t.Fatalf("spillover label = %q", got.Label)
	}

	// A day shift on the previous day does not spill into today.
	got = p.Parse("9:00AM-5:00PM", "Produce", true)
	if got.Category != CategoryOff {
		t.Fatalf("day-shift spillover category = %s, want OFF", got.Category)
	}
}

func TestParseMalformedDegradesToOff(t *testing.T) {
	p := NewParser(DefaultHeuristics())
	for _, cell := range []string{"???", "tbd", "n/a", "call in"} {
		got := p.Parse(cell, "Produce", false)
		if got.Working() {
			t.Fatalf("Parse(%q) should not be working", cell)
		}
	}
}

func TestParseRange(t *testing.T) {
	p := NewParser(DefaultHeuristics())
	cases := []struct {
		cell   string
		role   string
		start  int
		end    int
		hasEnd bool
	}{
		{"9:00AM-5:00PM", "Produce", 900, 1700, true},
		{"9-5", "Produce", 900, 1700, true},      // naive end bumped past start
		{"5:30-1:30", "Stock Lead", 530, 1330, true},
		{"10:00PM-6:00AM", "Overnight", 2200, 3000, true}, // crosses midnight
		{"4-12:30", "Cashier", 1600, 2430, true},
		{"9:00AM", "Produce", 900, 0, false},
	}
	for _, tc := range cases {
		got, ok := p.ParseRange(tc.cell, tc.role)
		if !ok {
			t.Fatalf("ParseRange(%q) not ok", tc.cell)
		}
		if got.Start != tc.start || got.End != tc.end || got.HasEnd != tc.hasEnd {
			t.Fatalf("ParseRange(%q) = %+v, want start %d end %d hasEnd %v",
				tc.cell, got, tc.start, tc.end, tc.hasEnd)
		}
	}

	if _, ok := p.ParseRange("OFF", "Produce"); ok {
		t.Fatal("ParseRange(OFF) should not be ok")
	}
}
