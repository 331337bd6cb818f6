package shifttime

// Heuristics holds the tunable knobs for shift-time interpretation.
//
// The defaults are tuned to a retail-grocery shift pattern: schedules are
// hand-typed, AM/PM suffixes are frequently omitted, and the same raw hour
// means different things depending on who works it (a "4" for a stocker is
// 4 AM, a "4" for a closer is 4 PM). These values can be overridden through
// .shiftboard/config.yaml rather than edited here.
type Heuristics struct {
	// OffWords are matched as substrings of the cleaned cell text. Any hit
	// means the person is not working that day.
	OffWords []string `yaml:"off_words"`

	// OffMarkers are matched by exact equality only; single characters like
	// "O" or "X" would otherwise match inside ordinary time strings.
	OffMarkers []string `yaml:"off_markers"`

	// EarlyRoleKeywords resolve the ambiguous 4-6 o'clock band. Roles that
	// contain one of these start early, so a bare "5" is read as 5 AM.
	EarlyRoleKeywords []string `yaml:"early_role_keywords"`

	// Category boundaries, expressed as 24-hour start hours (inclusive).
	OpenStart      int `yaml:"open_start"`
	OpenEnd        int `yaml:"open_end"`
	CloseStart     int `yaml:"close_start"`
	CloseEnd       int `yaml:"close_end"`
	OvernightStart int `yaml:"overnight_start"`
	OvernightEnd   int `yaml:"overnight_end"`
}

// DefaultHeuristics returns the retail-grocery tuning used when no
// configuration file overrides it.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		OffWords:   []string{"OFF", "VAC", "SICK", "LOAN", "PTO"},
		OffMarkers: []string{"O", "0", "X", "-"},
		EarlyRoleKeywords: []string{
			"stock", "flow", "baker", "open", "truck", "merch",
			"receiving", "lead", "supervisor", "manager", "director",
		},
		OpenStart:      4,
		OpenEnd:        6,
		CloseStart:     16,
		CloseEnd:       19,
		OvernightStart: 20,
		OvernightEnd:   3,
	}
}

// Normalize fills any zeroed boundary with its default so a partial YAML
// override cannot collapse every shift into one category.
func (h Heuristics) Normalize() Heuristics {
	def := DefaultHeuristics()
	if len(h.OffWords) == 0 {
		h.OffWords = def.OffWords
	}
	if len(h.OffMarkers) == 0 {
		h.OffMarkers = def.OffMarkers
	}
	if len(h.EarlyRoleKeywords) == 0 {
		h.EarlyRoleKeywords = def.EarlyRoleKeywords
	}
	if h.OpenStart == 0 && h.OpenEnd == 0 {
		h.OpenStart, h.OpenEnd = def.OpenStart, def.OpenEnd
	}
	if h.CloseStart == 0 && h.CloseEnd == 0 {
		h.CloseStart, h.CloseEnd = def.CloseStart, def.CloseEnd
	}
	if h.OvernightStart == 0 {
		h.OvernightStart = def.OvernightStart
	}
	if h.OvernightEnd == 0 {
		h.OvernightEnd = def.OvernightEnd
	}
	return h
}
