// Package shifttime turns the free-text shift cells of a weekly schedule
// into normalized 24-hour starts, shift categories and display labels.
//
// Schedule cells arrive in whatever shape a manager typed or an OCR pass
// produced: "5", "9:30AM", "4-12:30", "10p-6a", "OFF", "Loaned Out". The
// parser never returns an error for malformed input; anything it cannot
// read degrades to CategoryOff so one bad cell can never crash a
// distribution run.
package shifttime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Category is the coarse bucket a shift start falls into.
type Category string

const (
	CategoryOff       Category = "OFF"
	CategoryOpen      Category = "Open"
	CategoryMid       Category = "Mid"
	CategoryClose     Category = "Close"
	CategoryOvernight Category = "Overnight"
)

// Categories lists the working buckets in distribution order. CategoryOff
// is deliberately absent: off staff never receive shift-based tasks.
var Categories = []Category{CategoryOpen, CategoryMid, CategoryClose, CategoryOvernight}

// Shift is the parsed view of a single schedule cell.
type Shift struct {
	// StartHour is the resolved 24-hour start (0-23). 24 means not working.
	StartHour int
	// Label is the human form shown on worklists, e.g. "9:30AM" or
	// "10:00PM (Prev)" for an overnight spillover.
	Label string
	// Category is the coarse bucket for shift-based task distribution.
	Category Category
}

// Working reports whether the cell represents someone on the clock.
func (s Shift) Working() bool { return s.Category != CategoryOff }

// Range is a parsed "start-end" shift window in HHMM form, e.g. 530 or
// 1300. End is normalized to sort after Start; an overnight 2200-0600
// shift yields Start 2200, End 3000.
type Range struct {
	Start  int
	End    int
	HasEnd bool
}

// clockPattern finds the first hour, optional minutes and optional AM/PM
// suffix anywhere in a cell. "4:30p lane 2" parses the same as "4:30PM".
var clockPattern = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*(AM|PM|A|P)?`)

// Parser applies one Heuristics tuning to schedule cells.
type Parser struct {
	h Heuristics
}

// NewParser builds a Parser, filling any missing heuristic values with the
// retail defaults.
func NewParser(h Heuristics) *Parser {
	return &Parser{h: h.Normalize()}
}

// Parse resolves a raw schedule cell for the given role.
//
// spillover marks a cell read from the previous day: only an overnight
// start spills into today, anything else resolves to CategoryOff.
func (p *Parser) Parse(raw, role string, spillover bool) Shift {
	off := Shift{StartHour: 24, Label: "OFF", Category: CategoryOff}
	if p.isOff(raw) {
		return off
	}

	hour, minute, suffix, found := extractClock(raw)
	if !found {
		// No digit sequence at all. Keep the raw text as the label so the
		// schedule view still shows whatever was typed.
		return Shift{StartHour: 24, Label: raw, Category: CategoryOff}
	}

	h := p.resolveHour(hour, suffix, role)
	category := p.categorize(h)
	if spillover {
		if category != CategoryOvernight {
			return off
		}
		category = CategoryOvernight
	}

	label := formatClock(h, minute)
	if spillover {
		label += " (Prev)"
	}
	return Shift{StartHour: h, Label: label, Category: category}
}

// ParseRange extracts both ends of a dash-separated "start-end" cell.
// The start hour is inferred exactly as Parse does; the end keeps its
// naive hour and is bumped forward in 12-hour steps until it sorts after
// the start, which covers shifts crossing noon or midnight.
//
// ok is false when not even a start time could be read.
func (p *Parser) ParseRange(raw, role string) (Range, bool) {
	if p.isOff(raw) {
		return Range{}, false
	}

	startPart, endPart := splitRange(raw)
	hour, minute, suffix, found := extractClock(startPart)
	if !found {
		return Range{}, false
	}
	start := p.resolveHour(hour, suffix, role)*100 + minute

	r := Range{Start: start}
	if endPart == "" {
		return r, true
	}
	eh, em, es, efound := extractClock(endPart)
	if !efound {
		return r, true
	}
	end := 0
	if es != 0 {
		end = applySuffix(eh, es)*100 + em
	} else {
		end = eh*100 + em
	}
	for end <= r.Start {
		end += 1200
	}
	r.End = end
	r.HasEnd = true
	return r, true
}

// isOff reports whether the cleaned cell matches the off vocabulary.
func (p *Parser) isOff(raw string) bool {
	clean := cleanCell(raw)
	if clean == "" {
		return true
	}
	for _, m := range p.h.OffMarkers {
		if clean == m {
			return true
		}
	}
	for _, w := range p.h.OffWords {
		if strings.Contains(clean, w) {
			return true
		}
	}
	return false
}

// resolveHour converts a 12-hour-ish hour to 24-hour form, inferring the
// half of day when no suffix was written.
func (p *Parser) resolveHour(hour int, suffix byte, role string) int {
	if suffix != 0 {
		return applySuffix(hour, suffix)
	}
	switch {
	case hour >= 1 && hour <= 3:
		// Nobody starts a fresh shift at 1-3 AM; overnight crews started
		// the evening before.
		return hour + 12
	case hour >= 4 && hour <= 6:
		if p.earlyRole(role) {
			return hour
		}
		return hour + 12
	case hour == 12:
		return 12 // noon
	default:
		return hour // 7-11 reads as morning
	}
}

func (p *Parser) earlyRole(role string) bool {
	lower := strings.ToLower(role)
	for _, kw := range p.h.EarlyRoleKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (p *Parser) categorize(h int) Category {
	switch {
	case h >= p.h.OvernightStart || h <= p.h.OvernightEnd:
		return CategoryOvernight
	case h >= p.h.OpenStart && h <= p.h.OpenEnd:
		return CategoryOpen
	case h >= p.h.CloseStart && h <= p.h.CloseEnd:
		return CategoryClose
	default:
		return CategoryMid
	}
}

// applySuffix converts an explicit AM/PM hour to 24-hour form.
func applySuffix(hour int, suffix byte) int {
	if suffix == 'P' && hour >= 1 && hour <= 11 {
		return hour + 12
	}
	if suffix == 'A' && hour == 12 {
		return 0
	}
	return hour
}

// extractClock pulls the first clock-looking token out of a cell. suffix
// is 'A', 'P' or 0 when none was written.
func extractClock(raw string) (hour, minute int, suffix byte, found bool) {
	m := clockPattern.FindStringSubmatch(raw)
	if m == nil || m[1] == "" {
		return 0, 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if m[3] != "" {
		suffix = strings.ToUpper(m[3])[0]
	}
	if hour > 12 {
		// Already 24-hour; treat as explicit so no inference kicks in.
		if hour > 23 {
			return 0, 0, 0, false
		}
		if suffix == 0 {
			suffix = 'X'
		}
	}
	return hour, minute, suffix, true
}

// ClockValue reads a plain clock label like "9:00 AM" as an HHMM value.
// No role inference is applied: a bare hour is taken at face value. ok is
// false when the label carries no digits ("Store Open", "Closing").
func ClockValue(s string) (int, bool) {
	hour, minute, suffix, found := extractClock(s)
	if !found {
		return 0, false
	}
	if suffix != 0 {
		hour = applySuffix(hour, suffix)
	}
	return hour*100 + minute, true
}

// cleanCell strips everything except letters, digits and colons and
// uppercases the rest, mirroring how the off vocabulary is stored.
func cleanCell(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == ':' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// splitRange separates "start-end" on the first dash that has digits on
// both sides. Cells like "9:30AM" have no end part.
func splitRange(raw string) (start, end string) {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '-' {
			continue
		}
		left, right := raw[:i], raw[i+1:]
		if strings.ContainsAny(left, "0123456789") && strings.ContainsAny(right, "0123456789") {
			return left, right
		}
	}
	return raw, ""
}

// formatClock renders a 24-hour start as the 12-hour label used on cards.
func formatClock(h, minute int) string {
	display := h % 12
	if display == 0 {
		display = 12
	}
	meridiem := "AM"
	if h >= 12 && h < 24 {
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:%02d%s", display, minute, meridiem)
}
