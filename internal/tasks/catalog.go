package tasks

import "fmt"

// DefaultPinnedIDs lists rules that must always surface first during
// distribution and on the printed priorities block. Overridable through
// config.yaml.
var DefaultPinnedIDs = []int{110, 216, 215, 218, 213, 307, 309}

// DefaultCatalog returns the produce-department seed rules used when the
// store holds no catalog yet.
func DefaultCatalog() []Rule {
	return []Rule{
		// Skilled / priority work.
		{ID: 101, Code: "ON", Name: "Truck Unload & Sort", Type: TypeSkilled, Effort: 120, FallbackChain: []string{"Essix, Solomon", "Powell, Marlon", "Wood, William B"}},
		{ID: 112, Code: "EOD", Name: "Breakdown All Pallets in Cooler/BR", Type: TypeSkilled, Effort: 90, FallbackChain: []string{"Essix, Solomon", "Powell, Marlon", "Wood, William B"}},
		{ID: 102, Code: "ORD", Name: "DOB Orders (Daily Ordering)", Type: TypeSkilled, Effort: 60, DueTime: "9:00 AM", FallbackChain: []string{"Powell, Marlon", "Mullinix, James", "Nash, Deb A"}},
		{ID: 103, Code: "FP", Name: "Freshpak Production", Type: TypeSkilled, Effort: 120, FallbackChain: []string{"Cooley, Sandra K", "Nash, Deb A", "Cannon, Beth M"}},
		{ID: 110, Code: "SAFE", Name: "Department Safety Walk", Type: TypeSkilled, Effort: 15, FallbackChain: []string{"Cannon, Beth M", "Mullinix, James"}},
		{ID: 301, Code: "ORG", Name: "Organix Sorting & Cull", Type: TypeSkilled, Effort: 45, FallbackChain: []string{"Hernandez, Victoria", "Her, Heidi P", "Wood, William B"}},
		{ID: 309, Code: "CLS", Name: "Close Department (Secure & Clean)", Type: TypeSkilled, Effort: 60, DueTime: "Closing", FallbackChain: []string{"OHare, Barry", "Mullinix, James"}},
		{ID: 305, Code: "AUD", Name: "Inventory Audit / Counts", Type: TypeSkilled, Effort: 60, FallbackChain: []string{"Cannon, Beth M"}},

		// Sets.
		{ID: 201, Code: "T0", Name: "First Impressions Set (Lobby/Entrance)", Type: TypeGeneral, Effort: 30, FallbackChain: []string{"Wood, William B", "Hernandez, Victoria"}},
		{ID: 203, Code: "T2", Name: "Apple/Pear Set", Type: TypeGeneral, Effort: 45, FallbackChain: []string{"Wood, William B", "Cooley, Sandra K"}},
		{ID: 204, Code: "T1", Name: "Tropical & Citrus Set", Type: TypeGeneral, Effort: 45, FallbackChain: []string{"Hernandez, Victoria", "Nash, Deb A"}},
		{ID: 205, Code: "T3", Name: "Berries & Grapes Set", Type: TypeGeneral, Effort: 30, FallbackChain: []string{"Hernandez, Victoria", "Her, Heidi P"}},
		{ID: 206, Code: "T4", Name: "Melon Set", Type: TypeGeneral, Effort: 30, FallbackChain: []string{}},
		{ID: 207, Code: "T5", Name: "Hard Veg (Potatoes/Onions) Set", Type: TypeGeneral, Effort: 45, FallbackChain: []string{"Essix, Solomon"}},
		{ID: 208, Code: "T6", Name: "Wet Rack Set (Leafy Greens)", Type: TypeGeneral, Effort: 60, FallbackChain: []string{"Powell, Marlon"}},
		{ID: 209, Code: "T7", Name: "Tomato/Avocado Set", Type: TypeGeneral, Effort: 30, FallbackChain: []string{"Cooley, Sandra K"}},
		{ID: 213, Code: "WR", Name: "Wet Rack Deep Clean & Rotate", Type: TypeGeneral, Effort: 90, FallbackChain: []string{"Powell, Marlon", "Essix, Solomon"}},

		// General maintenance.
		{ID: 216, Code: "9AM", Name: "Floor Set By 9am (All Hands)", Type: TypeAllStaff, DueTime: "9:00 AM", Effort: 60, FallbackChain: []string{}},
		{ID: 215, Code: "FLR", Name: "Sweep & Mop Floor (Safety)", Type: TypeGeneral, Effort: 20, FallbackChain: []string{}},
		{ID: 218, Code: "QC", Name: "Quality Check / Culling Round", Type: TypeGeneral, Effort: 30, FallbackChain: []string{"Her, Heidi P", "OHare, Barry"}},
		{ID: 219, Code: "BAL", Name: "Bale Cardboard", Type: TypeGeneral, Effort: 15, FallbackChain: []string{}},
		{ID: 220, Code: "TR", Name: "Trash Run", Type: TypeGeneral, Effort: 15, FallbackChain: []string{}},
		{ID: 221, Code: "SUP", Name: "Refill Supplies (Towels/Bags)", Type: TypeGeneral, Effort: 15, FallbackChain: []string{}},
		{ID: 307, Code: "DEM", Name: "Sample/Demo Station Setup", Type: TypeGeneral, Effort: 60, FallbackChain: []string{"Nash, Deb A"}},
		{ID: 308, Code: "SGN", Name: "Signage & Price Check", Type: TypeGeneral, Effort: 30, FallbackChain: []string{"Cannon, Beth M"}},

		// Shift based.
		{ID: 212, Code: "RB", Name: "Roll Bag Refill", Type: TypeShiftBased, Effort: 15, FallbackChain: []string{}},
		{ID: 217, Code: "CON", Name: "Condition/Face Department", Type: TypeShiftBased, Effort: 30, FallbackChain: []string{}},
		{ID: 401, Code: "5PM", Name: "5PM Recovery", Type: TypeShiftBased, Effort: 45, FallbackChain: []string{}},
		{ID: 402, Code: "CRT", Name: "Clear Carts/L-Boats", Type: TypeShiftBased, Effort: 20, FallbackChain: []string{}},
		{ID: 403, Code: "COM", Name: "Compost Run", Type: TypeShiftBased, Effort: 15, FallbackChain: []string{}},
		{ID: 404, Code: "SAN", Name: "Sanitize High Touch Areas", Type: TypeShiftBased, Effort: 15, FallbackChain: []string{}},
		{ID: 405, Code: "WAT", Name: "Water Plants/Floral", Type: TypeShiftBased, Effort: 20, FallbackChain: []string{}},
	}
}

// Normalize applies the single defaulting step for a loaded catalog:
// missing efforts become DefaultEffort, missing frequencies become daily,
// and duplicate ids collapse last-write-wins. Imported and hand-edited
// catalogs have carried both problems historically; collapsing here keeps
// the engine free of per-field defensiveness.
//
// warn, if non-nil, receives a line per dropped duplicate.
func Normalize(catalog []Rule, warn func(string)) []Rule {
	byID := make(map[int]int, len(catalog))
	out := make([]Rule, 0, len(catalog))
	for _, r := range catalog {
		if r.Effort <= 0 {
			r.Effort = DefaultEffort
		}
		if r.Frequency == "" {
			r.Frequency = FrequencyDaily
		}
		if r.Type == "" {
			r.Type = TypeGeneral
		}
		if r.FallbackChain == nil {
			r.FallbackChain = []string{}
		}
		if idx, dup := byID[r.ID]; dup {
			if warn != nil {
				warn(fmt.Sprintf("catalog: duplicate rule id %d, keeping %q over %q", r.ID, r.Name, out[idx].Name))
			}
			out[idx] = r
			continue
		}
		byID[r.ID] = len(out)
		out = append(out, r)
	}
	return out
}
