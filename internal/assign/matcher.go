package assign

import "strings"

// NamesMatch fuzzy-compares a preference-list name against a roster name.
//
// The task catalog stores names as "Last, First" while schedules often
// carry "First Last" or a bare first name, so after normalizing to
// lowercase letters the two match if either contains the other. Very
// short names must match exactly, otherwise "Jo" would claim every
// "Jon", "Joan" and "Josephine" on the roster. The containment rule is a
// documented approximation: two staff sharing a long prefix can still
// false-match.
func NamesMatch(a, b string) bool {
	na, nb := normalizeName(a), normalizeName(b)
	if na == "" || nb == "" {
		return false
	}
	if len(na) < 3 || len(nb) < 3 {
		return na == nb
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

func normalizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
