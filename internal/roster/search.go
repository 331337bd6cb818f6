package roster

import "github.com/sahilm/fuzzy"

// rowSource adapts a row slice to the fuzzy matcher.
type rowSource []StaffRow

func (s rowSource) String(i int) string { return s[i].Name + " " + s[i].Role }
func (s rowSource) Len() int            { return len(s) }

// SearchRows fuzzy-matches a query against row names and roles, returning
// matching rows ranked best-first. An empty query returns all rows in
// schedule order.
func SearchRows(rows []StaffRow, query string) []StaffRow {
	if query == "" {
		return rows
	}
	matches := fuzzy.FindFrom(query, rowSource(rows))
	out := make([]StaffRow, 0, len(matches))
	for _, m := range matches {
		out = append(out, rows[m.Index])
	}
	return out
}
