package leave

import (
	"sort"
	"strings"
)

// =============================================================================
// IDENTITY MATCHING
// =============================================================================
// Login identifies an employee by full name. Matching is case-insensitive and
// token-order-insensitive: "Mario Rossi", "ROSSI mario" and "mario  Rossi"
// all resolve to the same roster row. Identity resolution is a pure function
// over the roster; no ambient session state is consulted here.

// NormalizeName lowercases a full name, collapses whitespace and sorts its
// tokens, producing a canonical key for comparison.
func NormalizeName(name string) string {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// MatchName reports whether two names identify the same person under the
// canonical form.
func MatchName(a, b string) bool {
	na := NormalizeName(a)
	return na != "" && na == NormalizeName(b)
}

// FindEmployee resolves a name against the roster. Returns ErrUnknownEmployee
// when no row matches.
func FindEmployee(roster []Employee, name string) (Employee, error) {
	key := NormalizeName(name)
	if key == "" {
		return Employee{}, &ValidationError{Field: "name", Message: "required"}
	}
	for _, emp := range roster {
		if NormalizeName(emp.Name) == key {
			return emp, nil
		}
	}
	return Employee{}, ErrUnknownEmployee
}
