package core

import "strings"

// CleanString normalizes user-typed input: surrounding whitespace is
// trimmed, inner runs of whitespace collapse to a single space, and the
// result is optionally lowercased.
func CleanString(s string, lower ...bool) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}
