package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fold lowercases value for case-insensitive comparisons.
// A fresh caser is built per call because cases.Caser is not safe for
// concurrent use.
func Fold(value string) string {
	return cases.Lower(language.Und).String(value)
}

// ContainsFold reports whether needle occurs in haystack ignoring case.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
