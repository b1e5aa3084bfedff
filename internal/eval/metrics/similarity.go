// Package metrics scores an entered value against its reference.
//
// All three scores are built on the matching-blocks similarity ratio:
// twice the length of the matched runs divided by the combined length of
// both sequences. Scores are percentages rounded to two decimals.
package metrics

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Ratio returns the matching-blocks similarity of two sequences, 1.0 when
// both are empty.
func Ratio(a, b []string) float64 {
	return difflib.NewMatcher(a, b).Ratio()
}

// chars splits s into one element per code point.
func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// words splits s on runs of whitespace.
func words(s string) []string {
	return strings.Fields(s)
}
