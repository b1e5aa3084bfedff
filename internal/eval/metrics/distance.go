package metrics

import (
	"strings"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/cell"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/normalize"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

var unitCosts = levenshtein.Options{
	InsCost: 1,
	DelCost: 1,
	SubCost: 1,
	Matches: levenshtein.IdenticalRunes,
}

// EditDistance is the code point Levenshtein distance between the
// normalized, lower-cased forms of a and b. Review tools show it next to
// the scores; it never feeds the evaluation table.
func EditDistance(a, b string) int {
	ar := []rune(strings.ToLower(normalize.String(a)))
	br := []rune(strings.ToLower(normalize.String(b)))
	return levenshtein.DistanceForStrings(ar, br, unitCosts)
}

// FieldDistance is EditDistance over cells; absent cells compare as "".
func FieldDistance(a, b cell.Value) int {
	return EditDistance(a.String(), b.String())
}
