package metrics

import (
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/cell"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/normalize"
)

// FieldAccuracy is the similarity of a and b as a percentage. Two absent
// values are equal; one absent value scores 0. It is symmetric.
func FieldAccuracy(a, b cell.Value) float64 {
	if !a.Valid && !b.Valid {
		return 100
	}
	if !a.Valid || !b.Valid {
		return 0
	}

	as, bs := folded(a), folded(b)
	if as == bs {
		return 100
	}
	return Round2(symmetricRatio(chars(as), chars(bs)) * 100)
}

// symmetricRatio is the better of the two argument orders. Matching-blocks
// ratio depends on order when several equally long blocks compete.
func symmetricRatio(a, b []string) float64 {
	return max(Ratio(a, b), Ratio(b, a))
}

// CharacterErrorRate is the character-level dissimilarity of hyp against
// ref. An absent value on either side counts as a full miss.
func CharacterErrorRate(ref, hyp cell.Value) float64 {
	return errorRate(ref, hyp, chars)
}

// WordErrorRate is CharacterErrorRate over whitespace-separated words. A
// value without spaces is a single word, so it scores either 0 or 100.
func WordErrorRate(ref, hyp cell.Value) float64 {
	return errorRate(ref, hyp, words)
}

func errorRate(ref, hyp cell.Value, split func(string) []string) float64 {
	if !ref.Valid || !hyp.Valid {
		return 100
	}

	rs, hs := folded(ref), folded(hyp)
	if rs == "" {
		if hs == "" {
			return 0
		}
		return 100
	}
	return Round2((1 - Ratio(split(rs), split(hs))) * 100)
}

// folded is the normalized, lower-cased text metrics compare.
func folded(v cell.Value) string {
	return strings.ToLower(normalize.Text(v))
}

// Round2 rounds x to two decimals. Rounding works on the exact binary value
// of x, so 2.675 becomes 2.67.
func Round2(x float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return x
	}
	return r
}
