// Package normalize turns entered and reference values into the canonical
// form used for comparison.
package normalize

import (
	"strings"
	"unicode"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/cell"
	"golang.org/x/text/unicode/norm"
)

const bengaliVirama = '্'

// bengaliVowelSigns are the dependent vowel signs a virama can never follow.
var bengaliVowelSigns = map[rune]bool{
	'া': true,
	'ি': true,
	'ী': true,
	'ু': true,
	'ূ': true,
	'ৃ': true,
	'ৄ': true,
	'ে': true,
	'ৈ': true,
	'ো': true,
	'ৌ': true,
	'ৗ': true, // au length mark, composes with e
}

// Text normalizes a cell. Absent cells normalize to "".
func Text(v cell.Value) string {
	if !v.Valid {
		return ""
	}
	return String(v.Text)
}

// String composes s to NFC, folds Devanagari into Bengali, drops stray
// viramas and collapses whitespace. It does not change case.
// String(String(s)) == String(s) for every s.
func String(s string) string {
	s = norm.NFC.String(s)
	s = dandaReplacer.Replace(s)
	s = transliterate(s)
	s = collapseSpace(s)
	s = repairVirama(s)
	// dropping a virama can leave a decomposable pair next to each other
	s = norm.NFC.String(s)
	return collapseSpace(s)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// repairVirama removes a virama that follows a dependent vowel sign or that
// comes before any visible character. The check is against the last rune
// kept, so a run of stray viramas goes in one pass.
func repairVirama(s string) string {
	if !strings.ContainsRune(s, bengaliVirama) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := rune(-1)
	for _, r := range s {
		if r == bengaliVirama && (last < 0 || bengaliVowelSigns[last]) {
			continue
		}
		b.WriteRune(r)
		if last >= 0 || !unicode.IsSpace(r) {
			last = r
		}
	}
	return b.String()
}
