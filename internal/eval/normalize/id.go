package normalize

import (
	"strings"
	"unicode"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/cell"
)

// ID reduces a national id number to its digits. Anything after the first
// "." is dropped first, which undoes ids that were read as floats.
func ID(v cell.Value) string {
	if !v.Valid {
		return ""
	}

	s := v.Text
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// ImageID derives the image identifier from a stored image path: the base
// name with a trailing ".jpg" removed.
func ImageID(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		path = path[i+1:]
	}
	return strings.TrimSuffix(path, ".jpg")
}
