package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/cell"
)

var (
	isoDate     = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
	dashRuns    = regexp.MustCompile(`-+`)
	dateSpacers = strings.NewReplacer("/", "-", " ", "-")
)

// dateLayout is one accepted digit layout once separators are stripped.
// Month and day take one or two digits, tried the way strptime tries them.
type dateLayout struct {
	pattern          *regexp.Regexp
	year, month, day int // submatch indexes
}

var dateLayouts = []dateLayout{
	{
		pattern: regexp.MustCompile(`^([0-9]{4})(1[0-2]|0[1-9]|[1-9])(3[01]|[12][0-9]|0[1-9]|[1-9])$`),
		year:    1, month: 2, day: 3,
	},
	{
		pattern: regexp.MustCompile(`^(3[01]|[12][0-9]|0[1-9]|[1-9])(1[0-2]|0[1-9]|[1-9])([0-9]{4})$`),
		year:    3, month: 2, day: 1,
	},
}

// Date canonicalizes a date of birth to YYYY-MM-DD. Values that parse as
// neither year-month-day nor day-month-year come back trimmed but otherwise
// untouched.
func Date(v cell.Value) string {
	if !v.Valid {
		return ""
	}

	s := strings.TrimSpace(v.Text)
	if isoDate.MatchString(s) {
		return s
	}

	compact := dateSpacers.Replace(s)
	compact = strings.Trim(dashRuns.ReplaceAllString(compact, "-"), "-")
	compact = strings.ReplaceAll(compact, "-", "")

	for _, layout := range dateLayouts {
		if d, ok := layout.parse(compact); ok {
			return d
		}
	}
	return s
}

func (l dateLayout) parse(s string) (string, bool) {
	m := l.pattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	year, _ := strconv.Atoi(m[l.year])
	month, _ := strconv.Atoi(m[l.month])
	day, _ := strconv.Atoi(m[l.day])
	if year < 1 {
		return "", false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}
