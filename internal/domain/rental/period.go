package rental

import (
	"regexp"
	"time"

	"github.com/rentdesk/backend/internal/domain/shared"
)

// PeriodLayout is the time layout of a billing period
const PeriodLayout = "2006-01"

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Period is a calendar month in YYYY-MM form. Periods compare and sort
// lexicographically, which matches chronological order for this format.
type Period string

// ParsePeriod validates s and returns it as a Period
func ParsePeriod(s string) (Period, error) {
	if !periodPattern.MatchString(s) {
		return "", shared.NewValidationError("period must be in YYYY-MM format, got %q", s)
	}
	return Period(s), nil
}

// IsValidPeriod reports whether s is a well-formed period
func IsValidPeriod(s string) bool {
	return periodPattern.MatchString(s)
}

// PeriodOf returns the period containing t
func PeriodOf(t time.Time) Period {
	return Period(t.Format(PeriodLayout))
}

// String returns the period as a string
func (p Period) String() string {
	return string(p)
}

// Before reports whether p is strictly earlier than other
func (p Period) Before(other Period) bool {
	return p < other
}

// Previous returns the month before p. It returns the zero Period if p is malformed.
func (p Period) Previous() Period {
	t, err := time.Parse(PeriodLayout, string(p))
	if err != nil {
		return ""
	}
	return PeriodOf(t.AddDate(0, -1, 0))
}
