package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedDate marks a day string that does not parse as DD.MM.YYYY.
var ErrMalformedDate = errors.New("malformed date")

// DateKey is a calendar day with no time component. Ordering is numeric by
// year, month, day; the original text form (padding, 2-digit years) does not
// participate in comparisons.
type DateKey struct {
	Year  int
	Month int
	Day   int
}

// NewDateKey builds a DateKey from numeric components.
func NewDateKey(year, month, day int) DateKey {
	return DateKey{Year: year, Month: month, Day: day}
}

// ParseDate parses a DD.MM.YYYY day string. Two-digit years are accepted and
// mapped into 2000-2099, matching the data the logging flow produces.
func ParseDate(s string) (DateKey, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return DateKey{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return DateKey{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
		}
		nums[i] = n
	}
	day, month, year := nums[0], nums[1], nums[2]
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return DateKey{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return DateKey{Year: year, Month: month, Day: day}, nil
}

// String renders the canonical zero-padded form DD.MM.YYYY.
func (d DateKey) String() string {
	return fmt.Sprintf("%02d.%02d.%04d", d.Day, d.Month, d.Year)
}

// Compare returns -1, 0 or 1 ordering a against b chronologically.
func (d DateKey) Compare(o DateKey) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(d.Month, o.Month)
	default:
		return cmpInt(d.Day, o.Day)
	}
}

// Before reports whether d is chronologically earlier than o.
func (d DateKey) Before(o DateKey) bool { return d.Compare(o) < 0 }

// IsZero reports whether d is the zero value.
func (d DateKey) IsZero() bool { return d == DateKey{} }

// Time returns the day at midnight UTC.
func (d DateKey) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// DateKeyFromTime truncates t to its calendar day in t's location.
func DateKeyFromTime(t time.Time) DateKey {
	return DateKey{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// DaysBetween returns the whole-day difference b-a using midnight-to-midnight
// arithmetic, so time-of-day noise can never shift window membership.
func DaysBetween(a, b DateKey) int {
	return int(b.Time().Sub(a.Time()).Hours() / 24)
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
