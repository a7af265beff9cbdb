package types

import (
	"strings"
	"time"

	ierr "github.com/manmeet1049/bizzler/internal/errors"
)

// DateLayout is the only date format exchanged with clients.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHintf("Invalid %s, expected format YYYY-MM-DD.", field).
			Mark(ierr.ErrInvalidDate)
	}
	return t, nil
}

// DateOnly drops the clock part of t, keeping its calendar day in t's location,
// and returns it as UTC midnight.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Clock returns the current time; services take one so tests can pin "today".
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now()
}

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
