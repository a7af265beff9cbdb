// Package duration converts plan durations between the stored "<count> <unit>"
// text and calendar offsets.
//
// Units are D (days), M (30 days) and Y (365 days). Months and years are fixed
// day counts, not calendar aware.
package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	ierr "github.com/manmeet1049/bizzler/internal/errors"
)

type Unit string

const (
	Day   Unit = "D"
	Month Unit = "M"
	Year  Unit = "Y"
)

const (
	daysPerMonth = 30
	daysPerYear  = 365
)

var longForms = map[string]Unit{
	"DAILY":   Day,
	"MONTHLY": Month,
	"YEARLY":  Year,
}

// The unit group accepts any letter so that a wrong letter is reported as an
// unsupported unit rather than a malformed string.
var specPattern = regexp.MustCompile(`^\s*(\d+)\s*([A-Za-z])\s*$`)

// NormalizeUnit maps one of DAILY/MONTHLY/YEARLY/D/M/Y (any case) to its code.
func NormalizeUnit(token string) (Unit, error) {
	t := strings.ToUpper(strings.TrimSpace(token))
	if u, ok := longForms[t]; ok {
		return u, nil
	}
	switch Unit(t) {
	case Day, Month, Year:
		return Unit(t), nil
	}
	return "", ierr.NewErrorf("invalid duration unit %q", token).
		WithHint("Invalid type, choices are: MONTHLY or M, YEARLY or Y, DAILY or D.").
		Mark(ierr.ErrInvalidUnit)
}

// Format renders count and unit as "<count> <unit>". Long unit names become
// their single letter code; anything unrecognised is written unchanged.
func Format(count int, unit string) string {
	if u, err := NormalizeUnit(unit); err == nil {
		unit = string(u)
	}
	return fmt.Sprintf("%d %s", count, unit)
}

// Offset is a whole number of days to add to a date.
type Offset struct {
	days int
}

// Of returns the offset for count units.
func Of(count int, unit Unit) (Offset, error) {
	switch unit {
	case Day:
		return Offset{days: count}, nil
	case Month:
		return Offset{days: count * daysPerMonth}, nil
	case Year:
		return Offset{days: count * daysPerYear}, nil
	}
	return Offset{}, ierr.NewErrorf("unsupported duration unit %q", unit).
		WithHint("Unsupported duration unit.").
		Mark(ierr.ErrUnsupportedUnit)
}

// Parse reads a stored duration such as "10 D", "2M" or "1 Y".
func Parse(spec string) (Offset, error) {
	m := specPattern.FindStringSubmatch(spec)
	if m == nil {
		return Offset{}, ierr.NewErrorf("invalid duration %q", spec).
			WithHint("Invalid duration format.").
			Mark(ierr.ErrInvalidFormat)
	}
	count, err := strconv.Atoi(m[1])
	if err != nil {
		return Offset{}, ierr.WithError(err).
			WithHint("Invalid duration format.").
			Mark(ierr.ErrInvalidFormat)
	}
	return Of(count, Unit(m[2]))
}

func (o Offset) Days() int {
	return o.days
}

// AddTo returns date moved forward by the offset.
func (o Offset) AddTo(date time.Time) time.Time {
	return date.AddDate(0, 0, o.days)
}
