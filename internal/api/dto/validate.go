package dto

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	ierr "github.com/manmeet1049/bizzler/internal/errors"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// Column limits: durations are stored in a size 10 string and money in
// numeric(10,2).
const maxDurationCount = 99999

var maxAmount = decimal.RequireFromString("99999999.99")

// amountInRange reports whether d fits a money column once rounded to cents.
func amountInRange(d decimal.Decimal) bool {
	return !d.IsNegative() && d.Round(2).LessThanOrEqual(maxAmount)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// ParseID reads a positive numeric path parameter.
func ParseID(field, raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, ierr.WithError(ierr.NewValidationError(field)).
			WithHintf("Invalid %s.", field).
			Mark(ierr.ErrValidation)
	}
	return uint(id), nil
}

// BindError wraps a JSON binding failure as a validation error.
func BindError(err error) error {
	return ierr.WithError(err).
		WithHint("Invalid request format.").
		Mark(ierr.ErrValidation)
}
