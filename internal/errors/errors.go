// Package errors is the error taxonomy shared by every layer of bizzler.
//
// Errors are built with NewError/WithError, decorated with a user facing hint
// and marked with one of the sentinel errors below. Callers test the category
// with errors.Is (or the IsX helpers) and the HTTP layer maps the category to a
// status code.
package errors

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidUnit         = errors.New("invalid duration unit")
	ErrUnsupportedUnit     = errors.New("unsupported duration unit")
	ErrInvalidFormat       = errors.New("invalid duration format")
	ErrMissingPlanDuration = errors.New("missing plan duration")
	ErrMissingAmount       = errors.New("missing amount")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrNotConfigured       = errors.New("not configured")
	ErrDatabase            = errors.New("database error")
)

// ErrorBuilder accumulates context on an error before it is marked.
type ErrorBuilder struct {
	err error
}

func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.NewWithDepth(1, msg)}
}

func NewErrorf(format string, args ...interface{}) *ErrorBuilder {
	return &ErrorBuilder{err: errors.NewWithDepthf(1, format, args...)}
}

func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err = errors.WithHint(b.err, hint)
	return b
}

func (b *ErrorBuilder) WithHintf(format string, args ...interface{}) *ErrorBuilder {
	b.err = errors.WithHintf(b.err, format, args...)
	return b
}

func (b *ErrorBuilder) WithMessage(msg string) *ErrorBuilder {
	b.err = errors.WithMessage(b.err, msg)
	return b
}

// Mark tags the error with a category. It can be called on an already marked
// error to add a second category.
func (b *ErrorBuilder) Mark(reference error) error {
	return errors.Mark(b.err, reference)
}

// ValidationError lists the request fields that were missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Missing fields: %s", strings.Join(e.Fields, ", "))
}

// NewValidationError returns an ErrValidation carrying the offending fields.
func NewValidationError(fields ...string) error {
	return errors.Mark(&ValidationError{Fields: fields}, ErrValidation)
}

// ConflictError is returned on uniqueness violations. Existing holds the
// entity that already occupies the unique slot, when the caller can use it.
type ConflictError struct {
	Message  string
	Existing interface{}
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(msg string, existing interface{}) error {
	return errors.Mark(&ConflictError{Message: msg, Existing: existing}, ErrConflict)
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }

// Hint returns the outermost user facing hint attached to err, or "". Hints
// are listed innermost first, so a caller that re-wraps a repository error
// overrides the repository's generic hint.
func Hint(err error) string {
	hints := errors.GetAllHints(err)
	if len(hints) == 0 {
		return ""
	}
	return hints[len(hints)-1]
}
