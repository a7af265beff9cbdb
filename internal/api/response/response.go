// Package response writes the JSON envelope every endpoint answers with:
// {"status_code": int, "message": string, "data": any}.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/manmeet1049/bizzler/internal/errors"
)

type Envelope struct {
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
}

func JSON(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{StatusCode: status, Message: message, Data: data})
}

func OK(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusOK, message, data)
}

func Created(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusCreated, message, data)
}

// Error renders err with the status of its category. Conflicts carry the
// existing entity as data so clients can retry idempotently.
func Error(c *gin.Context, err error) {
	status := StatusFor(err)

	var data interface{}
	var cerr *ierr.ConflictError
	if ierr.As(err, &cerr) {
		data = cerr.Existing
	}

	JSON(c, status, Message(err, status), data)
}

func StatusFor(err error) int {
	switch {
	case ierr.Is(err, ierr.ErrValidation),
		ierr.Is(err, ierr.ErrInvalidDate),
		ierr.Is(err, ierr.ErrInvalidUnit),
		ierr.Is(err, ierr.ErrUnsupportedUnit),
		ierr.Is(err, ierr.ErrInvalidFormat),
		ierr.Is(err, ierr.ErrMissingPlanDuration),
		ierr.Is(err, ierr.ErrMissingAmount):
		return http.StatusBadRequest
	case ierr.Is(err, ierr.ErrUnauthorized):
		return http.StatusUnauthorized
	case ierr.Is(err, ierr.ErrPermissionDenied):
		return http.StatusForbidden
	case ierr.Is(err, ierr.ErrNotFound):
		return http.StatusNotFound
	case ierr.Is(err, ierr.ErrConflict):
		return http.StatusConflict
	case ierr.Is(err, ierr.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Message picks the client facing text. Validation errors list their fields,
// conflicts use their own message, everything else its hint. Internal errors
// never leak their cause.
func Message(err error, status int) string {
	var verr *ierr.ValidationError
	if ierr.As(err, &verr) && ierr.Hint(err) == "" {
		return verr.Error()
	}
	var cerr *ierr.ConflictError
	if ierr.As(err, &cerr) {
		return cerr.Message
	}
	if hint := ierr.Hint(err); hint != "" && status != http.StatusInternalServerError {
		return hint
	}
	if status == http.StatusInternalServerError {
		return "Internal server error."
	}
	return err.Error()
}
