package repository

import (
	"github.com/cockroachdb/errors"
	ierr "github.com/manmeet1049/bizzler/internal/errors"
	"gorm.io/gorm"
)

// translate maps gorm errors onto the error taxonomy. entity is used in hints.
func translate(err error, entity string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ierr.WithError(err).
			WithHintf("%s not found.", entity).
			Mark(ierr.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ierr.WithError(err).
			WithHintf("%s already exists.", entity).
			Mark(ierr.ErrConflict)
	default:
		return ierr.WithError(err).
			WithHintf("Failed to access %s.", entity).
			Mark(ierr.ErrDatabase)
	}
}
