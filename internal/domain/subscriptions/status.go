package subscriptions

import (
	"time"

	"github.com/manmeet1049/bizzler/internal/types"
)

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusExpired Status = "EXPIRED"
)

func (s *Subscription) Status() Status {
	if s.Active {
		return StatusActive
	}
	return StatusExpired
}

// IsElapsed reports whether the period ended before today.
func (s *Subscription) IsElapsed(today time.Time) bool {
	return types.DateOnly(s.PlanEndDate).Before(types.DateOnly(today))
}

// Expire applies the ACTIVE -> EXPIRED transition when the period has elapsed
// and reports whether it changed s. Expired rows never become active again.
// Both the lazy read path and the batch sweep go through here.
func Expire(s *Subscription, today time.Time) bool {
	if !s.Active || !s.IsElapsed(today) {
		return false
	}
	s.Active = false
	return true
}
