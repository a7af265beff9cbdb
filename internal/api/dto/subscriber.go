package dto

import (
	"strings"

	"github.com/manmeet1049/bizzler/internal/domain/subscribers"
	ierr "github.com/manmeet1049/bizzler/internal/errors"
)

type CreateSubscriberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (r *CreateSubscriberRequest) Validate() error {
	var fields []string
	if isBlank(r.Name) {
		fields = append(fields, "name")
	}
	if !isEmail(r.Email) {
		fields = append(fields, "email")
	}
	if len(strings.TrimSpace(r.Phone)) > 15 {
		fields = append(fields, "phone")
	}
	if len(fields) > 0 {
		return ierr.NewValidationError(fields...)
	}
	return nil
}

// PhonePtr returns the trimmed phone, or nil when none was given.
func (r *CreateSubscriberRequest) PhonePtr() *string {
	p := strings.TrimSpace(r.Phone)
	if p == "" {
		return nil
	}
	return &p
}

type SubscriberResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	Business uint    `json:"business"`
}

func NewSubscriberResponse(s *subscribers.Subscriber) *SubscriberResponse {
	if s == nil {
		return nil
	}
	return &SubscriberResponse{
		ID:       s.ID,
		Name:     s.Name,
		Email:    s.Email,
		Phone:    s.Phone,
		Business: s.BusinessID,
	}
}

type SubscriberDetailResponse struct {
	*SubscriberResponse
	ActiveSubscription *SubscriptionResponse `json:"active_subscription"`
}
