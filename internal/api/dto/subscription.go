package dto

import (
	"time"

	"github.com/manmeet1049/bizzler/internal/domain/subscriptions"
	ierr "github.com/manmeet1049/bizzler/internal/errors"
	"github.com/manmeet1049/bizzler/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// SubscribeRequest starts a new subscription period. With Subscriber set it
// renews an existing subscriber; otherwise Name/Email/Phone sign a new one up.
// Without Plan the period is ad-hoc and dates and amount must all be given.
type SubscribeRequest struct {
	Plan       *uint            `json:"plan"`
	Subscriber *uint            `json:"subscriber"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone"`
	StartDate  string           `json:"start_date"`
	EndDate    string           `json:"end_date"`
	Amount     *decimal.Decimal `json:"amount"`
}

func (r *SubscribeRequest) IsSignup() bool {
	return r.Subscriber == nil
}

// MissingFields lists the required fields that are absent, in a stable order.
func (r *SubscribeRequest) MissingFields() []string {
	var fields []string
	if r.IsSignup() {
		if isBlank(r.Name) {
			fields = append(fields, "name")
		}
		if isBlank(r.Email) {
			fields = append(fields, "email")
		}
	}
	if r.Plan == nil {
		if isBlank(r.StartDate) {
			fields = append(fields, "start_date")
		}
		if isBlank(r.EndDate) {
			fields = append(fields, "end_date")
		}
		if r.Amount == nil {
			fields = append(fields, "amount")
		}
	}
	return fields
}

// Validate reports missing fields as a validation error. On the ad-hoc path a
// missing end date or amount is additionally marked as such so callers can
// tell which fallback was unavailable.
func (r *SubscribeRequest) Validate() error {
	missing := r.MissingFields()
	if len(missing) > 0 {
		err := ierr.NewValidationError(missing...)
		if r.Plan == nil && lo.Contains(missing, "end_date") {
			err = ierr.WithError(err).Mark(ierr.ErrMissingPlanDuration)
		}
		if r.Plan == nil && lo.Contains(missing, "amount") {
			err = ierr.WithError(err).Mark(ierr.ErrMissingAmount)
		}
		return err
	}
	if r.Amount != nil && !amountInRange(*r.Amount) {
		return ierr.NewValidationError("amount")
	}
	if r.IsSignup() {
		signup := r.SignupRequest()
		return signup.Validate()
	}
	return nil
}

func (r *SubscribeRequest) SignupRequest() CreateSubscriberRequest {
	return CreateSubscriberRequest{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

// Dates parses the explicit start and end dates; a nil result means not given.
func (r *SubscribeRequest) Dates() (start, end *time.Time, err error) {
	if !isBlank(r.StartDate) {
		d, err := types.ParseDate("start_date", r.StartDate)
		if err != nil {
			return nil, nil, err
		}
		start = &d
	}
	if !isBlank(r.EndDate) {
		d, err := types.ParseDate("end_date", r.EndDate)
		if err != nil {
			return nil, nil, err
		}
		end = &d
	}
	return start, end, nil
}

type SubscriptionResponse struct {
	ID            uint   `json:"id"`
	Subscriber    uint   `json:"subscriber"`
	Plan          *uint  `json:"plan"`
	PlanStartDate string `json:"plan_start_date"`
	PlanEndDate   string `json:"plan_end_date"`
	TransactionID *uint  `json:"transaction_id"`
	Active        bool   `json:"active"`
	Status        string `json:"status"`
}

func NewSubscriptionResponse(s *subscriptions.Subscription) *SubscriptionResponse {
	if s == nil {
		return nil
	}
	return &SubscriptionResponse{
		ID:            s.ID,
		Subscriber:    s.SubscriberID,
		Plan:          s.PlanID,
		PlanStartDate: types.FormatDate(s.PlanStartDate),
		PlanEndDate:   types.FormatDate(s.PlanEndDate),
		TransactionID: s.TransactionID,
		Active:        s.Active,
		Status:        string(s.Status()),
	}
}

type SubscribeResponse struct {
	Subscriber    *SubscriberResponse   `json:"subscriber"`
	Subscription  *SubscriptionResponse `json:"subscription"`
	TransactionID uint                  `json:"transaction_id"`
	Queued        bool                  `json:"queued"`
}
