package dto

import (
	"time"

	"github.com/manmeet1049/bizzler/internal/domain/billing"
)

type TransactionResponse struct {
	ID          uint      `json:"id"`
	Plan        *uint     `json:"plan"`
	Subscriber  uint      `json:"subscriber"`
	Amount      string    `json:"amount"`
	ConductedBy uint      `json:"conducted_by"`
	Business    uint      `json:"business"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewTransactionResponse(t *billing.Transaction) *TransactionResponse {
	if t == nil {
		return nil
	}
	return &TransactionResponse{
		ID:          t.ID,
		Plan:        t.PlanID,
		Subscriber:  t.SubscriberID,
		Amount:      t.Amount.StringFixed(2),
		ConductedBy: t.ConductedBy,
		Business:    t.BusinessID,
		CreatedAt:   t.CreatedAt,
	}
}
