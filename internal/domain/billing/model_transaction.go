package billing

import (
	"time"

	"github.com/manmeet1049/bizzler/internal/domain/plans"
	"github.com/shopspring/decimal"
)

// Transaction is the billing record of one subscription period.
type Transaction struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	PlanID       *uint           `gorm:"index" json:"plan"`
	Plan         *plans.Plan     `gorm:"constraint:OnDelete:SET NULL;" json:"-"`
	SubscriberID uint            `gorm:"not null;index" json:"subscriber"`
	Amount       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	ConductedBy  uint            `gorm:"not null" json:"conducted_by"`
	BusinessID   uint            `gorm:"not null;index" json:"business"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (Transaction) TableName() string {
	return "subscription_transactions"
}
