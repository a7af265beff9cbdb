package subscriptions

import (
	"time"

	"github.com/manmeet1049/bizzler/internal/domain/plans"
)

// Subscription is one plan period held by a subscriber. PlanID is nil for
// ad-hoc periods and after the plan is deleted.
type Subscription struct {
	ID            uint        `gorm:"primaryKey"`
	SubscriberID  uint        `gorm:"not null;index:idx_subscriptions_subscriber_active,priority:1"`
	PlanID        *uint       `gorm:"index"`
	Plan          *plans.Plan `gorm:"constraint:OnDelete:SET NULL;"`
	PlanStartDate time.Time   `gorm:"type:date;not null"`
	PlanEndDate   time.Time   `gorm:"type:date;not null"`
	TransactionID *uint
	Active        bool `gorm:"not null;default:true;index:idx_subscriptions_subscriber_active,priority:2"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Subscription) TableName() string {
	return "subscriptions"
}
