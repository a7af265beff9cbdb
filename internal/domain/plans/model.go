package plans

import (
	"time"

	"github.com/manmeet1049/bizzler/internal/domain/duration"
	"github.com/shopspring/decimal"
)

type Plan struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	BusinessID uint            `gorm:"not null;uniqueIndex:idx_plans_business_name,priority:1" json:"business"`
	Name       string          `gorm:"size:50;not null;uniqueIndex:idx_plans_business_name,priority:2" json:"name"`
	Duration   string          `gorm:"size:10;not null" json:"duration"`
	Price      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	AddedBy    uint            `gorm:"not null" json:"added_by"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (Plan) TableName() string {
	return "subscription_plans"
}

// SetDuration stores count and unit in the "<count> <unit>" form.
func (p *Plan) SetDuration(count int, unit string) {
	p.Duration = duration.Format(count, unit)
}

// Offset parses the stored duration.
func (p *Plan) Offset() (duration.Offset, error) {
	return duration.Parse(p.Duration)
}
