package business

import "time"

const (
	TypeProduct      = "PRODUCT"
	TypeSubscription = "SUBSCRIPTION"
)

// Business is the tenant. Every plan, subscriber and transaction belongs to one.
type Business struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_businesses_owner_name,priority:2" json:"name"`
	OwnerID   uint      `gorm:"not null;uniqueIndex:idx_businesses_owner_name,priority:1" json:"owner"`
	Type      string    `gorm:"size:18;not null" json:"type"`
	Phone     *string   `gorm:"size:15" json:"phone"`
	Address   *string   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Business) TableName() string {
	return "businesses"
}

func ValidType(t string) bool {
	return t == TypeProduct || t == TypeSubscription
}
