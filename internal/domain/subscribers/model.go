package subscribers

import "time"

// Subscriber is a customer of a business. Email and phone are unique across
// all businesses, not per business.
type Subscriber struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BusinessID uint      `gorm:"not null;index" json:"business"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"size:254;not null;uniqueIndex:idx_subscribers_email" json:"email"`
	Phone      *string   `gorm:"size:15;uniqueIndex:idx_subscribers_phone" json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Subscriber) TableName() string {
	return "subscription_subscribers"
}
