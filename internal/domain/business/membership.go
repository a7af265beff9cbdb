package business

import "time"

const (
	RoleOwner = "OWNER"
	RoleStaff = "STAFF"
)

// Membership maps a user to a business with a role.
type Membership struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_memberships_user_business,priority:1" json:"user"`
	BusinessID uint      `gorm:"not null;uniqueIndex:idx_memberships_user_business,priority:2" json:"business"`
	Role       string    `gorm:"size:20;not null" json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Membership) TableName() string {
	return "user_business_mapping"
}
