package dto

import (
	"strings"

	"github.com/manmeet1049/bizzler/internal/domain/business"
	ierr "github.com/manmeet1049/bizzler/internal/errors"
)

type CreateBusinessRequest struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (r *CreateBusinessRequest) Validate() error {
	var fields []string
	if isBlank(r.Name) {
		fields = append(fields, "name")
	}
	if !business.ValidType(strings.ToUpper(strings.TrimSpace(r.Type))) {
		fields = append(fields, "type")
	}
	if len(fields) > 0 {
		return ierr.NewValidationError(fields...)
	}
	return nil
}

type CreateBusinessResponse struct {
	BusinessID   uint   `json:"business_id"`
	BusinessName string `json:"business_name"`
	UserID       uint   `json:"user_id"`
	Role         string `json:"role"`
}

type BusinessResponse struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Owner   uint    `json:"owner"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func NewBusinessResponse(b *business.Business) *BusinessResponse {
	return &BusinessResponse{
		ID:      b.ID,
		Name:    b.Name,
		Type:    b.Type,
		Owner:   b.OwnerID,
		Phone:   b.Phone,
		Address: b.Address,
	}
}

type AddStaffRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type MembershipResponse struct {
	ID       uint   `json:"id"`
	User     uint   `json:"user"`
	Business uint   `json:"business"`
	Role     string `json:"role"`
}

func NewMembershipResponse(m *business.Membership) *MembershipResponse {
	return &MembershipResponse{ID: m.ID, User: m.UserID, Business: m.BusinessID, Role: m.Role}
}
