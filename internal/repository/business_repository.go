package repository

import (
	"context"

	"github.com/manmeet1049/bizzler/internal/domain/business"
	"gorm.io/gorm"
)

type businessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(ctx context.Context, b *business.Business) error {
	return translate(r.db.WithContext(ctx).Create(b).Error, "Business")
}

func (r *businessRepository) GetByID(ctx context.Context, id uint) (*business.Business, error) {
	var b business.Business
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, translate(err, "Business")
	}
	return &b, nil
}

func (r *businessRepository) GetByOwnerAndName(ctx context.Context, ownerID uint, name string) (*business.Business, error) {
	var b business.Business
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND name = ?", ownerID, name).
		First(&b).Error
	if err != nil {
		return nil, translate(err, "Business")
	}
	return &b, nil
}

// ListForUser returns the businesses the user is mapped to, in creation order.
func (r *businessRepository) ListForUser(ctx context.Context, userID uint) ([]business.Business, error) {
	var list []business.Business
	err := r.db.WithContext(ctx).
		Joins("JOIN user_business_mapping ON user_business_mapping.business_id = businesses.id").
		Where("user_business_mapping.user_id = ?", userID).
		Order("businesses.id ASC").
		Find(&list).Error
	if err != nil {
		return nil, translate(err, "Business")
	}
	return list, nil
}

func (r *businessRepository) CreateMembership(ctx context.Context, m *business.Membership) error {
	return translate(r.db.WithContext(ctx).Create(m).Error, "Membership")
}

func (r *businessRepository) GetMembership(ctx context.Context, userID, businessID uint) (*business.Membership, error) {
	var m business.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND business_id = ?", userID, businessID).
		First(&m).Error
	if err != nil {
		return nil, translate(err, "Membership")
	}
	return &m, nil
}
