package repository

import (
	"context"

	"github.com/manmeet1049/bizzler/internal/domain/plans"
	"gorm.io/gorm"
)

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(ctx context.Context, plan *plans.Plan) error {
	return translate(r.db.WithContext(ctx).Create(plan).Error, "Plan")
}

func (r *planRepository) GetByID(ctx context.Context, businessID, id uint) (*plans.Plan, error) {
	var plan plans.Plan
	err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).
		First(&plan).Error
	if err != nil {
		return nil, translate(err, "Plan")
	}
	return &plan, nil
}

func (r *planRepository) GetByName(ctx context.Context, businessID uint, name string) (*plans.Plan, error) {
	var plan plans.Plan
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND name = ?", businessID, name).
		First(&plan).Error
	if err != nil {
		return nil, translate(err, "Plan")
	}
	return &plan, nil
}

func (r *planRepository) List(ctx context.Context, businessID uint) ([]plans.Plan, error) {
	var list []plans.Plan
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("price ASC").
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, translate(err, "Plan")
	}
	return list, nil
}

// Delete removes the plan row. Subscriptions and transactions that point at it
// keep existing; their plan_id is nulled by the foreign key.
func (r *planRepository) Delete(ctx context.Context, businessID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).
		Delete(&plans.Plan{})
	if res.Error != nil {
		return translate(res.Error, "Plan")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "Plan")
	}
	return nil
}
