package repository

import (
	"context"

	"github.com/manmeet1049/bizzler/internal/domain/subscriptions"
	"gorm.io/gorm"
)

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(ctx context.Context, s *subscriptions.Subscription) error {
	return translate(r.db.WithContext(ctx).Omit("Plan").Create(s).Error, "Subscription")
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id uint) (*subscriptions.Subscription, error) {
	var s subscriptions.Subscription
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err, "Subscription")
	}
	return &s, nil
}

func (r *subscriptionRepository) LinkTransaction(ctx context.Context, id, transactionID uint) error {
	return r.update(ctx, id, "transaction_id", transactionID)
}

func (r *subscriptionRepository) Deactivate(ctx context.Context, id uint) error {
	return r.update(ctx, id, "active", false)
}

func (r *subscriptionRepository) update(ctx context.Context, id uint, column string, value interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&subscriptions.Subscription{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		return translate(res.Error, "Subscription")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "Subscription")
	}
	return nil
}

func (r *subscriptionRepository) ListActive(ctx context.Context, subscriberID uint) ([]subscriptions.Subscription, error) {
	var list []subscriptions.Subscription
	err := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND active = ?", subscriberID, true).
		Order("id DESC").
		Find(&list).Error
	if err != nil {
		return nil, translate(err, "Subscription")
	}
	return list, nil
}

func (r *subscriptionRepository) ListBySubscriber(ctx context.Context, subscriberID uint) ([]subscriptions.Subscription, error) {
	var list []subscriptions.Subscription
	err := r.db.WithContext(ctx).
		Where("subscriber_id = ?", subscriberID).
		Order("id DESC").
		Find(&list).Error
	if err != nil {
		return nil, translate(err, "Subscription")
	}
	return list, nil
}

func (r *subscriptionRepository) FindInBatches(ctx context.Context, size int, fn func(batch []subscriptions.Subscription) error) error {
	var batch []subscriptions.Subscription
	res := r.db.WithContext(ctx).
		FindInBatches(&batch, size, func(_ *gorm.DB, _ int) error {
			return fn(batch)
		})
	return translate(res.Error, "Subscription")
}
