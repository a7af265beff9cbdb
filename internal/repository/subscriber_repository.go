package repository

import (
	"context"

	"github.com/manmeet1049/bizzler/internal/domain/subscribers"
	"gorm.io/gorm"
)

type subscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Create(ctx context.Context, s *subscribers.Subscriber) error {
	return translate(r.db.WithContext(ctx).Create(s).Error, "Subscriber")
}

func (r *subscriberRepository) GetByID(ctx context.Context, businessID, id uint) (*subscribers.Subscriber, error) {
	var s subscribers.Subscriber
	err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).
		First(&s).Error
	if err != nil {
		return nil, translate(err, "Subscriber")
	}
	return &s, nil
}

func (r *subscriberRepository) FindByEmailOrPhone(ctx context.Context, email string, phone *string) (*subscribers.Subscriber, error) {
	q := r.db.WithContext(ctx).Where("email = ?", email)
	if phone != nil && *phone != "" {
		q = q.Or("phone = ?", *phone)
	}

	var s subscribers.Subscriber
	if err := q.Order("id ASC").First(&s).Error; err != nil {
		return nil, translate(err, "Subscriber")
	}
	return &s, nil
}
