package repository

import (
	"context"

	"github.com/manmeet1049/bizzler/internal/domain/billing"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, t *billing.Transaction) error {
	return translate(r.db.WithContext(ctx).Omit("Plan").Create(t).Error, "Transaction")
}

func (r *transactionRepository) GetByID(ctx context.Context, businessID, id uint) (*billing.Transaction, error) {
	var t billing.Transaction
	err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).
		First(&t).Error
	if err != nil {
		return nil, translate(err, "Transaction")
	}
	return &t, nil
}

func (r *transactionRepository) List(ctx context.Context, businessID uint) ([]billing.Transaction, error) {
	var list []billing.Transaction
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&list).Error
	if err != nil {
		return nil, translate(err, "Transaction")
	}
	return list, nil
}
