package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the repositories over one connection or one transaction.
type Store struct {
	db *gorm.DB

	Users         UserRepository
	Businesses    BusinessRepository
	Plans         PlanRepository
	Subscribers   SubscriberRepository
	Subscriptions SubscriptionRepository
	Transactions  TransactionRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Users:         NewUserRepository(db),
		Businesses:    NewBusinessRepository(db),
		Plans:         NewPlanRepository(db),
		Subscribers:   NewSubscriberRepository(db),
		Subscriptions: NewSubscriptionRepository(db),
		Transactions:  NewTransactionRepository(db),
	}
}

// Transaction runs fn against a Store bound to a single database transaction.
// Everything fn writes is committed together, or rolled back if fn returns an
// error or panics. fn must only use the Store it is given.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
