package repository

import (
	"context"

	"github.com/manmeet1049/bizzler/internal/domain/billing"
	"github.com/manmeet1049/bizzler/internal/domain/business"
	"github.com/manmeet1049/bizzler/internal/domain/plans"
	"github.com/manmeet1049/bizzler/internal/domain/subscribers"
	"github.com/manmeet1049/bizzler/internal/domain/subscriptions"
	"github.com/manmeet1049/bizzler/internal/domain/users"
)

// UserRepository defines the user persistence operations
type UserRepository interface {
	Create(ctx context.Context, user *users.User) error
	GetByID(ctx context.Context, id uint) (*users.User, error)
	GetByEmail(ctx context.Context, email string) (*users.User, error)
}

// BusinessRepository defines tenant and membership persistence operations
type BusinessRepository interface {
	Create(ctx context.Context, b *business.Business) error
	GetByID(ctx context.Context, id uint) (*business.Business, error)
	GetByOwnerAndName(ctx context.Context, ownerID uint, name string) (*business.Business, error)
	ListForUser(ctx context.Context, userID uint) ([]business.Business, error)
	CreateMembership(ctx context.Context, m *business.Membership) error
	GetMembership(ctx context.Context, userID, businessID uint) (*business.Membership, error)
}

// PlanRepository defines plan catalog persistence. Every lookup is scoped to a business.
type PlanRepository interface {
	Create(ctx context.Context, plan *plans.Plan) error
	GetByID(ctx context.Context, businessID, id uint) (*plans.Plan, error)
	GetByName(ctx context.Context, businessID uint, name string) (*plans.Plan, error)
	List(ctx context.Context, businessID uint) ([]plans.Plan, error)
	Delete(ctx context.Context, businessID, id uint) error
}

// SubscriberRepository defines subscriber persistence operations
type SubscriberRepository interface {
	Create(ctx context.Context, s *subscribers.Subscriber) error
	GetByID(ctx context.Context, businessID, id uint) (*subscribers.Subscriber, error)
	// FindByEmailOrPhone searches across every business.
	FindByEmailOrPhone(ctx context.Context, email string, phone *string) (*subscribers.Subscriber, error)
}

// SubscriptionRepository defines subscription ledger persistence operations
type SubscriptionRepository interface {
	Create(ctx context.Context, s *subscriptions.Subscription) error
	GetByID(ctx context.Context, id uint) (*subscriptions.Subscription, error)
	LinkTransaction(ctx context.Context, id, transactionID uint) error
	Deactivate(ctx context.Context, id uint) error
	// ListActive returns the subscriber's active rows, newest first.
	ListActive(ctx context.Context, subscriberID uint) ([]subscriptions.Subscription, error)
	// ListBySubscriber returns every row of the subscriber, newest first.
	ListBySubscriber(ctx context.Context, subscriberID uint) ([]subscriptions.Subscription, error)
	// FindInBatches walks every row in id order.
	FindInBatches(ctx context.Context, size int, fn func(batch []subscriptions.Subscription) error) error
}

// TransactionRepository defines billing record persistence operations
type TransactionRepository interface {
	Create(ctx context.Context, t *billing.Transaction) error
	GetByID(ctx context.Context, businessID, id uint) (*billing.Transaction, error)
	List(ctx context.Context, businessID uint) ([]billing.Transaction, error)
}
