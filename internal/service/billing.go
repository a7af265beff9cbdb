package service

import (
	"context"

	"github.com/manmeet1049/bizzler/internal/api/dto"
	"github.com/manmeet1049/bizzler/internal/domain/access"
	"github.com/manmeet1049/bizzler/internal/domain/billing"
	ierr "github.com/manmeet1049/bizzler/internal/errors"
	"github.com/manmeet1049/bizzler/internal/repository"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type BillingService interface {
	// Record writes the payment for a new period through store, which is the
	// caller's transaction.
	Record(ctx context.Context, store *repository.Store, req RecordRequest) (*billing.Transaction, error)
	GetForSubscription(ctx context.Context, auth access.AuthContext, subscriptionID uint) (*dto.TransactionResponse, error)
	ListTransactions(ctx context.Context, auth access.AuthContext) ([]*dto.TransactionResponse, error)
}

type RecordRequest struct {
	Auth         access.AuthContext
	SubscriberID uint
	Plan         PlanRef
	// Amount overrides the plan price when set.
	Amount *decimal.Decimal
}

type billingService struct {
	ServiceParams
}

func NewBillingService(params ServiceParams) BillingService {
	return &billingService{ServiceParams: params}
}

func (s *billingService) Record(ctx context.Context, store *repository.Store, req RecordRequest) (*billing.Transaction, error) {
	ref := req.Plan
	if ref == nil {
		ref = AdHoc{}
	}

	var amount decimal.Decimal
	if req.Amount != nil {
		amount = *req.Amount
	} else {
		price, err := ref.Price()
		if err != nil {
			return nil, err
		}
		amount = price
	}

	txn := &billing.Transaction{
		PlanID:       ref.PlanID(),
		SubscriberID: req.SubscriberID,
		Amount:       amount.Round(2),
		ConductedBy:  req.Auth.Actor.ID,
		BusinessID:   req.Auth.TenantID,
	}
	if err := store.Transactions.Create(ctx, txn); err != nil {
		return nil, err
	}

	s.Metrics.Transactions.Inc()
	return txn, nil
}

func (s *billingService) GetForSubscription(ctx context.Context, auth access.AuthContext, subscriptionID uint) (*dto.TransactionResponse, error) {
	sub, err := s.Store.Subscriptions.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	// the subscription must belong to a subscriber of this business
	if _, err := s.Store.Subscribers.GetByID(ctx, auth.TenantID, sub.SubscriberID); err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.NewErrorf("subscription %d not in business %d", subscriptionID, auth.TenantID).
				WithHint("Subscription not found.").
				Mark(ierr.ErrNotFound)
		}
		return nil, err
	}
	if sub.TransactionID == nil {
		return nil, ierr.NewErrorf("subscription %d has no transaction", subscriptionID).
			WithHint("No transaction recorded for this subscription.").
			Mark(ierr.ErrNotFound)
	}

	txn, err := s.Store.Transactions.GetByID(ctx, auth.TenantID, *sub.TransactionID)
	if err != nil {
		return nil, err
	}
	return dto.NewTransactionResponse(txn), nil
}

func (s *billingService) ListTransactions(ctx context.Context, auth access.AuthContext) ([]*dto.TransactionResponse, error) {
	list, err := s.Store.Transactions.List(ctx, auth.TenantID)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, func(t billing.Transaction, _ int) *dto.TransactionResponse {
		return dto.NewTransactionResponse(&t)
	}), nil
}
