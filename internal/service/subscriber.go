package service

import (
	"context"
	"strings"

	"github.com/manmeet1049/bizzler/internal/api/dto"
	"github.com/manmeet1049/bizzler/internal/domain/access"
	"github.com/manmeet1049/bizzler/internal/domain/subscribers"
	ierr "github.com/manmeet1049/bizzler/internal/errors"
	"github.com/manmeet1049/bizzler/internal/metrics"
	"github.com/manmeet1049/bizzler/internal/repository"
)

type SubscriberService interface {
	CreateSubscriber(ctx context.Context, auth access.AuthContext, req dto.CreateSubscriberRequest) (*dto.SubscriberResponse, error)
	// GetSubscriber returns the subscriber with its current period, expiring
	// stale periods on the way.
	GetSubscriber(ctx context.Context, auth access.AuthContext, id uint) (*dto.SubscriberDetailResponse, error)
	// ListSubscriptions returns every period of the subscriber, newest first.
	ListSubscriptions(ctx context.Context, auth access.AuthContext, id uint) ([]*dto.SubscriptionResponse, error)
}

type subscriberService struct {
	ServiceParams
}

func NewSubscriberService(params ServiceParams) SubscriberService {
	return &subscriberService{ServiceParams: params}
}

func (s *subscriberService) CreateSubscriber(ctx context.Context, auth access.AuthContext, req dto.CreateSubscriberRequest) (*dto.SubscriberResponse, error) {
	sub, err := createSubscriber(ctx, s.Store, auth, req)
	if err != nil {
		return nil, err
	}
	s.Logger.Infow("subscriber created", "subscriber_id", sub.ID, "business_id", auth.TenantID)
	return dto.NewSubscriberResponse(sub), nil
}

// createSubscriber enforces global email and phone uniqueness and inserts the
// subscriber through store. The existing row is only disclosed when it belongs
// to the caller's business.
func createSubscriber(ctx context.Context, store *repository.Store, auth access.AuthContext, req dto.CreateSubscriberRequest) (*subscribers.Subscriber, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(req.Email)
	phone := req.PhonePtr()

	existing, err := store.Subscribers.FindByEmailOrPhone(ctx, email, phone)
	if err == nil {
		return nil, subscriberConflict(auth, existing)
	}
	if !ierr.IsNotFound(err) {
		return nil, err
	}

	sub := &subscribers.Subscriber{
		BusinessID: auth.TenantID,
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		Phone:      phone,
	}
	if err := store.Subscribers.Create(ctx, sub); err != nil {
		if ierr.IsConflict(err) {
			return nil, subscriberConflict(auth, nil)
		}
		return nil, err
	}
	return sub, nil
}

func subscriberConflict(auth access.AuthContext, existing *subscribers.Subscriber) error {
	var shown *dto.SubscriberResponse
	if existing != nil && existing.BusinessID == auth.TenantID {
		shown = dto.NewSubscriberResponse(existing)
	}
	return ierr.NewConflictError("Subscriber with this email or phone already exists.", shown)
}

func (s *subscriberService) GetSubscriber(ctx context.Context, auth access.AuthContext, id uint) (*dto.SubscriberDetailResponse, error) {
	var resp *dto.SubscriberDetailResponse
	tally := &expiryTally{path: metrics.PathLazy}
	err := s.Store.Transaction(ctx, func(tx *repository.Store) error {
		sub, err := tx.Subscribers.GetByID(ctx, auth.TenantID, id)
		if err != nil {
			return err
		}
		active, err := s.activeSubscription(ctx, tx, sub.ID, s.today(), tally)
		if err != nil {
			return err
		}
		resp = &dto.SubscriberDetailResponse{
			SubscriberResponse: dto.NewSubscriberResponse(sub),
			ActiveSubscription: dto.NewSubscriptionResponse(active),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	tally.commit(s.Metrics)
	return resp, nil
}

func (s *subscriberService) ListSubscriptions(ctx context.Context, auth access.AuthContext, id uint) ([]*dto.SubscriptionResponse, error) {
	var out []*dto.SubscriptionResponse
	tally := &expiryTally{path: metrics.PathLazy}
	err := s.Store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Subscribers.GetByID(ctx, auth.TenantID, id); err != nil {
			return err
		}
		rows, err := tx.Subscriptions.ListBySubscriber(ctx, id)
		if err != nil {
			return err
		}

		today := s.today()
		out = make([]*dto.SubscriptionResponse, 0, len(rows))
		for i := range rows {
			if _, err := s.expire(ctx, tx, &rows[i], today, tally); err != nil {
				return err
			}
			out = append(out, dto.NewSubscriptionResponse(&rows[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	tally.commit(s.Metrics)
	return out, nil
}

