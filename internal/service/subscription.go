package service

import (
	"context"
	"strconv"
	"time"

	"github.com/manmeet1049/bizzler/internal/api/dto"
	"github.com/manmeet1049/bizzler/internal/domain/access"
	"github.com/manmeet1049/bizzler/internal/domain/subscribers"
	"github.com/manmeet1049/bizzler/internal/domain/subscriptions"
	ierr "github.com/manmeet1049/bizzler/internal/errors"
	"github.com/manmeet1049/bizzler/internal/metrics"
	"github.com/manmeet1049/bizzler/internal/repository"
	"github.com/manmeet1049/bizzler/internal/types"
)

type SubscriptionService interface {
	// Subscribe starts a new period for an existing subscriber, or signs a new
	// one up, and records its payment. Without an explicit start date a period
	// bought while another is still running starts when that one ends. Queued
	// reports whether such a running period existed.
	Subscribe(ctx context.Context, auth access.AuthContext, req dto.SubscribeRequest) (*dto.SubscribeResponse, error)
}

type subscriptionService struct {
	ServiceParams
	billing BillingService
}

func NewSubscriptionService(params ServiceParams) SubscriptionService {
	return &subscriptionService{
		ServiceParams: params,
		billing:       NewBillingService(params),
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, auth access.AuthContext, req dto.SubscribeRequest) (*dto.SubscribeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	explicitStart, explicitEnd, err := req.Dates()
	if err != nil {
		return nil, err
	}

	var resp *dto.SubscribeResponse
	tally := &expiryTally{path: metrics.PathLazy}
	err = s.Store.Transaction(ctx, func(tx *repository.Store) error {
		subscriber, err := s.resolveSubscriber(ctx, tx, auth, req)
		if err != nil {
			return err
		}

		today := s.today()
		prior, err := s.activeSubscription(ctx, tx, subscriber.ID, today, tally)
		if err != nil {
			return err
		}

		ref, err := s.resolvePlan(ctx, tx, auth, req)
		if err != nil {
			return err
		}

		start := today
		switch {
		case explicitStart != nil:
			start = *explicitStart
		case prior != nil:
			start = types.DateOnly(prior.PlanEndDate)
		}

		var end time.Time
		if explicitEnd != nil {
			end = *explicitEnd
		} else if end, err = ref.EndDate(start); err != nil {
			return err
		}
		if end.Before(start) {
			return ierr.NewErrorf("end date %s before start date %s", types.FormatDate(end), types.FormatDate(start)).
				WithHint("Invalid end_date, it must not be before start_date.").
				Mark(ierr.ErrInvalidDate)
		}

		if s.Config.SupersedePriorSubscription {
			if err := s.supersede(ctx, tx, subscriber.ID); err != nil {
				return err
			}
		}

		sub := &subscriptions.Subscription{
			SubscriberID:  subscriber.ID,
			PlanID:        ref.PlanID(),
			PlanStartDate: start,
			PlanEndDate:   end,
			Active:        true,
		}
		if err := tx.Subscriptions.Create(ctx, sub); err != nil {
			return err
		}

		txn, err := s.billing.Record(ctx, tx, RecordRequest{
			Auth:         auth,
			SubscriberID: subscriber.ID,
			Plan:         ref,
			Amount:       req.Amount,
		})
		if err != nil {
			return err
		}

		if err := tx.Subscriptions.LinkTransaction(ctx, sub.ID, txn.ID); err != nil {
			return err
		}
		sub.TransactionID = &txn.ID

		resp = &dto.SubscribeResponse{
			Subscriber:    dto.NewSubscriberResponse(subscriber),
			Subscription:  dto.NewSubscriptionResponse(sub),
			TransactionID: txn.ID,
			Queued:        prior != nil,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	tally.commit(s.Metrics)
	s.Metrics.Renewals.WithLabelValues(strconv.FormatBool(resp.Queued)).Inc()
	s.Logger.Infow("subscription period created",
		"business_id", auth.TenantID,
		"subscriber_id", resp.Subscriber.ID,
		"subscription_id", resp.Subscription.ID,
		"transaction_id", resp.TransactionID,
		"plan_start_date", resp.Subscription.PlanStartDate,
		"plan_end_date", resp.Subscription.PlanEndDate,
		"queued", resp.Queued)
	return resp, nil
}

func (s *subscriptionService) resolveSubscriber(ctx context.Context, tx *repository.Store, auth access.AuthContext, req dto.SubscribeRequest) (*subscribers.Subscriber, error) {
	if req.IsSignup() {
		return createSubscriber(ctx, tx, auth, req.SignupRequest())
	}
	sub, err := tx.Subscribers.GetByID(ctx, auth.TenantID, *req.Subscriber)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.WithError(err).
				WithHint("Subscriber not found.").
				Mark(ierr.ErrNotFound)
		}
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) resolvePlan(ctx context.Context, tx *repository.Store, auth access.AuthContext, req dto.SubscribeRequest) (PlanRef, error) {
	if req.Plan == nil {
		return AdHoc{}, nil
	}
	plan, err := tx.Plans.GetByID(ctx, auth.TenantID, *req.Plan)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.WithError(err).
				WithHint("Plan not found.").
				Mark(ierr.ErrNotFound)
		}
		return nil, err
	}
	return NamedPlan{Plan: plan}, nil
}

// supersede ends every period of the subscriber that is still active so the
// new one is the only active row.
func (s *subscriptionService) supersede(ctx context.Context, tx *repository.Store, subscriberID uint) error {
	rows, err := tx.Subscriptions.ListActive(ctx, subscriberID)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := tx.Subscriptions.Deactivate(ctx, row.ID); err != nil {
			return err
		}
		s.Logger.Debugw("subscription superseded", "subscription_id", row.ID, "subscriber_id", subscriberID)
	}
	return nil
}
