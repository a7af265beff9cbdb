package service

import (
	"context"
	"time"

	"github.com/manmeet1049/bizzler/internal/domain/subscriptions"
	"github.com/manmeet1049/bizzler/internal/metrics"
	"github.com/manmeet1049/bizzler/internal/repository"
)

// expiryTally counts rows expired inside a database transaction. The metric is
// recorded with commit once the transaction has succeeded, so rolled back
// expiries are never counted.
type expiryTally struct {
	path string
	n    int
}

func (t *expiryTally) commit(m *metrics.Metrics) {
	if t.n > 0 {
		m.SubscriptionsExpired.WithLabelValues(t.path).Add(float64(t.n))
	}
}

// expire persists the ACTIVE -> EXPIRED transition for one row when its period
// has elapsed. The lazy read path and the sweep both go through here.
func (p ServiceParams) expire(ctx context.Context, store *repository.Store, sub *subscriptions.Subscription, today time.Time, tally *expiryTally) (bool, error) {
	if !subscriptions.Expire(sub, today) {
		return false, nil
	}
	if err := store.Subscriptions.Deactivate(ctx, sub.ID); err != nil {
		sub.Active = true
		return false, err
	}
	tally.n++
	return true, nil
}

// activeSubscription returns the subscriber's current period, or nil. Stale
// rows met on the way are expired. When several rows are still active the most
// recently created one wins.
func (p ServiceParams) activeSubscription(ctx context.Context, store *repository.Store, subscriberID uint, today time.Time, tally *expiryTally) (*subscriptions.Subscription, error) {
	rows, err := store.Subscriptions.ListActive(ctx, subscriberID)
	if err != nil {
		return nil, err
	}

	var current *subscriptions.Subscription
	for i := range rows {
		row := &rows[i]
		expired, err := p.expire(ctx, store, row, today, tally)
		if err != nil {
			return nil, err
		}
		if expired {
			p.Logger.Debugw("subscription expired on read",
				"subscription_id", row.ID,
				"subscriber_id", subscriberID,
				"plan_end_date", row.PlanEndDate)
			continue
		}
		if current == nil {
			current = row
		}
	}
	return current, nil
}
