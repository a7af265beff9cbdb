package service

import (
	"context"
	"time"

	"github.com/manmeet1049/bizzler/internal/domain/subscriptions"
	"github.com/manmeet1049/bizzler/internal/metrics"
)

const sweepBatchSize = 200

type SweepReport struct {
	Scanned int `json:"scanned"`
	Expired int `json:"expired"`
	Failed  int `json:"failed"`
}

type SweeperService interface {
	// Sweep walks every subscription and expires the ones whose period has
	// elapsed. A row that fails to update is logged and counted, and the walk
	// goes on.
	Sweep(ctx context.Context) (*SweepReport, error)
}

type sweeperService struct {
	ServiceParams
}

func NewSweeperService(params ServiceParams) SweeperService {
	return &sweeperService{ServiceParams: params}
}

func (s *sweeperService) Sweep(ctx context.Context) (*SweepReport, error) {
	started := time.Now()
	today := s.today()
	report := &SweepReport{}
	tally := &expiryTally{path: metrics.PathSweep}

	err := s.Store.Subscriptions.FindInBatches(ctx, sweepBatchSize, func(batch []subscriptions.Subscription) error {
		for i := range batch {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := &batch[i]
			report.Scanned++

			expired, err := s.expire(ctx, s.Store, row, today, tally)
			if err != nil {
				report.Failed++
				s.Metrics.SweepFailedRows.Inc()
				s.Logger.Errorw("failed to expire subscription",
					"subscription_id", row.ID,
					"subscriber_id", row.SubscriberID,
					"error", err)
				continue
			}
			if expired {
				report.Expired++
			}
		}
		return nil
	})

	// Each row is its own statement outside any transaction, so every expiry
	// counted here is already durable.
	tally.commit(s.Metrics)
	s.Metrics.SweepDurationSeconds.Observe(time.Since(started).Seconds())
	if err != nil {
		s.Metrics.SweepRuns.WithLabelValues("error").Inc()
		s.Logger.Errorw("subscription sweep aborted",
			"scanned", report.Scanned,
			"expired", report.Expired,
			"failed", report.Failed,
			"error", err)
		return report, err
	}

	s.Metrics.SweepRuns.WithLabelValues("ok").Inc()
	s.Logger.Infow("subscription sweep finished",
		"today", today.Format("2006-01-02"),
		"scanned", report.Scanned,
		"expired", report.Expired,
		"failed", report.Failed)
	return report, nil
}
