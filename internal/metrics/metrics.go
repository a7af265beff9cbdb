package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bizzler"

// Metrics holds the counters exported on /metrics.
type Metrics struct {
	Renewals             *prometheus.CounterVec
	Transactions         prometheus.Counter
	SubscriptionsExpired *prometheus.CounterVec
	SweepRuns            *prometheus.CounterVec
	SweepFailedRows      prometheus.Counter
	SweepDurationSeconds prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Renewals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subscription_periods_created_total",
			Help:      "Subscription periods created, by whether they were queued behind an active period.",
		}, []string{"queued"}),
		Transactions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_recorded_total",
			Help:      "Billing transactions recorded.",
		}),
		SubscriptionsExpired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subscriptions_expired_total",
			Help:      "Subscriptions moved from active to expired, by path.",
		}, []string{"path"}),
		SweepRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_sweep_runs_total",
			Help:      "Batch status sweeps, by result.",
		}, []string{"result"}),
		SweepFailedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_sweep_failed_rows_total",
			Help:      "Rows the batch sweep could not update.",
		}),
		SweepDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "status_sweep_duration_seconds",
			Help:      "Duration of a batch status sweep.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.Renewals,
		m.Transactions,
		m.SubscriptionsExpired,
		m.SweepRuns,
		m.SweepFailedRows,
		m.SweepDurationSeconds,
	)
	return m
}

const (
	PathLazy  = "lazy"
	PathSweep = "sweep"
)
