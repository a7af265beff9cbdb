package jobs

import (
	"context"
	"time"

	"github.com/manmeet1049/bizzler/internal/logger"
	"github.com/manmeet1049/bizzler/internal/service"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the subscription status sweep on a cron schedule in UTC.
type Scheduler struct {
	cron    *cron.Cron
	sweeper service.SweeperService
	log     *logger.Logger
	timeout time.Duration
}

func NewScheduler(schedule string, sweeper service.SweeperService, log *logger.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		sweeper: sweeper,
		log:     log.With("job", "subscription_sweep"),
		timeout: 30 * time.Minute,
	}
	if _, err := s.cron.AddFunc(schedule, s.RunSweep); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.log.Infow("subscription sweep scheduled", "next_run", e.Next)
	}
}

// Stop waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunSweep runs one sweep. Failures are logged; the next tick tries again.
func (s *Scheduler) RunSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.sweeper.Sweep(ctx); err != nil {
		s.log.Errorw("scheduled subscription sweep failed", "error", err)
	}
}
