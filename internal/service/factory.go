package service

import (
	"time"

	"github.com/manmeet1049/bizzler/config"
	"github.com/manmeet1049/bizzler/internal/infra/stripe"
	"github.com/manmeet1049/bizzler/internal/logger"
	"github.com/manmeet1049/bizzler/internal/metrics"
	"github.com/manmeet1049/bizzler/internal/repository"
	"github.com/manmeet1049/bizzler/internal/types"
)

// ServiceParams holds the dependencies shared by every service.
type ServiceParams struct {
	Store   *repository.Store
	Logger  *logger.Logger
	Config  *config.Config
	Metrics *metrics.Metrics
	Clock   types.Clock

	// PriceSource is nil when Stripe is not configured.
	PriceSource stripe.PriceSource
}

func (p ServiceParams) now() time.Time {
	if p.Clock == nil {
		return types.SystemClock()
	}
	return p.Clock()
}

// today is the current calendar date in UTC.
func (p ServiceParams) today() time.Time {
	return types.DateOnly(p.now().UTC())
}
