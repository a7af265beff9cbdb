package service

import (
	"context"
	"strings"

	"github.com/manmeet1049/bizzler/internal/api/dto"
	"github.com/manmeet1049/bizzler/internal/domain/access"
	"github.com/manmeet1049/bizzler/internal/domain/duration"
	"github.com/manmeet1049/bizzler/internal/domain/plans"
	ierr "github.com/manmeet1049/bizzler/internal/errors"
	"github.com/manmeet1049/bizzler/internal/infra/stripe"
	"github.com/samber/lo"
)

type PlanService interface {
	AddPlan(ctx context.Context, auth access.AuthContext, req dto.AddPlanRequest) (*dto.AddPlanResponse, error)
	GetPlan(ctx context.Context, auth access.AuthContext, id uint) (*dto.PlanResponse, error)
	ListPlans(ctx context.Context, auth access.AuthContext) ([]*dto.PlanResponse, error)
	DeletePlan(ctx context.Context, auth access.AuthContext, id uint) error
	ImportStripePlans(ctx context.Context, auth access.AuthContext) (*dto.ImportPlansResponse, error)
}

type planService struct {
	ServiceParams
}

func NewPlanService(params ServiceParams) PlanService {
	return &planService{ServiceParams: params}
}

func (s *planService) AddPlan(ctx context.Context, auth access.AuthContext, req dto.AddPlanRequest) (*dto.AddPlanResponse, error) {
	plan, err := s.addPlan(ctx, auth, req)
	if err != nil {
		return nil, err
	}
	return &dto.AddPlanResponse{ID: plan.ID}, nil
}

func (s *planService) addPlan(ctx context.Context, auth access.AuthContext, req dto.AddPlanRequest) (*plans.Plan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	unit, err := duration.NormalizeUnit(req.DurationUnit)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)

	existing, err := s.Store.Plans.GetByName(ctx, auth.TenantID, name)
	if err == nil {
		return nil, planConflict(existing)
	}
	if !ierr.IsNotFound(err) {
		return nil, err
	}

	plan := &plans.Plan{
		BusinessID: auth.TenantID,
		Name:       name,
		Price:      req.Price.Round(2),
		AddedBy:    auth.Actor.ID,
	}
	plan.SetDuration(req.DurationCount, string(unit))

	if err := s.Store.Plans.Create(ctx, plan); err != nil {
		// lost a race with a concurrent insert of the same name
		if ierr.IsConflict(err) {
			if existing, gerr := s.Store.Plans.GetByName(ctx, auth.TenantID, name); gerr == nil {
				return nil, planConflict(existing)
			}
		}
		return nil, err
	}

	s.Logger.Infow("plan added",
		"plan_id", plan.ID,
		"business_id", auth.TenantID,
		"duration", plan.Duration)
	return plan, nil
}

func planConflict(existing *plans.Plan) error {
	return ierr.NewConflictError("Plan already exists.", dto.NewPlanResponse(existing))
}

func (s *planService) GetPlan(ctx context.Context, auth access.AuthContext, id uint) (*dto.PlanResponse, error) {
	plan, err := s.Store.Plans.GetByID(ctx, auth.TenantID, id)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.WithError(err).
				WithHint("Failed to fetch the plan, invalid ID.").
				Mark(ierr.ErrNotFound)
		}
		return nil, err
	}
	return dto.NewPlanResponse(plan), nil
}

func (s *planService) ListPlans(ctx context.Context, auth access.AuthContext) ([]*dto.PlanResponse, error) {
	list, err := s.Store.Plans.List(ctx, auth.TenantID)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, func(p plans.Plan, _ int) *dto.PlanResponse {
		return dto.NewPlanResponse(&p)
	}), nil
}

// DeletePlan removes the plan. Subscriptions and transactions that referenced
// it keep their rows with the plan reference cleared.
func (s *planService) DeletePlan(ctx context.Context, auth access.AuthContext, id uint) error {
	if err := s.Store.Plans.Delete(ctx, auth.TenantID, id); err != nil {
		return err
	}
	s.Logger.Infow("plan deleted", "plan_id", id, "business_id", auth.TenantID)
	return nil
}

// ImportStripePlans creates a plan for every recurring Stripe price. Prices
// whose interval has no duration equivalent, and names already in the
// catalog, are skipped.
func (s *planService) ImportStripePlans(ctx context.Context, auth access.AuthContext) (*dto.ImportPlansResponse, error) {
	if s.PriceSource == nil {
		return nil, ierr.NewError("stripe price source not configured").
			WithHint("Stripe is not configured.").
			Mark(ierr.ErrNotConfigured)
	}

	prices, err := s.PriceSource.ListRecurringPrices(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.ImportPlansResponse{Created: []*dto.PlanResponse{}}
	for _, p := range prices {
		count, unit, ok := stripe.DurationFromInterval(p.Interval, p.IntervalCount)
		if !ok {
			resp.Skipped++
			continue
		}
		price := p.Amount
		plan, err := s.addPlan(ctx, auth, dto.AddPlanRequest{
			Name:          p.Name,
			DurationCount: count,
			DurationUnit:  string(unit),
			Price:         &price,
		})
		if ierr.IsConflict(err) || ierr.IsValidation(err) {
			resp.Skipped++
			continue
		}
		if err != nil {
			return nil, err
		}
		resp.Created = append(resp.Created, dto.NewPlanResponse(plan))
	}

	s.Logger.Infow("stripe plans imported",
		"business_id", auth.TenantID,
		"created", len(resp.Created),
		"skipped", resp.Skipped)
	return resp, nil
}
