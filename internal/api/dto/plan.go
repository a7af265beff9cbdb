package dto

import (
	"github.com/manmeet1049/bizzler/internal/domain/plans"
	ierr "github.com/manmeet1049/bizzler/internal/errors"
	"github.com/shopspring/decimal"
)

const maxPlanNameLength = 50

type AddPlanRequest struct {
	Name          string           `json:"name"`
	DurationCount int              `json:"duration_count"`
	DurationUnit  string           `json:"duration_unit"`
	Price         *decimal.Decimal `json:"price"`
}

func (r *AddPlanRequest) Validate() error {
	var fields []string
	if isBlank(r.Name) || len(r.Name) > maxPlanNameLength {
		fields = append(fields, "name")
	}
	if r.DurationCount <= 0 || r.DurationCount > maxDurationCount {
		fields = append(fields, "duration_count")
	}
	if isBlank(r.DurationUnit) {
		fields = append(fields, "duration_unit")
	}
	if r.Price == nil || !amountInRange(*r.Price) {
		fields = append(fields, "price")
	}
	if len(fields) > 0 {
		return ierr.NewValidationError(fields...)
	}
	return nil
}

type AddPlanResponse struct {
	ID uint `json:"id"`
}

// PlanResponse is the full projection of a plan, also returned on conflicts.
type PlanResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Duration string `json:"duration"`
	Price    string `json:"price"`
	AddedBy  uint   `json:"added_by"`
	Business uint   `json:"business"`
}

func NewPlanResponse(p *plans.Plan) *PlanResponse {
	if p == nil {
		return nil
	}
	return &PlanResponse{
		ID:       p.ID,
		Name:     p.Name,
		Duration: p.Duration,
		Price:    p.Price.StringFixed(2),
		AddedBy:  p.AddedBy,
		Business: p.BusinessID,
	}
}

type ImportPlansResponse struct {
	Created []*PlanResponse `json:"created"`
	Skipped int             `json:"skipped"`
}
