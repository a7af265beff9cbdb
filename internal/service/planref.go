package service

import (
	"time"

	"github.com/manmeet1049/bizzler/internal/domain/plans"
	ierr "github.com/manmeet1049/bizzler/internal/errors"
	"github.com/shopspring/decimal"
)

// PlanRef is what a new period falls back on when the caller does not give an
// end date or an amount. It is either a NamedPlan from the catalog or AdHoc.
type PlanRef interface {
	PlanID() *uint
	EndDate(start time.Time) (time.Time, error)
	Price() (decimal.Decimal, error)
	isPlanRef()
}

// NamedPlan derives the end date from the plan duration and the amount from
// its price.
type NamedPlan struct {
	Plan *plans.Plan
}

func (n NamedPlan) PlanID() *uint {
	id := n.Plan.ID
	return &id
}

func (n NamedPlan) EndDate(start time.Time) (time.Time, error) {
	offset, err := n.Plan.Offset()
	if err != nil {
		return time.Time{}, err
	}
	return offset.AddTo(start), nil
}

func (n NamedPlan) Price() (decimal.Decimal, error) {
	return n.Plan.Price, nil
}

func (NamedPlan) isPlanRef() {}

// AdHoc is a period with no catalog plan; it has nothing to fall back on.
type AdHoc struct{}

func (AdHoc) PlanID() *uint { return nil }

func (AdHoc) EndDate(time.Time) (time.Time, error) {
	return time.Time{}, ierr.NewError("no plan and no end date").
		WithHint("Either a plan or an end date is required.").
		Mark(ierr.ErrMissingPlanDuration)
}

func (AdHoc) Price() (decimal.Decimal, error) {
	return decimal.Zero, ierr.NewError("no plan and no amount").
		WithHint("Amount is required when no plan is selected.").
		Mark(ierr.ErrMissingAmount)
}

func (AdHoc) isPlanRef() {}
