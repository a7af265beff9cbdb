package service

import (
	"time"

	"github.com/manmeet1049/bizzler/internal/domain/plans"
	"github.com/manmeet1049/bizzler/internal/domain/subscribers"
	"github.com/manmeet1049/bizzler/internal/domain/subscriptions"
	"github.com/manmeet1049/bizzler/internal/testutil"
	"github.com/shopspring/decimal"
)

func newTestParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	return ServiceParams{
		Store:   s.GetStore(),
		Logger:  s.GetLogger(),
		Config:  s.GetConfig(),
		Metrics: s.GetMetrics(),
		Clock:   s.Clock(),
	}
}

func seedPlan(s *testutil.BaseServiceTestSuite, businessID uint, name, dur, price string) *plans.Plan {
	p := &plans.Plan{
		BusinessID: businessID,
		Name:       name,
		Duration:   dur,
		Price:      decimal.RequireFromString(price),
		AddedBy:    s.Owner.ID,
	}
	s.Require().NoError(s.GetStore().Plans.Create(s.GetContext(), p))
	return p
}

func seedSubscriber(s *testutil.BaseServiceTestSuite, businessID uint, email string) *subscribers.Subscriber {
	sub := &subscribers.Subscriber{BusinessID: businessID, Name: "Sam", Email: email}
	s.Require().NoError(s.GetStore().Subscribers.Create(s.GetContext(), sub))
	return sub
}

// seedSubscription inserts a period directly. Inactive rows are deactivated
// after insert since the column defaults to true.
func seedSubscription(s *testutil.BaseServiceTestSuite, subscriberID uint, start, end time.Time, active bool) *subscriptions.Subscription {
	row := &subscriptions.Subscription{
		SubscriberID:  subscriberID,
		PlanStartDate: start,
		PlanEndDate:   end,
		Active:        true,
	}
	s.Require().NoError(s.GetStore().Subscriptions.Create(s.GetContext(), row))
	if !active {
		s.Require().NoError(s.GetStore().Subscriptions.Deactivate(s.GetContext(), row.ID))
		row.Active = false
	}
	return row
}

func reloadSubscription(s *testutil.BaseServiceTestSuite, id uint) *subscriptions.Subscription {
	row, err := s.GetStore().Subscriptions.GetByID(s.GetContext(), id)
	s.Require().NoError(err)
	return row
}

func countRows(s *testutil.BaseServiceTestSuite, model interface{}) int64 {
	var n int64
	s.Require().NoError(s.GetDB().Model(model).Count(&n).Error)
	return n
}
