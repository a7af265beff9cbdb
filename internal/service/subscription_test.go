package service

import (
	"testing"

	"github.com/manmeet1049/bizzler/internal/api/dto"
	"github.com/manmeet1049/bizzler/internal/domain/billing"
	"github.com/manmeet1049/bizzler/internal/domain/business"
	"github.com/manmeet1049/bizzler/internal/domain/subscribers"
	"github.com/manmeet1049/bizzler/internal/domain/subscriptions"
	ierr "github.com/manmeet1049/bizzler/internal/errors"
	"github.com/manmeet1049/bizzler/internal/metrics"
	"github.com/manmeet1049/bizzler/internal/testutil"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SubscriptionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service SubscriptionService
}

func TestSubscriptionService(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceSuite))
}

func (s *SubscriptionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewSubscriptionService(newTestParams(&s.BaseServiceTestSuite))
}

func (s *SubscriptionServiceSuite) TestRenewalQueuesBehindActivePeriod() {
	plan := seedPlan(&s.BaseServiceTestSuite, s.Business.ID, "Monthly", "1 M", "30.00")
	member := seedSubscriber(&s.BaseServiceTestSuite, s.Business.ID, "sam@example.com")
	prior := seedSubscription(&s.BaseServiceTestSuite, member.ID, testutil.Date(2024, 5, 2), testutil.Date(2024, 6, 1), true)

	resp, err := s.service.Subscribe(s.GetContext(), s.OwnerAuth(), dto.SubscribeRequest{
		Plan:       lo.ToPtr(plan.ID),
		Subscriber: lo.ToPtr(member.ID),
	})
	s.Require().NoError(err)

	s.True(resp.Queued)
	s.Equal("2024-06-01", resp.Subscription.PlanStartDate)
	s.Equal("2024-07-01", resp.Subscription.PlanEndDate)
	s.Equal(member.ID, resp.Subscriber.ID)
	s.Require().NotNil(resp.Subscription.TransactionID)
	s.Equal(resp.TransactionID, *resp.Subscription.TransactionID)

	// the prior period is left to run out on its own
	s.True(reloadSubscription(&s.BaseServiceTestSuite, prior.ID).Active)

	stored := reloadSubscription(&s.BaseServiceTestSuite, resp.Subscription.ID)
	s.Require().NotNil(stored.TransactionID)
	s.Equal(resp.TransactionID, *stored.TransactionID)
	s.Equal(float64(1), promtestutil.ToFloat64(s.GetMetrics().Renewals.WithLabelValues("true")))
}

func (s *SubscriptionServiceSuite) TestSignupStartsToday() {
	plan := seedPlan(&s.BaseServiceTestSuite, s.Business.ID, "Monthly", "1 M", "30.00")

	resp, err := s.service.Subscribe(s.GetContext(), s.OwnerAuth(), dto.SubscribeRequest{
		Plan:  lo.ToPtr(plan.ID),
		Name:  "Alex",
		Email: "alex@example.com",
		Phone: "5550100",
	})
	s.Require().NoError(err)

	s.False(resp.Queued)
	s.Equal("2024-05-15", resp.Subscription.PlanStartDate)
	s.Equal("2024-06-14", resp.Subscription.PlanEndDate)
	s.Equal("alex@example.com", resp.Subscriber.Email)
	s.Equal(s.Business.ID, resp.Subscriber.Business)
	s.Require().NotNil(resp.Subscriber.Phone)
	s.Equal("5550100", *resp.Subscriber.Phone)
	s.Equal(string(subscriptions.StatusActive), resp.Subscription.Status)
	s.Equal(float64(1), promtestutil.ToFloat64(s.GetMetrics().Renewals.WithLabelValues("false")))
}

func (s *SubscriptionServiceSuite) TestAmountDefaultsToPlanPrice() {
	plan := seedPlan(&s.BaseServiceTestSuite, s.Business.ID, "Yearly", "1 Y", "299.50")
	member := seedSubscriber(&s.BaseServiceTestSuite, s.Business.ID, "sam@example.com")

	resp, err := s.service.Subscribe(s.GetContext(), s.OwnerAuth(), dto.SubscribeRequest{
		Plan:       lo.ToPtr(plan.ID),
		Subscriber: lo.ToPtr(member.ID),
	})
	s.Require().NoError(err)

	txn, err := s.GetStore().Transactions.GetByID(s.GetContext(), s.Business.ID, resp.TransactionID)
	s.Require().NoError(err)
	s.True(decimal.RequireFromString("299.50").Equal(txn.Amount))
	s.Require().NotNil(txn.PlanID)
	s.Equal(plan.ID, *txn.PlanID)
	s.Equal(s.Owner.ID, txn.ConductedBy)
	s.Equal(member.ID, txn.SubscriberID)
}

func (s *SubscriptionServiceSuite) TestExplicitValuesOverridePlan() {
	plan := seedPlan(&s.BaseServiceTestSuite, s.Business.ID, "Monthly", "1 M", "30.00")
	member := seedSubscriber(&s.BaseServiceTestSuite, s.Business.ID, "sam@example.com")
	seedSubscription(&s.BaseServiceTestSuite, member.ID, testutil.Date(2024, 5, 2), testutil.Date(2024, 6, 1), true)

	resp, err := s.service.Subscribe(s.GetContext(), s.OwnerAuth(), dto.SubscribeRequest{
		Plan:       lo.ToPtr(plan.ID),
		Subscriber: lo.ToPtr(member.ID),
		StartDate:  "2024-05-20",
		EndDate:    "2024-08-20",
		Amount:     lo.ToPtr(decimal.RequireFromString("75")),
	})
	s.Require().NoError(err)

	// an active period existed even though the start date was given
	s.True(resp.Queued)
	s.Equal("2024-05-20", resp.Subscription.PlanStartDate)
	s.Equal("2024-08-20", resp.Subscription.PlanEndDate)

	txn, err := s.GetStore().Transactions.GetByID(s.GetContext(), s.Business.ID, resp.TransactionID)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(75).Equal(txn.Amount))
}

func (s *SubscriptionServiceSuite) TestAdHocPeriod() {
	member := seedSubscriber(&s.BaseServiceTestSuite, s.Business.ID, "sam@example.com")

	resp, err := s.service.Subscribe(s.GetContext(), s.OwnerAuth(), dto.SubscribeRequest{
		Subscriber: lo.ToPtr(member.ID),
		StartDate:  "2024-05-15",
		EndDate:    "2024-05-25",
		Amount:     lo.ToPtr(decimal.RequireFromString("12.5")),
	})
	s.Require().NoError(err)
	s.Nil(resp.Subscription.Plan)

	txn, err := s.GetStore().Transactions.GetByID(s.GetContext(), s.Business.ID, resp.TransactionID)
	s.Require().NoError(err)
	s.Nil(txn.PlanID)
	s.True(decimal.RequireFromString("12.50").Equal(txn.Amount))
}

func (s *SubscriptionServiceSuite) TestAdHocWithoutAmount() {
	member := seedSubscriber(&s.BaseServiceTestSuite, s.Business.ID, "sam@example.com")

	_, err := s.service.Subscribe(s.GetContext(), s.OwnerAuth(), dto.SubscribeRequest{
		Subscriber: lo.ToPtr(member.ID),
		StartDate:  "2024-05-15",
		EndDate:    "2024-06-15",
	})
	s.Require().Error(err)
	s.True(ierr.Is(err, ierr.ErrMissingAmount))
	s.True(ierr.IsValidation(err))

	var verr *ierr.ValidationError
	s.Require().True(ierr.As(err, &verr))
	s.Equal([]string{"amount"}, verr.Fields)

	s.Equal(int64(0), countRows(&s.BaseServiceTestSuite, &subscriptions.Subscription{}))
	s.Equal(int64(0), countRows(&s.BaseServiceTestSuite, &billing.Transaction{}))
}

func (s *SubscriptionServiceSuite) TestAdHocWithoutEndDate() {
	member := seedSubscriber(&s.BaseServiceTestSuite, s.Business.ID, "sam@example.com")

	_, err := s.service.Subscribe(s.GetContext(), s.OwnerAuth(), dto.SubscribeRequest{
		Subscriber: lo.ToPtr(member.ID),
		StartDate:  "2024-05-15",
		Amount:     lo.ToPtr(decimal.NewFromInt(10)),
	})
	s.Require().Error(err)
	s.True(ierr.Is(err, ierr.ErrMissingPlanDuration))
	s.False(ierr.Is(err, ierr.ErrMissingAmount))
}

func (s *SubscriptionServiceSuite) TestSignupMissingFields() {
	_, err := s.service.Subscribe(s.GetContext(), s.OwnerAuth(), dto.SubscribeRequest{})
	s.Require().Error(err)

	var verr *ierr.ValidationError
	s.Require().True(ierr.As(err, &verr))
	s.Equal([]string{"name", "email", "start_date", "end_date", "amount"}, verr.Fields)
}

func (s *SubscriptionServiceSuite) TestInvalidDate() {
	member := seedSubscriber(&s.BaseServiceTestSuite, s.Business.ID, "sam@example.com")

	_, err := s.service.Subscribe(s.GetContext(), s.OwnerAuth(), dto.SubscribeRequest{
		Subscriber: lo.ToPtr(member.ID),
		StartDate:  "15/05/2024",
		EndDate:    "2024-06-15",
		Amount:     lo.ToPtr(decimal.NewFromInt(10)),
	})
	s.Require().Error(err)
	s.True(ierr.Is(err, ierr.ErrInvalidDate))
	s.Equal("Invalid start_date, expected format YYYY-MM-DD.", ierr.Hint(err))
}

func (s *SubscriptionServiceSuite) TestEndBeforeStart() {
	member := seedSubscriber(&s.BaseServiceTestSuite, s.Business.ID, "sam@example.com")

	_, err := s.service.Subscribe(s.GetContext(), s.OwnerAuth(), dto.SubscribeRequest{
		Subscriber: lo.ToPtr(member.ID),
		StartDate:  "2024-06-15",
		EndDate:    "2024-06-01",
		Amount:     lo.ToPtr(decimal.NewFromInt(10)),
	})
	s.True(ierr.Is(err, ierr.ErrInvalidDate))
}

func (s *SubscriptionServiceSuite) TestStalePriorPeriodIsExpired() {
	plan := seedPlan(&s.BaseServiceTestSuite, s.Business.ID, "Ten days", "10 D", "5.00")
	member := seedSubscriber(&s.BaseServiceTestSuite, s.Business.ID, "sam@example.com")
	stale := seedSubscription(&s.BaseServiceTestSuite, member.ID, testutil.Date(2024, 4, 1), testutil.Date(2024, 5, 14), true)

	resp, err := s.service.Subscribe(s.GetContext(), s.OwnerAuth(), dto.SubscribeRequest{
		Plan:       lo.ToPtr(plan.ID),
		Subscriber: lo.ToPtr(member.ID),
	})
	s.Require().NoError(err)

	s.False(resp.Queued)
	s.Equal("2024-05-15", resp.Subscription.PlanStartDate)
	s.Equal("2024-05-25", resp.Subscription.PlanEndDate)
	s.False(reloadSubscription(&s.BaseServiceTestSuite, stale.ID).Active)
	s.Equal(float64(1), promtestutil.ToFloat64(s.GetMetrics().SubscriptionsExpired.WithLabelValues(metrics.PathLazy)))
}

func (s *SubscriptionServiceSuite) TestRolledBackRenewalDoesNotCountExpiry() {
	member := seedSubscriber(&s.BaseServiceTestSuite, s.Business.ID, "sam@example.com")
	stale := seedSubscription(&s.BaseServiceTestSuite, member.ID, testutil.Date(2024, 4, 1), testutil.Date(2024, 5, 14), true)

	_, err := s.service.Subscribe(s.GetContext(), s.OwnerAuth(), dto.SubscribeRequest{
		Plan:       lo.ToPtr(uint(9999)),
		Subscriber: lo.ToPtr(member.ID),
	})
	s.Require().True(ierr.IsNotFound(err))

	s.True(reloadSubscription(&s.BaseServiceTestSuite, stale.ID).Active)
	s.Equal(float64(0), promtestutil.ToFloat64(s.GetMetrics().SubscriptionsExpired.WithLabelValues(metrics.PathLazy)))
}

func (s *SubscriptionServiceSuite) TestSupersedePriorPeriod() {
	s.GetConfig().SupersedePriorSubscription = true
	plan := seedPlan(&s.BaseServiceTestSuite, s.Business.ID, "Monthly", "1 M", "30.00")
	member := seedSubscriber(&s.BaseServiceTestSuite, s.Business.ID, "sam@example.com")
	prior := seedSubscription(&s.BaseServiceTestSuite, member.ID, testutil.Date(2024, 5, 2), testutil.Date(2024, 6, 1), true)

	resp, err := s.service.Subscribe(s.GetContext(), s.OwnerAuth(), dto.SubscribeRequest{
		Plan:       lo.ToPtr(plan.ID),
		Subscriber: lo.ToPtr(member.ID),
	})
	s.Require().NoError(err)

	s.True(resp.Queued)
	s.Equal("2024-06-01", resp.Subscription.PlanStartDate)
	s.False(reloadSubscription(&s.BaseServiceTestSuite, prior.ID).Active)

	active, err := s.GetStore().Subscriptions.ListActive(s.GetContext(), member.ID)
	s.Require().NoError(err)
	s.Require().Len(active, 1)
	s.Equal(resp.Subscription.ID, active[0].ID)
}

func (s *SubscriptionServiceSuite) TestSignupConflict() {
	seedSubscriber(&s.BaseServiceTestSuite, s.Business.ID, "sam@example.com")

	_, err := s.service.Subscribe(s.GetContext(), s.OwnerAuth(), dto.SubscribeRequest{
		Name:      "Sam Again",
		Email:     "sam@example.com",
		StartDate: "2024-05-15",
		EndDate:   "2024-06-15",
		Amount:    lo.ToPtr(decimal.NewFromInt(10)),
	})
	s.Require().Error(err)
	s.True(ierr.IsConflict(err))
	s.Equal(int64(1), countRows(&s.BaseServiceTestSuite, &subscribers.Subscriber{}))
}

func (s *SubscriptionServiceSuite) TestPlanOfAnotherBusiness() {
	other := s.CreateBusiness(s.Owner, "Pool", business.TypeSubscription)
	plan := seedPlan(&s.BaseServiceTestSuite, other.ID, "Monthly", "1 M", "30.00")
	member := seedSubscriber(&s.BaseServiceTestSuite, s.Business.ID, "sam@example.com")

	_, err := s.service.Subscribe(s.GetContext(), s.OwnerAuth(), dto.SubscribeRequest{
		Plan:       lo.ToPtr(plan.ID),
		Subscriber: lo.ToPtr(member.ID),
	})
	s.True(ierr.IsNotFound(err))
}

func (s *SubscriptionServiceSuite) TestSubscriberOfAnotherBusiness() {
	other := s.CreateBusiness(s.Owner, "Pool", business.TypeSubscription)
	member := seedSubscriber(&s.BaseServiceTestSuite, other.ID, "sam@example.com")

	_, err := s.service.Subscribe(s.GetContext(), s.OwnerAuth(), dto.SubscribeRequest{
		Subscriber: lo.ToPtr(member.ID),
		StartDate:  "2024-05-15",
		EndDate:    "2024-06-15",
		Amount:     lo.ToPtr(decimal.NewFromInt(10)),
	})
	s.True(ierr.IsNotFound(err))
	s.Equal("Subscriber not found.", ierr.Hint(err))
}

func (s *SubscriptionServiceSuite) TestFailureRollsBackSignup() {
	// a stored duration that cannot be parsed fails after the subscriber insert
	plan := seedPlan(&s.BaseServiceTestSuite, s.Business.ID, "Broken", "ten days", "30.00")

	_, err := s.service.Subscribe(s.GetContext(), s.OwnerAuth(), dto.SubscribeRequest{
		Plan:  lo.ToPtr(plan.ID),
		Name:  "Alex",
		Email: "alex@example.com",
	})
	s.Require().Error(err)
	s.True(ierr.Is(err, ierr.ErrInvalidFormat))

	s.Equal(int64(0), countRows(&s.BaseServiceTestSuite, &subscribers.Subscriber{}))
	s.Equal(int64(0), countRows(&s.BaseServiceTestSuite, &subscriptions.Subscription{}))
	s.Equal(int64(0), countRows(&s.BaseServiceTestSuite, &billing.Transaction{}))
}
