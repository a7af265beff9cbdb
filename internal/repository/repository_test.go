package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/manmeet1049/bizzler/internal/domain/business"
	"github.com/manmeet1049/bizzler/internal/domain/plans"
	"github.com/manmeet1049/bizzler/internal/domain/subscribers"
	"github.com/manmeet1049/bizzler/internal/domain/subscriptions"
	"github.com/manmeet1049/bizzler/internal/domain/users"
	ierr "github.com/manmeet1049/bizzler/internal/errors"
	"github.com/manmeet1049/bizzler/internal/repository"
	"github.com/manmeet1049/bizzler/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (context.Context, *repository.Store, *business.Business) {
	t.Helper()
	ctx := context.Background()
	store := repository.NewStore(testutil.NewTestDB(t))

	owner := &users.User{Email: "owner@example.com", Password: "x", IsActive: true}
	require.NoError(t, store.Users.Create(ctx, owner))
	b := &business.Business{Name: "Gym", OwnerID: owner.ID, Type: business.TypeSubscription}
	require.NoError(t, store.Businesses.Create(ctx, b))
	return ctx, store, b
}

func TestPlanUniqueNamePerBusiness(t *testing.T) {
	ctx, store, b := setup(t)

	plan := &plans.Plan{BusinessID: b.ID, Name: "Gold", Duration: "1 M", Price: decimal.NewFromInt(10), AddedBy: b.OwnerID}
	require.NoError(t, store.Plans.Create(ctx, plan))

	dup := &plans.Plan{BusinessID: b.ID, Name: "Gold", Duration: "1 Y", Price: decimal.NewFromInt(99), AddedBy: b.OwnerID}
	err := store.Plans.Create(ctx, dup)
	assert.True(t, ierr.IsConflict(err))

	_, err = store.Plans.GetByID(ctx, b.ID+1, plan.ID)
	assert.True(t, ierr.IsNotFound(err))
}

func TestSubscriberEmailIsGloballyUnique(t *testing.T) {
	ctx, store, b := setup(t)

	require.NoError(t, store.Subscribers.Create(ctx, &subscribers.Subscriber{BusinessID: b.ID, Name: "Sam", Email: "sam@example.com"}))
	err := store.Subscribers.Create(ctx, &subscribers.Subscriber{BusinessID: b.ID + 1, Name: "Sam", Email: "sam@example.com"})
	assert.True(t, ierr.IsConflict(err))
}

func TestSubscriptionQueries(t *testing.T) {
	ctx, store, b := setup(t)
	sub := &subscribers.Subscriber{BusinessID: b.ID, Name: "Sam", Email: "sam@example.com"}
	require.NoError(t, store.Subscribers.Create(ctx, sub))

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	var ids []uint
	for i := 0; i < 5; i++ {
		row := &subscriptions.Subscription{
			SubscriberID:  sub.ID,
			PlanStartDate: day.AddDate(0, i, 0),
			PlanEndDate:   day.AddDate(0, i+1, 0),
			Active:        true,
		}
		require.NoError(t, store.Subscriptions.Create(ctx, row))
		ids = append(ids, row.ID)
	}
	require.NoError(t, store.Subscriptions.Deactivate(ctx, ids[0]))

	active, err := store.Subscriptions.ListActive(ctx, sub.ID)
	require.NoError(t, err)
	require.Len(t, active, 4)
	assert.Equal(t, ids[4], active[0].ID)
	assert.Equal(t, ids[1], active[3].ID)

	var walked []uint
	err = store.Subscriptions.FindInBatches(ctx, 2, func(batch []subscriptions.Subscription) error {
		assert.LessOrEqual(t, len(batch), 2)
		for _, row := range batch {
			walked = append(walked, row.ID)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, ids, walked)

	err = store.Subscriptions.Deactivate(ctx, 9999)
	assert.True(t, ierr.IsNotFound(err))
}

func TestTransactionRollsBack(t *testing.T) {
	ctx, store, b := setup(t)

	err := store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Subscribers.Create(ctx, &subscribers.Subscriber{BusinessID: b.ID, Name: "Sam", Email: "sam@example.com"}); err != nil {
			return err
		}
		return ierr.NewError("boom").Mark(ierr.ErrDatabase)
	})
	require.Error(t, err)

	_, err = store.Subscribers.FindByEmailOrPhone(ctx, "sam@example.com", nil)
	assert.True(t, ierr.IsNotFound(err))
}
