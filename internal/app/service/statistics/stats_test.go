package statistics

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/fatflowers/crm/internal/app/service/ledger"
	"github.com/fatflowers/crm/internal/models"
	"github.com/fatflowers/crm/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestComputeSubscriptionStats_RevenueFilter(t *testing.T) {
	recs := []*models.Subscription{
		{ID: "1", Status: types.SubscriptionStatusActive, Interval: types.BillingIntervalMonth, Amount: 1900},
		{ID: "2", Status: types.SubscriptionStatusTrialing, Interval: types.BillingIntervalYear, Amount: 19900},
		{ID: "3", Status: types.SubscriptionStatusPastDue, Interval: types.BillingIntervalMonth, Amount: 900},
		{ID: "4", Status: types.SubscriptionStatusCanceled, Interval: types.BillingIntervalYear, Amount: 49900},
		{ID: "5", Status: types.SubscriptionStatusActive, Interval: types.BillingIntervalMonth, Amount: 2900},
	}
	st := ComputeSubscriptionStats(recs)

	require.Equal(t, SubscriptionStats{
		Total:          5,
		Active:         2,
		Trialing:       1,
		Canceled:       1,
		PastDue:        1,
		TotalRevenue:   1900 + 19900 + 2900,
		MonthlyRevenue: 1900 + 2900,
		YearlyRevenue:  19900,
	}, st)
}

func TestComputeSubscriptionStats_Empty(t *testing.T) {
	require.Equal(t, SubscriptionStats{}, ComputeSubscriptionStats(nil))
}

func TestComputeSubscriptionStats_CountsAlwaysSumToTotal(t *testing.T) {
	statuses := append([]types.SubscriptionStatus{"incomplete_expired", "paused", "weird"}, types.SubscriptionStatuses...)
	intervals := []types.BillingInterval{types.BillingIntervalMonth, types.BillingIntervalYear}
	rng := rand.New(rand.NewSource(7))

	for round := range 50 {
		n := rng.Intn(40)
		recs := make([]*models.Subscription, 0, n)
		for i := range n {
			recs = append(recs, &models.Subscription{
				ID:       fmt.Sprintf("sub_%d_%d", round, i),
				Status:   statuses[rng.Intn(len(statuses))],
				Interval: intervals[rng.Intn(len(intervals))],
				Amount:   int64(rng.Intn(50000)),
			})
		}
		st := ComputeSubscriptionStats(recs)
		require.Equal(t, len(recs), st.Active+st.Trialing+st.Canceled+st.PastDue+st.Unpaid+st.Incomplete)
		require.Equal(t, st.TotalRevenue, st.MonthlyRevenue+st.YearlyRevenue)
	}
}

func TestGetSubscriptionStats_CreatedThenPastDue(t *testing.T) {
	ctx := context.Background()
	store := ledger.NewMemoryStore()
	require.NoError(t, store.Upsert(ctx, &models.Subscription{
		ID: "sub_1", Amount: 1900, Interval: types.BillingIntervalMonth, Status: types.SubscriptionStatusActive,
	}))
	_, err := store.Update(ctx, "sub_1", func(rec *models.Subscription) error {
		rec.Status = types.SubscriptionStatusPastDue
		return nil
	})
	require.NoError(t, err)

	st, err := New(store, nil).GetSubscriptionStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, st.Total)
	require.Equal(t, 1, st.PastDue)
	require.Equal(t, 0, st.Active)
	require.Zero(t, st.MonthlyRevenue)
	require.Zero(t, st.TotalRevenue)
}

type failingStore struct{ ledger.Store }

func (failingStore) List(context.Context) ([]*models.Subscription, error) {
	return nil, errors.New("connection refused")
}

func TestGetSubscriptionStats_StoreFailureYieldsNoAggregate(t *testing.T) {
	st, err := New(failingStore{}, nil).GetSubscriptionStats(context.Background())
	require.Error(t, err)
	require.Nil(t, st)
}
