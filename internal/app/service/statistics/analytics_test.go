package statistics

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/fatflowers/crm/internal/app/service/customer"
	"github.com/fatflowers/crm/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var analyticsNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestProcessCustomers_Empty(t *testing.T) {
	a := ProcessCustomers(nil, analyticsNow)

	require.Equal(t, 0, a.TotalCustomers)
	require.Zero(t, a.AverageLTV)
	require.Zero(t, a.ConversionRate)
	require.Len(t, a.RevenueChart, SeriesLength)
	require.Equal(t, "Jul 24", a.RevenueChart[0].Month)
	require.Equal(t, "Jun 25", a.RevenueChart[SeriesLength-1].Month)
	for _, p := range a.RevenueChart {
		require.Zero(t, p.Revenue)
		require.Zero(t, p.Customers)
	}
	require.Empty(t, a.TierDistribution)
	require.NotNil(t, a.TierDistribution)
	require.Empty(t, a.StatusBreakdown)
}

func TestProcessCustomers_KPIsAndSeries(t *testing.T) {
	customers := []*models.Customer{
		{Tier: "gold", Status: "active", Mrr: 100, Ltv: 1200, JoinDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{Tier: "gold", Status: "active", Mrr: 50, Ltv: 600, JoinDate: time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)},
		{Tier: "silver", Status: "churned", Mrr: 25, Ltv: 300, JoinDate: time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)},
		// outside the 12 month window
		{Tier: "bronze", Status: "trial", Mrr: 10, Ltv: 0, JoinDate: time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)},
		// join date missing, falls back to created_at
		{Tier: "silver", Status: "active", Mrr: 5, Ltv: 100, CreatedAt: time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC)},
	}

	a := ProcessCustomers(customers, analyticsNow)

	require.Equal(t, 5, a.TotalCustomers)
	require.InDelta(t, 190, a.MonthlyRevenue, 1e-9)
	require.InDelta(t, 440, a.AverageLTV, 1e-9)
	require.InDelta(t, 60, a.ConversionRate, 1e-9)

	byMonth := map[string]MonthlyPoint{}
	for _, p := range a.RevenueChart {
		byMonth[p.Month] = p
	}
	assert.Equal(t, MonthlyPoint{Month: "Jun 25", Revenue: 150, Customers: 2}, byMonth["Jun 25"])
	assert.Equal(t, MonthlyPoint{Month: "Dec 24", Revenue: 25, Customers: 1}, byMonth["Dec 24"])
	assert.Equal(t, MonthlyPoint{Month: "Jul 24", Revenue: 5, Customers: 1}, byMonth["Jul 24"])
	assert.Equal(t, a.RevenueChart, a.CustomerGrowthChart)

	require.Equal(t, []DistributionEntry{
		{Name: "gold", Value: 2, Percentage: 40},
		{Name: "silver", Value: 2, Percentage: 40},
		{Name: "bronze", Value: 1, Percentage: 20},
	}, a.TierDistribution)
	require.Equal(t, []DistributionEntry{
		{Name: "Active", Value: 3, Percentage: 60},
		{Name: "Churned", Value: 1, Percentage: 20},
		{Name: "Trial", Value: 1, Percentage: 20},
	}, a.StatusBreakdown)
}

func TestProcessCustomers_PercentageOneDecimal(t *testing.T) {
	customers := []*models.Customer{
		{Tier: "a", Status: "active"}, {Tier: "b", Status: "active"}, {Tier: "b", Status: "active"},
	}
	a := ProcessCustomers(customers, analyticsNow)
	require.Equal(t, 66.7, a.TierDistribution[0].Percentage)
	require.Equal(t, 33.3, a.TierDistribution[1].Percentage)
}

func TestProcessCustomers_BucketsInNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, loc)
	// 22:00 UTC on 31 May is already 1 June in UTC+3
	c := &models.Customer{Mrr: 10, JoinDate: time.Date(2025, 5, 31, 22, 0, 0, 0, time.UTC)}

	a := ProcessCustomers([]*models.Customer{c}, now)
	last := a.RevenueChart[SeriesLength-1]
	require.Equal(t, "Jun 25", last.Month)
	require.Equal(t, 1, last.Customers)
}

func TestProcessCustomers_DeterministicAndComplete(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tiers := []string{"rev1_tier1", "rev1_tier2", "rev2_coaching", "rev3_enterprise"}
	statuses := []string{"active", "inactive", "trial", "churned"}

	for range 20 {
		n := rng.Intn(60)
		customers := make([]*models.Customer, 0, n)
		for range n {
			customers = append(customers, &models.Customer{
				Tier:     tiers[rng.Intn(len(tiers))],
				Status:   statuses[rng.Intn(len(statuses))],
				Mrr:      float64(rng.Intn(500)),
				Ltv:      float64(rng.Intn(5000)),
				JoinDate: analyticsNow.AddDate(0, -rng.Intn(18), -rng.Intn(28)),
			})
		}

		first := ProcessCustomers(customers, analyticsNow)
		second := ProcessCustomers(customers, analyticsNow)
		require.Equal(t, first, second)
		require.Len(t, first.RevenueChart, SeriesLength)
		for _, p := range first.RevenueChart {
			require.GreaterOrEqual(t, p.Revenue, 0.0)
			require.GreaterOrEqual(t, p.Customers, 0)
		}
	}
}

type stubCustomers struct {
	list []*models.Customer
	err  error
}

func (s stubCustomers) List(context.Context) ([]*models.Customer, error) { return s.list, s.err }

var _ customer.Repository = stubCustomers{}

func TestGetCustomerAnalytics(t *testing.T) {
	svc := New(nil, stubCustomers{list: []*models.Customer{{Status: "active", Mrr: 9}}})
	svc.now = func() time.Time { return analyticsNow }

	a, err := svc.GetCustomerAnalytics(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, a.TotalCustomers)
	require.Equal(t, 100.0, a.ConversionRate)

	svc = New(nil, stubCustomers{err: errors.New("db down")})
	_, err = svc.GetCustomerAnalytics(context.Background())
	require.Error(t, err)
}
