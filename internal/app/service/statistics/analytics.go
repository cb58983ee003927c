package statistics

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/fatflowers/crm/internal/models"
	"github.com/samber/lo"
)

// SeriesLength is the number of monthly points in the revenue series.
const SeriesLength = 12

const customerStatusActive = "active"

type MonthlyPoint struct {
	Month     string  `json:"month"`
	Revenue   float64 `json:"revenue"`
	Customers int     `json:"customers"`
}

type DistributionEntry struct {
	Name       string  `json:"name"`
	Value      int     `json:"value"`
	Percentage float64 `json:"percentage"`
}

type CustomerAnalytics struct {
	TotalCustomers      int                 `json:"total_customers"`
	MonthlyRevenue      float64             `json:"monthly_revenue"`
	AverageLTV          float64             `json:"average_ltv"`
	ConversionRate      float64             `json:"conversion_rate"`
	RevenueChart        []MonthlyPoint      `json:"revenue_chart"`
	CustomerGrowthChart []MonthlyPoint      `json:"customer_growth_chart"`
	TierDistribution    []DistributionEntry `json:"tier_distribution"`
	StatusBreakdown     []DistributionEntry `json:"status_breakdown"`
}

// ProcessCustomers derives the dashboard analytics from customer rows. Months are
// bucketed in now's location. The result depends only on its inputs.
func ProcessCustomers(customers []*models.Customer, now time.Time) *CustomerAnalytics {
	customers = lo.Filter(customers, func(c *models.Customer, _ int) bool { return c != nil })
	total := len(customers)

	out := &CustomerAnalytics{TotalCustomers: total}
	out.MonthlyRevenue = lo.SumBy(customers, func(c *models.Customer) float64 { return c.Mrr })
	if total > 0 {
		out.AverageLTV = lo.SumBy(customers, func(c *models.Customer) float64 { return c.Ltv }) / float64(total)
		active := lo.CountBy(customers, func(c *models.Customer) bool { return c.Status == customerStatusActive })
		out.ConversionRate = float64(active) / float64(total) * 100
	}

	series := monthlySeries(customers, now)
	out.RevenueChart = series
	out.CustomerGrowthChart = slices.Clone(series)

	out.TierDistribution = distribution(customers, func(c *models.Customer) string { return c.Tier }, nil)
	out.StatusBreakdown = distribution(customers, func(c *models.Customer) string { return c.Status }, capitalize)
	return out
}

type monthKey struct {
	year  int
	month time.Month
}

func monthlySeries(customers []*models.Customer, now time.Time) []MonthlyPoint {
	loc := now.Location()
	revenue := make(map[monthKey]float64)
	counts := make(map[monthKey]int)
	for _, c := range customers {
		j := c.Joined().In(loc)
		k := monthKey{j.Year(), j.Month()}
		revenue[k] += c.Mrr
		counts[k]++
	}

	points := make([]MonthlyPoint, 0, SeriesLength)
	for i := SeriesLength - 1; i >= 0; i-- {
		first := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, loc)
		k := monthKey{first.Year(), first.Month()}
		points = append(points, MonthlyPoint{
			Month:     first.Format("Jan 06"),
			Revenue:   revenue[k],
			Customers: counts[k],
		})
	}
	return points
}

func distribution(customers []*models.Customer, key func(*models.Customer) string, label func(string) string) []DistributionEntry {
	total := len(customers)
	if total == 0 {
		return []DistributionEntry{}
	}
	counts := lo.CountValuesBy(customers, key)
	entries := make([]DistributionEntry, 0, len(counts))
	for name, n := range counts {
		if label != nil {
			name = label(name)
		}
		entries = append(entries, DistributionEntry{
			Name:       name,
			Value:      n,
			Percentage: roundOneDecimal(float64(n) / float64(total) * 100),
		})
	}
	slices.SortFunc(entries, func(a, b DistributionEntry) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return entries
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
