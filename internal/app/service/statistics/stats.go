package statistics

import (
	"github.com/fatflowers/crm/internal/models"
	"github.com/fatflowers/crm/pkg/types"
)

// SubscriptionStats summarises the ledger. Revenue figures are minor currency
// units summed across currencies, over active and trialing records only.
type SubscriptionStats struct {
	Total          int   `json:"total"`
	Active         int   `json:"active"`
	Trialing       int   `json:"trialing"`
	Canceled       int   `json:"canceled"`
	PastDue        int   `json:"past_due"`
	Unpaid         int   `json:"unpaid"`
	Incomplete     int   `json:"incomplete"`
	TotalRevenue   int64 `json:"total_revenue"`
	MonthlyRevenue int64 `json:"monthly_revenue"`
	YearlyRevenue  int64 `json:"yearly_revenue"`
}

// ComputeSubscriptionStats is a pure function of the given records.
func ComputeSubscriptionStats(recs []*models.Subscription) SubscriptionStats {
	st := SubscriptionStats{Total: len(recs)}
	for _, r := range recs {
		status := types.NormalizeSubscriptionStatus(string(r.Status))
		switch status {
		case types.SubscriptionStatusActive:
			st.Active++
		case types.SubscriptionStatusTrialing:
			st.Trialing++
		case types.SubscriptionStatusCanceled:
			st.Canceled++
		case types.SubscriptionStatusPastDue:
			st.PastDue++
		case types.SubscriptionStatusUnpaid:
			st.Unpaid++
		default:
			st.Incomplete++
		}
		if !status.IsRevenueBearing() {
			continue
		}
		st.TotalRevenue += r.Amount
		switch r.Interval {
		case types.BillingIntervalMonth:
			st.MonthlyRevenue += r.Amount
		case types.BillingIntervalYear:
			st.YearlyRevenue += r.Amount
		}
	}
	return st
}
