package types

type SubscriptionStatus string

const (
	SubscriptionStatusActive     SubscriptionStatus = "active"
	SubscriptionStatusTrialing   SubscriptionStatus = "trialing"
	SubscriptionStatusCanceled   SubscriptionStatus = "canceled"
	SubscriptionStatusPastDue    SubscriptionStatus = "past_due"
	SubscriptionStatusUnpaid     SubscriptionStatus = "unpaid"
	SubscriptionStatusIncomplete SubscriptionStatus = "incomplete"
)

// SubscriptionStatuses lists every status the ledger tracks, in reporting order.
var SubscriptionStatuses = []SubscriptionStatus{
	SubscriptionStatusActive,
	SubscriptionStatusTrialing,
	SubscriptionStatusCanceled,
	SubscriptionStatusPastDue,
	SubscriptionStatusUnpaid,
	SubscriptionStatusIncomplete,
}

// IsRevenueBearing reports whether a subscription in this status counts toward revenue.
func (s SubscriptionStatus) IsRevenueBearing() bool {
	return s == SubscriptionStatusActive || s == SubscriptionStatusTrialing
}

type BillingInterval string

const (
	BillingIntervalMonth BillingInterval = "month"
	BillingIntervalYear  BillingInterval = "year"
)

type SubscriptionSource string

const (
	SubscriptionSourceWebhook SubscriptionSource = "webhook"
)

// NormalizeSubscriptionStatus maps a provider status onto the ledger's status set.
// Stripe's terminal incomplete_expired counts as canceled and paused as unpaid;
// anything unrecognised is treated as incomplete.
func NormalizeSubscriptionStatus(raw string) SubscriptionStatus {
	switch s := SubscriptionStatus(raw); s {
	case SubscriptionStatusActive, SubscriptionStatusTrialing, SubscriptionStatusCanceled,
		SubscriptionStatusPastDue, SubscriptionStatusUnpaid, SubscriptionStatusIncomplete:
		return s
	case "incomplete_expired":
		return SubscriptionStatusCanceled
	case "paused":
		return SubscriptionStatusUnpaid
	default:
		return SubscriptionStatusIncomplete
	}
}
