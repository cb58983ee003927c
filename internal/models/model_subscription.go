package models

import (
	"github.com/fatflowers/crm/pkg/types"
	"time"
)

// Subscription is one row of the subscription ledger, keyed by the Stripe subscription id.
// Amounts are integer minor currency units (cents), as Stripe reports them.
type Subscription struct {
	ID            string                   `gorm:"column:id;type:varchar(128);primary_key" json:"id"`
	CustomerID    string                   `gorm:"column:customer_id;type:varchar(128);index" json:"customer_id"`
	CustomerName  string                   `gorm:"column:customer_name;type:varchar(256)" json:"customer_name"`
	CustomerEmail string                   `gorm:"column:customer_email;type:varchar(256)" json:"customer_email"`
	PlanID        string                   `gorm:"column:plan_id;type:varchar(128)" json:"plan_id"`
	PlanName      string                   `gorm:"column:plan_name;type:varchar(256)" json:"plan_name"`
	Amount        int64                    `gorm:"column:amount;not null;default:0" json:"amount"`
	Currency      string                   `gorm:"column:currency;type:varchar(16)" json:"currency"`
	Interval      types.BillingInterval    `gorm:"column:interval;type:varchar(16)" json:"interval"`
	Status        types.SubscriptionStatus `gorm:"column:status;type:varchar(32);not null;index" json:"status"`
	Source        types.SubscriptionSource `gorm:"column:source;type:varchar(32)" json:"source"`
	// CreatedAt is the provider-side creation time, not the row insertion time.
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	CurrentPeriodStart time.Time  `gorm:"column:current_period_start" json:"current_period_start"`
	CurrentPeriodEnd   time.Time  `gorm:"column:current_period_end" json:"current_period_end"`
	LastPayment        *time.Time `gorm:"column:last_payment;default:null" json:"last_payment,omitempty"`
	LastPaymentAmount  *int64     `gorm:"column:last_payment_amount;default:null" json:"last_payment_amount,omitempty"`
	CanceledAt         *time.Time `gorm:"column:canceled_at;default:null" json:"canceled_at,omitempty"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscription"
}

// Clone returns a deep copy so callers never share pointer fields with the store.
func (s *Subscription) Clone() *Subscription {
	if s == nil {
		return nil
	}
	c := *s
	if s.LastPayment != nil {
		t := *s.LastPayment
		c.LastPayment = &t
	}
	if s.LastPaymentAmount != nil {
		a := *s.LastPaymentAmount
		c.LastPaymentAmount = &a
	}
	if s.CanceledAt != nil {
		t := *s.CanceledAt
		c.CanceledAt = &t
	}
	return &c
}
