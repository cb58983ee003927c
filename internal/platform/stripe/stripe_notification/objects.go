package stripe_notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ExpandableRef decodes a Stripe field that is either an id string or an expanded object.
type ExpandableRef struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func (r *ExpandableRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ExpandableRef{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = ExpandableRef{ID: id}
		return nil
	}
	type plain ExpandableRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = ExpandableRef(p)
	return nil
}

type PriceRecurring struct {
	Interval string `json:"interval"`
}

type Price struct {
	ID         string          `json:"id"`
	LookupKey  string          `json:"lookup_key"`
	Nickname   string          `json:"nickname"`
	UnitAmount int64           `json:"unit_amount"`
	Currency   string          `json:"currency"`
	Recurring  *PriceRecurring `json:"recurring"`
	Product    ExpandableRef   `json:"product"`
}

type SubscriptionItem struct {
	ID                 string `json:"id"`
	Price              *Price `json:"price"`
	CurrentPeriodStart int64  `json:"current_period_start"`
	CurrentPeriodEnd   int64  `json:"current_period_end"`
}

// Subscription is the subset of a Stripe subscription object the ledger reads.
// Period bounds live on the subscription in older API versions and on its items in newer ones.
type Subscription struct {
	ID                 string        `json:"id"`
	Customer           ExpandableRef `json:"customer"`
	Status             string        `json:"status"`
	Created            int64         `json:"created"`
	CurrentPeriodStart int64         `json:"current_period_start"`
	CurrentPeriodEnd   int64         `json:"current_period_end"`
	CancelAtPeriodEnd  bool          `json:"cancel_at_period_end"`
	CanceledAt         int64         `json:"canceled_at"`
	Items              struct {
		Data []*SubscriptionItem `json:"data"`
	} `json:"items"`
}

func (s *Subscription) firstItem() *SubscriptionItem {
	if len(s.Items.Data) == 0 {
		return nil
	}
	return s.Items.Data[0]
}

// FirstPrice returns the price of the first subscription item, or nil.
func (s *Subscription) FirstPrice() *Price {
	if it := s.firstItem(); it != nil {
		return it.Price
	}
	return nil
}

const (
	UnknownPlanID   = "Unknown"
	UnknownPlanName = "Unknown Plan"
	DefaultCurrency = "eur"
	DefaultInterval = "month"
)

// PlanID prefers the price lookup key, then the price id.
func (s *Subscription) PlanID() string {
	p := s.FirstPrice()
	switch {
	case p == nil:
		return UnknownPlanID
	case p.LookupKey != "":
		return p.LookupKey
	case p.ID != "":
		return p.ID
	}
	return UnknownPlanID
}

func (s *Subscription) PlanName() string {
	p := s.FirstPrice()
	switch {
	case p == nil:
		return UnknownPlanName
	case p.Nickname != "":
		return p.Nickname
	case p.Product.Name != "":
		return p.Product.Name
	}
	return UnknownPlanName
}

// Amount is the unit amount of the first price in minor units.
func (s *Subscription) Amount() int64 {
	if p := s.FirstPrice(); p != nil {
		return p.UnitAmount
	}
	return 0
}

func (s *Subscription) Currency() string {
	if p := s.FirstPrice(); p != nil && p.Currency != "" {
		return strings.ToLower(p.Currency)
	}
	return DefaultCurrency
}

func (s *Subscription) Interval() string {
	if p := s.FirstPrice(); p != nil && p.Recurring != nil && p.Recurring.Interval != "" {
		return p.Recurring.Interval
	}
	return DefaultInterval
}

func (s *Subscription) PeriodStart() time.Time {
	if s.CurrentPeriodStart > 0 {
		return Unix(s.CurrentPeriodStart)
	}
	if it := s.firstItem(); it != nil {
		return Unix(it.CurrentPeriodStart)
	}
	return time.Time{}
}

func (s *Subscription) PeriodEnd() time.Time {
	if s.CurrentPeriodEnd > 0 {
		return Unix(s.CurrentPeriodEnd)
	}
	if it := s.firstItem(); it != nil {
		return Unix(it.CurrentPeriodEnd)
	}
	return time.Time{}
}

type InvoiceParent struct {
	SubscriptionDetails *struct {
		Subscription ExpandableRef `json:"subscription"`
	} `json:"subscription_details"`
}

// Invoice is the subset of a Stripe invoice object the ledger reads.
type Invoice struct {
	ID            string         `json:"id"`
	Customer      ExpandableRef  `json:"customer"`
	CustomerEmail string         `json:"customer_email"`
	AmountPaid    int64          `json:"amount_paid"`
	Currency      string         `json:"currency"`
	Subscription  ExpandableRef  `json:"subscription"`
	Parent        *InvoiceParent `json:"parent"`

	Number           string `json:"number"`
	Status           string `json:"status"`
	Description      string `json:"description"`
	Created          int64  `json:"created"`
	HostedInvoiceURL string `json:"hosted_invoice_url"`
}

// SubscriptionID returns the invoice's subscription id from whichever field the API version uses.
func (i *Invoice) SubscriptionID() string {
	if i.Subscription.ID != "" {
		return i.Subscription.ID
	}
	if i.Parent != nil && i.Parent.SubscriptionDetails != nil {
		return i.Parent.SubscriptionDetails.Subscription.ID
	}
	return ""
}

func DecodeSubscription(raw []byte) (*Subscription, error) {
	var s Subscription
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode subscription: %w", err)
	}
	if s.ID == "" {
		return nil, fmt.Errorf("decode subscription: missing id")
	}
	return &s, nil
}

func DecodeInvoice(raw []byte) (*Invoice, error) {
	var i Invoice
	if err := json.Unmarshal(raw, &i); err != nil {
		return nil, fmt.Errorf("decode invoice: %w", err)
	}
	return &i, nil
}

// Unix converts a Stripe epoch-seconds timestamp; zero stays the zero time.
func Unix(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}
