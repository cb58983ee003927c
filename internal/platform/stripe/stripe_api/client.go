package stripe_api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fatflowers/crm/internal/platform/stripe/stripe_notification"
	"github.com/fatflowers/crm/pkg/config"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/invoice"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/paymentmethod"
	"github.com/stripe/stripe-go/v82/price"
	"github.com/stripe/stripe-go/v82/subscription"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	DefaultLookupTimeout = 5 * time.Second
	// MaxListLimit bounds how many objects a single list call walks.
	MaxListLimit = 100
)

var ErrMissingCustomerID = errors.New("customer id is empty")

// CustomerInfo is what the ledger needs to label a subscription with its owner.
type CustomerInfo struct {
	ID    string
	Name  string
	Email string
}

// CustomerSubscription is a customer's subscription as shown by the dashboard.
type CustomerSubscription struct {
	ID                string    `json:"id"`
	PlanID            string    `json:"plan_id"`
	PlanName          string    `json:"plan_name"`
	Status            string    `json:"status"`
	Amount            int64     `json:"amount"`
	Currency          string    `json:"currency"`
	Interval          string    `json:"interval"`
	CurrentPeriodEnd  time.Time `json:"current_period_end"`
	CancelAtPeriodEnd bool      `json:"cancel_at_period_end"`
}

// Payment is one paid or attempted invoice in a customer's history.
type Payment struct {
	ID          string    `json:"id"`
	Number      string    `json:"number,omitempty"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	Created     time.Time `json:"created"`
	ReceiptURL  string    `json:"receipt_url,omitempty"`
}

type Client struct {
	customers      customer.Client
	subscriptions  subscription.Client
	invoices       invoice.Client
	paymentIntents paymentintent.Client
	paymentMethods paymentmethod.Client
	prices         price.Client
	timeout        time.Duration
	log            *zap.SugaredLogger
}

func NewClient(cfg *config.Config, log *zap.SugaredLogger) *Client {
	timeout := cfg.Stripe.LookupTimeout
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	backendCfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: timeout},
		LeveledLogger:     log,
		MaxNetworkRetries: stripe.Int64(1),
	}
	if cfg.Stripe.APIURL != "" {
		backendCfg.URL = stripe.String(cfg.Stripe.APIURL)
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg)
	key := cfg.Stripe.SecretKey

	return &Client{
		customers:      customer.Client{B: backend, Key: key},
		subscriptions:  subscription.Client{B: backend, Key: key},
		invoices:       invoice.Client{B: backend, Key: key},
		paymentIntents: paymentintent.Client{B: backend, Key: key},
		paymentMethods: paymentmethod.Client{B: backend, Key: key},
		prices:         price.Client{B: backend, Key: key},
		timeout:        timeout,
		log:            log,
	}
}

// LookupCustomer fetches a customer's display fields, bounded by the lookup timeout.
func (c *Client) LookupCustomer(ctx context.Context, customerID string) (*CustomerInfo, error) {
	if customerID == "" {
		return nil, ErrMissingCustomerID
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := &stripe.CustomerParams{}
	params.Context = ctx
	cus, err := c.customers.Get(customerID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve customer %s: %w", customerID, err)
	}
	return &CustomerInfo{ID: cus.ID, Name: cus.Name, Email: cus.Email}, nil
}

// ListCustomerSubscriptions returns up to limit subscriptions of any status, newest first.
func (c *Client) ListCustomerSubscriptions(ctx context.Context, customerID string, limit int) ([]*CustomerSubscription, error) {
	if customerID == "" {
		return nil, ErrMissingCustomerID
	}
	limit = clampLimit(limit)

	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String("all"),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(int64(limit))

	out := make([]*CustomerSubscription, 0, limit)
	it := c.subscriptions.List(params)
	for len(out) < limit && it.Next() {
		sub, err := convert(it.Subscription(), stripe_notification.DecodeSubscription)
		if err != nil {
			return nil, err
		}
		out = append(out, &CustomerSubscription{
			ID:                sub.ID,
			PlanID:            sub.PlanID(),
			PlanName:          sub.PlanName(),
			Status:            sub.Status,
			Amount:            sub.Amount(),
			Currency:          sub.Currency(),
			Interval:          sub.Interval(),
			CurrentPeriodEnd:  sub.PeriodEnd(),
			CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		})
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("failed to list subscriptions for %s: %w", customerID, err)
	}
	return out, nil
}

// ListPaymentHistory returns up to limit invoices of the customer, newest first.
func (c *Client) ListPaymentHistory(ctx context.Context, customerID string, limit int) ([]*Payment, error) {
	if customerID == "" {
		return nil, ErrMissingCustomerID
	}
	limit = clampLimit(limit)

	params := &stripe.InvoiceListParams{
		Customer: stripe.String(customerID),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(int64(limit))

	out := make([]*Payment, 0, limit)
	it := c.invoices.List(params)
	for len(out) < limit && it.Next() {
		inv, err := convert(it.Invoice(), stripe_notification.DecodeInvoice)
		if err != nil {
			return nil, err
		}
		out = append(out, &Payment{
			ID:          inv.ID,
			Number:      inv.Number,
			Amount:      inv.AmountPaid,
			Currency:    inv.Currency,
			Status:      inv.Status,
			Description: inv.Description,
			Created:     stripe_notification.Unix(inv.Created),
			ReceiptURL:  inv.HostedInvoiceURL,
		})
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("failed to list invoices for %s: %w", customerID, err)
	}
	return out, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// convert re-reads an API object through the webhook payload decoders so both
// paths share one view of Stripe's shapes across API versions.
func convert[T any](obj any, decode func([]byte) (*T, error)) (*T, error) {
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stripe object: %w", err)
	}
	return decode(raw)
}

var Module = fx.Options(
	fx.Provide(NewClient),
)
