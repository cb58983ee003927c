package stripe_api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatflowers/crm/internal/platform/stripe/stripe_notification"
	"github.com/stripe/stripe-go/v82"
)

// PlanCurrency is the currency every catalogue plan is billed in.
const PlanCurrency = "usd"

var (
	ErrUnknownPlan           = errors.New("invalid plan id")
	ErrMissingSubscriptionID = errors.New("subscription id is empty")
)

// Plan is a sellable tier of the dashboard's catalogue, billed monthly.
type Plan struct {
	ID     string
	Name   string
	Amount int64
}

var plans = map[string]Plan{
	"rev1_tier1":      {ID: "rev1_tier1", Name: "REV1 Basic", Amount: 900},
	"rev1_tier2":      {ID: "rev1_tier2", Name: "REV1 Standard", Amount: 1900},
	"rev1_tier3":      {ID: "rev1_tier3", Name: "REV1 Premium", Amount: 2900},
	"rev2_coaching":   {ID: "rev2_coaching", Name: "REV2 Coaching", Amount: 19900},
	"rev3_enterprise": {ID: "rev3_enterprise", Name: "REV3 Enterprise", Amount: 49900},
}

// LookupPlan returns the catalogue entry for planID.
func LookupPlan(planID string) (Plan, error) {
	p, ok := plans[planID]
	if !ok {
		return Plan{}, fmt.Errorf("%w: %q", ErrUnknownPlan, planID)
	}
	return p, nil
}

type PaymentIntent struct {
	ID           string `json:"paymentIntentId"`
	ClientSecret string `json:"clientSecret"`
}

type CreateSubscriptionRequest struct {
	PaymentMethodID string
	PlanID          string
	// CustomerID is the CRM customer id, stored as metadata on the Stripe objects.
	CustomerID string
}

type CreatedSubscription struct {
	ID               string    `json:"id"`
	Status           string    `json:"status"`
	CurrentPeriodEnd time.Time `json:"current_period_end"`
	PlanID           string    `json:"plan_id"`
}

type CanceledSubscription struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
}

// CreatePaymentIntent starts a one-time payment for the plan's amount.
func (c *Client) CreatePaymentIntent(ctx context.Context, planID, customerID string) (*PaymentIntent, error) {
	plan, err := LookupPlan(planID)
	if err != nil {
		return nil, err
	}
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(plan.Amount),
		Currency: stripe.String(PlanCurrency),
	}
	params.Context = ctx
	params.AddMetadata("plan_id", plan.ID)
	params.AddMetadata("customer_id", customerID)

	pi, err := c.paymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return &PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// CreateSubscription subscribes the payment method's owner to a catalogue plan. A payment
// method not yet attached to a customer gets a new customer.
func (c *Client) CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (*CreatedSubscription, error) {
	plan, err := LookupPlan(req.PlanID)
	if err != nil {
		return nil, err
	}

	customerID, err := c.ensurePaymentMethodCustomer(ctx, req)
	if err != nil {
		return nil, err
	}

	cusParams := &stripe.CustomerParams{
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(req.PaymentMethodID),
		},
	}
	cusParams.Context = ctx
	if _, err := c.customers.Update(customerID, cusParams); err != nil {
		return nil, fmt.Errorf("failed to set default payment method for %s: %w", customerID, err)
	}

	priceID, err := c.createPlanPrice(ctx, plan)
	if err != nil {
		return nil, err
	}

	subParams := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items:    []*stripe.SubscriptionItemsParams{{Price: stripe.String(priceID)}},
	}
	subParams.Context = ctx
	subParams.AddMetadata("plan_id", plan.ID)
	subParams.AddMetadata("customer_id", req.CustomerID)

	created, err := c.subscriptions.New(subParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	sub, err := convert(created, stripe_notification.DecodeSubscription)
	if err != nil {
		return nil, err
	}
	c.log.Infow("stripe subscription created", "subscription_id", sub.ID, "customer_id", customerID, "plan_id", plan.ID)
	return &CreatedSubscription{
		ID:               sub.ID,
		Status:           sub.Status,
		CurrentPeriodEnd: sub.PeriodEnd(),
		PlanID:           plan.ID,
	}, nil
}

func (c *Client) ensurePaymentMethodCustomer(ctx context.Context, req CreateSubscriptionRequest) (string, error) {
	pmParams := &stripe.PaymentMethodParams{}
	pmParams.Context = ctx
	pm, err := c.paymentMethods.Get(req.PaymentMethodID, pmParams)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve payment method %s: %w", req.PaymentMethodID, err)
	}
	if pm.Customer != nil && pm.Customer.ID != "" {
		return pm.Customer.ID, nil
	}

	cusParams := &stripe.CustomerParams{}
	cusParams.Context = ctx
	cusParams.AddMetadata("customer_id", req.CustomerID)
	cus, err := c.customers.New(cusParams)
	if err != nil {
		return "", fmt.Errorf("failed to create customer: %w", err)
	}

	attach := &stripe.PaymentMethodAttachParams{Customer: stripe.String(cus.ID)}
	attach.Context = ctx
	if _, err := c.paymentMethods.Attach(req.PaymentMethodID, attach); err != nil {
		return "", fmt.Errorf("failed to attach payment method to %s: %w", cus.ID, err)
	}
	return cus.ID, nil
}

// createPlanPrice creates a monthly price for plan. The lookup key moves to the newest
// price, so webhook records resolve plan_id to the catalogue id.
func (c *Client) createPlanPrice(ctx context.Context, plan Plan) (string, error) {
	params := &stripe.PriceParams{
		UnitAmount:        stripe.Int64(plan.Amount),
		Currency:          stripe.String(PlanCurrency),
		Nickname:          stripe.String(plan.Name),
		LookupKey:         stripe.String(plan.ID),
		TransferLookupKey: stripe.Bool(true),
		Recurring:         &stripe.PriceRecurringParams{Interval: stripe.String(stripe_notification.DefaultInterval)},
		ProductData: &stripe.PriceProductDataParams{
			Name:     stripe.String(plan.Name),
			Metadata: map[string]string{"plan_id": plan.ID},
		},
	}
	params.Context = ctx
	p, err := c.prices.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create price for %s: %w", plan.ID, err)
	}
	return p.ID, nil
}

// CancelSubscription schedules the subscription to end with its current period.
func (c *Client) CancelSubscription(ctx context.Context, subscriptionID string) (*CanceledSubscription, error) {
	if subscriptionID == "" {
		return nil, ErrMissingSubscriptionID
	}
	params := &stripe.SubscriptionParams{CancelAtPeriodEnd: stripe.Bool(true)}
	params.Context = ctx
	sub, err := c.subscriptions.Update(subscriptionID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel subscription %s: %w", subscriptionID, err)
	}
	return &CanceledSubscription{
		ID:                sub.ID,
		Status:            string(sub.Status),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}, nil
}
