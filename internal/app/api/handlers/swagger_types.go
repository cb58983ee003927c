package handlers

import (
	"github.com/fatflowers/crm/internal/app/service/statistics"
	"github.com/fatflowers/crm/internal/models"
	"github.com/fatflowers/crm/internal/platform/stripe/stripe_api"
)

// The Resp* types document the flat success envelopes built by response.List and response.Item.

type RespSubscriptions struct {
	Success       bool                   `json:"success"`
	Count         int                    `json:"count"`
	Subscriptions []*models.Subscription `json:"subscriptions"`
}

type RespSubscriptionStats struct {
	Success bool                         `json:"success"`
	Stats   statistics.SubscriptionStats `json:"stats"`
}

type RespWebhookEvents struct {
	Success bool                   `json:"success"`
	Count   int                    `json:"count"`
	Events  []*models.WebhookEvent `json:"events"`
}

type RespCustomerAnalytics struct {
	Success   bool                         `json:"success"`
	Analytics statistics.CustomerAnalytics `json:"analytics"`
}

type RespCustomerSubscriptions struct {
	Success       bool                               `json:"success"`
	Count         int                                `json:"count"`
	Subscriptions []*stripe_api.CustomerSubscription `json:"subscriptions"`
}

type RespPaymentHistory struct {
	Success  bool                  `json:"success"`
	Count    int                   `json:"count"`
	Payments []*stripe_api.Payment `json:"payments"`
}

type RespPaymentIntent struct {
	Success bool `json:"success"`
	stripe_api.PaymentIntent
}

type RespCreatedSubscription struct {
	Success      bool                           `json:"success"`
	Subscription stripe_api.CreatedSubscription `json:"subscription"`
}

type RespCanceledSubscription struct {
	Success      bool                            `json:"success"`
	Subscription stripe_api.CanceledSubscription `json:"subscription"`
}
