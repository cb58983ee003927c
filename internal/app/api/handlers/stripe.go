package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/fatflowers/crm/internal/platform/stripe/stripe_api"
	"github.com/fatflowers/crm/pkg/logctx"
	"github.com/fatflowers/crm/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultPaymentHistoryLimit = 20

// StripeCustomerReader reads a customer's billing objects straight from Stripe.
type StripeCustomerReader interface {
	ListCustomerSubscriptions(ctx context.Context, customerID string, limit int) ([]*stripe_api.CustomerSubscription, error)
	ListPaymentHistory(ctx context.Context, customerID string, limit int) ([]*stripe_api.Payment, error)
}

// StripeBilling performs the dashboard's billing actions on Stripe.
type StripeBilling interface {
	CreatePaymentIntent(ctx context.Context, planID, customerID string) (*stripe_api.PaymentIntent, error)
	CreateSubscription(ctx context.Context, req stripe_api.CreateSubscriptionRequest) (*stripe_api.CreatedSubscription, error)
	CancelSubscription(ctx context.Context, subscriptionID string) (*stripe_api.CanceledSubscription, error)
}

type StripeGateway interface {
	StripeCustomerReader
	StripeBilling
}

type CreatePaymentIntentRequest struct {
	PlanID     string `json:"planId" binding:"required"`
	CustomerID string `json:"customerId" binding:"required"`
}

type CreateSubscriptionRequest struct {
	PaymentMethodID string `json:"paymentMethodId" binding:"required"`
	PlanID          string `json:"planId" binding:"required"`
	CustomerID      string `json:"customerId" binding:"required"`
}

type CancelSubscriptionRequest struct {
	SubscriptionID string `json:"subscriptionId" binding:"required"`
}

// billingStatus maps a billing error to its response code.
func billingStatus(err error) int {
	if errors.Is(err, stripe_api.ErrUnknownPlan) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

// @Summary      Create Payment Intent
// @Description  Starts a one-time payment for a catalogue plan and returns its client secret.
// @Tags         Stripe
// @Accept       json
// @Produce      json
// @Param        request body handlers.CreatePaymentIntentRequest true "Plan and CRM customer"
// @Success      200  {object}  handlers.RespPaymentIntent
// @Failure      400  {object}  response.APIResponse
// @Failure      502  {object}  response.APIResponse
// @Router       /api/stripe/create-payment-intent [post]
func ApiCreatePaymentIntent(client StripeBilling, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePaymentIntentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Error("Missing required fields: planId, customerId"))
			return
		}
		pi, err := client.CreatePaymentIntent(c.Request.Context(), req.PlanID, req.CustomerID)
		if err != nil {
			logctx.FromGin(c, log).Errorw("stripe_create_payment_intent_error", "plan_id", req.PlanID, "error", err.Error())
			c.JSON(billingStatus(err), response.Error(err.Error()))
			return
		}
		c.JSON(http.StatusOK, RespPaymentIntent{Success: true, PaymentIntent: *pi})
	}
}

// @Summary      Create Subscription
// @Description  Subscribes the payment method's customer to a catalogue plan, creating the Stripe customer when needed.
// @Tags         Stripe
// @Accept       json
// @Produce      json
// @Param        request body handlers.CreateSubscriptionRequest true "Payment method, plan and CRM customer"
// @Success      200  {object}  handlers.RespCreatedSubscription
// @Failure      400  {object}  response.APIResponse
// @Failure      502  {object}  response.APIResponse
// @Router       /api/stripe/create-subscription [post]
func ApiCreateSubscription(client StripeBilling, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSubscriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Error("Missing required fields: paymentMethodId, planId, customerId"))
			return
		}
		sub, err := client.CreateSubscription(c.Request.Context(), stripe_api.CreateSubscriptionRequest{
			PaymentMethodID: req.PaymentMethodID,
			PlanID:          req.PlanID,
			CustomerID:      req.CustomerID,
		})
		if err != nil {
			logctx.FromGin(c, log).Errorw("stripe_create_subscription_error", "plan_id", req.PlanID, "customer_id", req.CustomerID, "error", err.Error())
			c.JSON(billingStatus(err), response.Error(err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.Item("subscription", sub))
	}
}

// @Summary      Cancel Subscription
// @Description  Schedules a Stripe subscription to cancel at the end of its current period.
// @Tags         Stripe
// @Accept       json
// @Produce      json
// @Param        request body handlers.CancelSubscriptionRequest true "Subscription to cancel"
// @Success      200  {object}  handlers.RespCanceledSubscription
// @Failure      400  {object}  response.APIResponse
// @Failure      502  {object}  response.APIResponse
// @Router       /api/stripe/cancel-subscription [post]
func ApiCancelSubscription(client StripeBilling, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CancelSubscriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Error("Missing subscription ID"))
			return
		}
		sub, err := client.CancelSubscription(c.Request.Context(), req.SubscriptionID)
		if err != nil {
			logctx.FromGin(c, log).Errorw("stripe_cancel_subscription_error", "subscription_id", req.SubscriptionID, "error", err.Error())
			c.JSON(billingStatus(err), response.Error(err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.Item("subscription", sub))
	}
}

// @Summary      Customer Subscriptions (Stripe)
// @Description  Lists a Stripe customer's subscriptions of any status.
// @Tags         Stripe
// @Produce      json
// @Param        customer_id path string true "Stripe customer id"
// @Success      200  {object}  handlers.RespCustomerSubscriptions
// @Failure      502  {object}  response.APIResponse
// @Router       /api/stripe/subscriptions/{customer_id} [get]
func ApiCustomerSubscriptions(client StripeCustomerReader, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.Param("customer_id")
		subs, err := client.ListCustomerSubscriptions(c.Request.Context(), customerID, 0)
		if err != nil {
			logctx.FromGin(c, log).Errorw("stripe_list_subscriptions_error", "customer_id", customerID, "error", err.Error())
			c.JSON(http.StatusBadGateway, response.Error(err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.List("subscriptions", subs))
	}
}

// @Summary      Payment History (Stripe)
// @Description  Lists a Stripe customer's invoices, newest first.
// @Tags         Stripe
// @Produce      json
// @Param        customer_id path string true "Stripe customer id"
// @Param        limit query int false "Maximum number of payments (default 20, max 100)"
// @Success      200  {object}  handlers.RespPaymentHistory
// @Failure      502  {object}  response.APIResponse
// @Router       /api/stripe/payment-history/{customer_id} [get]
func ApiPaymentHistory(client StripeCustomerReader, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.Param("customer_id")
		limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPaymentHistoryLimit)))
		if err != nil || limit <= 0 {
			limit = defaultPaymentHistoryLimit
		}
		payments, err := client.ListPaymentHistory(c.Request.Context(), customerID, limit)
		if err != nil {
			logctx.FromGin(c, log).Errorw("stripe_payment_history_error", "customer_id", customerID, "error", err.Error())
			c.JSON(http.StatusBadGateway, response.Error(err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.List("payments", payments))
	}
}

func RegisterStripeRoutes(r gin.IRouter, client StripeGateway, log *zap.SugaredLogger) {
	r.POST("/create-payment-intent", ApiCreatePaymentIntent(client, log))
	r.POST("/create-subscription", ApiCreateSubscription(client, log))
	r.POST("/cancel-subscription", ApiCancelSubscription(client, log))
	r.GET("/subscriptions/:customer_id", ApiCustomerSubscriptions(client, log))
	r.GET("/payment-history/:customer_id", ApiPaymentHistory(client, log))
}
