package handlers

import (
	"errors"
	"io"
	"net/http"

	nh "github.com/fatflowers/crm/internal/app/service/notification_handler"
	"github.com/fatflowers/crm/internal/platform/stripe/stripe_notification"
	"github.com/fatflowers/crm/pkg/logctx"
	"github.com/fatflowers/crm/pkg/response"

	"github.com/gin-gonic/gin"
)

type WebhookAck struct {
	Received  bool   `json:"received"`
	EventType string `json:"event_type"`
}

// @Summary      Stripe Webhook
// @Description  Receives Stripe events. The raw body is verified against the Stripe-Signature header; verified events are acknowledged with 200 even when processing fails.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature header string true "Stripe webhook signature"
// @Param        payload body object true "Stripe event"
// @Success      200  {object}  handlers.WebhookAck
// @Failure      400  {object}  response.APIResponse
// @Failure      413  {object}  response.APIResponse
// @Router       /api/webhooks/stripe [post]
func ApiStripeWebhook(h *nh.NotificationHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logctx.FromGin(c, h.Logger)

		payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, stripe_notification.MaxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, response.Error("webhook body too large"))
				return
			}
			log.Warnw("webhook_stripe_read_error", "error", err.Error())
			c.JSON(http.StatusBadRequest, response.Error("failed to read body"))
			return
		}

		res, err := h.HandleNotification(c.Request.Context(), payload, c.GetHeader(stripe_notification.SignatureHeader))
		if err != nil {
			if errors.Is(err, stripe_notification.ErrInvalidSignature) {
				c.JSON(http.StatusBadRequest, response.Error("Webhook Error: "+err.Error()))
				return
			}
			log.Errorw("webhook_stripe_handle_error", "error", err.Error())
			c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
			return
		}
		c.JSON(http.StatusOK, WebhookAck{Received: true, EventType: res.EventType})
	}
}

func RegisterWebhookRoutes(r gin.IRouter, h *nh.NotificationHandler) {
	// Mount under provided group, expected at "/api/webhooks"
	r.POST("/stripe", ApiStripeWebhook(h))
}
