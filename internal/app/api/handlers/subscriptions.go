package handlers

import (
	"net/http"
	"strconv"

	"github.com/fatflowers/crm/internal/app/service/ledger"
	notificationlog "github.com/fatflowers/crm/internal/app/service/notification_log"
	"github.com/fatflowers/crm/internal/app/service/statistics"
	"github.com/fatflowers/crm/pkg/response"

	"github.com/gin-gonic/gin"
)

// @Summary      List Subscriptions
// @Description  Returns every ledger record, newest first.
// @Tags         Subscriptions
// @Produce      json
// @Success      200  {object}  handlers.RespSubscriptions
// @Failure      500  {object}  response.APIResponse
// @Router       /api/subscriptions [get]
func ApiListSubscriptions(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		recs, err := svc.ListSubscriptions(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.List("subscriptions", recs))
	}
}

// @Summary      Subscription Statistics
// @Description  Counts per status and revenue over active and trialing subscriptions, recomputed on every call.
// @Tags         Subscriptions
// @Produce      json
// @Success      200  {object}  handlers.RespSubscriptionStats
// @Failure      500  {object}  response.APIResponse
// @Router       /api/subscriptions/stats [get]
func ApiSubscriptionStats(svc *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.GetSubscriptionStats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.Item("stats", stats))
	}
}

// @Summary      Recent Webhook Events
// @Description  Returns the most recent webhook events, newest first, at most 50.
// @Tags         Subscriptions
// @Produce      json
// @Param        limit query int false "Maximum number of events (1-50)"
// @Success      200  {object}  handlers.RespWebhookEvents
// @Failure      500  {object}  response.APIResponse
// @Router       /api/subscriptions/events [get]
func ApiSubscriptionEvents(svc *notificationlog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		events, err := svc.Recent(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.List("events", events))
	}
}

func RegisterSubscriptionRoutes(r gin.IRouter, ledgerSvc *ledger.Service, stats *statistics.Service, events *notificationlog.Service) {
	r.GET("", ApiListSubscriptions(ledgerSvc))
	r.GET("/stats", ApiSubscriptionStats(stats))
	r.GET("/events", ApiSubscriptionEvents(events))
}
