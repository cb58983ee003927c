package handlers

import (
	"net/http"
	"time"

	"github.com/fatflowers/crm/pkg/config"

	"github.com/gin-gonic/gin"
)

const apiVersion = "1.0.0"

type HealthStatus struct {
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	Version     string    `json:"version"`
	Environment string    `json:"environment"`
	WebhookURL  string    `json:"webhook_url"`
}

// @Summary      Health check
// @Description  Returns service status and the URL Stripe should deliver webhooks to
// @Tags         System
// @Produce      json
// @Success      200  {object}  handlers.HealthStatus
// @Router       /api/health [get]
func ApiHealth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme := "http"
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		c.JSON(http.StatusOK, HealthStatus{
			Status:      "ok",
			Message:     "CRM API is running",
			Timestamp:   time.Now().UTC(),
			Version:     apiVersion,
			Environment: string(cfg.Env),
			WebhookURL:  scheme + "://" + c.Request.Host + "/api/webhooks/stripe",
		})
	}
}

func RegisterHealthRoutes(r gin.IRouter, cfg *config.Config) {
	r.GET("/health", ApiHealth(cfg))
}
