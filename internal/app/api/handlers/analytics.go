package handlers

import (
	"net/http"

	"github.com/fatflowers/crm/internal/app/service/statistics"
	"github.com/fatflowers/crm/pkg/response"

	"github.com/gin-gonic/gin"
)

// @Summary      Customer Analytics
// @Description  KPIs, the trailing 12 month revenue and growth series, and tier/status distributions.
// @Tags         Analytics
// @Produce      json
// @Success      200  {object}  handlers.RespCustomerAnalytics
// @Failure      500  {object}  response.APIResponse
// @Router       /api/analytics [get]
func ApiCustomerAnalytics(svc *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.GetCustomerAnalytics(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.Item("analytics", res))
	}
}

func RegisterAnalyticsRoutes(r gin.IRouter, svc *statistics.Service) {
	r.GET("/analytics", ApiCustomerAnalytics(svc))
}
