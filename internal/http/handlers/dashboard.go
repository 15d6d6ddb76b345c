package handlers

import (
	"net/http"

	"laundry-admin/internal/http/middleware"
	"laundry-admin/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/dashboard?timeRange=week or ?from=...&to=...
func Dashboard(c *gin.Context) {
	svc := services.DashboardService{RequestID: middleware.GetRequestID(c)}
	out, err := svc.Get(c.Query("timeRange"), c.Query("from"), c.Query("to"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
