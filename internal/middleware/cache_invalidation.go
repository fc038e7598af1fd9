package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guardwise/guardwise-api/internal/service"
)

// DashboardInvalidation drops the cached dashboard snapshot after any
// successful mutation so the next read rebuilds it.
func DashboardInvalidation(dashboard *service.DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if dashboard == nil || c.Request.Method == http.MethodGet {
			return
		}
		if status := c.Writer.Status(); status >= http.StatusOK && status < http.StatusMultipleChoices {
			dashboard.Invalidate(c.Request.Context())
		}
	}
}
