package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/guardwise/guardwise-api/internal/middleware"
	"github.com/guardwise/guardwise-api/internal/models"
)

// actorFrom resolves the acting admin's email from JWT claims for audit
// attribution. Unauthenticated contexts report "system".
func actorFrom(c *gin.Context) string {
	value, ok := c.Get(middleware.ContextUserKey)
	if !ok {
		return "system"
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok || claims.Email == "" {
		return "system"
	}
	return claims.Email
}
