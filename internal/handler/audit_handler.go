package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guardwise/guardwise-api/internal/service"
	"github.com/guardwise/guardwise-api/pkg/response"
)

// AuditHandler exposes the audit trail.
type AuditHandler struct {
	audit *service.AuditService
}

// NewAuditHandler constructs AuditHandler.
func NewAuditHandler(audit *service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List godoc
// @Summary List recent audit entries
// @Tags Audit
// @Produce json
// @Param module query string false "Filter by module"
// @Param limit query int false "Max entries, default 50"
// @Success 200 {object} response.Envelope
// @Router /audit [get]
func (h *AuditHandler) List(c *gin.Context) {
	limit := 50
	if parsed, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil && parsed > 0 {
		limit = parsed
	}

	entries, err := h.audit.List(c.Request.Context(), strings.TrimSpace(c.Query("module")), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
