package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guardwise/guardwise-api/internal/service"
	appErrors "github.com/guardwise/guardwise-api/pkg/errors"
	"github.com/guardwise/guardwise-api/pkg/response"
)

// AvailabilityHandler exposes guard availability endpoints.
type AvailabilityHandler struct {
	availability *service.AvailabilityService
}

// NewAvailabilityHandler constructs AvailabilityHandler.
func NewAvailabilityHandler(availability *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// List godoc
// @Summary List availability records
// @Tags Availability
// @Produce json
// @Param guardId query string false "Filter by guard"
// @Success 200 {object} response.Envelope
// @Router /availability [get]
func (h *AvailabilityHandler) List(c *gin.Context) {
	records, err := h.availability.List(c.Request.Context(), strings.TrimSpace(c.Query("guardId")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// Check godoc
// @Summary Check whether a guard is unavailable inside a date range
// @Tags Availability
// @Produce json
// @Param guardId query string true "Guard ID"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /availability/check [get]
func (h *AvailabilityHandler) Check(c *gin.Context) {
	guardID := strings.TrimSpace(c.Query("guardId"))
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	if guardID == "" || from == "" || to == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "guardId, from and to are required"))
		return
	}

	hit, err := h.availability.CheckRange(c.Request.Context(), guardID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"available": hit == nil, "hit": hit}, nil)
}

// CreateLeave godoc
// @Summary Record unavailability for one or more guards
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body service.CreateLeaveRequest true "Leave entry"
// @Success 201 {object} response.Envelope
// @Router /availability [post]
func (h *AvailabilityHandler) CreateLeave(c *gin.Context) {
	var req service.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	created, err := h.availability.CreateLeave(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Delete godoc
// @Summary Remove a manual availability record
// @Description Roster-derived records cannot be deleted here; edit the
// @Description roster instead.
// @Tags Availability
// @Param id path string true "Record ID"
// @Success 204
// @Router /availability/{id} [delete]
func (h *AvailabilityHandler) Delete(c *gin.Context) {
	if err := h.availability.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
