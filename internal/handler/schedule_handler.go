package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guardwise/guardwise-api/internal/models"
	"github.com/guardwise/guardwise-api/internal/service"
	appErrors "github.com/guardwise/guardwise-api/pkg/errors"
	"github.com/guardwise/guardwise-api/pkg/response"
)

// ScheduleHandler exposes patrol schedule endpoints including the
// grouped board views the admin console renders.
type ScheduleHandler struct {
	schedules *service.ScheduleService
}

// NewScheduleHandler constructs ScheduleHandler.
func NewScheduleHandler(schedules *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

func scheduleFilterFromQuery(c *gin.Context) (models.ScheduleFilter, error) {
	var filter models.ScheduleFilter
	filter.GuardID = strings.TrimSpace(c.Query("guardId"))
	filter.ZoneName = strings.TrimSpace(c.Query("zone"))
	filter.Search = strings.TrimSpace(c.Query("search"))
	if raw := c.Query("status"); raw != "" {
		status := models.ScheduleStatus(raw)
		if !status.Valid() {
			return filter, appErrors.Clone(appErrors.ErrValidation, "unknown schedule status")
		}
		filter.Status = &status
	}
	return filter, nil
}

// List godoc
// @Summary List schedule rows
// @Tags Schedules
// @Produce json
// @Param guardId query string false "Filter by guard"
// @Param zone query string false "Filter by zone name"
// @Param status query string false "Filter by status (active, inactive)"
// @Param search query string false "Search guard or checkpoint name"
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	filter, err := scheduleFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	schedules, err := h.schedules.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules, nil)
}

// ByGuard godoc
// @Summary Schedule rows grouped per guard
// @Tags Schedules
// @Produce json
// @Param zone query string false "Filter by zone name"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Envelope
// @Router /schedules/by-guard [get]
func (h *ScheduleHandler) ByGuard(c *gin.Context) {
	filter, err := scheduleFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	schedules, err := h.schedules.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, service.GroupByGuard(schedules), nil)
}

// ByDateRange godoc
// @Summary Schedule rows grouped per date range
// @Tags Schedules
// @Produce json
// @Param zone query string false "Filter by zone name"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Envelope
// @Router /schedules/by-range [get]
func (h *ScheduleHandler) ByDateRange(c *gin.Context) {
	filter, err := scheduleFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	schedules, err := h.schedules.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, service.GroupByDateRange(schedules), nil)
}

// ZoneLoad godoc
// @Summary Planned visit load per zone
// @Tags Schedules
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedules/zone-load [get]
func (h *ScheduleHandler) ZoneLoad(c *gin.Context) {
	schedules, err := h.schedules.List(c.Request.Context(), models.ScheduleFilter{})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, service.ZoneLoad(schedules), nil)
}

// Stats godoc
// @Summary Headline schedule counters
// @Tags Schedules
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedules/stats [get]
func (h *ScheduleHandler) Stats(c *gin.Context) {
	schedules, err := h.schedules.List(c.Request.Context(), models.ScheduleFilter{})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, service.Stats(schedules), nil)
}

// BulkCreate godoc
// @Summary Create a batch of schedule rows for one guard
// @Description Validates the whole batch against availability and
// @Description existing assignments. Nothing is created unless every
// @Description row passes.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body service.BulkCreateScheduleRequest true "Batch"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /schedules/bulk [post]
func (h *ScheduleHandler) BulkCreate(c *gin.Context) {
	var req service.BulkCreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	created, err := h.schedules.BulkCreate(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update godoc
// @Summary Update time slots or grace window of a schedule row
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param payload body service.UpdateScheduleRequest true "Changes"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id} [put]
func (h *ScheduleHandler) Update(c *gin.Context) {
	var req service.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	schedule, err := h.schedules.Update(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// ToggleStatus godoc
// @Summary Flip a schedule row between active and inactive
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/status [patch]
func (h *ScheduleHandler) ToggleStatus(c *gin.Context) {
	schedule, err := h.schedules.ToggleStatus(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// Delete godoc
// @Summary Remove a schedule row
// @Tags Schedules
// @Param id path string true "Schedule ID"
// @Success 204
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.schedules.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
