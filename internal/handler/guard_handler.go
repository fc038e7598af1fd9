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

// GuardHandler exposes guard directory endpoints.
type GuardHandler struct {
	guards *service.GuardService
}

// NewGuardHandler constructs GuardHandler.
func NewGuardHandler(guards *service.GuardService) *GuardHandler {
	return &GuardHandler{guards: guards}
}

// List godoc
// @Summary List guards
// @Tags Guards
// @Produce json
// @Param status query string false "Filter by status (active, on-duty, inactive)"
// @Param zone query string false "Filter by assigned zone"
// @Param search query string false "Search by name, phone or employee id"
// @Success 200 {object} response.Envelope
// @Router /guards [get]
func (h *GuardHandler) List(c *gin.Context) {
	var filter models.GuardFilter
	filter.ZoneName = strings.TrimSpace(c.Query("zone"))
	filter.Search = strings.TrimSpace(c.Query("search"))
	if raw := c.Query("status"); raw != "" {
		status := models.GuardStatus(raw)
		if !status.Valid() {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown guard status"))
			return
		}
		filter.Status = &status
	}

	guards, err := h.guards.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, guards, nil)
}

// Eligible godoc
// @Summary List guards eligible for scheduling
// @Tags Guards
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /guards/eligible [get]
func (h *GuardHandler) Eligible(c *gin.Context) {
	guards, err := h.guards.ListEligible(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, guards, nil)
}

// Get godoc
// @Summary Get guard detail
// @Tags Guards
// @Produce json
// @Param id path string true "Guard ID"
// @Success 200 {object} response.Envelope
// @Router /guards/{id} [get]
func (h *GuardHandler) Get(c *gin.Context) {
	guard, err := h.guards.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, guard, nil)
}

// Create godoc
// @Summary Register a guard
// @Tags Guards
// @Accept json
// @Produce json
// @Param payload body service.SaveGuardRequest true "Guard"
// @Success 201 {object} response.Envelope
// @Router /guards [post]
func (h *GuardHandler) Create(c *gin.Context) {
	var req service.SaveGuardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	guard, err := h.guards.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, guard)
}

// Update godoc
// @Summary Update a guard
// @Tags Guards
// @Accept json
// @Produce json
// @Param id path string true "Guard ID"
// @Param payload body service.SaveGuardRequest true "Guard"
// @Success 200 {object} response.Envelope
// @Router /guards/{id} [put]
func (h *GuardHandler) Update(c *gin.Context) {
	var req service.SaveGuardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	guard, err := h.guards.Update(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, guard, nil)
}

// Delete godoc
// @Summary Remove a guard
// @Tags Guards
// @Param id path string true "Guard ID"
// @Success 204
// @Router /guards/{id} [delete]
func (h *GuardHandler) Delete(c *gin.Context) {
	if err := h.guards.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
