package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guardwise/guardwise-api/internal/service"
	appErrors "github.com/guardwise/guardwise-api/pkg/errors"
	"github.com/guardwise/guardwise-api/pkg/response"
)

// RosterHandler exposes weekly-off roster endpoints.
type RosterHandler struct {
	rosters *service.RosterService
}

// NewRosterHandler constructs RosterHandler.
func NewRosterHandler(rosters *service.RosterService) *RosterHandler {
	return &RosterHandler{rosters: rosters}
}

// List godoc
// @Summary List rosters
// @Tags Rosters
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rosters [get]
func (h *RosterHandler) List(c *gin.Context) {
	rosters, err := h.rosters.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rosters, nil)
}

// Create godoc
// @Summary Create a roster and project its weekly-off records
// @Tags Rosters
// @Accept json
// @Produce json
// @Param payload body service.SaveRosterRequest true "Roster"
// @Success 201 {object} response.Envelope
// @Router /rosters [post]
func (h *RosterHandler) Create(c *gin.Context) {
	var req service.SaveRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	roster, err := h.rosters.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, roster)
}

// Update godoc
// @Summary Update a roster, regenerating its projected records
// @Tags Rosters
// @Accept json
// @Produce json
// @Param id path string true "Roster ID"
// @Param payload body service.SaveRosterRequest true "Roster"
// @Success 200 {object} response.Envelope
// @Router /rosters/{id} [put]
func (h *RosterHandler) Update(c *gin.Context) {
	var req service.SaveRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	roster, err := h.rosters.Update(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster, nil)
}

// Delete godoc
// @Summary Remove a roster and its projected records
// @Tags Rosters
// @Param id path string true "Roster ID"
// @Success 204
// @Router /rosters/{id} [delete]
func (h *RosterHandler) Delete(c *gin.Context) {
	if err := h.rosters.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
