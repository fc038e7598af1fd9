package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guardwise/guardwise-api/internal/service"
	appErrors "github.com/guardwise/guardwise-api/pkg/errors"
	"github.com/guardwise/guardwise-api/pkg/response"
)

// ZoneHandler exposes zone endpoints.
type ZoneHandler struct {
	zones *service.ZoneService
}

// NewZoneHandler constructs ZoneHandler.
func NewZoneHandler(zones *service.ZoneService) *ZoneHandler {
	return &ZoneHandler{zones: zones}
}

// List godoc
// @Summary List zones
// @Tags Zones
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /zones [get]
func (h *ZoneHandler) List(c *gin.Context) {
	zones, err := h.zones.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, zones, nil)
}

// Get godoc
// @Summary Get zone detail
// @Tags Zones
// @Produce json
// @Param id path string true "Zone ID"
// @Success 200 {object} response.Envelope
// @Router /zones/{id} [get]
func (h *ZoneHandler) Get(c *gin.Context) {
	zone, err := h.zones.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, zone, nil)
}

// Create godoc
// @Summary Create a zone
// @Tags Zones
// @Accept json
// @Produce json
// @Param payload body service.SaveZoneRequest true "Zone"
// @Success 201 {object} response.Envelope
// @Router /zones [post]
func (h *ZoneHandler) Create(c *gin.Context) {
	var req service.SaveZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	zone, err := h.zones.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, zone)
}

// Update godoc
// @Summary Update a zone
// @Tags Zones
// @Accept json
// @Produce json
// @Param id path string true "Zone ID"
// @Param payload body service.SaveZoneRequest true "Zone"
// @Success 200 {object} response.Envelope
// @Router /zones/{id} [put]
func (h *ZoneHandler) Update(c *gin.Context) {
	var req service.SaveZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	zone, err := h.zones.Update(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, zone, nil)
}

// Delete godoc
// @Summary Remove a zone
// @Tags Zones
// @Param id path string true "Zone ID"
// @Success 204
// @Router /zones/{id} [delete]
func (h *ZoneHandler) Delete(c *gin.Context) {
	if err := h.zones.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
