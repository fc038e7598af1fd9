package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guardwise/guardwise-api/internal/service"
	appErrors "github.com/guardwise/guardwise-api/pkg/errors"
	"github.com/guardwise/guardwise-api/pkg/response"
)

// CheckpointHandler exposes checkpoint management plus the QR display
// endpoints. Display is mounted on the public router so wall-mounted
// screens can poll it without a token.
type CheckpointHandler struct {
	checkpoints *service.CheckpointService
}

// NewCheckpointHandler constructs CheckpointHandler.
func NewCheckpointHandler(checkpoints *service.CheckpointService) *CheckpointHandler {
	return &CheckpointHandler{checkpoints: checkpoints}
}

// List godoc
// @Summary List checkpoints
// @Tags Checkpoints
// @Produce json
// @Param zone query string false "Filter by zone name"
// @Param search query string false "Search by name or tag id"
// @Success 200 {object} response.Envelope
// @Router /checkpoints [get]
func (h *CheckpointHandler) List(c *gin.Context) {
	zone := strings.TrimSpace(c.Query("zone"))
	search := strings.TrimSpace(c.Query("search"))

	checkpoints, err := h.checkpoints.List(c.Request.Context(), zone, search)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, checkpoints, nil)
}

// Get godoc
// @Summary Get checkpoint detail
// @Tags Checkpoints
// @Produce json
// @Param id path string true "Checkpoint ID"
// @Success 200 {object} response.Envelope
// @Router /checkpoints/{id} [get]
func (h *CheckpointHandler) Get(c *gin.Context) {
	checkpoint, err := h.checkpoints.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, checkpoint, nil)
}

// Create godoc
// @Summary Create a checkpoint
// @Tags Checkpoints
// @Accept json
// @Produce json
// @Param payload body service.SaveCheckpointRequest true "Checkpoint"
// @Success 201 {object} response.Envelope
// @Router /checkpoints [post]
func (h *CheckpointHandler) Create(c *gin.Context) {
	var req service.SaveCheckpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	checkpoint, err := h.checkpoints.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, checkpoint)
}

// Update godoc
// @Summary Update a checkpoint
// @Tags Checkpoints
// @Accept json
// @Produce json
// @Param id path string true "Checkpoint ID"
// @Param payload body service.SaveCheckpointRequest true "Checkpoint"
// @Success 200 {object} response.Envelope
// @Router /checkpoints/{id} [put]
func (h *CheckpointHandler) Update(c *gin.Context) {
	var req service.SaveCheckpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	checkpoint, err := h.checkpoints.Update(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, checkpoint, nil)
}

// UpdateQRConfig godoc
// @Summary Configure QR behaviour for a checkpoint
// @Tags Checkpoints
// @Accept json
// @Produce json
// @Param id path string true "Checkpoint ID"
// @Param payload body service.UpdateQRConfigRequest true "QR configuration"
// @Success 200 {object} response.Envelope
// @Router /checkpoints/{id}/qr-config [put]
func (h *CheckpointHandler) UpdateQRConfig(c *gin.Context) {
	var req service.UpdateQRConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	checkpoint, err := h.checkpoints.UpdateQRConfig(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, checkpoint, nil)
}

// UpdateNFCConfig godoc
// @Summary Configure the NFC tag for a checkpoint
// @Tags Checkpoints
// @Accept json
// @Produce json
// @Param id path string true "Checkpoint ID"
// @Param payload body service.UpdateNFCConfigRequest true "NFC configuration"
// @Success 200 {object} response.Envelope
// @Router /checkpoints/{id}/nfc-config [put]
func (h *CheckpointHandler) UpdateNFCConfig(c *gin.Context) {
	var req service.UpdateNFCConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	checkpoint, err := h.checkpoints.UpdateNFCConfig(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, checkpoint, nil)
}

// Preview godoc
// @Summary Preview the current QR payload for a checkpoint
// @Tags Checkpoints
// @Produce json
// @Param id path string true "Checkpoint ID"
// @Success 200 {object} response.Envelope
// @Router /checkpoints/{id}/preview [get]
func (h *CheckpointHandler) Preview(c *gin.Context) {
	h.display(c)
}

// Display godoc
// @Summary Public QR display for a checkpoint
// @Tags Display
// @Produce json
// @Param id path string true "Checkpoint ID"
// @Success 200 {object} response.Envelope
// @Router /display/checkpoints/{id} [get]
func (h *CheckpointHandler) Display(c *gin.Context) {
	h.display(c)
}

func (h *CheckpointHandler) display(c *gin.Context) {
	display, err := h.checkpoints.Display(c.Request.Context(), c.Param("id"), time.Now().UTC())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, display, nil)
}

// Delete godoc
// @Summary Remove a checkpoint
// @Tags Checkpoints
// @Param id path string true "Checkpoint ID"
// @Success 204
// @Router /checkpoints/{id} [delete]
func (h *CheckpointHandler) Delete(c *gin.Context) {
	if err := h.checkpoints.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
