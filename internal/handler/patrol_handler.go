package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guardwise/guardwise-api/internal/models"
	"github.com/guardwise/guardwise-api/internal/service"
	appErrors "github.com/guardwise/guardwise-api/pkg/errors"
	"github.com/guardwise/guardwise-api/pkg/response"
)

// PatrolHandler exposes patrol history and trend endpoints.
type PatrolHandler struct {
	patrols *service.PatrolService
}

// NewPatrolHandler constructs PatrolHandler.
func NewPatrolHandler(patrols *service.PatrolService) *PatrolHandler {
	return &PatrolHandler{patrols: patrols}
}

func patrolFilterFromQuery(c *gin.Context) (models.PatrolHistoryFilter, error) {
	var filter models.PatrolHistoryFilter
	filter.FromDate = strings.TrimSpace(c.Query("from"))
	filter.ToDate = strings.TrimSpace(c.Query("to"))
	filter.GuardName = strings.TrimSpace(c.Query("guard"))
	filter.ZoneName = strings.TrimSpace(c.Query("zone"))
	filter.CheckpointName = strings.TrimSpace(c.Query("checkpoint"))
	if raw := c.Query("status"); raw != "" {
		status := models.PatrolStatus(raw)
		if !status.Valid() {
			return filter, appErrors.Clone(appErrors.ErrValidation, "unknown patrol status")
		}
		filter.Status = &status
	}
	if raw := c.Query("scanMethod"); raw != "" {
		method := models.ScanMethod(raw)
		if method != models.ScanMethodNFC && method != models.ScanMethodQR {
			return filter, appErrors.Clone(appErrors.ErrValidation, "unknown scan method")
		}
		filter.ScanMethod = &method
	}
	if minLate, err := strconv.Atoi(c.DefaultQuery("minLate", "0")); err == nil && minLate > 0 {
		filter.MinLateMinutes = minLate
	}
	filter.ExcludeOK = c.Query("excludeOk") == "true"
	return filter, nil
}

// List godoc
// @Summary List patrol history
// @Tags Patrols
// @Produce json
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Param guard query string false "Filter by guard name"
// @Param zone query string false "Filter by zone name"
// @Param checkpoint query string false "Filter by checkpoint name"
// @Param status query string false "Filter by status"
// @Param scanMethod query string false "Filter by scan method (nfc, qr)"
// @Param minLate query int false "Minimum late minutes"
// @Param excludeOk query bool false "Hide completed visits"
// @Success 200 {object} response.Envelope
// @Router /patrols [get]
func (h *PatrolHandler) List(c *gin.Context) {
	filter, err := patrolFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	records, err := h.patrols.History(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// Record godoc
// @Summary Record a patrol visit; the outcome is derived server-side
// @Tags Patrols
// @Accept json
// @Produce json
// @Param payload body service.RecordVisitRequest true "Observed scan (or absence) against its scheduled slot"
// @Success 201 {object} response.Envelope
// @Router /patrols [post]
func (h *PatrolHandler) Record(c *gin.Context) {
	var req service.RecordVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	record, err := h.patrols.RecordVisit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Trend godoc
// @Summary Daily patrol trend with a summary over a date window
// @Tags Patrols
// @Produce json
// @Param from query string false "Range start, defaults to six days ago"
// @Param to query string false "Range end, defaults to today"
// @Success 200 {object} response.Envelope
// @Router /patrols/trend [get]
func (h *PatrolHandler) Trend(c *gin.Context) {
	today := time.Now().UTC()
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	if to == "" {
		to = today.Format(models.DateOnly)
	}
	if from == "" {
		from = today.AddDate(0, 0, -6).Format(models.DateOnly)
	}

	records, err := h.patrols.History(c.Request.Context(), models.PatrolHistoryFilter{FromDate: from, ToDate: to})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"points":  service.Trend(records, from, to),
		"summary": service.Summarize(records),
	}, nil)
}

// Locations godoc
// @Summary Patrol outcome counts per zone and checkpoint
// @Tags Patrols
// @Produce json
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /patrols/locations [get]
func (h *PatrolHandler) Locations(c *gin.Context) {
	filter := models.PatrolHistoryFilter{
		FromDate: strings.TrimSpace(c.Query("from")),
		ToDate:   strings.TrimSpace(c.Query("to")),
	}

	records, err := h.patrols.History(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, service.LocationSummary(records), nil)
}
