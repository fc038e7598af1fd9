package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guardwise/guardwise-api/internal/models"
	"github.com/guardwise/guardwise-api/internal/service"
	"github.com/guardwise/guardwise-api/pkg/response"
)

// ReportHandler exposes downloadable exports and the leave and roster
// report views.
type ReportHandler struct {
	reports      *service.ReportService
	availability *service.AvailabilityService
	rosters      *service.RosterService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports *service.ReportService, availability *service.AvailabilityService, rosters *service.RosterService) *ReportHandler {
	return &ReportHandler{reports: reports, availability: availability, rosters: rosters}
}

// ExportPatrolCSV godoc
// @Summary Download patrol history as CSV
// @Tags Reports
// @Produce text/csv
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {file} file
// @Router /reports/patrols/export.csv [get]
func (h *ReportHandler) ExportPatrolCSV(c *gin.Context) {
	filter, err := patrolFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.reports.ExportPatrolCSV(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=patrol-report-%s.csv", time.Now().UTC().Format(models.DateOnly)))
	c.Data(http.StatusOK, "text/csv", data)
}

// ExportPatrolPDF godoc
// @Summary Download patrol history as PDF
// @Tags Reports
// @Produce application/pdf
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {file} file
// @Router /reports/patrols/export.pdf [get]
func (h *ReportHandler) ExportPatrolPDF(c *gin.Context) {
	filter, err := patrolFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.reports.ExportPatrolPDF(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=patrol-report-%s.pdf", time.Now().UTC().Format(models.DateOnly)))
	c.Data(http.StatusOK, "application/pdf", data)
}

// LeaveReport godoc
// @Summary Leave report rows with range status and day counts
// @Tags Reports
// @Produce json
// @Param from query string false "Overlap window start (YYYY-MM-DD)"
// @Param to query string false "Overlap window end (YYYY-MM-DD)"
// @Param guardId query string false "Filter by guard"
// @Success 200 {object} response.Envelope
// @Router /reports/leaves [get]
func (h *ReportHandler) LeaveReport(c *gin.Context) {
	filter := service.LeaveReportFilter{
		FromDate: strings.TrimSpace(c.Query("from")),
		ToDate:   strings.TrimSpace(c.Query("to")),
		GuardID:  strings.TrimSpace(c.Query("guardId")),
	}

	rows, err := h.availability.LeaveReport(c.Request.Context(), filter, time.Now().UTC().Format(models.DateOnly))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// RosterReport godoc
// @Summary Roster report rows with weekday labels and range status
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/rosters [get]
func (h *ReportHandler) RosterReport(c *gin.Context) {
	rows, err := h.rosters.RosterReport(c.Request.Context(), time.Now().UTC().Format(models.DateOnly))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}
