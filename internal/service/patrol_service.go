package service

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/guardwise/guardwise-api/internal/models"
	appErrors "github.com/guardwise/guardwise-api/pkg/errors"
)

type patrolHistoryRepository interface {
	List(ctx context.Context, filter models.PatrolHistoryFilter) ([]models.PatrolHistory, error)
	Create(ctx context.Context, record *models.PatrolHistory) error
}

type patrolAvailabilityRepository interface {
	ListRelevant(ctx context.Context, guardID, startDate, endDate string) ([]models.GuardAvailability, error)
}

// RecordVisitRequest reports one observed (or absent) scan against its
// scheduled slot. The server derives the outcome; callers never submit
// a status.
type RecordVisitRequest struct {
	Date             string  `json:"date" validate:"required,datetime=2006-01-02"`
	GuardID          string  `json:"guard_id" validate:"required"`
	GuardName        string  `json:"guard_name"`
	ZoneName         string  `json:"zone_name"`
	CheckpointName   string  `json:"checkpoint_name"`
	ScanMethod       string  `json:"scan_method" validate:"required,oneof=nfc qr"`
	SlotTime         string  `json:"slot_time" validate:"required,len=5"`
	GraceTimeMinutes int     `json:"grace_time_minutes" validate:"min=0"`
	ScanAt           *string `json:"scan_at" validate:"omitempty,len=5"`
}

// PatrolService classifies visit outcomes and aggregates them for
// reporting.
type PatrolService struct {
	repo         patrolHistoryRepository
	availability patrolAvailabilityRepository
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewPatrolService constructs a PatrolService.
func NewPatrolService(repo patrolHistoryRepository, availability patrolAvailabilityRepository, validate *validator.Validate, logger *zap.Logger) *PatrolService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PatrolService{repo: repo, availability: availability, validator: validate, logger: logger}
}

// minuteOfDay converts a zero-padded "HH:MM" string to minutes since
// midnight. Malformed input yields -1.
func minuteOfDay(hhmm string) int {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return -1
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return -1
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return -1
	}
	return h*60 + m
}

// Classify derives the outcome of one scheduled visit. scanAt is the
// observed scan time ("HH:MM") or nil when no scan happened;
// availabilityHit is the record making the guard unavailable that day,
// if any. A scan inside slot+grace completes the visit; later scans are
// late by the minutes past the scheduled time itself. Without a scan the
// visit is skipped when the guard was unavailable and missed otherwise.
func Classify(slotTime string, graceMinutes int, scanAt *string, availabilityHit *models.GuardAvailability) models.PatrolOutcome {
	if scanAt != nil {
		slot := minuteOfDay(slotTime)
		scan := minuteOfDay(*scanAt)
		if slot < 0 || scan < 0 || scan <= slot+graceMinutes {
			return models.PatrolOutcome{Status: models.PatrolStatusCompleted}
		}
		return models.PatrolOutcome{Status: models.PatrolStatusLate, LateByMinutes: scan - slot}
	}
	if availabilityHit != nil {
		reason := availabilityHit.Type
		return models.PatrolOutcome{Status: models.PatrolStatusSkipped, SkipReason: &reason}
	}
	return models.PatrolOutcome{Status: models.PatrolStatusMissed}
}

// Compliance computes completed/(completed+late+missed) as a rounded
// percentage. Skipped visits are excluded from both sides; an empty
// window reports 0.
func Compliance(completed, late, missed int) int {
	actionable := completed + late + missed
	if actionable == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(actionable) * 100))
}

// History returns patrol records matching the filter, with the
// late-threshold and exclude-ok refinements applied.
func (s *PatrolService) History(ctx context.Context, filter models.PatrolHistoryFilter) ([]models.PatrolHistory, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list patrol history")
	}

	if filter.MinLateMinutes <= 0 && !filter.ExcludeOK {
		return records, nil
	}

	out := make([]models.PatrolHistory, 0, len(records))
	for _, record := range records {
		if filter.ExcludeOK && record.Status != models.PatrolStatusLate && record.Status != models.PatrolStatusMissed {
			continue
		}
		if filter.MinLateMinutes > 0 && record.Status == models.PatrolStatusLate {
			if record.LateByMinutes == nil || *record.LateByMinutes < filter.MinLateMinutes {
				continue
			}
		}
		out = append(out, record)
	}
	return out, nil
}

// RecordVisit classifies one reported scan (or absence) against its
// scheduled slot and stores the outcome. The status is always derived
// server-side through Classify.
func (s *PatrolService) RecordVisit(ctx context.Context, req RecordVisitRequest) (*models.PatrolHistory, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid patrol visit payload")
	}

	var availabilityHit *models.GuardAvailability
	if req.ScanAt == nil && s.availability != nil {
		records, err := s.availability.ListRelevant(ctx, req.GuardID, req.Date, req.Date)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load guard availability")
		}
		availabilityHit = FindUnavailability(records, req.GuardID, req.Date)
	}

	outcome := Classify(req.SlotTime, req.GraceTimeMinutes, req.ScanAt, availabilityHit)
	record := &models.PatrolHistory{
		Date:             req.Date,
		GuardID:          req.GuardID,
		GuardName:        req.GuardName,
		ZoneName:         req.ZoneName,
		CheckpointName:   req.CheckpointName,
		Status:           outcome.Status,
		ScanMethod:       models.ScanMethod(req.ScanMethod),
		GraceTimeMinutes: req.GraceTimeMinutes,
		SkipReason:       outcome.SkipReason,
	}
	if outcome.Status == models.PatrolStatusLate {
		late := outcome.LateByMinutes
		record.LateByMinutes = &late
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record patrol visit")
	}

	s.logger.Debug("patrol visit recorded",
		zap.String("guard_id", req.GuardID),
		zap.String("date", req.Date),
		zap.String("status", string(outcome.Status)))
	return record, nil
}

// Trend buckets records per day over the inclusive [fromDate, toDate]
// window, emitting one point per day even when empty.
func Trend(records []models.PatrolHistory, fromDate, toDate string) []models.PatrolTrendPoint {
	start, err := parseDate(fromDate)
	if err != nil {
		return nil
	}
	end, err := parseDate(toDate)
	if err != nil || end.Before(start) {
		return nil
	}

	byDate := map[string]*models.PatrolTrendPoint{}
	var points []models.PatrolTrendPoint
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(models.DateOnly)
		points = append(points, models.PatrolTrendPoint{Date: date, Day: day.Weekday().String()[:3]})
		byDate[date] = &points[len(points)-1]
	}

	for _, record := range records {
		point, ok := byDate[record.Date]
		if !ok {
			continue
		}
		switch record.Status {
		case models.PatrolStatusCompleted:
			point.Completed++
		case models.PatrolStatusLate:
			point.Late++
		case models.PatrolStatusMissed:
			point.Missed++
		case models.PatrolStatusSkipped:
			point.Skipped++
		}
	}
	return points
}

// Summarize totals a record set and derives its compliance percentage.
func Summarize(records []models.PatrolHistory) models.PatrolTrendSummary {
	var summary models.PatrolTrendSummary
	for _, record := range records {
		switch record.Status {
		case models.PatrolStatusCompleted:
			summary.Completed++
		case models.PatrolStatusLate:
			summary.Late++
		case models.PatrolStatusMissed:
			summary.Missed++
		case models.PatrolStatusSkipped:
			summary.Skipped++
		}
	}
	summary.Actionable = summary.Completed + summary.Late + summary.Missed
	summary.Compliance = Compliance(summary.Completed, summary.Late, summary.Missed)
	return summary
}

// LocationSummary buckets records by (zone, checkpoint) preserving first
// appearance order.
func LocationSummary(records []models.PatrolHistory) []models.LocationSummaryRow {
	order := []string{}
	rows := map[string]*models.LocationSummaryRow{}

	for _, record := range records {
		key := record.ZoneName + "|" + record.CheckpointName
		row, ok := rows[key]
		if !ok {
			row = &models.LocationSummaryRow{ZoneName: record.ZoneName, CheckpointName: record.CheckpointName}
			rows[key] = row
			order = append(order, key)
		}
		row.Total++
		switch record.Status {
		case models.PatrolStatusCompleted:
			row.Completed++
		case models.PatrolStatusLate:
			row.Late++
		case models.PatrolStatusMissed:
			row.Missed++
		case models.PatrolStatusSkipped:
			row.Skipped++
		}
	}

	out := make([]models.LocationSummaryRow, 0, len(order))
	for _, key := range order {
		out = append(out, *rows[key])
	}
	return out
}

