package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/guardwise/guardwise-api/internal/models"
	appErrors "github.com/guardwise/guardwise-api/pkg/errors"
)

type availabilityRepository interface {
	List(ctx context.Context, guardID string) ([]models.GuardAvailability, error)
	ListRelevant(ctx context.Context, guardID, startDate, endDate string) ([]models.GuardAvailability, error)
	FindByID(ctx context.Context, id string) (*models.GuardAvailability, error)
	Create(ctx context.Context, record *models.GuardAvailability) error
	Delete(ctx context.Context, id string) error
}

type availabilityGuardRepository interface {
	List(ctx context.Context, filter models.GuardFilter) ([]models.Guard, error)
	FindByID(ctx context.Context, id string) (*models.Guard, error)
}

// CreateLeaveRequest records unavailability for one or more guards at once.
type CreateLeaveRequest struct {
	GuardIDs  []string `json:"guard_ids" validate:"required,min=1"`
	Mode      string   `json:"mode" validate:"required,oneof=date-range weekly-off"`
	Type      string   `json:"type" validate:"required,oneof=leave off-roster training holiday"`
	StartDate string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	Weekdays  []int    `json:"weekdays" validate:"omitempty,dive,min=0,max=6"`
	Note      string   `json:"note"`
}

// LeaveReportFilter narrows the leave report to a window and guard.
type LeaveReportFilter struct {
	FromDate string
	ToDate   string
	GuardID  string
}

// AvailabilityService owns unavailability matching and the admin
// operations around it.
type AvailabilityService struct {
	repo      availabilityRepository
	guards    availabilityGuardRepository
	audit     *AuditService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAvailabilityService constructs an AvailabilityService.
func NewAvailabilityService(repo availabilityRepository, guards availabilityGuardRepository, audit *AuditService, validate *validator.Validate, logger *zap.Logger) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{repo: repo, guards: guards, audit: audit, validator: validate, logger: logger}
}

// parseDate reads an ISO date in UTC. Dates compare correctly as plain
// strings; parsing is only needed for weekday math and iteration.
func parseDate(date string) (time.Time, error) {
	return time.Parse(models.DateOnly, date)
}

// MatchesDate reports whether a record makes its guard unavailable on
// the given ISO date.
func MatchesDate(record *models.GuardAvailability, date string) bool {
	if record == nil {
		return false
	}
	inRange := record.StartDate <= date && date <= record.EndDate
	if !inRange {
		return false
	}
	if record.Mode == models.AvailabilityModeWeeklyOff {
		day, err := parseDate(date)
		if err != nil {
			return false
		}
		return record.HasWeekday(int(day.UTC().Weekday()))
	}
	return true
}

// FindUnavailability returns the first record making the guard
// unavailable on the date, or nil.
func FindUnavailability(records []models.GuardAvailability, guardID, date string) *models.GuardAvailability {
	for i := range records {
		if records[i].GuardID != guardID {
			continue
		}
		if MatchesDate(&records[i], date) {
			return &records[i]
		}
	}
	return nil
}

// FindUnavailabilityInRange scans the inclusive [fromDate, toDate]
// window day by day and returns the first offending date with its
// record, or nil when the guard is free throughout.
func FindUnavailabilityInRange(records []models.GuardAvailability, guardID, fromDate, toDate string) *models.UnavailabilityHit {
	start, err := parseDate(fromDate)
	if err != nil {
		return nil
	}
	end, err := parseDate(toDate)
	if err != nil {
		return nil
	}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(models.DateOnly)
		if record := FindUnavailability(records, guardID, date); record != nil {
			return &models.UnavailabilityHit{Record: *record, Date: date}
		}
	}
	return nil
}

// List returns availability records, optionally scoped to one guard.
func (s *AvailabilityService) List(ctx context.Context, guardID string) ([]models.GuardAvailability, error) {
	records, err := s.repo.List(ctx, guardID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availability")
	}
	return records, nil
}

// CheckRange reports the guard's first unavailable date inside the
// window, or nil when free.
func (s *AvailabilityService) CheckRange(ctx context.Context, guardID, fromDate, toDate string) (*models.UnavailabilityHit, error) {
	if fromDate > toDate {
		return nil, appErrors.Clone(appErrors.ErrInvalidDateRange, "")
	}
	records, err := s.repo.ListRelevant(ctx, guardID, fromDate, toDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load availability")
	}
	return FindUnavailabilityInRange(records, guardID, fromDate, toDate), nil
}

// CreateLeave records unavailability for every guard in the request.
// Guards that already carry an identical manual record are skipped
// rather than duplicated.
func (s *AvailabilityService) CreateLeave(ctx context.Context, actor string, req CreateLeaveRequest) ([]models.GuardAvailability, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid leave payload")
	}
	if req.StartDate > req.EndDate {
		return nil, appErrors.Clone(appErrors.ErrInvalidDateRange, "")
	}
	mode := models.AvailabilityMode(req.Mode)
	if mode == models.AvailabilityModeWeeklyOff && len(req.Weekdays) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "weekly-off records need at least one weekday")
	}

	created := make([]models.GuardAvailability, 0, len(req.GuardIDs))
	for _, guardID := range req.GuardIDs {
		name := s.resolveGuardName(ctx, guardID)

		existing, err := s.repo.List(ctx, guardID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load availability")
		}
		if hasDuplicateRecord(existing, mode, models.AvailabilityType(req.Type), req.StartDate, req.EndDate) {
			continue
		}

		record := models.GuardAvailability{
			GuardID:   guardID,
			GuardName: name,
			Mode:      mode,
			Type:      models.AvailabilityType(req.Type),
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			Weekdays:  toInt64Array(req.Weekdays),
			Note:      req.Note,
			Source:    models.AvailabilitySourceManual,
		}
		if err := s.repo.Create(ctx, &record); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create availability")
		}
		created = append(created, record)
	}

	if s.audit != nil && len(created) > 0 {
		s.audit.Record(ctx, actor, models.AuditModuleAvailability, models.AuditActionCreate, "availability", "",
			fmt.Sprintf("recorded %s for %d guard(s), %s to %s", req.Type, len(created), req.StartDate, req.EndDate))
	}
	return created, nil
}

// Delete removes a manual availability record. Roster-derived rows are
// managed by their roster and cannot be deleted directly.
func (s *AvailabilityService) Delete(ctx context.Context, actor, id string) error {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "availability record not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load availability record")
	}
	if record.Source == models.AvailabilitySourceRoster {
		return appErrors.Clone(appErrors.ErrValidation, "roster-derived records are managed through their roster")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete availability record")
	}
	if s.audit != nil {
		s.audit.Record(ctx, actor, models.AuditModuleAvailability, models.AuditActionDelete, "availability", id,
			fmt.Sprintf("removed %s record for %s", record.Type, record.GuardName))
	}
	return nil
}

// LeaveReport projects availability records into report rows with a
// derived status and day count, filtered by range overlap.
func (s *AvailabilityService) LeaveReport(ctx context.Context, filter LeaveReportFilter, today string) ([]models.LeaveReportRow, error) {
	records, err := s.repo.List(ctx, filter.GuardID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availability")
	}

	rows := make([]models.LeaveReportRow, 0, len(records))
	for _, record := range records {
		if filter.FromDate != "" && record.EndDate < filter.FromDate {
			continue
		}
		if filter.ToDate != "" && record.StartDate > filter.ToDate {
			continue
		}
		guard, zone := record.GuardName, ""
		if s.guards != nil {
			if g, err := s.guards.FindByID(ctx, record.GuardID); err == nil {
				guard, zone = g.Name, g.AssignedZone
			}
		}
		rows = append(rows, models.LeaveReportRow{
			ID:        record.ID,
			GuardID:   record.GuardID,
			GuardName: guard,
			ZoneName:  zone,
			StartDate: record.StartDate,
			EndDate:   record.EndDate,
			Days:      countDays(record),
			Mode:      string(record.Mode),
			Status:    rangeStatus(record.StartDate, record.EndDate, today),
			Note:      record.Note,
		})
	}
	return rows, nil
}

func (s *AvailabilityService) resolveGuardName(ctx context.Context, guardID string) string {
	if s.guards != nil {
		if guard, err := s.guards.FindByID(ctx, guardID); err == nil {
			return guard.Name
		}
	}
	return guardID
}

func hasDuplicateRecord(existing []models.GuardAvailability, mode models.AvailabilityMode, availType models.AvailabilityType, startDate, endDate string) bool {
	for _, record := range existing {
		if record.Source != models.AvailabilitySourceManual {
			continue
		}
		if record.Mode == mode && record.Type == availType && record.StartDate == startDate && record.EndDate == endDate {
			return true
		}
	}
	return false
}

// countDays returns inclusive calendar days for date-range records and
// the number of matching off days inside the range for weekly-off ones.
func countDays(record models.GuardAvailability) int {
	start, err := parseDate(record.StartDate)
	if err != nil {
		return 0
	}
	end, err := parseDate(record.EndDate)
	if err != nil || end.Before(start) {
		return 0
	}
	if record.Mode == models.AvailabilityModeDateRange {
		return int(end.Sub(start).Hours()/24) + 1
	}
	days := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if record.HasWeekday(int(day.UTC().Weekday())) {
			days++
		}
	}
	return days
}

// rangeStatus derives upcoming/active/completed from the range against
// today's date.
func rangeStatus(startDate, endDate, today string) string {
	switch {
	case endDate < today:
		return "completed"
	case startDate > today:
		return "upcoming"
	default:
		return "active"
	}
}

func toInt64Array(values []int) pq.Int64Array {
	if len(values) == 0 {
		return nil
	}
	out := make(pq.Int64Array, len(values))
	for i, v := range values {
		out[i] = int64(v)
	}
	return out
}
