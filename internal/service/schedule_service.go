package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/guardwise/guardwise-api/internal/models"
	appErrors "github.com/guardwise/guardwise-api/pkg/errors"
)

type scheduleRepository interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error)
	FindByID(ctx context.Context, id string) (*models.Schedule, error)
	ListActiveOverlapping(ctx context.Context, startDate, endDate string) ([]models.Schedule, error)
	BulkCreate(ctx context.Context, schedules []models.Schedule) error
	Update(ctx context.Context, schedule *models.Schedule) error
	UpdateStatus(ctx context.Context, id string, status models.ScheduleStatus) error
	Delete(ctx context.Context, id string) error
}

type scheduleAvailabilityRepository interface {
	ListRelevant(ctx context.Context, guardID, startDate, endDate string) ([]models.GuardAvailability, error)
}

type scheduleCheckpointRepository interface {
	FindByID(ctx context.Context, id string) (*models.Checkpoint, error)
}

// SlotRequest is one proposed visit time.
type SlotRequest struct {
	Time  string `json:"time" validate:"required,len=5"`
	Label string `json:"label"`
}

// ScheduleRowRequest is one proposed (checkpoint, visit times) row.
type ScheduleRowRequest struct {
	CheckpointID string        `json:"checkpoint_id"`
	TimeSlots    []SlotRequest `json:"time_slots"`
}

// BulkCreateScheduleRequest proposes a batch of schedules for one guard
// over one date range. Validation is all-or-nothing.
type BulkCreateScheduleRequest struct {
	GuardID          string               `json:"guard_id" validate:"required"`
	StartDate        string               `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate          string               `json:"end_date" validate:"required,datetime=2006-01-02"`
	GraceTimeMinutes int                  `json:"grace_time_minutes" validate:"min=0"`
	Rows             []ScheduleRowRequest `json:"rows" validate:"required,min=1"`
}

// UpdateScheduleRequest edits one schedule's visit times and grace.
type UpdateScheduleRequest struct {
	TimeSlots        []SlotRequest `json:"time_slots" validate:"required,min=1"`
	GraceTimeMinutes int           `json:"grace_time_minutes" validate:"min=0"`
}

// ScheduleService owns schedule CRUD, batch validation, and the grouped
// projections the console lists from.
type ScheduleService struct {
	repo         scheduleRepository
	availability scheduleAvailabilityRepository
	checkpoints  scheduleCheckpointRepository
	guards       availabilityGuardRepository
	audit        *AuditService
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(repo scheduleRepository, availability scheduleAvailabilityRepository, checkpoints scheduleCheckpointRepository, guards availabilityGuardRepository, audit *AuditService, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, availability: availability, checkpoints: checkpoints, guards: guards, audit: audit, validator: validate, logger: logger}
}

// ValidateBatch checks a proposed batch against itself, the guard's
// availability, and existing active schedules. The first conflict wins;
// nil means the whole batch is admissible. Checks run in a fixed order:
// date range, guard availability, row completeness, in-batch guard
// times, in-batch checkpoint times, existing guard times, existing
// checkpoint times.
func ValidateBatch(existing []models.Schedule, availability []models.GuardAvailability, req BulkCreateScheduleRequest) *models.ScheduleConflictError {
	if req.StartDate > req.EndDate {
		return &models.ScheduleConflictError{
			Type:    models.ConflictInvalidDateRange,
			Message: "start date must not be after end date",
		}
	}

	if hit := FindUnavailabilityInRange(availability, req.GuardID, req.StartDate, req.EndDate); hit != nil {
		record := hit.Record
		return &models.ScheduleConflictError{
			Type:    models.ConflictGuardUnavailable,
			Message: fmt.Sprintf("guard is unavailable on %s (%s)", hit.Date, record.Type),
			Date:    hit.Date,
			Record:  &record,
		}
	}

	for _, row := range req.Rows {
		if row.CheckpointID == "" || len(row.TimeSlots) == 0 {
			return &models.ScheduleConflictError{
				Type:    models.ConflictIncompleteRow,
				Message: "every row needs a checkpoint and at least one visit time",
			}
		}
	}

	if dupes := duplicateGuardTimes(req.Rows); len(dupes) > 0 {
		return &models.ScheduleConflictError{
			Type:    models.ConflictDuplicateGuardTime,
			Message: "same guard has overlapping visit times in this batch",
			Times:   dupes,
		}
	}

	if checkpointID, visitTime, ok := duplicateCheckpointTime(req.Rows); ok {
		return &models.ScheduleConflictError{
			Type:         models.ConflictDuplicateCheckpointTime,
			Message:      "checkpoint already has this visit time in the batch",
			CheckpointID: checkpointID,
			Time:         visitTime,
		}
	}

	overlapping := overlappingGuardSchedules(existing, req.GuardID, req.StartDate, req.EndDate)

	if clashes := existingGuardTimeClashes(overlapping, req.Rows); len(clashes) > 0 {
		return &models.ScheduleConflictError{
			Type:    models.ConflictExistingGuardTime,
			Message: "guard already has schedules at these times",
			Times:   clashes,
		}
	}

	if checkpointID, visitTime, ok := existingCheckpointTimeClash(existing, req); ok {
		return &models.ScheduleConflictError{
			Type:         models.ConflictExistingCheckpointTime,
			Message:      "checkpoint already has this visit time in an existing schedule",
			CheckpointID: checkpointID,
			Time:         visitTime,
		}
	}

	return nil
}

func duplicateGuardTimes(rows []ScheduleRowRequest) []string {
	seen := map[string]bool{}
	dupes := map[string]bool{}
	for _, row := range rows {
		for _, slot := range row.TimeSlots {
			if seen[slot.Time] {
				dupes[slot.Time] = true
			}
			seen[slot.Time] = true
		}
	}
	if len(dupes) == 0 {
		return nil
	}
	out := make([]string, 0, len(dupes))
	for t := range dupes {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func duplicateCheckpointTime(rows []ScheduleRowRequest) (string, string, bool) {
	seen := map[string]bool{}
	for _, row := range rows {
		for _, slot := range row.TimeSlots {
			key := row.CheckpointID + "|" + slot.Time
			if seen[key] {
				return row.CheckpointID, slot.Time, true
			}
			seen[key] = true
		}
	}
	return "", "", false
}

func rangesOverlap(startA, endA, startB, endB string) bool {
	return startA <= endB && endA >= startB
}

func overlappingGuardSchedules(existing []models.Schedule, guardID, startDate, endDate string) []models.Schedule {
	var out []models.Schedule
	for _, schedule := range existing {
		if schedule.GuardID != guardID || schedule.Status != models.ScheduleStatusActive {
			continue
		}
		if rangesOverlap(schedule.StartDate, schedule.EndDate, startDate, endDate) {
			out = append(out, schedule)
		}
	}
	return out
}

func existingGuardTimeClashes(overlapping []models.Schedule, rows []ScheduleRowRequest) []string {
	taken := map[string]bool{}
	for _, schedule := range overlapping {
		for _, slot := range schedule.TimeSlots {
			taken[slot.Time] = true
		}
	}
	clashes := map[string]bool{}
	for _, row := range rows {
		for _, slot := range row.TimeSlots {
			if taken[slot.Time] {
				clashes[slot.Time] = true
			}
		}
	}
	if len(clashes) == 0 {
		return nil
	}
	out := make([]string, 0, len(clashes))
	for t := range clashes {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func existingCheckpointTimeClash(existing []models.Schedule, req BulkCreateScheduleRequest) (string, string, bool) {
	taken := map[string]bool{}
	for _, schedule := range existing {
		if schedule.Status != models.ScheduleStatusActive {
			continue
		}
		if !rangesOverlap(schedule.StartDate, schedule.EndDate, req.StartDate, req.EndDate) {
			continue
		}
		for _, slot := range schedule.TimeSlots {
			taken[schedule.CheckpointID+"|"+slot.Time] = true
		}
	}
	for _, row := range req.Rows {
		for _, slot := range row.TimeSlots {
			if taken[row.CheckpointID+"|"+slot.Time] {
				return row.CheckpointID, slot.Time, true
			}
		}
	}
	return "", "", false
}

// List returns schedules matching the filter.
func (s *ScheduleService) List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error) {
	schedules, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	return schedules, nil
}

// BulkCreate validates the whole batch and, only when every check
// passes, persists one schedule row per proposal row in one
// transaction.
func (s *ScheduleService) BulkCreate(ctx context.Context, actor string, req BulkCreateScheduleRequest) ([]models.Schedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule batch")
	}

	existing, err := s.repo.ListActiveOverlapping(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load existing schedules")
	}
	availability, err := s.availability.ListRelevant(ctx, req.GuardID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load guard availability")
	}

	if conflict := ValidateBatch(existing, availability, req); conflict != nil {
		return nil, wrapScheduleConflict(conflict)
	}

	guardName := req.GuardID
	if s.guards != nil {
		if guard, err := s.guards.FindByID(ctx, req.GuardID); err == nil {
			guardName = guard.Name
		}
	}

	schedules := make([]models.Schedule, 0, len(req.Rows))
	for _, row := range req.Rows {
		checkpointName, zoneName := row.CheckpointID, ""
		if s.checkpoints != nil {
			if checkpoint, err := s.checkpoints.FindByID(ctx, row.CheckpointID); err == nil {
				checkpointName, zoneName = checkpoint.Name, checkpoint.ZoneName
			}
		}
		slots := make(models.ScheduleSlots, 0, len(row.TimeSlots))
		for _, slot := range row.TimeSlots {
			slots = append(slots, models.ScheduleSlot{ID: slotID(row.CheckpointID, slot.Time), Time: slot.Time, Label: slot.Label})
		}
		schedules = append(schedules, models.Schedule{
			GuardID:          req.GuardID,
			GuardName:        guardName,
			CheckpointID:     row.CheckpointID,
			CheckpointName:   checkpointName,
			StartDate:        req.StartDate,
			EndDate:          req.EndDate,
			ZoneName:         zoneName,
			TimeSlots:        slots,
			GraceTimeMinutes: req.GraceTimeMinutes,
			Status:           models.ScheduleStatusActive,
		})
	}

	if err := s.repo.BulkCreate(ctx, schedules); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedules")
	}

	if s.audit != nil {
		s.audit.Record(ctx, actor, models.AuditModuleSchedules, models.AuditActionCreate, "schedule", "",
			fmt.Sprintf("assigned %s to %d checkpoint(s), %s to %s", guardName, len(schedules), req.StartDate, req.EndDate))
	}
	return schedules, nil
}

// Update edits one schedule's visit times and grace window.
func (s *ScheduleService) Update(ctx context.Context, actor, id string, req UpdateScheduleRequest) (*models.Schedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}

	slots := make(models.ScheduleSlots, 0, len(req.TimeSlots))
	for _, slot := range req.TimeSlots {
		slots = append(slots, models.ScheduleSlot{ID: slotID(schedule.CheckpointID, slot.Time), Time: slot.Time, Label: slot.Label})
	}
	schedule.TimeSlots = slots
	schedule.GraceTimeMinutes = req.GraceTimeMinutes

	if err := s.repo.Update(ctx, schedule); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update schedule")
	}
	if s.audit != nil {
		s.audit.Record(ctx, actor, models.AuditModuleSchedules, models.AuditActionUpdate, "schedule", id,
			fmt.Sprintf("updated visit times for %s at %s", schedule.GuardName, schedule.CheckpointName))
	}
	return schedule, nil
}

// ToggleStatus flips a schedule between active and inactive.
func (s *ScheduleService) ToggleStatus(ctx context.Context, actor, id string) (*models.Schedule, error) {
	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}

	next := models.ScheduleStatusInactive
	if schedule.Status == models.ScheduleStatusInactive {
		next = models.ScheduleStatusActive
	}
	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update schedule status")
	}
	schedule.Status = next

	if s.audit != nil {
		s.audit.Record(ctx, actor, models.AuditModuleSchedules, models.AuditActionToggle, "schedule", id,
			fmt.Sprintf("set schedule for %s at %s to %s", schedule.GuardName, schedule.CheckpointName, next))
	}
	return schedule, nil
}

// Delete removes one schedule.
func (s *ScheduleService) Delete(ctx context.Context, actor, id string) error {
	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule")
	}
	if s.audit != nil {
		s.audit.Record(ctx, actor, models.AuditModuleSchedules, models.AuditActionDelete, "schedule", id,
			fmt.Sprintf("removed schedule for %s at %s", schedule.GuardName, schedule.CheckpointName))
	}
	return nil
}

// GroupByGuard buckets schedules per guard with zone names and visit
// counts. Schedules with an empty guard id fall back to the guard name
// as the bucket key.
func GroupByGuard(schedules []models.Schedule) []models.ScheduleGuardGroup {
	order := []string{}
	groups := map[string]*models.ScheduleGuardGroup{}
	zones := map[string]map[string]bool{}

	for _, schedule := range schedules {
		key := schedule.GuardID
		if key == "" {
			key = schedule.GuardName
		}
		group, ok := groups[key]
		if !ok {
			group = &models.ScheduleGuardGroup{GuardID: schedule.GuardID, GuardName: schedule.GuardName}
			groups[key] = group
			zones[key] = map[string]bool{}
			order = append(order, key)
		}
		group.Schedules = append(group.Schedules, schedule)
		group.Visits += len(schedule.TimeSlots)
		if schedule.ZoneName != "" && !zones[key][schedule.ZoneName] {
			zones[key][schedule.ZoneName] = true
			group.ZoneNames = append(group.ZoneNames, schedule.ZoneName)
		}
	}

	out := make([]models.ScheduleGuardGroup, 0, len(order))
	for _, key := range order {
		out = append(out, *groups[key])
	}
	return out
}

// GroupByDateRange buckets schedules by their literal (start, end) pair,
// sorted by range.
func GroupByDateRange(schedules []models.Schedule) []models.ScheduleRangeGroup {
	groups := map[string]*models.ScheduleRangeGroup{}
	for _, schedule := range schedules {
		key := schedule.StartDate + "|" + schedule.EndDate
		group, ok := groups[key]
		if !ok {
			group = &models.ScheduleRangeGroup{StartDate: schedule.StartDate, EndDate: schedule.EndDate}
			groups[key] = group
		}
		group.Schedules = append(group.Schedules, schedule)
		group.Visits += len(schedule.TimeSlots)
	}

	out := make([]models.ScheduleRangeGroup, 0, len(groups))
	for _, group := range groups {
		out = append(out, *group)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartDate != out[j].StartDate {
			return out[i].StartDate < out[j].StartDate
		}
		return out[i].EndDate < out[j].EndDate
	})
	return out
}

// ZoneLoad sums daily visit counts of active schedules per zone.
func ZoneLoad(schedules []models.Schedule) []models.ZoneLoad {
	order := []string{}
	visits := map[string]int{}
	checkpoints := map[string]map[string]bool{}

	for _, schedule := range schedules {
		if schedule.Status != models.ScheduleStatusActive {
			continue
		}
		zone := schedule.ZoneName
		if _, ok := visits[zone]; !ok {
			order = append(order, zone)
			checkpoints[zone] = map[string]bool{}
		}
		visits[zone] += len(schedule.TimeSlots)
		checkpoints[zone][schedule.CheckpointID] = true
	}

	out := make([]models.ZoneLoad, 0, len(order))
	for _, zone := range order {
		out = append(out, models.ZoneLoad{ZoneName: zone, Visits: visits[zone], Checkpoints: len(checkpoints[zone])})
	}
	return out
}

// Stats summarises a schedule listing.
func Stats(schedules []models.Schedule) models.ScheduleStats {
	stats := models.ScheduleStats{Assignments: len(schedules)}
	guards := map[string]bool{}
	for _, schedule := range schedules {
		key := schedule.GuardID
		if key == "" {
			key = schedule.GuardName
		}
		guards[key] = true
		if schedule.Status == models.ScheduleStatusActive {
			stats.Active++
			stats.DailyVisits += len(schedule.TimeSlots)
		}
	}
	stats.Guards = len(guards)
	return stats
}

func wrapScheduleConflict(conflict *models.ScheduleConflictError) error {
	base := appErrors.ErrConflict
	switch conflict.Type {
	case models.ConflictInvalidDateRange:
		base = appErrors.ErrInvalidDateRange
	case models.ConflictGuardUnavailable:
		base = appErrors.ErrGuardUnavailable
	case models.ConflictIncompleteRow:
		base = appErrors.ErrIncompleteRow
	case models.ConflictDuplicateGuardTime:
		base = appErrors.ErrDuplicateGuardTime
	case models.ConflictDuplicateCheckpointTime:
		base = appErrors.ErrDuplicateCheckpointTime
	case models.ConflictExistingGuardTime:
		base = appErrors.ErrExistingGuardTimeConflict
	case models.ConflictExistingCheckpointTime:
		base = appErrors.ErrExistingCheckpointTimeConflict
	}
	return appErrors.Wrap(conflict, base.Code, base.Status, conflict.Message)
}

func slotID(checkpointID, visitTime string) string {
	return fmt.Sprintf("%s-%s", checkpointID, visitTime)
}
