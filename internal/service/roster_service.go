package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/guardwise/guardwise-api/internal/models"
	appErrors "github.com/guardwise/guardwise-api/pkg/errors"
)

type rosterRepository interface {
	List(ctx context.Context) ([]models.GuardRoster, error)
	FindByID(ctx context.Context, id string) (*models.GuardRoster, error)
	Create(ctx context.Context, roster *models.GuardRoster) error
	Update(ctx context.Context, roster *models.GuardRoster) error
	Delete(ctx context.Context, id string) error
}

type rosterAvailabilityRepository interface {
	ReplaceRosterDerived(ctx context.Context, rosterID string, records []models.GuardAvailability) error
}

// SaveRosterRequest creates or updates a roster.
type SaveRosterRequest struct {
	Title          string   `json:"title" validate:"required"`
	ZoneName       string   `json:"zone_name" validate:"required"`
	GuardIDs       []string `json:"guard_ids" validate:"required,min=1"`
	DayOffWeekdays []int    `json:"day_off_weekdays" validate:"required,min=1,dive,min=0,max=6"`
	EffectiveFrom  string   `json:"effective_from" validate:"required,datetime=2006-01-02"`
	EffectiveTo    string   `json:"effective_to" validate:"required,datetime=2006-01-02"`
}

// RosterService manages rosters and keeps their projected weekly-off
// availability rows in sync.
type RosterService struct {
	repo         rosterRepository
	availability rosterAvailabilityRepository
	guards       availabilityGuardRepository
	audit        *AuditService
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewRosterService constructs a RosterService.
func NewRosterService(repo rosterRepository, availability rosterAvailabilityRepository, guards availabilityGuardRepository, audit *AuditService, validate *validator.Validate, logger *zap.Logger) *RosterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{repo: repo, availability: availability, guards: guards, audit: audit, validator: validate, logger: logger}
}

// ProjectRoster derives the weekly-off availability rows a roster
// implies: one record per guard with a deterministic id, so re-running
// the projection replaces rather than duplicates. Guard name resolution
// falls back to the guard id and never fails the projection.
func ProjectRoster(roster *models.GuardRoster, guardNames map[string]string) []models.GuardAvailability {
	if roster == nil {
		return nil
	}
	records := make([]models.GuardAvailability, 0, len(roster.GuardIDs))
	for _, guardID := range roster.GuardIDs {
		name := guardNames[guardID]
		if name == "" {
			name = guardID
		}
		weekdays := make(pq.Int64Array, len(roster.DayOffWeekdays))
		copy(weekdays, roster.DayOffWeekdays)
		rosterID := roster.ID
		records = append(records, models.GuardAvailability{
			ID:        fmt.Sprintf("roster-%s-%s", roster.ID, guardID),
			GuardID:   guardID,
			GuardName: name,
			Mode:      models.AvailabilityModeWeeklyOff,
			Type:      models.AvailabilityTypeOffRoster,
			StartDate: roster.EffectiveFrom,
			EndDate:   roster.EffectiveTo,
			Weekdays:  weekdays,
			Note:      roster.Title,
			Source:    models.AvailabilitySourceRoster,
			RosterID:  &rosterID,
		})
	}
	return records
}

// List returns all rosters.
func (s *RosterService) List(ctx context.Context) ([]models.GuardRoster, error) {
	rosters, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rosters")
	}
	return rosters, nil
}

// Create stores a roster and projects its availability rows.
func (s *RosterService) Create(ctx context.Context, actor string, req SaveRosterRequest) (*models.GuardRoster, error) {
	roster, err := s.buildRoster(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, roster); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create roster")
	}
	if err := s.regenerate(ctx, roster); err != nil {
		return nil, err
	}
	if s.audit != nil {
		s.audit.Record(ctx, actor, models.AuditModuleAvailability, models.AuditActionCreate, "roster", roster.ID,
			fmt.Sprintf("created roster %q covering %d guard(s)", roster.Title, len(roster.GuardIDs)))
	}
	return roster, nil
}

// Update modifies a roster and regenerates its projection wholesale.
func (s *RosterService) Update(ctx context.Context, actor, id string, req SaveRosterRequest) (*models.GuardRoster, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "roster not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}

	roster, err := s.buildRoster(req)
	if err != nil {
		return nil, err
	}
	roster.ID = existing.ID
	roster.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, roster); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update roster")
	}
	if err := s.regenerate(ctx, roster); err != nil {
		return nil, err
	}
	if s.audit != nil {
		s.audit.Record(ctx, actor, models.AuditModuleAvailability, models.AuditActionReplace, "roster", roster.ID,
			fmt.Sprintf("updated roster %q and regenerated its off days", roster.Title))
	}
	return roster, nil
}

// Delete removes a roster together with every row it projected.
func (s *RosterService) Delete(ctx context.Context, actor, id string) error {
	roster, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "roster not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	if err := s.availability.ReplaceRosterDerived(ctx, id, nil); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear roster off days")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete roster")
	}
	if s.audit != nil {
		s.audit.Record(ctx, actor, models.AuditModuleAvailability, models.AuditActionDelete, "roster", id,
			fmt.Sprintf("deleted roster %q", roster.Title))
	}
	return nil
}

// RosterReport projects rosters into report rows with weekday labels
// and a status derived against today.
func (s *RosterService) RosterReport(ctx context.Context, today string) ([]models.RosterReportRow, error) {
	rosters, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rosters")
	}

	rows := make([]models.RosterReportRow, 0, len(rosters))
	for _, roster := range rosters {
		names := make([]string, 0, len(roster.GuardIDs))
		for _, guardID := range roster.GuardIDs {
			names = append(names, s.guardName(ctx, guardID))
		}
		labels := make([]string, 0, len(roster.DayOffWeekdays))
		for _, d := range roster.DayOffWeekdays {
			labels = append(labels, weekdayLabel(int(d)))
		}
		rows = append(rows, models.RosterReportRow{
			ID:            roster.ID,
			Title:         roster.Title,
			ZoneName:      roster.ZoneName,
			GuardNames:    names,
			DayOffLabels:  labels,
			EffectiveFrom: roster.EffectiveFrom,
			EffectiveTo:   roster.EffectiveTo,
			Status:        rangeStatus(roster.EffectiveFrom, roster.EffectiveTo, today),
		})
	}
	return rows, nil
}

func (s *RosterService) buildRoster(req SaveRosterRequest) (*models.GuardRoster, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid roster payload")
	}
	if req.EffectiveFrom > req.EffectiveTo {
		return nil, appErrors.Clone(appErrors.ErrInvalidDateRange, "")
	}
	return &models.GuardRoster{
		Title:          req.Title,
		ZoneName:       req.ZoneName,
		GuardIDs:       append(pq.StringArray{}, req.GuardIDs...),
		DayOffWeekdays: toInt64Array(req.DayOffWeekdays),
		EffectiveFrom:  req.EffectiveFrom,
		EffectiveTo:    req.EffectiveTo,
	}, nil
}

func (s *RosterService) regenerate(ctx context.Context, roster *models.GuardRoster) error {
	names := map[string]string{}
	if s.guards != nil {
		if guards, err := s.guards.List(ctx, models.GuardFilter{}); err == nil {
			for _, guard := range guards {
				names[guard.ID] = guard.Name
			}
		}
	}
	records := ProjectRoster(roster, names)
	if err := s.availability.ReplaceRosterDerived(ctx, roster.ID, records); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to project roster off days")
	}
	return nil
}

func (s *RosterService) guardName(ctx context.Context, guardID string) string {
	if s.guards != nil {
		if guard, err := s.guards.FindByID(ctx, guardID); err == nil {
			return guard.Name
		}
	}
	return guardID
}

var weekdayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func weekdayLabel(weekday int) string {
	if weekday < 0 || weekday > 6 {
		return fmt.Sprintf("Day %d", weekday)
	}
	return weekdayNames[weekday]
}
