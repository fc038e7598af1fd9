package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/guardwise/guardwise-api/internal/models"
	appErrors "github.com/guardwise/guardwise-api/pkg/errors"
)

type zoneRepository interface {
	List(ctx context.Context) ([]models.Zone, error)
	FindByID(ctx context.Context, id string) (*models.Zone, error)
	Create(ctx context.Context, zone *models.Zone) error
	Update(ctx context.Context, zone *models.Zone) error
	Delete(ctx context.Context, id string) error
}

// SaveZoneRequest creates or updates a zone.
type SaveZoneRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Status      string   `json:"status"`
}

// ZoneService owns zone CRUD.
type ZoneService struct {
	repo      zoneRepository
	audit     *AuditService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewZoneService constructs a ZoneService.
func NewZoneService(repo zoneRepository, audit *AuditService, validate *validator.Validate, logger *zap.Logger) *ZoneService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZoneService{repo: repo, audit: audit, validator: validate, logger: logger}
}

// List returns all zones.
func (s *ZoneService) List(ctx context.Context) ([]models.Zone, error) {
	zones, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list zones")
	}
	return zones, nil
}

// Get loads one zone.
func (s *ZoneService) Get(ctx context.Context, id string) (*models.Zone, error) {
	zone, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "zone not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load zone")
	}
	return zone, nil
}

// Create stores a new zone.
func (s *ZoneService) Create(ctx context.Context, actor string, req SaveZoneRequest) (*models.Zone, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid zone payload")
	}
	zone := &models.Zone{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      req.Status,
	}
	if zone.Status == "" {
		zone.Status = "active"
	}
	if err := s.repo.Create(ctx, zone); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create zone")
	}
	if s.audit != nil {
		s.audit.Record(ctx, actor, models.AuditModuleCheckpoints, models.AuditActionCreate, "zone", zone.ID,
			fmt.Sprintf("created zone %q", zone.Name))
	}
	return zone, nil
}

// Update modifies a zone.
func (s *ZoneService) Update(ctx context.Context, actor, id string, req SaveZoneRequest) (*models.Zone, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid zone payload")
	}
	zone, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	zone.Name = req.Name
	zone.Description = req.Description
	zone.Location = req.Location
	zone.Latitude = req.Latitude
	zone.Longitude = req.Longitude
	if req.Status != "" {
		zone.Status = req.Status
	}
	if err := s.repo.Update(ctx, zone); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update zone")
	}
	if s.audit != nil {
		s.audit.Record(ctx, actor, models.AuditModuleCheckpoints, models.AuditActionUpdate, "zone", id,
			fmt.Sprintf("updated zone %q", zone.Name))
	}
	return zone, nil
}

// Delete removes a zone.
func (s *ZoneService) Delete(ctx context.Context, actor, id string) error {
	zone, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete zone")
	}
	if s.audit != nil {
		s.audit.Record(ctx, actor, models.AuditModuleCheckpoints, models.AuditActionDelete, "zone", id,
			fmt.Sprintf("deleted zone %q", zone.Name))
	}
	return nil
}
