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

type guardRepository interface {
	List(ctx context.Context, filter models.GuardFilter) ([]models.Guard, error)
	FindByID(ctx context.Context, id string) (*models.Guard, error)
	Create(ctx context.Context, guard *models.Guard) error
	Update(ctx context.Context, guard *models.Guard) error
	Delete(ctx context.Context, id string) error
}

// SaveGuardRequest creates or updates a guard.
type SaveGuardRequest struct {
	Name         string `json:"name" validate:"required"`
	Phone        string `json:"phone"`
	Email        string `json:"email" validate:"omitempty,email"`
	EmployeeID   string `json:"employee_id" validate:"required"`
	Status       string `json:"status" validate:"required,oneof=active on-duty inactive"`
	AssignedZone string `json:"assigned_zone"`
}

// GuardService owns guard CRUD and eligibility.
type GuardService struct {
	repo      guardRepository
	audit     *AuditService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGuardService constructs a GuardService.
func NewGuardService(repo guardRepository, audit *AuditService, validate *validator.Validate, logger *zap.Logger) *GuardService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GuardService{repo: repo, audit: audit, validator: validate, logger: logger}
}

// List returns guards matching the filter.
func (s *GuardService) List(ctx context.Context, filter models.GuardFilter) ([]models.Guard, error) {
	guards, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list guards")
	}
	return guards, nil
}

// ListEligible returns guards that may be scheduled or rostered.
// Inactive guards are excluded.
func (s *GuardService) ListEligible(ctx context.Context) ([]models.Guard, error) {
	guards, err := s.repo.List(ctx, models.GuardFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list guards")
	}
	eligible := make([]models.Guard, 0, len(guards))
	for _, guard := range guards {
		if guard.Status != models.GuardStatusInactive {
			eligible = append(eligible, guard)
		}
	}
	return eligible, nil
}

// Get loads one guard.
func (s *GuardService) Get(ctx context.Context, id string) (*models.Guard, error) {
	guard, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "guard not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load guard")
	}
	return guard, nil
}

// Create stores a new guard.
func (s *GuardService) Create(ctx context.Context, actor string, req SaveGuardRequest) (*models.Guard, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid guard payload")
	}
	guard := &models.Guard{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		EmployeeID:   req.EmployeeID,
		Status:       models.GuardStatus(req.Status),
		AssignedZone: req.AssignedZone,
	}
	if err := s.repo.Create(ctx, guard); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create guard")
	}
	if s.audit != nil {
		s.audit.Record(ctx, actor, models.AuditModuleUsers, models.AuditActionCreate, "guard", guard.ID,
			fmt.Sprintf("registered guard %s (%s)", guard.Name, guard.EmployeeID))
	}
	return guard, nil
}

// Update modifies a guard.
func (s *GuardService) Update(ctx context.Context, actor, id string, req SaveGuardRequest) (*models.Guard, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid guard payload")
	}
	guard, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	guard.Name = req.Name
	guard.Phone = req.Phone
	guard.Email = req.Email
	guard.EmployeeID = req.EmployeeID
	guard.Status = models.GuardStatus(req.Status)
	guard.AssignedZone = req.AssignedZone

	if err := s.repo.Update(ctx, guard); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update guard")
	}
	if s.audit != nil {
		s.audit.Record(ctx, actor, models.AuditModuleUsers, models.AuditActionUpdate, "guard", id,
			fmt.Sprintf("updated guard %s", guard.Name))
	}
	return guard, nil
}

// Delete removes a guard.
func (s *GuardService) Delete(ctx context.Context, actor, id string) error {
	guard, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete guard")
	}
	if s.audit != nil {
		s.audit.Record(ctx, actor, models.AuditModuleUsers, models.AuditActionDelete, "guard", id,
			fmt.Sprintf("removed guard %s", guard.Name))
	}
	return nil
}
