package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/guardwise/guardwise-api/internal/models"
	appErrors "github.com/guardwise/guardwise-api/pkg/errors"
)

type auditRepository interface {
	Append(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, module string, limit int) ([]models.AuditLog, error)
	CountSince(ctx context.Context, cutoff time.Time) (int, error)
	Count(ctx context.Context) (int, error)
}

// AuditService appends and lists the append-only audit trail. Append
// failures are logged but never fail the operation they describe.
type AuditService struct {
	repo   auditRepository
	logger *zap.Logger
}

// NewAuditService constructs an AuditService.
func NewAuditService(repo auditRepository, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{repo: repo, logger: logger}
}

// Record appends one audit entry.
func (s *AuditService) Record(ctx context.Context, actor, module, action, entityType, entityID, summary string) {
	if s == nil || s.repo == nil {
		return
	}
	entry := &models.AuditLog{
		Actor:      actor,
		Module:     module,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Summary:    summary,
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		s.logger.Warn("audit append failed",
			zap.String("module", module),
			zap.String("action", action),
			zap.Error(err))
	}
}

// List returns audit entries newest first.
func (s *AuditService) List(ctx context.Context, module string, limit int) ([]models.AuditLog, error) {
	entries, err := s.repo.List(ctx, module, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list audit entries")
	}
	return entries, nil
}

// ActivitySince counts entries newer than the cutoff.
func (s *AuditService) ActivitySince(ctx context.Context, cutoff time.Time) (int, error) {
	total, err := s.repo.CountSince(ctx, cutoff)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count audit entries")
	}
	return total, nil
}

// Total counts all entries.
func (s *AuditService) Total(ctx context.Context) (int, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count audit entries")
	}
	return total, nil
}
