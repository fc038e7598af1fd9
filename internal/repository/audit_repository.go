package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/guardwise/guardwise-api/internal/models"
)

// AuditRepository provides append-only persistence for audit log entries.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Append stores one audit entry.
func (r *AuditRepository) Append(ctx context.Context, entry *models.AuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO audit_logs (id, actor, module, action, entity_type, entity_id, summary, created_at) VALUES (:id, :actor, :module, :action, :entity_type, :entity_id, :summary, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// List returns audit entries newest first, optionally filtered by module,
// capped at limit.
func (r *AuditRepository) List(ctx context.Context, module string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT id, actor, module, action, entity_type, entity_id, summary, created_at FROM audit_logs`
	args := []interface{}{limit}
	if module != "" {
		query += ` WHERE module = $2`
		args = append(args, module)
	}
	query += ` ORDER BY created_at DESC LIMIT $1`

	var entries []models.AuditLog
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	return entries, nil
}

// CountSince counts entries created at or after the cutoff.
func (r *AuditRepository) CountSince(ctx context.Context, cutoff time.Time) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM audit_logs WHERE created_at >= $1`, cutoff); err != nil {
		return 0, fmt.Errorf("count audit entries: %w", err)
	}
	return total, nil
}

// Count returns the total number of audit entries.
func (r *AuditRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM audit_logs`); err != nil {
		return 0, fmt.Errorf("count audit entries: %w", err)
	}
	return total, nil
}
