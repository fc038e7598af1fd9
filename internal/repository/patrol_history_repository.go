package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/guardwise/guardwise-api/internal/models"
)

const patrolColumns = "id, date, guard_id, guard_name, zone_name, checkpoint_name, status, scan_method, grace_time_minutes, late_by_minutes, skip_reason"

// PatrolHistoryRepository provides persistence for patrol visit records.
type PatrolHistoryRepository struct {
	db *sqlx.DB
}

// NewPatrolHistoryRepository creates a new patrol history repository.
func NewPatrolHistoryRepository(db *sqlx.DB) *PatrolHistoryRepository {
	return &PatrolHistoryRepository{db: db}
}

// List returns patrol records matching the filter, ordered by date then
// guard name. Late-threshold and exclude-ok refinements apply in the
// service layer where the classifier semantics live.
func (r *PatrolHistoryRepository) List(ctx context.Context, filter models.PatrolHistoryFilter) ([]models.PatrolHistory, error) {
	base := fmt.Sprintf("SELECT %s FROM patrol_history WHERE 1=1", patrolColumns)
	var conditions []string
	var args []interface{}

	if filter.FromDate != "" {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)+1))
		args = append(args, filter.FromDate)
	}
	if filter.ToDate != "" {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)+1))
		args = append(args, filter.ToDate)
	}
	if filter.GuardName != "" {
		conditions = append(conditions, fmt.Sprintf("guard_name = $%d", len(args)+1))
		args = append(args, filter.GuardName)
	}
	if filter.ZoneName != "" {
		conditions = append(conditions, fmt.Sprintf("zone_name = $%d", len(args)+1))
		args = append(args, filter.ZoneName)
	}
	if filter.CheckpointName != "" {
		conditions = append(conditions, fmt.Sprintf("checkpoint_name = $%d", len(args)+1))
		args = append(args, filter.CheckpointName)
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.ScanMethod != nil {
		conditions = append(conditions, fmt.Sprintf("scan_method = $%d", len(args)+1))
		args = append(args, *filter.ScanMethod)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}
	base += " ORDER BY date ASC, guard_name ASC"

	var records []models.PatrolHistory
	if err := r.db.SelectContext(ctx, &records, base, args...); err != nil {
		return nil, fmt.Errorf("list patrol history: %w", err)
	}
	return records, nil
}

// Create stores one patrol record.
func (r *PatrolHistoryRepository) Create(ctx context.Context, record *models.PatrolHistory) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	const query = `INSERT INTO patrol_history (id, date, guard_id, guard_name, zone_name, checkpoint_name, status, scan_method, grace_time_minutes, late_by_minutes, skip_reason) VALUES (:id, :date, :guard_id, :guard_name, :zone_name, :checkpoint_name, :status, :scan_method, :grace_time_minutes, :late_by_minutes, :skip_reason)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create patrol record: %w", err)
	}
	return nil
}

// BulkCreate inserts a batch of patrol records atomically.
func (r *PatrolHistoryRepository) BulkCreate(ctx context.Context, records []models.PatrolHistory) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin patrol bulk create: %w", err)
	}
	defer tx.Rollback()

	const query = `INSERT INTO patrol_history (id, date, guard_id, guard_name, zone_name, checkpoint_name, status, scan_method, grace_time_minutes, late_by_minutes, skip_reason) VALUES (:id, :date, :guard_id, :guard_name, :zone_name, :checkpoint_name, :status, :scan_method, :grace_time_minutes, :late_by_minutes, :skip_reason)`
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.NewString()
		}
		if _, err := tx.NamedExecContext(ctx, query, records[i]); err != nil {
			return fmt.Errorf("insert patrol record %s: %w", records[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit patrol bulk create: %w", err)
	}
	return nil
}

// CountMissedSince counts missed visits on or after the given date.
func (r *PatrolHistoryRepository) CountMissedSince(ctx context.Context, date string) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM patrol_history WHERE status = $1 AND date >= $2`, models.PatrolStatusMissed, date); err != nil {
		return 0, fmt.Errorf("count missed patrols: %w", err)
	}
	return total, nil
}
