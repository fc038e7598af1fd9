package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/guardwise/guardwise-api/internal/models"
)

const scheduleColumns = "id, guard_id, guard_name, checkpoint_id, checkpoint_name, start_date, end_date, zone_name, time_slots, grace_time_minutes, status, created_at, updated_at"

// ScheduleRepository provides persistence for patrol schedules.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// List returns schedules matching the filter, newest first.
func (r *ScheduleRepository) List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error) {
	base := fmt.Sprintf("SELECT %s FROM schedules WHERE 1=1", scheduleColumns)
	var conditions []string
	var args []interface{}

	if filter.GuardID != "" {
		conditions = append(conditions, fmt.Sprintf("guard_id = $%d", len(args)+1))
		args = append(args, filter.GuardID)
	}
	if filter.ZoneName != "" {
		conditions = append(conditions, fmt.Sprintf("zone_name = $%d", len(args)+1))
		args = append(args, filter.ZoneName)
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(guard_name ILIKE $%d OR checkpoint_name ILIKE $%d)", len(args)+1, len(args)+2))
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}
	base += " ORDER BY created_at DESC"

	var schedules []models.Schedule
	if err := r.db.SelectContext(ctx, &schedules, base, args...); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, nil
}

// FindByID loads a schedule by id.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.Schedule, error) {
	query := fmt.Sprintf("SELECT %s FROM schedules WHERE id = $1", scheduleColumns)
	var schedule models.Schedule
	if err := r.db.GetContext(ctx, &schedule, query, id); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ListActiveOverlapping returns active schedules whose inclusive date
// range overlaps [startDate, endDate]. Dates are ISO strings so plain
// string comparison matches chronological order.
func (r *ScheduleRepository) ListActiveOverlapping(ctx context.Context, startDate, endDate string) ([]models.Schedule, error) {
	query := fmt.Sprintf("SELECT %s FROM schedules WHERE status = $1 AND start_date <= $2 AND end_date >= $3", scheduleColumns)
	var schedules []models.Schedule
	if err := r.db.SelectContext(ctx, &schedules, query, models.ScheduleStatusActive, endDate, startDate); err != nil {
		return nil, fmt.Errorf("list overlapping schedules: %w", err)
	}
	return schedules, nil
}

// BulkCreate inserts a validated batch atomically. Missing ids and
// timestamps are filled in before insert.
func (r *ScheduleRepository) BulkCreate(ctx context.Context, schedules []models.Schedule) error {
	if len(schedules) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk create: %w", err)
	}
	defer tx.Rollback()

	const query = `INSERT INTO schedules (id, guard_id, guard_name, checkpoint_id, checkpoint_name, start_date, end_date, zone_name, time_slots, grace_time_minutes, status, created_at, updated_at) VALUES (:id, :guard_id, :guard_name, :checkpoint_id, :checkpoint_name, :start_date, :end_date, :zone_name, :time_slots, :grace_time_minutes, :status, :created_at, :updated_at)`

	now := time.Now().UTC()
	for i := range schedules {
		if schedules[i].ID == "" {
			schedules[i].ID = uuid.NewString()
		}
		if schedules[i].CreatedAt.IsZero() {
			schedules[i].CreatedAt = now
		}
		schedules[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, schedules[i]); err != nil {
			return fmt.Errorf("insert schedule %s: %w", schedules[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk create: %w", err)
	}
	return nil
}

// Update modifies a schedule and bumps updated_at.
func (r *ScheduleRepository) Update(ctx context.Context, schedule *models.Schedule) error {
	schedule.UpdatedAt = time.Now().UTC()
	const query = `UPDATE schedules SET guard_id = :guard_id, guard_name = :guard_name, checkpoint_id = :checkpoint_id, checkpoint_name = :checkpoint_name, start_date = :start_date, end_date = :end_date, zone_name = :zone_name, time_slots = :time_slots, grace_time_minutes = :grace_time_minutes, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, schedule); err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}
	return nil
}

// UpdateStatus toggles a schedule between active and inactive.
func (r *ScheduleRepository) UpdateStatus(ctx context.Context, id string, status models.ScheduleStatus) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE schedules SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update schedule status: %w", err)
	}
	return nil
}

// Delete removes a schedule by id.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}

// Count returns the number of schedule rows.
func (r *ScheduleRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM schedules`); err != nil {
		return 0, fmt.Errorf("count schedules: %w", err)
	}
	return total, nil
}
