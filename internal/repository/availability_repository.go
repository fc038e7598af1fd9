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

const availabilityColumns = "id, guard_id, guard_name, mode, type, start_date, end_date, weekdays, note, source, roster_id, created_at"

// AvailabilityRepository provides persistence for guard unavailability
// records, both manual and roster-derived.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository creates a new availability repository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// List returns availability records, optionally scoped to one guard,
// newest first.
func (r *AvailabilityRepository) List(ctx context.Context, guardID string) ([]models.GuardAvailability, error) {
	base := fmt.Sprintf("SELECT %s FROM guard_availability WHERE 1=1", availabilityColumns)
	var conditions []string
	var args []interface{}

	if guardID != "" {
		conditions = append(conditions, fmt.Sprintf("guard_id = $%d", len(args)+1))
		args = append(args, guardID)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}
	base += " ORDER BY created_at DESC"

	var records []models.GuardAvailability
	if err := r.db.SelectContext(ctx, &records, base, args...); err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	return records, nil
}

// ListRelevant returns records that could match any date in the
// inclusive [startDate, endDate] window: every weekly-off record plus
// date-range records overlapping the window. Callers still run the
// per-date matcher over the result.
func (r *AvailabilityRepository) ListRelevant(ctx context.Context, guardID, startDate, endDate string) ([]models.GuardAvailability, error) {
	query := fmt.Sprintf(`SELECT %s FROM guard_availability WHERE guard_id = $1 AND (mode = $2 OR (start_date <= $3 AND end_date >= $4))`, availabilityColumns)
	var records []models.GuardAvailability
	if err := r.db.SelectContext(ctx, &records, query, guardID, models.AvailabilityModeWeeklyOff, endDate, startDate); err != nil {
		return nil, fmt.Errorf("list relevant availability: %w", err)
	}
	return records, nil
}

// FindByID loads an availability record by id.
func (r *AvailabilityRepository) FindByID(ctx context.Context, id string) (*models.GuardAvailability, error) {
	query := fmt.Sprintf("SELECT %s FROM guard_availability WHERE id = $1", availabilityColumns)
	var record models.GuardAvailability
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

// Create stores a new availability record.
func (r *AvailabilityRepository) Create(ctx context.Context, record *models.GuardAvailability) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO guard_availability (id, guard_id, guard_name, mode, type, start_date, end_date, weekdays, note, source, roster_id, created_at) VALUES (:id, :guard_id, :guard_name, :mode, :type, :start_date, :end_date, :weekdays, :note, :source, :roster_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create availability: %w", err)
	}
	return nil
}

// Update modifies an availability record.
func (r *AvailabilityRepository) Update(ctx context.Context, record *models.GuardAvailability) error {
	const query = `UPDATE guard_availability SET guard_id = :guard_id, guard_name = :guard_name, mode = :mode, type = :type, start_date = :start_date, end_date = :end_date, weekdays = :weekdays, note = :note WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("update availability: %w", err)
	}
	return nil
}

// Delete removes an availability record by id.
func (r *AvailabilityRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM guard_availability WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete availability: %w", err)
	}
	return nil
}

// ReplaceRosterDerived atomically swaps the derived rows of one roster:
// deletes every record the roster previously projected, then inserts
// the fresh projection. Used on roster create, update, and delete (with
// an empty records slice).
func (r *AvailabilityRepository) ReplaceRosterDerived(ctx context.Context, rosterID string, records []models.GuardAvailability) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin roster replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM guard_availability WHERE source = $1 AND roster_id = $2`, models.AvailabilitySourceRoster, rosterID); err != nil {
		return fmt.Errorf("clear roster rows: %w", err)
	}

	const query = `INSERT INTO guard_availability (id, guard_id, guard_name, mode, type, start_date, end_date, weekdays, note, source, roster_id, created_at) VALUES (:id, :guard_id, :guard_name, :mode, :type, :start_date, :end_date, :weekdays, :note, :source, :roster_id, :created_at)`
	now := time.Now().UTC()
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.NewString()
		}
		if records[i].CreatedAt.IsZero() {
			records[i].CreatedAt = now
		}
		if _, err := tx.NamedExecContext(ctx, query, records[i]); err != nil {
			return fmt.Errorf("insert roster row %s: %w", records[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit roster replace: %w", err)
	}
	return nil
}
