package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/guardwise/guardwise-api/internal/models"
)

const rosterColumns = "id, title, zone_name, guard_ids, day_off_weekdays, effective_from, effective_to, created_at"

// RosterRepository provides persistence for guard rosters.
type RosterRepository struct {
	db *sqlx.DB
}

// NewRosterRepository creates a new roster repository.
func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// List returns all rosters, newest first.
func (r *RosterRepository) List(ctx context.Context) ([]models.GuardRoster, error) {
	query := fmt.Sprintf("SELECT %s FROM guard_rosters ORDER BY created_at DESC", rosterColumns)
	var rosters []models.GuardRoster
	if err := r.db.SelectContext(ctx, &rosters, query); err != nil {
		return nil, fmt.Errorf("list rosters: %w", err)
	}
	return rosters, nil
}

// FindByID loads a roster by id.
func (r *RosterRepository) FindByID(ctx context.Context, id string) (*models.GuardRoster, error) {
	query := fmt.Sprintf("SELECT %s FROM guard_rosters WHERE id = $1", rosterColumns)
	var roster models.GuardRoster
	if err := r.db.GetContext(ctx, &roster, query, id); err != nil {
		return nil, err
	}
	return &roster, nil
}

// Create stores a new roster.
func (r *RosterRepository) Create(ctx context.Context, roster *models.GuardRoster) error {
	if roster.ID == "" {
		roster.ID = uuid.NewString()
	}
	if roster.CreatedAt.IsZero() {
		roster.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO guard_rosters (id, title, zone_name, guard_ids, day_off_weekdays, effective_from, effective_to, created_at) VALUES (:id, :title, :zone_name, :guard_ids, :day_off_weekdays, :effective_from, :effective_to, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, roster); err != nil {
		return fmt.Errorf("create roster: %w", err)
	}
	return nil
}

// Update modifies a roster.
func (r *RosterRepository) Update(ctx context.Context, roster *models.GuardRoster) error {
	const query = `UPDATE guard_rosters SET title = :title, zone_name = :zone_name, guard_ids = :guard_ids, day_off_weekdays = :day_off_weekdays, effective_from = :effective_from, effective_to = :effective_to WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, roster); err != nil {
		return fmt.Errorf("update roster: %w", err)
	}
	return nil
}

// Delete removes a roster by id.
func (r *RosterRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM guard_rosters WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete roster: %w", err)
	}
	return nil
}
