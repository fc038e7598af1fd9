package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/guardwise/guardwise-api/internal/models"
)

// ZoneRepository provides persistence for zones.
type ZoneRepository struct {
	db *sqlx.DB
}

// NewZoneRepository creates a new zone repository.
func NewZoneRepository(db *sqlx.DB) *ZoneRepository {
	return &ZoneRepository{db: db}
}

// List returns all zones ordered by name.
func (r *ZoneRepository) List(ctx context.Context) ([]models.Zone, error) {
	const query = `SELECT id, name, description, location, latitude, longitude, status, created_at FROM zones ORDER BY name ASC`
	var zones []models.Zone
	if err := r.db.SelectContext(ctx, &zones, query); err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	return zones, nil
}

// FindByID loads a zone by id.
func (r *ZoneRepository) FindByID(ctx context.Context, id string) (*models.Zone, error) {
	const query = `SELECT id, name, description, location, latitude, longitude, status, created_at FROM zones WHERE id = $1`
	var zone models.Zone
	if err := r.db.GetContext(ctx, &zone, query, id); err != nil {
		return nil, err
	}
	return &zone, nil
}

// Create stores a new zone.
func (r *ZoneRepository) Create(ctx context.Context, zone *models.Zone) error {
	if zone.ID == "" {
		zone.ID = uuid.NewString()
	}
	if zone.CreatedAt.IsZero() {
		zone.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO zones (id, name, description, location, latitude, longitude, status, created_at) VALUES (:id, :name, :description, :location, :latitude, :longitude, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, zone); err != nil {
		return fmt.Errorf("create zone: %w", err)
	}
	return nil
}

// Update modifies a zone.
func (r *ZoneRepository) Update(ctx context.Context, zone *models.Zone) error {
	const query = `UPDATE zones SET name = :name, description = :description, location = :location, latitude = :latitude, longitude = :longitude, status = :status WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, zone); err != nil {
		return fmt.Errorf("update zone: %w", err)
	}
	return nil
}

// Delete removes a zone by id.
func (r *ZoneRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM zones WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete zone: %w", err)
	}
	return nil
}

// Count returns the number of zone rows.
func (r *ZoneRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM zones`); err != nil {
		return 0, fmt.Errorf("count zones: %w", err)
	}
	return total, nil
}
