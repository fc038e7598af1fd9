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

const checkpointColumns = "id, name, zone_id, zone_name, scan_types, tag_id, location, latitude, longitude, nfc_config, qr_config, status, created_at"

// CheckpointRepository provides persistence for checkpoints.
type CheckpointRepository struct {
	db *sqlx.DB
}

// NewCheckpointRepository creates a new checkpoint repository.
func NewCheckpointRepository(db *sqlx.DB) *CheckpointRepository {
	return &CheckpointRepository{db: db}
}

// List returns checkpoints, optionally filtered by zone name or search
// term, ordered by name.
func (r *CheckpointRepository) List(ctx context.Context, zoneName, search string) ([]models.Checkpoint, error) {
	base := fmt.Sprintf("SELECT %s FROM checkpoints WHERE 1=1", checkpointColumns)
	var conditions []string
	var args []interface{}

	if zoneName != "" {
		conditions = append(conditions, fmt.Sprintf("zone_name = $%d", len(args)+1))
		args = append(args, zoneName)
	}
	if search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR location ILIKE $%d)", len(args)+1, len(args)+2))
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}
	base += " ORDER BY name ASC"

	var checkpoints []models.Checkpoint
	if err := r.db.SelectContext(ctx, &checkpoints, base, args...); err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}
	return checkpoints, nil
}

// FindByID loads a checkpoint by id.
func (r *CheckpointRepository) FindByID(ctx context.Context, id string) (*models.Checkpoint, error) {
	query := fmt.Sprintf("SELECT %s FROM checkpoints WHERE id = $1", checkpointColumns)
	var checkpoint models.Checkpoint
	if err := r.db.GetContext(ctx, &checkpoint, query, id); err != nil {
		return nil, err
	}
	return &checkpoint, nil
}

// Create stores a new checkpoint.
func (r *CheckpointRepository) Create(ctx context.Context, checkpoint *models.Checkpoint) error {
	if checkpoint.ID == "" {
		checkpoint.ID = uuid.NewString()
	}
	if checkpoint.CreatedAt.IsZero() {
		checkpoint.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO checkpoints (id, name, zone_id, zone_name, scan_types, tag_id, location, latitude, longitude, nfc_config, qr_config, status, created_at) VALUES (:id, :name, :zone_id, :zone_name, :scan_types, :tag_id, :location, :latitude, :longitude, :nfc_config, :qr_config, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, checkpoint); err != nil {
		return fmt.Errorf("create checkpoint: %w", err)
	}
	return nil
}

// Update modifies a checkpoint.
func (r *CheckpointRepository) Update(ctx context.Context, checkpoint *models.Checkpoint) error {
	const query = `UPDATE checkpoints SET name = :name, zone_id = :zone_id, zone_name = :zone_name, scan_types = :scan_types, tag_id = :tag_id, location = :location, latitude = :latitude, longitude = :longitude, nfc_config = :nfc_config, qr_config = :qr_config, status = :status WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, checkpoint); err != nil {
		return fmt.Errorf("update checkpoint: %w", err)
	}
	return nil
}

// UpdateNFCConfig replaces the stored NFC configuration of a checkpoint.
func (r *CheckpointRepository) UpdateNFCConfig(ctx context.Context, id string, cfg models.NFCConfig) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE checkpoints SET nfc_config = $1 WHERE id = $2`, cfg, id); err != nil {
		return fmt.Errorf("update checkpoint nfc config: %w", err)
	}
	return nil
}

// UpdateQRConfig replaces the stored QR configuration of a checkpoint.
func (r *CheckpointRepository) UpdateQRConfig(ctx context.Context, id string, cfg models.QRConfig) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE checkpoints SET qr_config = $1 WHERE id = $2`, cfg, id); err != nil {
		return fmt.Errorf("update checkpoint qr config: %w", err)
	}
	return nil
}

// Delete removes a checkpoint by id.
func (r *CheckpointRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM checkpoints WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete checkpoint: %w", err)
	}
	return nil
}

// Count returns the number of checkpoint rows.
func (r *CheckpointRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM checkpoints`); err != nil {
		return 0, fmt.Errorf("count checkpoints: %w", err)
	}
	return total, nil
}
