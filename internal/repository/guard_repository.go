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

const guardColumns = "id, name, phone, email, employee_id, status, assigned_zone, created_at"

// GuardRepository provides persistence for guards.
type GuardRepository struct {
	db *sqlx.DB
}

// NewGuardRepository creates a new guard repository.
func NewGuardRepository(db *sqlx.DB) *GuardRepository {
	return &GuardRepository{db: db}
}

// List returns guards matching the filter, ordered by name.
func (r *GuardRepository) List(ctx context.Context, filter models.GuardFilter) ([]models.Guard, error) {
	base := fmt.Sprintf("SELECT %s FROM guards WHERE 1=1", guardColumns)
	var conditions []string
	var args []interface{}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.ZoneName != "" {
		conditions = append(conditions, fmt.Sprintf("assigned_zone = $%d", len(args)+1))
		args = append(args, filter.ZoneName)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR employee_id ILIKE $%d)", len(args)+1, len(args)+2))
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}
	base += " ORDER BY name ASC"

	var guards []models.Guard
	if err := r.db.SelectContext(ctx, &guards, base, args...); err != nil {
		return nil, fmt.Errorf("list guards: %w", err)
	}
	return guards, nil
}

// FindByID loads a guard by id.
func (r *GuardRepository) FindByID(ctx context.Context, id string) (*models.Guard, error) {
	query := fmt.Sprintf("SELECT %s FROM guards WHERE id = $1", guardColumns)
	var guard models.Guard
	if err := r.db.GetContext(ctx, &guard, query, id); err != nil {
		return nil, err
	}
	return &guard, nil
}

// Create stores a new guard record.
func (r *GuardRepository) Create(ctx context.Context, guard *models.Guard) error {
	if guard.ID == "" {
		guard.ID = uuid.NewString()
	}
	if guard.CreatedAt.IsZero() {
		guard.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO guards (id, name, phone, email, employee_id, status, assigned_zone, created_at) VALUES (:id, :name, :phone, :email, :employee_id, :status, :assigned_zone, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, guard); err != nil {
		return fmt.Errorf("create guard: %w", err)
	}
	return nil
}

// Update modifies a guard record.
func (r *GuardRepository) Update(ctx context.Context, guard *models.Guard) error {
	const query = `UPDATE guards SET name = :name, phone = :phone, email = :email, employee_id = :employee_id, status = :status, assigned_zone = :assigned_zone WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, guard); err != nil {
		return fmt.Errorf("update guard: %w", err)
	}
	return nil
}

// Delete removes a guard by id.
func (r *GuardRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM guards WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete guard: %w", err)
	}
	return nil
}

// Count returns the number of guard rows.
func (r *GuardRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM guards`); err != nil {
		return 0, fmt.Errorf("count guards: %w", err)
	}
	return total, nil
}
