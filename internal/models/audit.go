package models

import "time"

// Audit modules mirror the console's feature areas.
const (
	AuditModuleSchedules    = "schedules"
	AuditModuleCheckpoints  = "checkpoints"
	AuditModuleUsers        = "users"
	AuditModuleAlerts       = "alerts"
	AuditModuleAvailability = "availability"
)

// Audit actions.
const (
	AuditActionCreate  = "create"
	AuditActionUpdate  = "update"
	AuditActionDelete  = "delete"
	AuditActionToggle  = "toggle"
	AuditActionReplace = "replace"
)

// AuditLog is one append-only audit trail record, listed newest first.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	Actor      string    `db:"actor" json:"actor"`
	Module     string    `db:"module" json:"module"`
	Action     string    `db:"action" json:"action"`
	EntityType string    `db:"entity_type" json:"entity_type"`
	EntityID   string    `db:"entity_id" json:"entity_id"`
	Summary    string    `db:"summary" json:"summary"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
