package models

import (
	"database/sql/driver"
	"time"
)

// ScheduleStatus enumerates schedule states. Inactive schedules are
// excluded from conflict checks and compliance aggregation.
type ScheduleStatus string

const (
	ScheduleStatusActive   ScheduleStatus = "active"
	ScheduleStatusInactive ScheduleStatus = "inactive"
)

// Valid reports whether the status is a known value.
func (s ScheduleStatus) Valid() bool {
	return s == ScheduleStatusActive || s == ScheduleStatusInactive
}

// ScheduleSlot is one daily visit time. Times are zero-padded 24h "HH:MM"
// strings; they are stored and compared in that form, display layers map
// to 12h labels.
type ScheduleSlot struct {
	ID    string `json:"id"`
	Time  string `json:"time"`
	Label string `json:"label"`
}

// ScheduleSlots is the jsonb column holding a schedule's daily visit times.
type ScheduleSlots []ScheduleSlot

// Value implements driver.Valuer.
func (s ScheduleSlots) Value() (driver.Value, error) {
	if s == nil {
		s = ScheduleSlots{}
	}
	return jsonValue(s)
}

// Scan implements sql.Scanner.
func (s *ScheduleSlots) Scan(src interface{}) error {
	return scanJSON(src, s)
}

// Schedule is a recurring daily assignment of one guard to one checkpoint
// over an inclusive [StartDate, EndDate] range.
type Schedule struct {
	ID               string         `db:"id" json:"id"`
	GuardID          string         `db:"guard_id" json:"guard_id"`
	GuardName        string         `db:"guard_name" json:"guard_name"`
	CheckpointID     string         `db:"checkpoint_id" json:"checkpoint_id"`
	CheckpointName   string         `db:"checkpoint_name" json:"checkpoint_name"`
	StartDate        string         `db:"start_date" json:"start_date"`
	EndDate          string         `db:"end_date" json:"end_date"`
	ZoneName         string         `db:"zone_name" json:"zone_name"`
	TimeSlots        ScheduleSlots  `db:"time_slots" json:"time_slots"`
	GraceTimeMinutes int            `db:"grace_time_minutes" json:"grace_time_minutes"`
	Status           ScheduleStatus `db:"status" json:"status"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// ScheduleFilter describes query params for listing schedules.
type ScheduleFilter struct {
	GuardID  string
	ZoneName string
	Status   *ScheduleStatus
	Search   string
}

// Conflict type discriminators, aligned with the error codes surfaced to
// the admin.
const (
	ConflictInvalidDateRange        = "INVALID_DATE_RANGE"
	ConflictGuardUnavailable        = "GUARD_UNAVAILABLE"
	ConflictIncompleteRow           = "INCOMPLETE_ROW"
	ConflictDuplicateGuardTime      = "DUPLICATE_GUARD_TIME"
	ConflictDuplicateCheckpointTime = "DUPLICATE_CHECKPOINT_TIME"
	ConflictExistingGuardTime       = "EXISTING_GUARD_TIME_CONFLICT"
	ConflictExistingCheckpointTime  = "EXISTING_CHECKPOINT_TIME_CONFLICT"
)

// ScheduleConflictError is returned when a proposed batch collides with
// itself, with existing schedules, or with guard availability. Validation
// is all-or-nothing: the first conflict rejects the whole batch.
type ScheduleConflictError struct {
	Type         string             `json:"type"`
	Message      string             `json:"message"`
	Times        []string           `json:"times,omitempty"`
	CheckpointID string             `json:"checkpoint_id,omitempty"`
	Time         string             `json:"time,omitempty"`
	Date         string             `json:"date,omitempty"`
	Record       *GuardAvailability `json:"record,omitempty"`
}

// Error implements the error interface.
func (e *ScheduleConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// ScheduleGuardGroup buckets a guard's schedules for the grouped listing.
type ScheduleGuardGroup struct {
	GuardID   string     `json:"guard_id"`
	GuardName string     `json:"guard_name"`
	ZoneNames []string   `json:"zone_names"`
	Visits    int        `json:"visits"`
	Schedules []Schedule `json:"schedules"`
}

// ScheduleRangeGroup buckets schedules by their literal date range pair.
type ScheduleRangeGroup struct {
	StartDate string     `json:"start_date"`
	EndDate   string     `json:"end_date"`
	Visits    int        `json:"visits"`
	Schedules []Schedule `json:"schedules"`
}

// ZoneLoad is the per-zone workload metric: daily visits summed over
// active schedules.
type ZoneLoad struct {
	ZoneName    string `json:"zone_name"`
	Visits      int    `json:"visits"`
	Checkpoints int    `json:"checkpoints"`
}

// ScheduleStats summarises a filtered schedule listing.
type ScheduleStats struct {
	Assignments int `json:"assignments"`
	Guards      int `json:"guards"`
	Active      int `json:"active"`
	DailyVisits int `json:"daily_visits"`
}
