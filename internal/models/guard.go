package models

import "time"

// GuardStatus enumerates guard lifecycle states.
type GuardStatus string

const (
	GuardStatusActive   GuardStatus = "active"
	GuardStatusOnDuty   GuardStatus = "on-duty"
	GuardStatusInactive GuardStatus = "inactive"
)

// Valid reports whether the status is a known value.
func (s GuardStatus) Valid() bool {
	switch s {
	case GuardStatusActive, GuardStatusOnDuty, GuardStatusInactive:
		return true
	}
	return false
}

// Guard represents a patrol guard. Inactive guards are excluded from
// scheduling eligibility and roster pickers.
type Guard struct {
	ID           string      `db:"id" json:"id"`
	Name         string      `db:"name" json:"name"`
	Phone        string      `db:"phone" json:"phone"`
	Email        string      `db:"email" json:"email"`
	EmployeeID   string      `db:"employee_id" json:"employee_id"`
	Status       GuardStatus `db:"status" json:"status"`
	AssignedZone string      `db:"assigned_zone" json:"assigned_zone,omitempty"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
}

// GuardFilter describes query params for listing guards.
type GuardFilter struct {
	Status   *GuardStatus
	ZoneName string
	Search   string
}

// Zone groups checkpoints and guards under one physical area.
type Zone struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Location    string    `db:"location" json:"location"`
	Latitude    *float64  `db:"latitude" json:"latitude,omitempty"`
	Longitude   *float64  `db:"longitude" json:"longitude,omitempty"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
