package models

import (
	"time"

	"github.com/lib/pq"
)

// AvailabilityMode distinguishes fixed date ranges from recurring weekly
// off patterns.
type AvailabilityMode string

const (
	AvailabilityModeDateRange AvailabilityMode = "date-range"
	AvailabilityModeWeeklyOff AvailabilityMode = "weekly-off"
)

// AvailabilityType carries the reporting semantics of an unavailability
// record; it does not affect matching.
type AvailabilityType string

const (
	AvailabilityTypeLeave     AvailabilityType = "leave"
	AvailabilityTypeOffRoster AvailabilityType = "off-roster"
	AvailabilityTypeTraining  AvailabilityType = "training"
	AvailabilityTypeHoliday   AvailabilityType = "holiday"
)

// Valid reports whether the type is a known value.
func (t AvailabilityType) Valid() bool {
	switch t {
	case AvailabilityTypeLeave, AvailabilityTypeOffRoster, AvailabilityTypeTraining, AvailabilityTypeHoliday:
		return true
	}
	return false
}

// AvailabilitySource separates hand-entered records from roster-derived
// projections. Derived rows are regenerated wholesale when rosters change
// and are never hand-edited.
type AvailabilitySource string

const (
	AvailabilitySourceManual AvailabilitySource = "manual"
	AvailabilitySourceRoster AvailabilitySource = "roster"
)

// GuardAvailability is a guard's unavailability record. Weekdays use the
// UTC convention 0=Sunday..6=Saturday and only apply in weekly-off mode.
type GuardAvailability struct {
	ID        string             `db:"id" json:"id"`
	GuardID   string             `db:"guard_id" json:"guard_id"`
	GuardName string             `db:"guard_name" json:"guard_name"`
	Mode      AvailabilityMode   `db:"mode" json:"mode"`
	Type      AvailabilityType   `db:"type" json:"type"`
	StartDate string             `db:"start_date" json:"start_date"`
	EndDate   string             `db:"end_date" json:"end_date"`
	Weekdays  pq.Int64Array      `db:"weekdays" json:"weekdays,omitempty"`
	Note      string             `db:"note" json:"note,omitempty"`
	Source    AvailabilitySource `db:"source" json:"source"`
	RosterID  *string            `db:"roster_id" json:"roster_id,omitempty"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
}

// HasWeekday reports membership of a UTC weekday in the record's off set.
func (a *GuardAvailability) HasWeekday(weekday int) bool {
	for _, d := range a.Weekdays {
		if int(d) == weekday {
			return true
		}
	}
	return false
}

// UnavailabilityHit is the result of a range scan: the first offending
// date together with the record that matched it.
type UnavailabilityHit struct {
	Record GuardAvailability `json:"record"`
	Date   string            `json:"date"`
}

// GuardRoster is a named recurring weekly-off policy scoped to one zone.
// Every roster projects into one weekly-off availability record per guard
// it contains.
type GuardRoster struct {
	ID             string         `db:"id" json:"id"`
	Title          string         `db:"title" json:"title"`
	ZoneName       string         `db:"zone_name" json:"zone_name"`
	GuardIDs       pq.StringArray `db:"guard_ids" json:"guard_ids"`
	DayOffWeekdays pq.Int64Array  `db:"day_off_weekdays" json:"day_off_weekdays"`
	EffectiveFrom  string         `db:"effective_from" json:"effective_from"`
	EffectiveTo    string         `db:"effective_to" json:"effective_to"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

// LeaveReportRow is one leave record projected for reporting.
type LeaveReportRow struct {
	ID        string `json:"id"`
	GuardID   string `json:"guard_id"`
	GuardName string `json:"guard_name"`
	ZoneName  string `json:"zone_name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
	Mode      string `json:"mode"`
	Status    string `json:"status"`
	Note      string `json:"note"`
}

// RosterReportRow is one roster projected for reporting.
type RosterReportRow struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	ZoneName      string   `json:"zone_name"`
	GuardNames    []string `json:"guard_names"`
	DayOffLabels  []string `json:"day_off_labels"`
	EffectiveFrom string   `json:"effective_from"`
	EffectiveTo   string   `json:"effective_to"`
	Status        string   `json:"status"`
}
