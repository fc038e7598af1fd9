package models

// PatrolStatus classifies a visit outcome against its grace window.
type PatrolStatus string

const (
	PatrolStatusCompleted PatrolStatus = "completed"
	PatrolStatusLate      PatrolStatus = "late"
	PatrolStatusMissed    PatrolStatus = "missed"
	PatrolStatusSkipped   PatrolStatus = "skipped"
)

// Valid reports whether the status is a known value.
func (s PatrolStatus) Valid() bool {
	switch s {
	case PatrolStatusCompleted, PatrolStatusLate, PatrolStatusMissed, PatrolStatusSkipped:
		return true
	}
	return false
}

// ScanMethod is the technology used for an observed scan.
type ScanMethod string

const (
	ScanMethodNFC ScanMethod = "nfc"
	ScanMethodQR  ScanMethod = "qr"
)

// PatrolHistory is one actual or expected visit: the ground truth for
// compliance reporting. LateByMinutes is set only for late visits,
// SkipReason only for skipped ones.
type PatrolHistory struct {
	ID               string            `db:"id" json:"id"`
	Date             string            `db:"date" json:"date"`
	GuardID          string            `db:"guard_id" json:"guard_id"`
	GuardName        string            `db:"guard_name" json:"guard_name"`
	ZoneName         string            `db:"zone_name" json:"zone_name"`
	CheckpointName   string            `db:"checkpoint_name" json:"checkpoint_name"`
	Status           PatrolStatus      `db:"status" json:"status"`
	ScanMethod       ScanMethod        `db:"scan_method" json:"scan_method"`
	GraceTimeMinutes int               `db:"grace_time_minutes" json:"grace_time_minutes"`
	LateByMinutes    *int              `db:"late_by_minutes" json:"late_by_minutes,omitempty"`
	SkipReason       *AvailabilityType `db:"skip_reason" json:"skip_reason,omitempty"`
}

// PatrolHistoryFilter describes the report filters over patrol history.
type PatrolHistoryFilter struct {
	FromDate       string
	ToDate         string
	GuardName      string
	ZoneName       string
	CheckpointName string
	Status         *PatrolStatus
	ScanMethod     *ScanMethod
	MinLateMinutes int
	ExcludeOK      bool
}

// PatrolOutcome is the classifier verdict for one scheduled visit.
type PatrolOutcome struct {
	Status        PatrolStatus      `json:"status"`
	LateByMinutes int               `json:"late_by_minutes,omitempty"`
	SkipReason    *AvailabilityType `json:"skip_reason,omitempty"`
}

// PatrolTrendPoint is one day's outcome volume.
type PatrolTrendPoint struct {
	Date      string `json:"date"`
	Day       string `json:"day"`
	Completed int    `json:"completed"`
	Late      int    `json:"late"`
	Missed    int    `json:"missed"`
	Skipped   int    `json:"skipped"`
}

// PatrolTrendSummary totals a trend window. Compliance counts completed
// against actionable outcomes only; skipped is not a compliance failure.
type PatrolTrendSummary struct {
	Completed  int `json:"completed"`
	Late       int `json:"late"`
	Missed     int `json:"missed"`
	Skipped    int `json:"skipped"`
	Actionable int `json:"actionable"`
	Compliance int `json:"compliance"`
}

// LocationSummaryRow buckets visits by (zone, checkpoint).
type LocationSummaryRow struct {
	ZoneName       string `json:"zone_name"`
	CheckpointName string `json:"checkpoint_name"`
	Total          int    `json:"total"`
	Completed      int    `json:"completed"`
	Late           int    `json:"late"`
	Missed         int    `json:"missed"`
	Skipped        int    `json:"skipped"`
}
