package models

// GuardMixSlice is one slice of the guard status breakdown.
type GuardMixSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DashboardStats is the composed operations dashboard payload.
type DashboardStats struct {
	TotalGuards         int                `json:"total_guards"`
	ActiveGuards        int                `json:"active_guards"`
	TotalZones          int                `json:"total_zones"`
	TotalCheckpoints    int                `json:"total_checkpoints"`
	PlannedVisits       int                `json:"planned_visits"`
	ScheduleRows        int                `json:"schedule_rows"`
	DynamicQRCount      int                `json:"dynamic_qr_count"`
	NFCConfiguredCount  int                `json:"nfc_configured_count"`
	LeaveTodayCount     int                `json:"leave_today_count"`
	OffRosterTodayCount int                `json:"off_roster_today_count"`
	AuditLast24h        int                `json:"audit_last_24h"`
	AuditTotal          int                `json:"audit_total"`
	MissedPatrols       int                `json:"missed_patrols"`
	GuardMix            []GuardMixSlice    `json:"guard_mix"`
	PatrolTrend         []PatrolTrendPoint `json:"patrol_trend"`
	TrendSummary        PatrolTrendSummary `json:"trend_summary"`
	ZoneLoad            []ZoneLoad         `json:"zone_load"`
	RecentAudit         []AuditLog         `json:"recent_audit"`
}
