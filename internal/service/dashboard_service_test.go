package service

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardwise/guardwise-api/internal/models"
	appErrors "github.com/guardwise/guardwise-api/pkg/errors"
)

var errCacheMissForTest = appErrors.ErrCacheMiss

type zoneCountStub struct{ total int }

func (s zoneCountStub) Count(ctx context.Context) (int, error) { return s.total, nil }

type cacheRepoStub struct {
	store map[string][]byte
	sets  int
}

func (s *cacheRepoStub) Get(ctx context.Context, key string, dest interface{}) error {
	return errCacheMissForTest
}

func (s *cacheRepoStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	s.sets++
	return nil
}

func (s *cacheRepoStub) DeleteByPattern(ctx context.Context, pattern string) error {
	return nil
}

func TestDashboardStatsComposition(t *testing.T) {
	now := time.Date(2026, 2, 6, 12, 0, 0, 0, time.UTC)

	guards := &guardRepoStub{guards: []models.Guard{
		{ID: "g1", Name: "Rahim Uddin", Status: models.GuardStatusActive},
		{ID: "g2", Name: "Karim Mia", Status: models.GuardStatusOnDuty},
		{ID: "g3", Name: "Jalal Khan", Status: models.GuardStatusInactive},
	}}
	checkpoints := &checkpointStoreStub{checkpoints: []models.Checkpoint{
		{ID: "c1", ZoneName: "Zone A", ScanTypes: pq.StringArray{"dynamic-qr"}},
		{ID: "c2", ZoneName: "Zone A", ScanTypes: pq.StringArray{"nfc"}, NFCConfig: models.NFCConfig{Configured: true}},
	}}
	active := existingSchedule("s1", "g1", "c1", "2026-02-01", "2026-02-28", "08:00", "14:00")
	active.ZoneName = "Zone A"
	inactive := existingSchedule("s2", "g2", "c2", "2026-02-01", "2026-02-28", "10:00")
	inactive.Status = models.ScheduleStatusInactive
	schedules := &scheduleRepoStub{schedules: []models.Schedule{active, inactive}}

	availability := &availabilityRepoStub{records: []models.GuardAvailability{
		dateRangeRecord("g1", "2026-02-05", "2026-02-10"),
		weeklyOffRecord("g2", "2026-02-01", "2026-02-28", 5),
		dateRangeRecord("g3", "2026-03-01", "2026-03-05"),
	}}
	patrols := &patrolRepoStub{records: []models.PatrolHistory{
		patrolRecord("2026-02-05", "A", "Zone A", "Main Gate", models.PatrolStatusCompleted),
		patrolRecord("2026-02-06", "A", "Zone A", "Main Gate", models.PatrolStatusMissed),
		patrolRecord("2026-01-15", "B", "Zone A", "Main Gate", models.PatrolStatusMissed),
	}}
	audit := NewAuditService(&auditRepoStub{}, nil)

	svc := NewDashboardService(guards, zoneCountStub{total: 2}, checkpoints, schedules, availability, patrols, audit, nil, nil)

	stats, err := svc.Stats(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalGuards)
	assert.Equal(t, 2, stats.ActiveGuards)
	assert.Equal(t, 2, stats.TotalZones)
	assert.Equal(t, 2, stats.TotalCheckpoints)
	assert.Equal(t, 1, stats.DynamicQRCount)
	assert.Equal(t, 1, stats.NFCConfiguredCount)
	assert.Equal(t, 2, stats.PlannedVisits)
	assert.Equal(t, 2, stats.ScheduleRows)

	// 2026-02-06 is a Friday: g1 on leave, g2 weekly off.
	assert.Equal(t, 1, stats.LeaveTodayCount)
	assert.Equal(t, 1, stats.OffRosterTodayCount)

	// The trend window only reaches back to 2026-01-31, but the missed
	// counter is all-time and picks up the January record too.
	assert.Equal(t, 2, stats.MissedPatrols)
	assert.Equal(t, 1, stats.TrendSummary.Missed)
	assert.Equal(t, 50, stats.TrendSummary.Compliance)
	require.Len(t, stats.PatrolTrend, 7)
	require.Len(t, stats.ZoneLoad, 1)
	assert.Equal(t, 2, stats.ZoneLoad[0].Visits)
}

func TestDashboardCacheWriteOnBuild(t *testing.T) {
	repo := &cacheRepoStub{}
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	svc := NewDashboardService(
		&guardRepoStub{},
		zoneCountStub{},
		&checkpointStoreStub{},
		&scheduleRepoStub{},
		&availabilityRepoStub{},
		&patrolRepoStub{},
		nil,
		cache,
		nil,
	)

	_, err := svc.Stats(context.Background(), time.Date(2026, 2, 6, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, repo.sets)
}
