package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardwise/guardwise-api/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestClassifyOnTime(t *testing.T) {
	outcome := Classify("09:00", 15, strPtr("09:10"), nil)
	assert.Equal(t, models.PatrolStatusCompleted, outcome.Status)
	assert.Zero(t, outcome.LateByMinutes)
}

func TestClassifyGraceBoundary(t *testing.T) {
	outcome := Classify("09:00", 15, strPtr("09:15"), nil)
	assert.Equal(t, models.PatrolStatusCompleted, outcome.Status)
}

func TestClassifyLateCountsFromScheduledTime(t *testing.T) {
	outcome := Classify("09:00", 15, strPtr("09:25"), nil)
	assert.Equal(t, models.PatrolStatusLate, outcome.Status)
	assert.Equal(t, 25, outcome.LateByMinutes)
}

func TestClassifySkippedWhenUnavailable(t *testing.T) {
	record := dateRangeRecord("g1", "2026-02-05", "2026-02-10")
	outcome := Classify("09:00", 15, nil, &record)
	assert.Equal(t, models.PatrolStatusSkipped, outcome.Status)
	require.NotNil(t, outcome.SkipReason)
	assert.Equal(t, models.AvailabilityTypeLeave, *outcome.SkipReason)
}

func TestClassifyMissedWhenAvailable(t *testing.T) {
	outcome := Classify("09:00", 15, nil, nil)
	assert.Equal(t, models.PatrolStatusMissed, outcome.Status)
	assert.Nil(t, outcome.SkipReason)
}

func TestComplianceExcludesSkipped(t *testing.T) {
	// 7 completed, 2 late, 1 missed -> 70%; skipped must not shift it.
	assert.Equal(t, 70, Compliance(7, 2, 1))
}

func TestComplianceEmptyWindow(t *testing.T) {
	assert.Equal(t, 0, Compliance(0, 0, 0))
}

func TestComplianceRounds(t *testing.T) {
	// 2/3 = 66.67 -> 67.
	assert.Equal(t, 67, Compliance(2, 1, 0))
}

func patrolRecord(date, guard, zone, checkpoint string, status models.PatrolStatus) models.PatrolHistory {
	return models.PatrolHistory{
		Date:           date,
		GuardID:        "g-" + guard,
		GuardName:      guard,
		ZoneName:       zone,
		CheckpointName: checkpoint,
		Status:         status,
		ScanMethod:     models.ScanMethodNFC,
	}
}

func TestSummarize(t *testing.T) {
	var records []models.PatrolHistory
	for i := 0; i < 7; i++ {
		records = append(records, patrolRecord("2026-02-01", "A", "Z", "C", models.PatrolStatusCompleted))
	}
	records = append(records,
		patrolRecord("2026-02-01", "A", "Z", "C", models.PatrolStatusLate),
		patrolRecord("2026-02-02", "A", "Z", "C", models.PatrolStatusLate),
		patrolRecord("2026-02-02", "A", "Z", "C", models.PatrolStatusMissed),
		patrolRecord("2026-02-03", "A", "Z", "C", models.PatrolStatusSkipped),
		patrolRecord("2026-02-03", "A", "Z", "C", models.PatrolStatusSkipped),
	)

	summary := Summarize(records)
	assert.Equal(t, 7, summary.Completed)
	assert.Equal(t, 2, summary.Late)
	assert.Equal(t, 1, summary.Missed)
	assert.Equal(t, 2, summary.Skipped)
	assert.Equal(t, 10, summary.Actionable)
	assert.Equal(t, 70, summary.Compliance)
}

func TestTrendEmitsEveryDay(t *testing.T) {
	records := []models.PatrolHistory{
		patrolRecord("2026-02-02", "A", "Z", "C", models.PatrolStatusCompleted),
		patrolRecord("2026-02-02", "A", "Z", "C", models.PatrolStatusLate),
		patrolRecord("2026-02-04", "A", "Z", "C", models.PatrolStatusMissed),
	}

	points := Trend(records, "2026-02-01", "2026-02-07")
	require.Len(t, points, 7)
	assert.Equal(t, "2026-02-01", points[0].Date)
	assert.Equal(t, "Sun", points[0].Day)
	assert.Equal(t, 1, points[1].Completed)
	assert.Equal(t, 1, points[1].Late)
	assert.Equal(t, 1, points[3].Missed)
	assert.Zero(t, points[6].Completed)
}

func TestTrendEmptyRecords(t *testing.T) {
	points := Trend(nil, "2026-02-01", "2026-02-03")
	require.Len(t, points, 3)
	for _, point := range points {
		assert.Zero(t, point.Completed+point.Late+point.Missed+point.Skipped)
	}
}

func TestLocationSummaryBuckets(t *testing.T) {
	records := []models.PatrolHistory{
		patrolRecord("2026-02-01", "A", "Zone A", "Main Gate", models.PatrolStatusCompleted),
		patrolRecord("2026-02-01", "B", "Zone A", "Main Gate", models.PatrolStatusLate),
		patrolRecord("2026-02-01", "A", "Zone B", "Warehouse", models.PatrolStatusSkipped),
	}

	rows := LocationSummary(records)
	require.Len(t, rows, 2)
	assert.Equal(t, "Main Gate", rows[0].CheckpointName)
	assert.Equal(t, 2, rows[0].Total)
	assert.Equal(t, 1, rows[0].Completed)
	assert.Equal(t, 1, rows[0].Late)
	assert.Equal(t, 1, rows[1].Skipped)
}

type patrolRepoStub struct {
	records []models.PatrolHistory
}

func (s *patrolRepoStub) List(ctx context.Context, filter models.PatrolHistoryFilter) ([]models.PatrolHistory, error) {
	var out []models.PatrolHistory
	for _, record := range s.records {
		if filter.FromDate != "" && record.Date < filter.FromDate {
			continue
		}
		if filter.ToDate != "" && record.Date > filter.ToDate {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (s *patrolRepoStub) Create(ctx context.Context, record *models.PatrolHistory) error {
	s.records = append(s.records, *record)
	return nil
}

func (s *patrolRepoStub) CountMissedSince(ctx context.Context, date string) (int, error) {
	count := 0
	for _, record := range s.records {
		if record.Status == models.PatrolStatusMissed && record.Date >= date {
			count++
		}
	}
	return count, nil
}

func TestHistoryLateThresholdFilter(t *testing.T) {
	slightlyLate := patrolRecord("2026-02-01", "A", "Z", "C", models.PatrolStatusLate)
	slightlyLate.LateByMinutes = intPtr(5)
	veryLate := patrolRecord("2026-02-01", "B", "Z", "C", models.PatrolStatusLate)
	veryLate.LateByMinutes = intPtr(25)
	repo := &patrolRepoStub{records: []models.PatrolHistory{
		patrolRecord("2026-02-01", "C", "Z", "C", models.PatrolStatusCompleted),
		slightlyLate,
		veryLate,
		patrolRecord("2026-02-01", "D", "Z", "C", models.PatrolStatusMissed),
	}}
	svc := NewPatrolService(repo, nil, nil, nil)

	records, err := svc.History(context.Background(), models.PatrolHistoryFilter{ExcludeOK: true, MinLateMinutes: 15})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "B", records[0].GuardName)
	assert.Equal(t, models.PatrolStatusMissed, records[1].Status)
}

func visitRequest() RecordVisitRequest {
	return RecordVisitRequest{
		Date:             "2026-02-06",
		GuardID:          "g1",
		GuardName:        "Rahim",
		ZoneName:         "Zone A",
		CheckpointName:   "Main Gate",
		ScanMethod:       "nfc",
		SlotTime:         "09:00",
		GraceTimeMinutes: 15,
	}
}

func TestRecordVisitDerivesCompletedAtGraceBoundary(t *testing.T) {
	repo := &patrolRepoStub{}
	svc := NewPatrolService(repo, &availabilityRepoStub{}, nil, nil)

	req := visitRequest()
	req.ScanAt = strPtr("09:15")
	record, err := svc.RecordVisit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.PatrolStatusCompleted, record.Status)
	assert.Nil(t, record.LateByMinutes)
	require.Len(t, repo.records, 1)
}

func TestRecordVisitDerivesLateMinutes(t *testing.T) {
	repo := &patrolRepoStub{}
	svc := NewPatrolService(repo, &availabilityRepoStub{}, nil, nil)

	req := visitRequest()
	req.ScanAt = strPtr("09:25")
	record, err := svc.RecordVisit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.PatrolStatusLate, record.Status)
	require.NotNil(t, record.LateByMinutes)
	assert.Equal(t, 25, *record.LateByMinutes)
}

func TestRecordVisitDerivesSkippedFromAvailability(t *testing.T) {
	repo := &patrolRepoStub{}
	availability := &availabilityRepoStub{records: []models.GuardAvailability{
		dateRangeRecord("g1", "2026-02-05", "2026-02-10"),
	}}
	svc := NewPatrolService(repo, availability, nil, nil)

	record, err := svc.RecordVisit(context.Background(), visitRequest())
	require.NoError(t, err)
	assert.Equal(t, models.PatrolStatusSkipped, record.Status)
	require.NotNil(t, record.SkipReason)
	assert.Equal(t, models.AvailabilityTypeLeave, *record.SkipReason)
}

func TestRecordVisitDerivesMissedWhenAvailable(t *testing.T) {
	repo := &patrolRepoStub{}
	svc := NewPatrolService(repo, &availabilityRepoStub{}, nil, nil)

	record, err := svc.RecordVisit(context.Background(), visitRequest())
	require.NoError(t, err)
	assert.Equal(t, models.PatrolStatusMissed, record.Status)
}

func TestRecordVisitRejectsUnknownScanMethod(t *testing.T) {
	repo := &patrolRepoStub{}
	svc := NewPatrolService(repo, &availabilityRepoStub{}, nil, nil)

	req := visitRequest()
	req.ScanMethod = "barcode"
	_, err := svc.RecordVisit(context.Background(), req)
	require.Error(t, err)
	assert.Empty(t, repo.records)
}
