package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardwise/guardwise-api/internal/models"
)

func dateRangeRecord(guardID, start, end string) models.GuardAvailability {
	return models.GuardAvailability{
		ID:        "rec-" + guardID + "-" + start,
		GuardID:   guardID,
		GuardName: "Guard " + guardID,
		Mode:      models.AvailabilityModeDateRange,
		Type:      models.AvailabilityTypeLeave,
		StartDate: start,
		EndDate:   end,
		Source:    models.AvailabilitySourceManual,
	}
}

func weeklyOffRecord(guardID, start, end string, weekdays ...int64) models.GuardAvailability {
	return models.GuardAvailability{
		ID:        "off-" + guardID,
		GuardID:   guardID,
		GuardName: "Guard " + guardID,
		Mode:      models.AvailabilityModeWeeklyOff,
		Type:      models.AvailabilityTypeOffRoster,
		StartDate: start,
		EndDate:   end,
		Weekdays:  pq.Int64Array(weekdays),
		Source:    models.AvailabilitySourceRoster,
	}
}

func TestMatchesDateDateRange(t *testing.T) {
	record := dateRangeRecord("g1", "2026-02-05", "2026-02-10")

	assert.False(t, MatchesDate(&record, "2026-02-04"))
	assert.True(t, MatchesDate(&record, "2026-02-05"))
	assert.True(t, MatchesDate(&record, "2026-02-07"))
	assert.True(t, MatchesDate(&record, "2026-02-10"))
	assert.False(t, MatchesDate(&record, "2026-02-11"))
}

func TestMatchesDateWeeklyOff(t *testing.T) {
	// 2026-02-06 is a Friday (weekday 5).
	record := weeklyOffRecord("g1", "2026-02-01", "2026-02-28", 5)

	assert.True(t, MatchesDate(&record, "2026-02-06"))
	assert.False(t, MatchesDate(&record, "2026-02-05"))
	assert.True(t, MatchesDate(&record, "2026-02-13"))

	// In the weekday set but outside the effective range.
	assert.False(t, MatchesDate(&record, "2026-03-06"))
}

func TestFindUnavailabilityIgnoresOtherGuards(t *testing.T) {
	records := []models.GuardAvailability{dateRangeRecord("g2", "2026-02-01", "2026-02-28")}
	assert.Nil(t, FindUnavailability(records, "g1", "2026-02-10"))
	assert.NotNil(t, FindUnavailability(records, "g2", "2026-02-10"))
}

func TestFindUnavailabilityInRangeReturnsFirstHit(t *testing.T) {
	records := []models.GuardAvailability{
		weeklyOffRecord("g1", "2026-02-01", "2026-02-28", 5),
		dateRangeRecord("g1", "2026-02-09", "2026-02-09"),
	}

	hit := FindUnavailabilityInRange(records, "g1", "2026-02-04", "2026-02-12")
	require.NotNil(t, hit)
	assert.Equal(t, "2026-02-06", hit.Date)
	assert.Equal(t, models.AvailabilityModeWeeklyOff, hit.Record.Mode)
}

func TestFindUnavailabilityInRangeFreeGuard(t *testing.T) {
	records := []models.GuardAvailability{dateRangeRecord("g1", "2026-03-01", "2026-03-05")}
	assert.Nil(t, FindUnavailabilityInRange(records, "g1", "2026-02-01", "2026-02-28"))
}

type availabilityRepoStub struct {
	records []models.GuardAvailability
	created []models.GuardAvailability
	deleted []string
}

func (s *availabilityRepoStub) List(ctx context.Context, guardID string) ([]models.GuardAvailability, error) {
	if guardID == "" {
		return s.records, nil
	}
	var out []models.GuardAvailability
	for _, r := range s.records {
		if r.GuardID == guardID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *availabilityRepoStub) ListRelevant(ctx context.Context, guardID, startDate, endDate string) ([]models.GuardAvailability, error) {
	return s.List(ctx, guardID)
}

func (s *availabilityRepoStub) FindByID(ctx context.Context, id string) (*models.GuardAvailability, error) {
	for i := range s.records {
		if s.records[i].ID == id {
			return &s.records[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *availabilityRepoStub) Create(ctx context.Context, record *models.GuardAvailability) error {
	s.created = append(s.created, *record)
	s.records = append(s.records, *record)
	return nil
}

func (s *availabilityRepoStub) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type guardRepoStub struct {
	guards []models.Guard
}

func (s *guardRepoStub) List(ctx context.Context, filter models.GuardFilter) ([]models.Guard, error) {
	return s.guards, nil
}

func (s *guardRepoStub) FindByID(ctx context.Context, id string) (*models.Guard, error) {
	for i := range s.guards {
		if s.guards[i].ID == id {
			return &s.guards[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func TestCreateLeaveSkipsDuplicates(t *testing.T) {
	repo := &availabilityRepoStub{records: []models.GuardAvailability{dateRangeRecord("g1", "2026-02-05", "2026-02-10")}}
	guards := &guardRepoStub{guards: []models.Guard{{ID: "g1", Name: "Rahim Uddin"}, {ID: "g2", Name: "Karim Mia"}}}
	svc := NewAvailabilityService(repo, guards, nil, nil, nil)

	created, err := svc.CreateLeave(context.Background(), "admin", CreateLeaveRequest{
		GuardIDs:  []string{"g1", "g2"},
		Mode:      "date-range",
		Type:      "leave",
		StartDate: "2026-02-05",
		EndDate:   "2026-02-10",
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "g2", created[0].GuardID)
	assert.Equal(t, "Karim Mia", created[0].GuardName)
	assert.Equal(t, models.AvailabilitySourceManual, created[0].Source)
}

func TestCreateLeaveRejectsInvertedRange(t *testing.T) {
	svc := NewAvailabilityService(&availabilityRepoStub{}, &guardRepoStub{}, nil, nil, nil)

	_, err := svc.CreateLeave(context.Background(), "admin", CreateLeaveRequest{
		GuardIDs:  []string{"g1"},
		Mode:      "date-range",
		Type:      "leave",
		StartDate: "2026-02-10",
		EndDate:   "2026-02-05",
	})
	require.Error(t, err)
}

func TestLeaveReportStatusAndDays(t *testing.T) {
	repo := &availabilityRepoStub{records: []models.GuardAvailability{
		dateRangeRecord("g1", "2026-02-01", "2026-02-03"),
		dateRangeRecord("g1", "2026-02-10", "2026-02-12"),
		dateRangeRecord("g1", "2026-02-20", "2026-02-22"),
	}}
	guards := &guardRepoStub{guards: []models.Guard{{ID: "g1", Name: "Rahim Uddin", AssignedZone: "Zone A"}}}
	svc := NewAvailabilityService(repo, guards, nil, nil, nil)

	rows, err := svc.LeaveReport(context.Background(), LeaveReportFilter{}, "2026-02-11")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byStart := map[string]models.LeaveReportRow{}
	for _, row := range rows {
		byStart[row.StartDate] = row
	}
	assert.Equal(t, "completed", byStart["2026-02-01"].Status)
	assert.Equal(t, "active", byStart["2026-02-10"].Status)
	assert.Equal(t, "upcoming", byStart["2026-02-20"].Status)
	assert.Equal(t, 3, byStart["2026-02-10"].Days)
	assert.Equal(t, "Zone A", byStart["2026-02-10"].ZoneName)
}
