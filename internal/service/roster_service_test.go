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

type rosterRepoStub struct {
	rosters []models.GuardRoster
	deleted []string
}

func (s *rosterRepoStub) List(ctx context.Context) ([]models.GuardRoster, error) {
	return s.rosters, nil
}

func (s *rosterRepoStub) FindByID(ctx context.Context, id string) (*models.GuardRoster, error) {
	for i := range s.rosters {
		if s.rosters[i].ID == id {
			return &s.rosters[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *rosterRepoStub) Create(ctx context.Context, roster *models.GuardRoster) error {
	if roster.ID == "" {
		roster.ID = "r-new"
	}
	s.rosters = append(s.rosters, *roster)
	return nil
}

func (s *rosterRepoStub) Update(ctx context.Context, roster *models.GuardRoster) error {
	for i := range s.rosters {
		if s.rosters[i].ID == roster.ID {
			s.rosters[i] = *roster
		}
	}
	return nil
}

func (s *rosterRepoStub) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type rosterProjectionStub struct {
	replaced map[string][]models.GuardAvailability
}

func (s *rosterProjectionStub) ReplaceRosterDerived(ctx context.Context, rosterID string, records []models.GuardAvailability) error {
	if s.replaced == nil {
		s.replaced = map[string][]models.GuardAvailability{}
	}
	s.replaced[rosterID] = records
	return nil
}

func sampleRoster() *models.GuardRoster {
	return &models.GuardRoster{
		ID:             "r1",
		Title:          "Night Shift Off Days",
		ZoneName:       "Zone A",
		GuardIDs:       pq.StringArray{"g1", "g2"},
		DayOffWeekdays: pq.Int64Array{0, 5},
		EffectiveFrom:  "2026-02-01",
		EffectiveTo:    "2026-02-28",
	}
}

func TestProjectRosterDeterministicIDs(t *testing.T) {
	roster := sampleRoster()
	names := map[string]string{"g1": "Rahim Uddin"}

	first := ProjectRoster(roster, names)
	second := ProjectRoster(roster, names)

	require.Len(t, first, 2)
	assert.Equal(t, "roster-r1-g1", first[0].ID)
	assert.Equal(t, "roster-r1-g2", first[1].ID)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestProjectRosterRecordShape(t *testing.T) {
	roster := sampleRoster()
	records := ProjectRoster(roster, map[string]string{"g1": "Rahim Uddin"})

	require.Len(t, records, 2)
	first := records[0]
	assert.Equal(t, models.AvailabilityModeWeeklyOff, first.Mode)
	assert.Equal(t, models.AvailabilityTypeOffRoster, first.Type)
	assert.Equal(t, models.AvailabilitySourceRoster, first.Source)
	assert.Equal(t, "2026-02-01", first.StartDate)
	assert.Equal(t, "2026-02-28", first.EndDate)
	assert.Equal(t, "Rahim Uddin", first.GuardName)
	require.NotNil(t, first.RosterID)
	assert.Equal(t, "r1", *first.RosterID)
	assert.True(t, first.HasWeekday(0))
	assert.True(t, first.HasWeekday(5))

	// Unknown guard falls back to the id.
	assert.Equal(t, "g2", records[1].GuardName)
}

func TestRosterCreateProjectsRows(t *testing.T) {
	repo := &rosterRepoStub{}
	projection := &rosterProjectionStub{}
	guards := &guardRepoStub{guards: []models.Guard{{ID: "g1", Name: "Rahim Uddin"}}}
	svc := NewRosterService(repo, projection, guards, nil, nil, nil)

	roster, err := svc.Create(context.Background(), "admin", SaveRosterRequest{
		Title:          "Night Shift Off Days",
		ZoneName:       "Zone A",
		GuardIDs:       []string{"g1"},
		DayOffWeekdays: []int{5},
		EffectiveFrom:  "2026-02-01",
		EffectiveTo:    "2026-02-28",
	})
	require.NoError(t, err)

	records := projection.replaced[roster.ID]
	require.Len(t, records, 1)
	assert.Equal(t, "roster-"+roster.ID+"-g1", records[0].ID)
	assert.Equal(t, "Rahim Uddin", records[0].GuardName)
}

func TestRosterUpdateRegeneratesWholesale(t *testing.T) {
	repo := &rosterRepoStub{rosters: []models.GuardRoster{*sampleRoster()}}
	projection := &rosterProjectionStub{}
	svc := NewRosterService(repo, projection, &guardRepoStub{}, nil, nil, nil)

	_, err := svc.Update(context.Background(), "admin", "r1", SaveRosterRequest{
		Title:          "Night Shift Off Days",
		ZoneName:       "Zone A",
		GuardIDs:       []string{"g3"},
		DayOffWeekdays: []int{2},
		EffectiveFrom:  "2026-03-01",
		EffectiveTo:    "2026-03-31",
	})
	require.NoError(t, err)

	records := projection.replaced["r1"]
	require.Len(t, records, 1)
	assert.Equal(t, "roster-r1-g3", records[0].ID)
	assert.Equal(t, "2026-03-01", records[0].StartDate)
}

func TestRosterDeleteClearsProjection(t *testing.T) {
	repo := &rosterRepoStub{rosters: []models.GuardRoster{*sampleRoster()}}
	projection := &rosterProjectionStub{}
	svc := NewRosterService(repo, projection, &guardRepoStub{}, nil, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "admin", "r1"))

	records, ok := projection.replaced["r1"]
	require.True(t, ok)
	assert.Empty(t, records)
	assert.Equal(t, []string{"r1"}, repo.deleted)
}

func TestRosterReportLabelsAndStatus(t *testing.T) {
	repo := &rosterRepoStub{rosters: []models.GuardRoster{*sampleRoster()}}
	svc := NewRosterService(repo, &rosterProjectionStub{}, &guardRepoStub{guards: []models.Guard{{ID: "g1", Name: "Rahim Uddin"}}}, nil, nil, nil)

	rows, err := svc.RosterReport(context.Background(), "2026-02-15")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Sunday", "Friday"}, rows[0].DayOffLabels)
	assert.Equal(t, []string{"Rahim Uddin", "g2"}, rows[0].GuardNames)
	assert.Equal(t, "active", rows[0].Status)
}
