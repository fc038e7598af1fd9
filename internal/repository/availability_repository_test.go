package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardwise/guardwise-api/internal/models"
)

func newAvailabilityMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func availabilityRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "guard_id", "guard_name", "mode", "type", "start_date", "end_date", "weekdays", "note", "source", "roster_id", "created_at"})
}

func TestAvailabilityRepositoryListRelevant(t *testing.T) {
	db, mock, cleanup := newAvailabilityMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	rows := availabilityRows().
		AddRow("a1", "g1", "Rahim Uddin", "date-range", "leave", "2026-03-05", "2026-03-08", "{}", "annual leave", "manual", nil, sampleTime()).
		AddRow("a2", "g1", "Rahim Uddin", "weekly-off", "off-roster", "2026-03-01", "2026-03-31", "{5}", "", "roster", "r1", sampleTime())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, guard_id, guard_name, mode, type, start_date, end_date, weekdays, note, source, roster_id, created_at FROM guard_availability WHERE guard_id = $1 AND (mode = $2 OR (start_date <= $3 AND end_date >= $4))")).
		WithArgs("g1", models.AvailabilityModeWeeklyOff, "2026-03-10", "2026-03-01").
		WillReturnRows(rows)

	records, err := repo.ListRelevant(context.Background(), "g1", "2026-03-01", "2026-03-10")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, models.AvailabilityModeDateRange, records[0].Mode)
	assert.Equal(t, models.AvailabilitySourceRoster, records[1].Source)
	assert.True(t, records[1].HasWeekday(5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newAvailabilityMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	mock.ExpectExec("INSERT INTO guard_availability").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	record := &models.GuardAvailability{
		GuardID:   "g1",
		GuardName: "Rahim Uddin",
		Mode:      models.AvailabilityModeDateRange,
		Type:      models.AvailabilityTypeLeave,
		StartDate: "2026-03-05",
		EndDate:   "2026-03-08",
		Source:    models.AvailabilitySourceManual,
	}
	err := repo.Create(context.Background(), record)
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryReplaceRosterDerived(t *testing.T) {
	db, mock, cleanup := newAvailabilityMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM guard_availability WHERE source = $1 AND roster_id = $2")).
		WithArgs(models.AvailabilitySourceRoster, "r1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO guard_availability").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	rosterID := "r1"
	records := []models.GuardAvailability{{
		ID:        "roster-r1-g1",
		GuardID:   "g1",
		GuardName: "Rahim Uddin",
		Mode:      models.AvailabilityModeWeeklyOff,
		Type:      models.AvailabilityTypeOffRoster,
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
		Weekdays:  pq.Int64Array{5},
		Source:    models.AvailabilitySourceRoster,
		RosterID:  &rosterID,
	}}
	err := repo.ReplaceRosterDerived(context.Background(), "r1", records)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryReplaceRosterDerivedEmptyClearsOnly(t *testing.T) {
	db, mock, cleanup := newAvailabilityMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM guard_availability WHERE source = $1 AND roster_id = $2")).
		WithArgs(models.AvailabilitySourceRoster, "r1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err := repo.ReplaceRosterDerived(context.Background(), "r1", nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
