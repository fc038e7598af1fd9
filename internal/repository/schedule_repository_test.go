package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardwise/guardwise-api/internal/models"
)

func newScheduleMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func sampleTime() time.Time {
	return time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
}

func scheduleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "guard_id", "guard_name", "checkpoint_id", "checkpoint_name", "start_date", "end_date", "zone_name", "time_slots", "grace_time_minutes", "status", "created_at", "updated_at"})
}

func TestScheduleRepositoryListFiltersByGuard(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	rows := scheduleRows().
		AddRow("s1", "g1", "Rahim Uddin", "c1", "Main Gate", "2026-02-01", "2026-02-28", "Zone A", []byte(`[{"id":"t1","time":"08:00","label":"8:00 AM"}]`), 15, "active", sampleTime(), sampleTime())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, guard_id, guard_name, checkpoint_id, checkpoint_name, start_date, end_date, zone_name, time_slots, grace_time_minutes, status, created_at, updated_at FROM schedules WHERE 1=1 AND guard_id = $1 ORDER BY created_at DESC")).
		WithArgs("g1").
		WillReturnRows(rows)

	schedules, err := repo.List(context.Background(), models.ScheduleFilter{GuardID: "g1"})
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.Equal(t, "Main Gate", schedules[0].CheckpointName)
	assert.Len(t, schedules[0].TimeSlots, 1)
	assert.Equal(t, "08:00", schedules[0].TimeSlots[0].Time)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryListActiveOverlapping(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, guard_id, guard_name, checkpoint_id, checkpoint_name, start_date, end_date, zone_name, time_slots, grace_time_minutes, status, created_at, updated_at FROM schedules WHERE status = $1 AND start_date <= $2 AND end_date >= $3")).
		WithArgs(models.ScheduleStatusActive, "2026-03-10", "2026-03-01").
		WillReturnRows(scheduleRows())

	schedules, err := repo.ListActiveOverlapping(context.Background(), "2026-03-01", "2026-03-10")
	require.NoError(t, err)
	assert.Empty(t, schedules)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryBulkCreateCommitsAll(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO schedules").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO schedules").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	batch := []models.Schedule{
		{GuardID: "g1", GuardName: "Rahim Uddin", CheckpointID: "c1", CheckpointName: "Main Gate", StartDate: "2026-03-01", EndDate: "2026-03-31", ZoneName: "Zone A", TimeSlots: models.ScheduleSlots{{ID: "t1", Time: "08:00", Label: "8:00 AM"}}, GraceTimeMinutes: 15, Status: models.ScheduleStatusActive},
		{GuardID: "g2", GuardName: "Karim Mia", CheckpointID: "c2", CheckpointName: "Parking Lot", StartDate: "2026-03-01", EndDate: "2026-03-31", ZoneName: "Zone A", TimeSlots: models.ScheduleSlots{{ID: "t2", Time: "09:00", Label: "9:00 AM"}}, GraceTimeMinutes: 15, Status: models.ScheduleStatusActive},
	}
	err := repo.BulkCreate(context.Background(), batch)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryBulkCreateRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO schedules").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.BulkCreate(context.Background(), []models.Schedule{{GuardID: "g1", CheckpointID: "c1", StartDate: "2026-03-01", EndDate: "2026-03-31", Status: models.ScheduleStatusActive}})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE schedules SET status = $1, updated_at = $2 WHERE id = $3")).
		WithArgs(models.ScheduleStatusInactive, sqlmock.AnyArg(), "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "s1", models.ScheduleStatusInactive)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
