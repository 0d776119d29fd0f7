package plan

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createInput() CreateInput {
	start := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	return CreateInput{
		EmployeeID: 7,
		WeekStart:  start,
		WeekEnd:    start.AddDate(0, 0, 5),
		Entries: []ScheduleEntryInput{
			{Weekday: "Monday", ScheduledAt: "09:00", ActivityType: ActivityVisit, CustomerID: 1},
			{Weekday: "Friday", ScheduledAt: "15:00", ActivityType: ActivityCall, CustomerID: 2},
		},
	}
}

func TestStoreCreatePlanAtomic(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	in := createInput()
	defaults := ReportDefaults{TargetVisits: 25, TargetCalls: 30, TargetEmails: 100, ObjectiveScore: 205}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO weekly_plans`).
		WithArgs(in.EmployeeID, in.WeekStart, in.WeekEnd, StateDraft, (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)))
	for _, entry := range in.Entries {
		mock.ExpectExec(`INSERT INTO plan_schedule_entries`).
			WithArgs(int64(5), entry.Weekday, entry.ScheduledAt, entry.ActivityType, entry.CustomerID).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectExec(`INSERT INTO productivity_reports`).
		WithArgs(int64(5), 25, 0, 30, 100, 0, 205).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()
	mock.ExpectRollback()

	store := NewStore(mock)
	planID, err := store.CreatePlan(context.Background(), in, defaults)
	require.NoError(t, err)
	assert.Equal(t, int64(5), planID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreCreatePlanConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	in := createInput()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO weekly_plans`).
		WithArgs(in.EmployeeID, in.WeekStart, in.WeekEnd, StateDraft, (*string)(nil)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "weekly_plans_employee_id_week_start_key"})
	mock.ExpectRollback()

	store := NewStore(mock)
	_, err = store.CreatePlan(context.Background(), in, ReportDefaults{})
	assert.ErrorIs(t, err, ErrPlanConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreCreatePlanRollsBackOnEntryFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	in := createInput()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO weekly_plans`).
		WithArgs(in.EmployeeID, in.WeekStart, in.WeekEnd, StateDraft, (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectExec(`INSERT INTO plan_schedule_entries`).
		WithArgs(int64(5), "Monday", "09:00", ActivityVisit, int64(1)).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	store := NewStore(mock)
	_, err = store.CreatePlan(context.Background(), in, ReportDefaults{})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreUpdateStateNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE weekly_plans`).
		WithArgs(int64(99), StateApproved, (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	store := NewStore(mock)
	err = store.UpdateState(context.Background(), 99, StateApproved, nil)
	assert.ErrorIs(t, err, ErrPlanNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
