package kpi

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportRowColumns = []string{
	"id", "plan_id",
	"target_visits", "actual_visits",
	"target_assisted_visits", "actual_assisted_visits",
	"target_calls", "actual_calls",
	"target_emails", "actual_emails",
	"target_quotations", "actual_quotations",
	"points", "objective_score", "attainment", "evaluated_on",
}

func reportRow(points int, attainment *float64) *pgxmock.Rows {
	return pgxmock.NewRows(reportRowColumns).AddRow(
		int64(1), int64(10),
		25, 0, 0, 0, 30, 0, 100, 0, 0, 0,
		points, 205, attainment, time.Now(),
	)
}

func TestStoreAdjustMetric(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`UPDATE productivity_reports\s+SET actual_visits = GREATEST\(0, actual_visits \+ \$2\)`).
		WithArgs(int64(10), 1, 2).
		WillReturnRows(reportRow(2, nil))

	store := NewStore(mock)
	report, found, err := store.AdjustMetric(context.Background(), 10, MetricVisits, 1, 2)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, report.Points)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreAdjustMetricMissingReport(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`UPDATE productivity_reports`).
		WithArgs(int64(99), -1, -2).
		WillReturnRows(pgxmock.NewRows(reportRowColumns))

	store := NewStore(mock)
	_, found, err := store.AdjustMetric(context.Background(), 99, MetricVisits, -1, -2)
	require.NoError(t, err)
	assert.False(t, found, "missing report must be a silent no-op")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreAdjustMetricRejectsUnknownMetric(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewStore(mock)
	_, _, err = store.AdjustMetric(context.Background(), 10, Metric("points"), 1, 1)
	assert.ErrorIs(t, err, ErrInvalidMetric)
	assert.NoError(t, mock.ExpectationsWereMet(), "no SQL may run for an invalid metric")
}

func TestStoreInsertIncentiveOnce(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO incentives`).
		WithArgs(int64(10), 50.00, BonusConcept).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO incentives`).
		WithArgs(int64(10), 50.00, BonusConcept).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	store := NewStore(mock)
	created, err := store.InsertIncentiveOnce(context.Background(), 10, BonusAmount, BonusConcept)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.InsertIncentiveOnce(context.Background(), 10, BonusAmount, BonusConcept)
	require.NoError(t, err)
	assert.False(t, created, "conflicting insert must report not created")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreOverwriteActualsKeepsQuotationsWhenNil(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`UPDATE productivity_reports\s+SET actual_visits = \$2`).
		WithArgs(int64(1), 5, 2, 3, (*int)(nil), 57).
		WillReturnRows(reportRow(57, nil))

	store := NewStore(mock)
	report, err := store.OverwriteActuals(context.Background(), 1, 5, 2, 3, nil, 57)
	require.NoError(t, err)
	assert.Equal(t, 57, report.Points)
	assert.NoError(t, mock.ExpectationsWereMet())
}
