package plan

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"sfa/internal/db"
)

type Store struct {
	DB db.Pool
}

func NewStore(pool db.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) ExistsForWeek(ctx context.Context, employeeID int64, weekStart string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM weekly_plans
    WHERE employee_id = $1 AND week_start = $2
  `, employeeID, weekStart).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CustomerExists(ctx context.Context, customerID int64) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM customers WHERE id = $1 AND active
  `, customerID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreatePlan inserts the plan header, its schedule entries and the initial
// productivity report in one transaction. A partial failure rolls back all
// three writes.
func (s *Store) CreatePlan(ctx context.Context, in CreateInput, defaults ReportDefaults) (int64, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var planID int64
	err = tx.QueryRow(ctx, `
    INSERT INTO weekly_plans (employee_id, week_start, week_end, state, supervisor_notes)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, in.EmployeeID, in.WeekStart, in.WeekEnd, StateDraft, nullIfEmpty(in.SupervisorNotes)).Scan(&planID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrPlanConflict
		}
		return 0, err
	}

	for _, entry := range in.Entries {
		if _, err := tx.Exec(ctx, `
      INSERT INTO plan_schedule_entries (plan_id, weekday, scheduled_at, activity_type, customer_id)
      VALUES ($1,$2,$3,$4,$5)
    `, planID, entry.Weekday, entry.ScheduledAt, entry.ActivityType, entry.CustomerID); err != nil {
			return 0, err
		}
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO productivity_reports
      (plan_id, target_visits, target_assisted_visits, target_calls, target_emails, target_quotations, objective_score)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, planID, defaults.TargetVisits, defaults.TargetAssistedVisits, defaults.TargetCalls,
		defaults.TargetEmails, defaults.TargetQuotations, defaults.ObjectiveScore); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return planID, nil
}

func (s *Store) GetPlan(ctx context.Context, id int64) (WeeklyPlan, error) {
	var p WeeklyPlan
	var notes *string
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, week_start, week_end, state, supervisor_notes, created_at
    FROM weekly_plans
    WHERE id = $1
  `, id).Scan(&p.ID, &p.EmployeeID, &p.WeekStart, &p.WeekEnd, &p.State, &notes, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return WeeklyPlan{}, ErrPlanNotFound
		}
		return WeeklyPlan{}, err
	}
	if notes != nil {
		p.SupervisorNotes = *notes
	}
	return p, nil
}

func (s *Store) ListEntries(ctx context.Context, planID int64) ([]ScheduleEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, plan_id, weekday, scheduled_at::text, activity_type, customer_id
    FROM plan_schedule_entries
    WHERE plan_id = $1
    ORDER BY id
  `, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ScheduleEntry
	for rows.Next() {
		var entry ScheduleEntry
		if err := rows.Scan(&entry.ID, &entry.PlanID, &entry.Weekday, &entry.ScheduledAt, &entry.ActivityType, &entry.CustomerID); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *Store) ListPlans(ctx context.Context, employeeID int64, limit, offset int) ([]WeeklyPlan, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, week_start, week_end, state, COALESCE(supervisor_notes, ''), created_at
    FROM weekly_plans
    WHERE ($1 = 0 OR employee_id = $1)
    ORDER BY week_start DESC, id DESC
    LIMIT $2 OFFSET $3
  `, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []WeeklyPlan
	for rows.Next() {
		var p WeeklyPlan
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.WeekStart, &p.WeekEnd, &p.State, &p.SupervisorNotes, &p.CreatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (s *Store) UpdateState(ctx context.Context, id int64, state string, notes *string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE weekly_plans
    SET state = $2, supervisor_notes = COALESCE($3, supervisor_notes)
    WHERE id = $1
  `, id, state, notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func (s *Store) DeletePlan(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM weekly_plans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func nullIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
