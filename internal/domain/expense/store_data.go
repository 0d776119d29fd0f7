package expense

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"sfa/internal/db"
)

type Store struct {
	DB db.Pool
}

func NewStore(pool db.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) PlanExists(ctx context.Context, planID int64) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM weekly_plans WHERE id = $1
  `, planID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Insert(ctx context.Context, in Input) (Expense, error) {
	var e Expense
	err := s.DB.QueryRow(ctx, `
    INSERT INTO expenses (plan_id, spent_on, origin, destination, reason, company_visited, amount)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id, plan_id, spent_on, COALESCE(origin, ''), COALESCE(destination, ''),
              COALESCE(reason, ''), COALESCE(company_visited, ''), amount
  `, in.PlanID, in.SpentOn, nullIfEmpty(in.Origin), nullIfEmpty(in.Destination),
		nullIfEmpty(in.Reason), nullIfEmpty(in.CompanyVisited), in.Amount).Scan(
		&e.ID, &e.PlanID, &e.SpentOn, &e.Origin, &e.Destination, &e.Reason, &e.CompanyVisited, &e.Amount)
	return e, err
}

func (s *Store) Get(ctx context.Context, id int64) (Expense, error) {
	var e Expense
	err := s.DB.QueryRow(ctx, `
    SELECT id, plan_id, spent_on, COALESCE(origin, ''), COALESCE(destination, ''),
           COALESCE(reason, ''), COALESCE(company_visited, ''), amount
    FROM expenses
    WHERE id = $1
  `, id).Scan(&e.ID, &e.PlanID, &e.SpentOn, &e.Origin, &e.Destination, &e.Reason, &e.CompanyVisited, &e.Amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return Expense{}, ErrExpenseNotFound
	}
	return e, err
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func (s *Store) ListByPlan(ctx context.Context, planID int64) ([]Expense, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, plan_id, spent_on, COALESCE(origin, ''), COALESCE(destination, ''),
           COALESCE(reason, ''), COALESCE(company_visited, ''), amount
    FROM expenses
    WHERE plan_id = $1
    ORDER BY spent_on, id
  `, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.PlanID, &e.SpentOn, &e.Origin, &e.Destination, &e.Reason, &e.CompanyVisited, &e.Amount); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// WeekHeader returns the owning employee and week range for the PDF export.
func (s *Store) WeekHeader(ctx context.Context, planID int64) (string, time.Time, time.Time, error) {
	var name string
	var start, end time.Time
	err := s.DB.QueryRow(ctx, `
    SELECT e.full_name, p.week_start, p.week_end
    FROM weekly_plans p
    JOIN employees e ON e.id = p.employee_id
    WHERE p.id = $1
  `, planID).Scan(&name, &start, &end)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", time.Time{}, time.Time{}, ErrPlanNotFound
	}
	return name, start, end, err
}

func nullIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
