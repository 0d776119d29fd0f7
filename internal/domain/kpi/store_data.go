package kpi

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"sfa/internal/db"
)

type Store struct {
	DB db.Pool
}

func NewStore(pool db.Pool) *Store {
	return &Store{DB: pool}
}

const reportColumns = `
    id, plan_id,
    target_visits, actual_visits,
    target_assisted_visits, actual_assisted_visits,
    target_calls, actual_calls,
    target_emails, actual_emails,
    target_quotations, actual_quotations,
    points, objective_score, attainment, evaluated_on`

func scanReport(row pgx.Row) (Report, error) {
	var r Report
	err := row.Scan(
		&r.ID, &r.PlanID,
		&r.TargetVisits, &r.ActualVisits,
		&r.TargetAssistedVisits, &r.ActualAssistedVisits,
		&r.TargetCalls, &r.ActualCalls,
		&r.TargetEmails, &r.ActualEmails,
		&r.TargetQuotations, &r.ActualQuotations,
		&r.Points, &r.ObjectiveScore, &r.Attainment, &r.EvaluatedOn,
	)
	return r, err
}

func (s *Store) GetReport(ctx context.Context, reportID int64) (Report, error) {
	report, err := scanReport(s.DB.QueryRow(ctx, `
    SELECT`+reportColumns+`
    FROM productivity_reports
    WHERE id = $1
  `, reportID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Report{}, ErrReportNotFound
	}
	return report, err
}

func (s *Store) GetReportByPlan(ctx context.Context, planID int64) (Report, error) {
	report, err := scanReport(s.DB.QueryRow(ctx, `
    SELECT`+reportColumns+`
    FROM productivity_reports
    WHERE plan_id = $1
  `, planID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Report{}, ErrReportNotFound
	}
	return report, err
}

func (s *Store) GetReportContext(ctx context.Context, reportID int64) (ReportContext, error) {
	var rc ReportContext
	err := s.DB.QueryRow(ctx, `
    SELECT r.id, r.plan_id,
           r.target_visits, r.actual_visits,
           r.target_assisted_visits, r.actual_assisted_visits,
           r.target_calls, r.actual_calls,
           r.target_emails, r.actual_emails,
           r.target_quotations, r.actual_quotations,
           r.points, r.objective_score, r.attainment, r.evaluated_on,
           p.employee_id, e.full_name, e.external_seller_id, p.week_start, p.week_end
    FROM productivity_reports r
    JOIN weekly_plans p ON p.id = r.plan_id
    JOIN employees e ON e.id = p.employee_id
    WHERE r.id = $1
  `, reportID).Scan(
		&rc.ID, &rc.PlanID,
		&rc.TargetVisits, &rc.ActualVisits,
		&rc.TargetAssistedVisits, &rc.ActualAssistedVisits,
		&rc.TargetCalls, &rc.ActualCalls,
		&rc.TargetEmails, &rc.ActualEmails,
		&rc.TargetQuotations, &rc.ActualQuotations,
		&rc.Points, &rc.ObjectiveScore, &rc.Attainment, &rc.EvaluatedOn,
		&rc.EmployeeID, &rc.EmployeeName, &rc.ExternalSellerID, &rc.WeekStart, &rc.WeekEnd,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ReportContext{}, ErrReportNotFound
	}
	return rc, err
}

func (s *Store) ListReports(ctx context.Context, employeeID int64, limit, offset int) ([]Report, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT r.id, r.plan_id,
           r.target_visits, r.actual_visits,
           r.target_assisted_visits, r.actual_assisted_visits,
           r.target_calls, r.actual_calls,
           r.target_emails, r.actual_emails,
           r.target_quotations, r.actual_quotations,
           r.points, r.objective_score, r.attainment, r.evaluated_on
    FROM productivity_reports r
    JOIN weekly_plans p ON p.id = r.plan_id
    WHERE ($1 = 0 OR p.employee_id = $1)
    ORDER BY r.evaluated_on DESC, r.id DESC
    LIMIT $2 OFFSET $3
  `, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// AdjustMetric applies a clamped counter and point delta in a single UPDATE,
// so concurrent adjustments against the same report cannot lose updates.
// found=false means the plan has no report row; callers treat that as a
// no-op, not an error.
func (s *Store) AdjustMetric(ctx context.Context, planID int64, metric Metric, countDelta, pointDelta int) (Report, bool, error) {
	column, ok := metric.countColumn()
	if !ok {
		return Report{}, false, fmt.Errorf("%w: %q", ErrInvalidMetric, metric)
	}

	report, err := scanReport(s.DB.QueryRow(ctx, `
    UPDATE productivity_reports
    SET `+column+` = GREATEST(0, `+column+` + $2),
        points = GREATEST(0, points + $3)
    WHERE plan_id = $1
    RETURNING`+reportColumns+`
  `, planID, countDelta, pointDelta))
	if errors.Is(err, pgx.ErrNoRows) {
		return Report{}, false, nil
	}
	if err != nil {
		return Report{}, false, err
	}
	return report, true, nil
}

// OverwriteActuals replaces the ledger-derived counters and the point total.
// A nil quotations pointer leaves the stored quotation count untouched.
func (s *Store) OverwriteActuals(ctx context.Context, reportID int64, visits, calls, emails int, quotations *int, points int) (Report, error) {
	report, err := scanReport(s.DB.QueryRow(ctx, `
    UPDATE productivity_reports
    SET actual_visits = $2,
        actual_calls = $3,
        actual_emails = $4,
        actual_quotations = COALESCE($5, actual_quotations),
        points = $6,
        evaluated_on = CURRENT_DATE
    WHERE id = $1
    RETURNING`+reportColumns+`
  `, reportID, visits, calls, emails, quotations, points))
	if errors.Is(err, pgx.ErrNoRows) {
		return Report{}, ErrReportNotFound
	}
	return report, err
}

func (s *Store) UpsertTargets(ctx context.Context, planID int64, targets Targets) (Report, error) {
	report, err := scanReport(s.DB.QueryRow(ctx, `
    INSERT INTO productivity_reports
      (plan_id, target_visits, target_assisted_visits, target_calls, target_emails, target_quotations, objective_score)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    ON CONFLICT (plan_id) DO UPDATE SET
      target_visits = EXCLUDED.target_visits,
      target_assisted_visits = EXCLUDED.target_assisted_visits,
      target_calls = EXCLUDED.target_calls,
      target_emails = EXCLUDED.target_emails,
      target_quotations = EXCLUDED.target_quotations,
      objective_score = EXCLUDED.objective_score
    RETURNING`+reportColumns+`
  `, planID, targets.TargetVisits, targets.TargetAssistedVisits, targets.TargetCalls,
		targets.TargetEmails, targets.TargetQuotations, targets.ObjectiveScore))
	return report, err
}

func (s *Store) CountActivities(ctx context.Context, planID int64) (ActivityCounts, error) {
	var counts ActivityCounts
	err := s.DB.QueryRow(ctx, `
    SELECT
      (SELECT COUNT(1) FROM visits WHERE plan_id = $1),
      (SELECT COUNT(1) FROM calls WHERE plan_id = $1),
      (SELECT COUNT(1) FROM emails WHERE plan_id = $1)
  `, planID).Scan(&counts.Visits, &counts.Calls, &counts.Emails)
	return counts, err
}

// InsertIncentiveOnce creates the bonus row for a plan unless one already
// exists. The UNIQUE(plan_id) constraint makes repeated eligibility checks
// idempotent regardless of interleaving.
func (s *Store) InsertIncentiveOnce(ctx context.Context, planID int64, amount float64, concept string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    INSERT INTO incentives (employee_id, plan_id, amount, concept, payment_state)
    SELECT employee_id, id, $2, $3, 'Pending'
    FROM weekly_plans
    WHERE id = $1
    ON CONFLICT (plan_id) DO NOTHING
  `, planID, amount, concept)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) IncentiveExists(ctx context.Context, planID int64) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM incentives WHERE plan_id = $1
  `, planID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) ListIncentives(ctx context.Context, employeeID int64, pendingOnly bool) ([]Incentive, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, plan_id, amount, concept, payment_state, generated_on
    FROM incentives
    WHERE ($1 = 0 OR employee_id = $1)
      AND (NOT $2 OR payment_state = 'Pending')
    ORDER BY generated_on DESC, id DESC
  `, employeeID, pendingOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incentives []Incentive
	for rows.Next() {
		var inc Incentive
		if err := rows.Scan(&inc.ID, &inc.EmployeeID, &inc.PlanID, &inc.Amount, &inc.Concept, &inc.PaymentState, &inc.GeneratedOn); err != nil {
			return nil, err
		}
		incentives = append(incentives, inc)
	}
	return incentives, rows.Err()
}

func (s *Store) MarkIncentivePaid(ctx context.Context, incentiveID int64) (Incentive, error) {
	var inc Incentive
	err := s.DB.QueryRow(ctx, `
    UPDATE incentives
    SET payment_state = 'Paid'
    WHERE id = $1
    RETURNING id, employee_id, plan_id, amount, concept, payment_state, generated_on
  `, incentiveID).Scan(&inc.ID, &inc.EmployeeID, &inc.PlanID, &inc.Amount, &inc.Concept, &inc.PaymentState, &inc.GeneratedOn)
	if errors.Is(err, pgx.ErrNoRows) {
		return Incentive{}, ErrIncentiveNotFound
	}
	return inc, err
}
