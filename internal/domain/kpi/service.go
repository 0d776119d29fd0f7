package kpi

import (
	"context"
	"fmt"

	"sfa/internal/external/quotations"
	"sfa/internal/platform/metrics"
)

type Service struct {
	Store      StoreAPI
	Quotations quotations.Counter
}

func NewService(store StoreAPI, counter quotations.Counter) *Service {
	return &Service{Store: store, Quotations: counter}
}

// AdjustMetric is the incremental scoring path. It is a silent no-op when
// the plan has no report row: activity recording must not fail just because
// a report is missing on a degraded plan. found reports whether a row was
// actually updated.
func (s *Service) AdjustMetric(ctx context.Context, planID int64, metric Metric, countDelta, pointDelta int) (Report, bool, error) {
	report, found, err := s.Store.AdjustMetric(ctx, planID, metric, countDelta, pointDelta)
	if err != nil || !found {
		return Report{}, false, err
	}

	if report.Attainment != nil && *report.Attainment >= 100 {
		if err := s.checkAndGenerateBonus(ctx, report); err != nil {
			return Report{}, false, err
		}
	}
	return report, true, nil
}

// Reconcile recomputes a report from authoritative sources, replacing (not
// incrementing) the stored counters and points. Calling it twice with no new
// activity yields identical contents. Any external failure aborts before the
// report is touched.
func (s *Service) Reconcile(ctx context.Context, reportID int64) (Report, error) {
	rc, err := s.Store.GetReportContext(ctx, reportID)
	if err != nil {
		return Report{}, err
	}

	counts, err := s.Store.CountActivities(ctx, rc.PlanID)
	if err != nil {
		return Report{}, err
	}

	// Quotations are only authoritative for employees linked to the external
	// system; everyone else keeps the previously stored value.
	var quotationCount *int
	effectiveQuotations := rc.ActualQuotations
	if rc.ExternalSellerID != nil {
		if s.Quotations == nil {
			metrics.ReconciliationsTotal.WithLabelValues("external_error").Inc()
			return Report{}, fmt.Errorf("%w: no counter configured", ErrExternalDependency)
		}
		n, err := s.Quotations.Count(ctx, *rc.ExternalSellerID, rc.WeekStart, rc.WeekEnd)
		if err != nil {
			metrics.ReconciliationsTotal.WithLabelValues("external_error").Inc()
			return Report{}, fmt.Errorf("%w: %v", ErrExternalDependency, err)
		}
		quotationCount = &n
		effectiveQuotations = n
	}

	points := ReconcilePoints(counts.Visits, rc.ActualAssistedVisits, counts.Calls, counts.Emails, effectiveQuotations)

	report, err := s.Store.OverwriteActuals(ctx, reportID, counts.Visits, counts.Calls, counts.Emails, quotationCount, points)
	if err != nil {
		metrics.ReconciliationsTotal.WithLabelValues("error").Inc()
		return Report{}, err
	}

	if err := s.checkAndGenerateBonus(ctx, report); err != nil {
		return Report{}, err
	}
	metrics.ReconciliationsTotal.WithLabelValues("ok").Inc()
	return report, nil
}

// checkAndGenerateBonus awards the one-time incentive when a report first
// reaches 100% attainment. The UNIQUE(plan_id) constraint keeps repeated
// checks from ever paying twice; it never transitions an incentive to Paid.
func (s *Service) checkAndGenerateBonus(ctx context.Context, report Report) error {
	if !BonusEligible(report.Points, report.ObjectiveScore) {
		return nil
	}
	created, err := s.Store.InsertIncentiveOnce(ctx, report.PlanID, BonusAmount, BonusConcept)
	if err != nil {
		return err
	}
	if created {
		metrics.IncentivesGenerated.Inc()
	}
	return nil
}

func (s *Service) GetReport(ctx context.Context, reportID int64) (Report, error) {
	return s.Store.GetReport(ctx, reportID)
}

func (s *Service) GetReportByPlan(ctx context.Context, planID int64) (Report, error) {
	return s.Store.GetReportByPlan(ctx, planID)
}

func (s *Service) ListReports(ctx context.Context, employeeID int64, limit, offset int) ([]Report, error) {
	return s.Store.ListReports(ctx, employeeID, limit, offset)
}

// UpdateTargets upserts the weekly targets for an existing plan's report.
func (s *Service) UpdateTargets(ctx context.Context, planID int64, targets Targets) (Report, error) {
	return s.Store.UpsertTargets(ctx, planID, targets)
}

func (s *Service) ListIncentives(ctx context.Context, employeeID int64, pendingOnly bool) ([]Incentive, error) {
	return s.Store.ListIncentives(ctx, employeeID, pendingOnly)
}

func (s *Service) MarkIncentivePaid(ctx context.Context, incentiveID int64) (Incentive, error) {
	return s.Store.MarkIncentivePaid(ctx, incentiveID)
}
