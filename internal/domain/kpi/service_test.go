package kpi

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeStore keeps a single in-memory report and records incentive inserts.
type fakeStore struct {
	report      Report
	hasReport   bool
	rc          ReportContext
	counts      ActivityCounts
	incentives  map[int64]bool
	insertCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{incentives: map[int64]bool{}}
}

func (f *fakeStore) refreshAttainment() {
	if a, ok := Attainment(f.report.Points, f.report.ObjectiveScore); ok {
		f.report.Attainment = &a
	} else {
		f.report.Attainment = nil
	}
}

func (f *fakeStore) GetReport(ctx context.Context, reportID int64) (Report, error) {
	if !f.hasReport || f.report.ID != reportID {
		return Report{}, ErrReportNotFound
	}
	return f.report, nil
}

func (f *fakeStore) GetReportByPlan(ctx context.Context, planID int64) (Report, error) {
	if !f.hasReport || f.report.PlanID != planID {
		return Report{}, ErrReportNotFound
	}
	return f.report, nil
}

func (f *fakeStore) GetReportContext(ctx context.Context, reportID int64) (ReportContext, error) {
	if !f.hasReport || f.report.ID != reportID {
		return ReportContext{}, ErrReportNotFound
	}
	f.rc.Report = f.report
	return f.rc, nil
}

func (f *fakeStore) ListReports(ctx context.Context, employeeID int64, limit, offset int) ([]Report, error) {
	if !f.hasReport {
		return nil, nil
	}
	return []Report{f.report}, nil
}

func (f *fakeStore) AdjustMetric(ctx context.Context, planID int64, metric Metric, countDelta, pointDelta int) (Report, bool, error) {
	if !f.hasReport || f.report.PlanID != planID {
		return Report{}, false, nil
	}
	switch metric {
	case MetricVisits:
		f.report.ActualVisits = clamp(f.report.ActualVisits + countDelta)
	case MetricCalls:
		f.report.ActualCalls = clamp(f.report.ActualCalls + countDelta)
	case MetricEmails:
		f.report.ActualEmails = clamp(f.report.ActualEmails + countDelta)
	case MetricAssistedVisits:
		f.report.ActualAssistedVisits = clamp(f.report.ActualAssistedVisits + countDelta)
	case MetricQuotations:
		f.report.ActualQuotations = clamp(f.report.ActualQuotations + countDelta)
	}
	f.report.Points = clamp(f.report.Points + pointDelta)
	f.refreshAttainment()
	return f.report, true, nil
}

func (f *fakeStore) OverwriteActuals(ctx context.Context, reportID int64, visits, calls, emails int, quotations *int, points int) (Report, error) {
	if !f.hasReport || f.report.ID != reportID {
		return Report{}, ErrReportNotFound
	}
	f.report.ActualVisits = visits
	f.report.ActualCalls = calls
	f.report.ActualEmails = emails
	if quotations != nil {
		f.report.ActualQuotations = *quotations
	}
	f.report.Points = points
	f.refreshAttainment()
	return f.report, nil
}

func (f *fakeStore) UpsertTargets(ctx context.Context, planID int64, targets Targets) (Report, error) {
	f.report.TargetVisits = targets.TargetVisits
	f.report.ObjectiveScore = targets.ObjectiveScore
	f.refreshAttainment()
	return f.report, nil
}

func (f *fakeStore) CountActivities(ctx context.Context, planID int64) (ActivityCounts, error) {
	return f.counts, nil
}

func (f *fakeStore) InsertIncentiveOnce(ctx context.Context, planID int64, amount float64, concept string) (bool, error) {
	f.insertCalls++
	if f.incentives[planID] {
		return false, nil
	}
	f.incentives[planID] = true
	return true, nil
}

func (f *fakeStore) IncentiveExists(ctx context.Context, planID int64) (bool, error) {
	return f.incentives[planID], nil
}

func (f *fakeStore) ListIncentives(ctx context.Context, employeeID int64, pendingOnly bool) ([]Incentive, error) {
	return nil, nil
}

func (f *fakeStore) MarkIncentivePaid(ctx context.Context, incentiveID int64) (Incentive, error) {
	return Incentive{}, ErrIncentiveNotFound
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

type fakeCounter struct {
	count int
	err   error
	calls int
}

func (f *fakeCounter) Count(ctx context.Context, externalSellerID int64, from, to time.Time) (int, error) {
	f.calls++
	return f.count, f.err
}

func seededStore(objective int) *fakeStore {
	store := newFakeStore()
	store.hasReport = true
	store.report = Report{ID: 1, PlanID: 10, ObjectiveScore: objective}
	store.rc = ReportContext{EmployeeID: 7, WeekStart: time.Now(), WeekEnd: time.Now().AddDate(0, 0, 6)}
	store.refreshAttainment()
	return store
}

func TestAdjustMetricNoReportIsSilentNoOp(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)

	_, found, err := svc.AdjustMetric(context.Background(), 99, MetricVisits, 1, IncrementalPointsVisit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected no-op for plan without a report")
	}
	if store.insertCalls != 0 {
		t.Fatal("no-op adjustments must not reach the bonus check")
	}
}

func TestAdjustMetricGeneratesBonusOnce(t *testing.T) {
	store := seededStore(10)
	svc := NewService(store, nil)
	ctx := context.Background()

	// 4 visits at 2 points each: 8 points, below the objective of 10.
	for i := 0; i < 4; i++ {
		if _, _, err := svc.AdjustMetric(ctx, 10, MetricVisits, 1, IncrementalPointsVisit); err != nil {
			t.Fatalf("adjust failed: %v", err)
		}
	}
	if len(store.incentives) != 0 {
		t.Fatal("bonus generated before reaching the objective")
	}

	// The fifth visit crosses 100%.
	if _, _, err := svc.AdjustMetric(ctx, 10, MetricVisits, 1, IncrementalPointsVisit); err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if !store.incentives[10] {
		t.Fatal("expected an incentive for plan 10")
	}

	// Further adjustments above 100% must not create a second incentive.
	if _, _, err := svc.AdjustMetric(ctx, 10, MetricVisits, 1, IncrementalPointsVisit); err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if len(store.incentives) != 1 {
		t.Fatalf("expected exactly one incentive, got %d", len(store.incentives))
	}
}

func TestReconcileOverwritesCounters(t *testing.T) {
	store := seededStore(1000)
	store.report.ActualVisits = 99
	store.report.Points = 999
	store.counts = ActivityCounts{Visits: 5, Calls: 2, Emails: 3}
	svc := NewService(store, nil)

	report, err := svc.Reconcile(context.Background(), 1)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if report.ActualVisits != 5 || report.ActualCalls != 2 || report.ActualEmails != 3 {
		t.Fatalf("counters not overwritten: %+v", report)
	}
	// 5*10 + 2*2 + 3*1 = 57; no external seller, quotations stay at 0.
	if report.Points != 57 {
		t.Fatalf("expected 57 points, got %d", report.Points)
	}

	// Reconciling again with no new activity must not change anything.
	again, err := svc.Reconcile(context.Background(), 1)
	if err != nil {
		t.Fatalf("second reconcile failed: %v", err)
	}
	if again.ActualVisits != report.ActualVisits || again.ActualCalls != report.ActualCalls ||
		again.ActualEmails != report.ActualEmails || again.Points != report.Points {
		t.Fatalf("reconcile is not idempotent: %+v vs %+v", again, report)
	}
}

func TestReconcileUsesExternalQuotations(t *testing.T) {
	store := seededStore(1000)
	sellerID := int64(42)
	store.rc.ExternalSellerID = &sellerID
	store.counts = ActivityCounts{Visits: 1}
	counter := &fakeCounter{count: 4}
	svc := NewService(store, counter)

	report, err := svc.Reconcile(context.Background(), 1)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if counter.calls != 1 {
		t.Fatalf("expected one external query, got %d", counter.calls)
	}
	if report.ActualQuotations != 4 {
		t.Fatalf("expected 4 quotations, got %d", report.ActualQuotations)
	}
	// 1*10 + 4*25 = 110
	if report.Points != 110 {
		t.Fatalf("expected 110 points, got %d", report.Points)
	}
}

func TestReconcileExternalFailureAbortsBeforeWrite(t *testing.T) {
	store := seededStore(1000)
	sellerID := int64(42)
	store.rc.ExternalSellerID = &sellerID
	store.report.ActualVisits = 7
	store.report.Points = 70
	store.refreshAttainment()
	store.counts = ActivityCounts{Visits: 1}
	svc := NewService(store, &fakeCounter{err: errors.New("connection refused")})

	_, err := svc.Reconcile(context.Background(), 1)
	if !errors.Is(err, ErrExternalDependency) {
		t.Fatalf("expected ErrExternalDependency, got %v", err)
	}
	if store.report.ActualVisits != 7 || store.report.Points != 70 {
		t.Fatalf("report mutated despite external failure: %+v", store.report)
	}
}

func TestReconcileUnlinkedEmployeeKeepsStoredQuotations(t *testing.T) {
	store := seededStore(1000)
	store.report.ActualQuotations = 3
	store.counts = ActivityCounts{}
	counter := &fakeCounter{count: 99}
	svc := NewService(store, counter)

	report, err := svc.Reconcile(context.Background(), 1)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if counter.calls != 0 {
		t.Fatal("external system queried for an unlinked employee")
	}
	if report.ActualQuotations != 3 {
		t.Fatalf("stored quotations changed: %d", report.ActualQuotations)
	}
	// 3*25 = 75: the stored value is still priced into the total.
	if report.Points != 75 {
		t.Fatalf("expected 75 points, got %d", report.Points)
	}
}

func TestReconcileGeneratesBonus(t *testing.T) {
	store := seededStore(50)
	store.counts = ActivityCounts{Visits: 5}
	svc := NewService(store, nil)

	report, err := svc.Reconcile(context.Background(), 1)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if report.Points != 50 {
		t.Fatalf("expected 50 points, got %d", report.Points)
	}
	if !store.incentives[10] {
		t.Fatal("expected an incentive after reaching the objective")
	}
}
