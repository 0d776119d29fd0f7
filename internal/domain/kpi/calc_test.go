package kpi

import "testing"

func TestAttainment(t *testing.T) {
	got, ok := Attainment(205, 205)
	if !ok {
		t.Fatal("expected defined attainment")
	}
	if got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}

	got, ok = Attainment(41, 205)
	if !ok {
		t.Fatal("expected defined attainment")
	}
	if got != 20 {
		t.Fatalf("expected 20, got %v", got)
	}
}

func TestAttainmentUndefinedForZeroObjective(t *testing.T) {
	if _, ok := Attainment(100, 0); ok {
		t.Fatal("attainment must be undefined when objective is zero")
	}
	if BonusEligible(100, 0) {
		t.Fatal("a zero objective must never be bonus eligible")
	}
}

func TestBonusEligible(t *testing.T) {
	if !BonusEligible(205, 205) {
		t.Fatal("expected eligible at exactly 100%")
	}
	if !BonusEligible(300, 205) {
		t.Fatal("expected eligible above 100%")
	}
	if BonusEligible(204, 205) {
		t.Fatal("did not expect eligible below 100%")
	}
}

func TestReconcilePoints(t *testing.T) {
	// 5 visits, 0 assisted, 2 calls, 3 emails, 4 quotations:
	// 5*10 + 0*20 + 2*2 + 3*1 + 4*25 = 157
	if got := ReconcilePoints(5, 0, 2, 3, 4); got != 157 {
		t.Fatalf("expected 157 points, got %d", got)
	}
	if got := ReconcilePoints(0, 0, 0, 0, 0); got != 0 {
		t.Fatalf("expected 0 points for empty week, got %d", got)
	}
	// Assisted visits are priced at 20.
	if got := ReconcilePoints(0, 3, 0, 0, 0); got != 60 {
		t.Fatalf("expected 60 points, got %d", got)
	}
}

func TestMetricValid(t *testing.T) {
	for _, m := range []Metric{MetricVisits, MetricAssistedVisits, MetricCalls, MetricEmails, MetricQuotations} {
		if !m.Valid() {
			t.Fatalf("expected %q to be valid", m)
		}
	}
	if Metric("points").Valid() {
		t.Fatal("points must not be adjustable as a metric")
	}
	if Metric("objective_score").Valid() {
		t.Fatal("objective_score must not be adjustable as a metric")
	}
}
