package kpi

// Metric names one adjustable counter on the productivity report. The set is
// closed: anything outside it is rejected before touching the database.
type Metric string

const (
	MetricVisits         Metric = "visits"
	MetricAssistedVisits Metric = "assisted_visits"
	MetricCalls          Metric = "calls"
	MetricEmails         Metric = "emails"
	MetricQuotations     Metric = "quotations"
)

// countColumn maps a metric to its "actual" column. The switch is the whole
// contract; no caller-supplied field names reach the SQL layer.
func (m Metric) countColumn() (string, bool) {
	switch m {
	case MetricVisits:
		return "actual_visits", true
	case MetricAssistedVisits:
		return "actual_assisted_visits", true
	case MetricCalls:
		return "actual_calls", true
	case MetricEmails:
		return "actual_emails", true
	case MetricQuotations:
		return "actual_quotations", true
	}
	return "", false
}

func (m Metric) Valid() bool {
	_, ok := m.countColumn()
	return ok
}

// Incremental tariff, applied as activities are registered or deleted. It
// deliberately differs from the reconciliation tariff below: both sets come
// from the business rules as they stand, and unifying them would silently
// change scores. Keep them separate.
const (
	IncrementalPointsVisit = 2
	IncrementalPointsCall  = 1
	IncrementalPointsEmail = 1
)

// Reconciliation tariff, used only by the full recompute path.
const (
	ReconcilePointsVisit         = 10
	ReconcilePointsAssistedVisit = 20
	ReconcilePointsCall          = 2
	ReconcilePointsEmail         = 1
	ReconcilePointsQuotation     = 25
)

const (
	IncentiveStatePending = "Pending"
	IncentiveStatePaid    = "Paid"

	BonusAmount  = 50.00
	BonusConcept = "Bonus for reaching 100% of weekly goal"
)
