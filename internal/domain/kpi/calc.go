package kpi

// Attainment returns points over objective as a percentage. The second value
// is false when the objective is zero: attainment is undefined then, not 0.
func Attainment(points, objectiveScore int) (float64, bool) {
	if objectiveScore <= 0 {
		return 0, false
	}
	return float64(points) / float64(objectiveScore) * 100, true
}

// BonusEligible reports whether a report has reached 100% of its objective.
// An undefined attainment is never eligible.
func BonusEligible(points, objectiveScore int) bool {
	attainment, ok := Attainment(points, objectiveScore)
	return ok && attainment >= 100
}

// ReconcilePoints recomputes the point total from scratch under the
// reconciliation tariff. assistedVisits is the report's prior counter: the
// reconcile path does not recount assisted visits from the ledger (the
// ledger does not distinguish them), it only re-prices the stored value.
func ReconcilePoints(visits, assistedVisits, calls, emails, quotations int) int {
	return visits*ReconcilePointsVisit +
		assistedVisits*ReconcilePointsAssistedVisit +
		calls*ReconcilePointsCall +
		emails*ReconcilePointsEmail +
		quotations*ReconcilePointsQuotation
}
