package kpi

import "time"

type Report struct {
	ID                   int64      `json:"id"`
	PlanID               int64      `json:"planId"`
	TargetVisits         int        `json:"targetVisits"`
	ActualVisits         int        `json:"actualVisits"`
	TargetAssistedVisits int        `json:"targetAssistedVisits"`
	ActualAssistedVisits int        `json:"actualAssistedVisits"`
	TargetCalls          int        `json:"targetCalls"`
	ActualCalls          int        `json:"actualCalls"`
	TargetEmails         int        `json:"targetEmails"`
	ActualEmails         int        `json:"actualEmails"`
	TargetQuotations     int        `json:"targetQuotations"`
	ActualQuotations     int        `json:"actualQuotations"`
	Points               int        `json:"points"`
	ObjectiveScore       int        `json:"objectiveScore"`
	Attainment           *float64   `json:"attainment"`
	EvaluatedOn          time.Time  `json:"evaluatedOn"`
}

// ReportContext is a report plus the plan fields reconciliation needs.
type ReportContext struct {
	Report
	EmployeeID       int64
	EmployeeName     string
	ExternalSellerID *int64
	WeekStart        time.Time
	WeekEnd          time.Time
}

type Incentive struct {
	ID           int64     `json:"id"`
	EmployeeID   int64     `json:"employeeId"`
	PlanID       int64     `json:"planId"`
	Amount       float64   `json:"amount"`
	Concept      string    `json:"concept"`
	PaymentState string    `json:"paymentState"`
	GeneratedOn  time.Time `json:"generatedOn"`
}

type Targets struct {
	TargetVisits         int `json:"targetVisits"`
	TargetAssistedVisits int `json:"targetAssistedVisits"`
	TargetCalls          int `json:"targetCalls"`
	TargetEmails         int `json:"targetEmails"`
	TargetQuotations     int `json:"targetQuotations"`
	ObjectiveScore       int `json:"objectiveScore"`
}

// ActivityCounts are the authoritative ledger counts for one plan.
type ActivityCounts struct {
	Visits int
	Calls  int
	Emails int
}
