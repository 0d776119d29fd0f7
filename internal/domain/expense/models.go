package expense

import "time"

type Expense struct {
	ID             int64     `json:"id"`
	PlanID         int64     `json:"planId"`
	SpentOn        time.Time `json:"spentOn"`
	Origin         string    `json:"origin,omitempty"`
	Destination    string    `json:"destination,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	CompanyVisited string    `json:"companyVisited,omitempty"`
	Amount         float64   `json:"amount"`
}

type Input struct {
	PlanID         int64
	SpentOn        time.Time
	Origin         string
	Destination    string
	Reason         string
	CompanyVisited string
	Amount         float64
}
