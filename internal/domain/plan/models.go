package plan

import (
	"time"

	"sfa/internal/domain/kpi"
)

type WeeklyPlan struct {
	ID              int64            `json:"id"`
	EmployeeID      int64            `json:"employeeId"`
	WeekStart       time.Time        `json:"weekStart"`
	WeekEnd         time.Time        `json:"weekEnd"`
	State           string           `json:"state"`
	SupervisorNotes string           `json:"supervisorNotes,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	Schedule        []ScheduleEntry  `json:"schedule"`
	Report          *kpi.Report      `json:"report,omitempty"`
}

type ScheduleEntry struct {
	ID           int64  `json:"id"`
	PlanID       int64  `json:"planId"`
	Weekday      string `json:"weekday"`
	ScheduledAt  string `json:"scheduledAt"`
	ActivityType string `json:"activityType"`
	CustomerID   int64  `json:"customerId"`
}

type CreateInput struct {
	EmployeeID      int64
	WeekStart       time.Time
	WeekEnd         time.Time
	SupervisorNotes string
	Entries         []ScheduleEntryInput
}

type ScheduleEntryInput struct {
	Weekday      string
	ScheduledAt  string
	ActivityType string
	CustomerID   int64
}

// ReportDefaults are the weekly targets seeded into a new plan's report.
type ReportDefaults struct {
	TargetVisits         int
	TargetAssistedVisits int
	TargetCalls          int
	TargetEmails         int
	TargetQuotations     int
	ObjectiveScore       int
}
