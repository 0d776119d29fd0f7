package plan

import "context"

type StoreAPI interface {
	ExistsForWeek(ctx context.Context, employeeID int64, weekStart string) (bool, error)
	CustomerExists(ctx context.Context, customerID int64) (bool, error)
	CreatePlan(ctx context.Context, in CreateInput, defaults ReportDefaults) (int64, error)
	GetPlan(ctx context.Context, id int64) (WeeklyPlan, error)
	ListEntries(ctx context.Context, planID int64) ([]ScheduleEntry, error)
	ListPlans(ctx context.Context, employeeID int64, limit, offset int) ([]WeeklyPlan, error)
	UpdateState(ctx context.Context, id int64, state string, notes *string) error
	DeletePlan(ctx context.Context, id int64) error
}
