package kpi

import "context"

type StoreAPI interface {
	GetReport(ctx context.Context, reportID int64) (Report, error)
	GetReportByPlan(ctx context.Context, planID int64) (Report, error)
	GetReportContext(ctx context.Context, reportID int64) (ReportContext, error)
	ListReports(ctx context.Context, employeeID int64, limit, offset int) ([]Report, error)
	AdjustMetric(ctx context.Context, planID int64, metric Metric, countDelta, pointDelta int) (Report, bool, error)
	OverwriteActuals(ctx context.Context, reportID int64, visits, calls, emails int, quotations *int, points int) (Report, error)
	UpsertTargets(ctx context.Context, planID int64, targets Targets) (Report, error)
	CountActivities(ctx context.Context, planID int64) (ActivityCounts, error)
	InsertIncentiveOnce(ctx context.Context, planID int64, amount float64, concept string) (bool, error)
	IncentiveExists(ctx context.Context, planID int64) (bool, error)
	ListIncentives(ctx context.Context, employeeID int64, pendingOnly bool) ([]Incentive, error)
	MarkIncentivePaid(ctx context.Context, incentiveID int64) (Incentive, error)
}
