package activity

import "context"

type StoreAPI interface {
	PlanExists(ctx context.Context, planID int64) (bool, error)
	InsertVisit(ctx context.Context, in VisitInput) (Visit, error)
	GetVisit(ctx context.Context, id int64) (Visit, error)
	DeleteVisit(ctx context.Context, id int64) error
	ListVisits(ctx context.Context, planID int64, limit, offset int) ([]Visit, error)
	InsertCall(ctx context.Context, in CallInput) (Call, error)
	GetCall(ctx context.Context, id int64) (Call, error)
	DeleteCall(ctx context.Context, id int64) error
	ListCalls(ctx context.Context, planID int64, limit, offset int) ([]Call, error)
	InsertEmail(ctx context.Context, in EmailInput) (Email, error)
	GetEmail(ctx context.Context, id int64) (Email, error)
	DeleteEmail(ctx context.Context, id int64) error
	ListEmails(ctx context.Context, planID int64, limit, offset int) ([]Email, error)
}
