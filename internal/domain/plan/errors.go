package plan

import "errors"

var (
	ErrPlanNotFound    = errors.New("weekly plan not found")
	ErrPlanConflict    = errors.New("a plan already exists for this employee and week start")
	ErrInvalidState    = errors.New("invalid plan state")
	ErrInvalidSchedule = errors.New("invalid schedule entry")
)
