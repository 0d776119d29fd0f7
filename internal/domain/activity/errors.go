package activity

import "errors"

var (
	ErrPlanNotFound  = errors.New("weekly plan not found")
	ErrVisitNotFound = errors.New("visit not found")
	ErrCallNotFound  = errors.New("call not found")
	ErrEmailNotFound = errors.New("email not found")
	ErrInvalidInput  = errors.New("invalid activity payload")
)
