package expense

import "errors"

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrPlanNotFound    = errors.New("weekly plan not found")
	ErrInvalidInput    = errors.New("invalid expense payload")
)
