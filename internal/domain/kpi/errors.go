package kpi

import "errors"

var (
	ErrReportNotFound     = errors.New("productivity report not found")
	ErrIncentiveNotFound  = errors.New("incentive not found")
	ErrInvalidMetric      = errors.New("unknown productivity metric")
	ErrExternalDependency = errors.New("external quotations source unavailable")
)
