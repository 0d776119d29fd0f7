package plan

import (
	"context"
	"errors"
	"fmt"

	"sfa/internal/domain/kpi"
)

// ReportReader is the slice of the KPI store the lifecycle manager needs to
// return a plan with its report attached.
type ReportReader interface {
	GetReportByPlan(ctx context.Context, planID int64) (kpi.Report, error)
}

type Service struct {
	Store    StoreAPI
	Reports  ReportReader
	Defaults ReportDefaults
}

func NewService(store StoreAPI, reports ReportReader, defaults ReportDefaults) *Service {
	return &Service{Store: store, Reports: reports, Defaults: defaults}
}

// CreateWeeklyPlan validates the schedule, enforces one plan per
// (employee, week start), and atomically creates the plan header, its
// schedule entries and the initial empty productivity report.
func (s *Service) CreateWeeklyPlan(ctx context.Context, in CreateInput) (WeeklyPlan, error) {
	if err := s.validateEntries(ctx, in.Entries); err != nil {
		return WeeklyPlan{}, err
	}
	if in.WeekEnd.Before(in.WeekStart) {
		return WeeklyPlan{}, fmt.Errorf("%w: week end precedes week start", ErrInvalidSchedule)
	}

	exists, err := s.Store.ExistsForWeek(ctx, in.EmployeeID, in.WeekStart.Format("2006-01-02"))
	if err != nil {
		return WeeklyPlan{}, err
	}
	if exists {
		return WeeklyPlan{}, fmt.Errorf("%w: week of %s", ErrPlanConflict, in.WeekStart.Format("2006-01-02"))
	}

	planID, err := s.Store.CreatePlan(ctx, in, s.Defaults)
	if err != nil {
		return WeeklyPlan{}, err
	}
	return s.GetPlan(ctx, planID)
}

// GetPlan returns the plan with its schedule and report eagerly loaded.
func (s *Service) GetPlan(ctx context.Context, id int64) (WeeklyPlan, error) {
	p, err := s.Store.GetPlan(ctx, id)
	if err != nil {
		return WeeklyPlan{}, err
	}

	entries, err := s.Store.ListEntries(ctx, id)
	if err != nil {
		return WeeklyPlan{}, err
	}
	p.Schedule = entries

	report, err := s.Reports.GetReportByPlan(ctx, id)
	switch {
	case err == nil:
		p.Report = &report
	case errors.Is(err, kpi.ErrReportNotFound):
		// Degraded plans may have no report row; the plan is still valid.
	default:
		return WeeklyPlan{}, err
	}
	return p, nil
}

func (s *Service) ListPlans(ctx context.Context, employeeID int64, limit, offset int) ([]WeeklyPlan, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.Store.ListPlans(ctx, employeeID, limit, offset)
}

// UpdatePlanState moves a plan between lifecycle states. Any of the three
// valid states may replace any other; only unknown values are rejected.
func (s *Service) UpdatePlanState(ctx context.Context, id int64, state string, notes *string) error {
	if !ValidState(state) {
		return fmt.Errorf("%w: %q", ErrInvalidState, state)
	}
	return s.Store.UpdateState(ctx, id, state, notes)
}

// DeletePlan removes the plan, cascading to its schedule entries and report.
// Photo evidence attached to activity records is the caller's concern.
func (s *Service) DeletePlan(ctx context.Context, id int64) error {
	return s.Store.DeletePlan(ctx, id)
}

func (s *Service) validateEntries(ctx context.Context, entries []ScheduleEntryInput) error {
	for i, entry := range entries {
		if !ValidActivityType(entry.ActivityType) {
			return fmt.Errorf("%w: entry %d has unknown activity type %q", ErrInvalidSchedule, i, entry.ActivityType)
		}
		if !ValidWeekday(entry.Weekday) {
			return fmt.Errorf("%w: entry %d has unknown weekday %q", ErrInvalidSchedule, i, entry.Weekday)
		}
		if entry.CustomerID <= 0 {
			return fmt.Errorf("%w: entry %d is missing a customer reference", ErrInvalidSchedule, i)
		}
		ok, err := s.Store.CustomerExists(ctx, entry.CustomerID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: entry %d references unknown customer %d", ErrInvalidSchedule, i, entry.CustomerID)
		}
	}
	return nil
}
