package plan

import (
	"context"
	"errors"
	"testing"
	"time"

	"sfa/internal/domain/kpi"
)

type fakeStore struct {
	plans       map[int64]WeeklyPlan
	entries     map[int64][]ScheduleEntry
	customers   map[int64]bool
	nextID      int64
	createCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		plans:     map[int64]WeeklyPlan{},
		entries:   map[int64][]ScheduleEntry{},
		customers: map[int64]bool{1: true, 2: true},
		nextID:    1,
	}
}

func (f *fakeStore) ExistsForWeek(ctx context.Context, employeeID int64, weekStart string) (bool, error) {
	for _, p := range f.plans {
		if p.EmployeeID == employeeID && p.WeekStart.Format("2006-01-02") == weekStart {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CustomerExists(ctx context.Context, customerID int64) (bool, error) {
	return f.customers[customerID], nil
}

func (f *fakeStore) CreatePlan(ctx context.Context, in CreateInput, defaults ReportDefaults) (int64, error) {
	f.createCalls++
	id := f.nextID
	f.nextID++
	f.plans[id] = WeeklyPlan{
		ID:         id,
		EmployeeID: in.EmployeeID,
		WeekStart:  in.WeekStart,
		WeekEnd:    in.WeekEnd,
		State:      StateDraft,
	}
	for i, entry := range in.Entries {
		f.entries[id] = append(f.entries[id], ScheduleEntry{
			ID:           int64(i + 1),
			PlanID:       id,
			Weekday:      entry.Weekday,
			ScheduledAt:  entry.ScheduledAt,
			ActivityType: entry.ActivityType,
			CustomerID:   entry.CustomerID,
		})
	}
	return id, nil
}

func (f *fakeStore) GetPlan(ctx context.Context, id int64) (WeeklyPlan, error) {
	p, ok := f.plans[id]
	if !ok {
		return WeeklyPlan{}, ErrPlanNotFound
	}
	return p, nil
}

func (f *fakeStore) ListEntries(ctx context.Context, planID int64) ([]ScheduleEntry, error) {
	return f.entries[planID], nil
}

func (f *fakeStore) ListPlans(ctx context.Context, employeeID int64, limit, offset int) ([]WeeklyPlan, error) {
	var out []WeeklyPlan
	for _, p := range f.plans {
		if employeeID == 0 || p.EmployeeID == employeeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateState(ctx context.Context, id int64, state string, notes *string) error {
	p, ok := f.plans[id]
	if !ok {
		return ErrPlanNotFound
	}
	p.State = state
	if notes != nil {
		p.SupervisorNotes = *notes
	}
	f.plans[id] = p
	return nil
}

func (f *fakeStore) DeletePlan(ctx context.Context, id int64) error {
	if _, ok := f.plans[id]; !ok {
		return ErrPlanNotFound
	}
	delete(f.plans, id)
	delete(f.entries, id)
	return nil
}

type fakeReports struct{}

func (fakeReports) GetReportByPlan(ctx context.Context, planID int64) (kpi.Report, error) {
	return kpi.Report{ID: planID, PlanID: planID, ObjectiveScore: 205}, nil
}

func monday() time.Time {
	return time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
}

func validInput(employeeID int64) CreateInput {
	start := monday()
	return CreateInput{
		EmployeeID: employeeID,
		WeekStart:  start,
		WeekEnd:    start.AddDate(0, 0, 5),
		Entries: []ScheduleEntryInput{
			{Weekday: "Monday", ScheduledAt: "09:00", ActivityType: ActivityVisit, CustomerID: 1},
			{Weekday: "Tuesday", ScheduledAt: "14:30", ActivityType: ActivityCall, CustomerID: 2},
		},
	}
}

func TestCreateWeeklyPlan(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, fakeReports{}, ReportDefaults{ObjectiveScore: 205})

	created, err := svc.CreateWeeklyPlan(context.Background(), validInput(7))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.State != StateDraft {
		t.Fatalf("expected new plan in Draft, got %q", created.State)
	}
	if len(created.Schedule) != 2 {
		t.Fatalf("expected 2 schedule entries, got %d", len(created.Schedule))
	}
	if created.Report == nil {
		t.Fatal("expected the report to be attached")
	}
}

func TestCreateWeeklyPlanConflict(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, fakeReports{}, ReportDefaults{})
	ctx := context.Background()

	if _, err := svc.CreateWeeklyPlan(ctx, validInput(7)); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.CreateWeeklyPlan(ctx, validInput(7))
	if !errors.Is(err, ErrPlanConflict) {
		t.Fatalf("expected ErrPlanConflict, got %v", err)
	}
	if store.createCalls != 1 {
		t.Fatalf("conflicting create must not reach the store, got %d calls", store.createCalls)
	}

	// A different employee may plan the same week.
	if _, err := svc.CreateWeeklyPlan(ctx, validInput(8)); err != nil {
		t.Fatalf("create for another employee failed: %v", err)
	}

	// The same employee may plan a different week.
	in := validInput(7)
	in.WeekStart = in.WeekStart.AddDate(0, 0, 7)
	in.WeekEnd = in.WeekEnd.AddDate(0, 0, 7)
	if _, err := svc.CreateWeeklyPlan(ctx, in); err != nil {
		t.Fatalf("create for another week failed: %v", err)
	}
}

func TestCreateWeeklyPlanValidation(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, fakeReports{}, ReportDefaults{})
	ctx := context.Background()

	in := validInput(7)
	in.Entries[0].ActivityType = "Golf"
	if _, err := svc.CreateWeeklyPlan(ctx, in); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("expected ErrInvalidSchedule for unknown activity, got %v", err)
	}

	in = validInput(7)
	in.Entries[0].Weekday = "Sunday"
	if _, err := svc.CreateWeeklyPlan(ctx, in); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("expected ErrInvalidSchedule for Sunday, got %v", err)
	}

	in = validInput(7)
	in.Entries[0].CustomerID = 999
	if _, err := svc.CreateWeeklyPlan(ctx, in); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("expected ErrInvalidSchedule for unknown customer, got %v", err)
	}

	in = validInput(7)
	in.WeekEnd = in.WeekStart.AddDate(0, 0, -1)
	if _, err := svc.CreateWeeklyPlan(ctx, in); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("expected ErrInvalidSchedule for inverted week, got %v", err)
	}
}

func TestUpdatePlanState(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, fakeReports{}, ReportDefaults{})
	ctx := context.Background()

	created, err := svc.CreateWeeklyPlan(ctx, validInput(7))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Transitions are unconstrained between the three valid states.
	for _, state := range []string{StateApproved, StateClosed, StateDraft, StateClosed} {
		if err := svc.UpdatePlanState(ctx, created.ID, state, nil); err != nil {
			t.Fatalf("transition to %q failed: %v", state, err)
		}
	}

	if err := svc.UpdatePlanState(ctx, created.ID, "Archived", nil); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	notes := "needs more visits"
	if err := svc.UpdatePlanState(ctx, created.ID, StateApproved, &notes); err != nil {
		t.Fatalf("transition with notes failed: %v", err)
	}
	got, err := svc.GetPlan(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.SupervisorNotes != notes {
		t.Fatalf("notes not stored: %q", got.SupervisorNotes)
	}
}

func TestDeletePlan(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, fakeReports{}, ReportDefaults{})
	ctx := context.Background()

	created, err := svc.CreateWeeklyPlan(ctx, validInput(7))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.DeletePlan(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.DeletePlan(ctx, created.ID); !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound, got %v", err)
	}
}
