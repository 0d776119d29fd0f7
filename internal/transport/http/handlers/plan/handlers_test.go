package planhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"sfa/internal/domain/kpi"
	"sfa/internal/domain/plan"
)

type stubStore struct {
	plans  map[int64]plan.WeeklyPlan
	nextID int64
}

func newStubStore() *stubStore {
	return &stubStore{plans: map[int64]plan.WeeklyPlan{}, nextID: 1}
}

func (s *stubStore) ExistsForWeek(ctx context.Context, employeeID int64, weekStart string) (bool, error) {
	for _, p := range s.plans {
		if p.EmployeeID == employeeID && p.WeekStart.Format("2006-01-02") == weekStart {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubStore) CustomerExists(ctx context.Context, customerID int64) (bool, error) {
	return true, nil
}

func (s *stubStore) CreatePlan(ctx context.Context, in plan.CreateInput, defaults plan.ReportDefaults) (int64, error) {
	id := s.nextID
	s.nextID++
	s.plans[id] = plan.WeeklyPlan{ID: id, EmployeeID: in.EmployeeID, WeekStart: in.WeekStart, WeekEnd: in.WeekEnd, State: plan.StateDraft}
	return id, nil
}

func (s *stubStore) GetPlan(ctx context.Context, id int64) (plan.WeeklyPlan, error) {
	p, ok := s.plans[id]
	if !ok {
		return plan.WeeklyPlan{}, plan.ErrPlanNotFound
	}
	return p, nil
}

func (s *stubStore) ListEntries(ctx context.Context, planID int64) ([]plan.ScheduleEntry, error) {
	return nil, nil
}

func (s *stubStore) ListPlans(ctx context.Context, employeeID int64, limit, offset int) ([]plan.WeeklyPlan, error) {
	return nil, nil
}

func (s *stubStore) UpdateState(ctx context.Context, id int64, state string, notes *string) error {
	p, ok := s.plans[id]
	if !ok {
		return plan.ErrPlanNotFound
	}
	p.State = state
	s.plans[id] = p
	return nil
}

func (s *stubStore) DeletePlan(ctx context.Context, id int64) error {
	if _, ok := s.plans[id]; !ok {
		return plan.ErrPlanNotFound
	}
	delete(s.plans, id)
	return nil
}

type stubReports struct{}

func (stubReports) GetReportByPlan(ctx context.Context, planID int64) (kpi.Report, error) {
	return kpi.Report{}, kpi.ErrReportNotFound
}

func newRouter() (*chi.Mux, *stubStore) {
	store := newStubStore()
	svc := plan.NewService(store, stubReports{}, plan.ReportDefaults{ObjectiveScore: 205})
	router := chi.NewRouter()
	router.Route("/api/v1", func(r chi.Router) {
		NewHandler(svc).RegisterRoutes(r)
	})
	return router, store
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func planPayload() map[string]any {
	return map[string]any{
		"employeeId": 7,
		"weekStart":  "2026-08-31",
		"weekEnd":    "2026-09-05",
		"entries": []map[string]any{
			{"weekday": "Monday", "scheduledAt": "09:00", "activityType": "Visit", "customerId": 1},
		},
	}
}

func TestCreatePlanEndpoint(t *testing.T) {
	router, _ := newRouter()

	rec := postJSON(t, router, "/api/v1/plans/", planPayload())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Success bool            `json:"success"`
		Data    plan.WeeklyPlan `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !envelope.Success || envelope.Data.State != plan.StateDraft {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
}

func TestCreatePlanEndpointConflict(t *testing.T) {
	router, _ := newRouter()

	if rec := postJSON(t, router, "/api/v1/plans/", planPayload()); rec.Code != http.StatusCreated {
		t.Fatalf("first create: expected 201, got %d", rec.Code)
	}
	rec := postJSON(t, router, "/api/v1/plans/", planPayload())
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreatePlanEndpointValidation(t *testing.T) {
	router, _ := newRouter()

	payload := planPayload()
	payload["weekStart"] = "not-a-date"
	rec := postJSON(t, router, "/api/v1/plans/", payload)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetPlanEndpointNotFound(t *testing.T) {
	router, _ := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/plans/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUpdatePlanStateEndpoint(t *testing.T) {
	router, store := newRouter()

	if rec := postJSON(t, router, "/api/v1/plans/", planPayload()); rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", rec.Code)
	}

	body, _ := json.Marshal(map[string]string{"state": plan.StateApproved})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/plans/1/state", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.plans[1].State != plan.StateApproved {
		t.Fatalf("state not updated: %+v", store.plans[1])
	}

	body, _ = json.Marshal(map[string]string{"state": "Archived"})
	req = httptest.NewRequest(http.MethodPatch, "/api/v1/plans/1/state", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown state, got %d", rec.Code)
	}
}
