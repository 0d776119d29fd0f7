package planhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sfa/internal/domain/plan"
	"sfa/internal/transport/http/api"
	"sfa/internal/transport/http/middleware"
	"sfa/internal/transport/http/shared"
)

type Handler struct {
	Service *plan.Service
}

func NewHandler(service *plan.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/plans", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{planID}", h.handleGet)
		r.Patch("/{planID}/state", h.handleUpdateState)
		r.Delete("/{planID}", h.handleDelete)
	})
}

type scheduleEntryPayload struct {
	Weekday      string `json:"weekday"`
	ScheduledAt  string `json:"scheduledAt"`
	ActivityType string `json:"activityType"`
	CustomerID   int64  `json:"customerId"`
}

type createPayload struct {
	EmployeeID      int64                  `json:"employeeId"`
	WeekStart       string                 `json:"weekStart"`
	WeekEnd         string                 `json:"weekEnd"`
	SupervisorNotes string                 `json:"supervisorNotes"`
	Entries         []scheduleEntryPayload `json:"entries"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	if payload.EmployeeID <= 0 {
		v.Add("employeeId", "must be a positive employee id")
	}
	weekStart, _ := v.Date("weekStart", payload.WeekStart)
	weekEnd, _ := v.Date("weekEnd", payload.WeekEnd)
	v.DateOrder("weekStart", weekStart, "weekEnd", weekEnd)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	in := plan.CreateInput{
		EmployeeID:      payload.EmployeeID,
		WeekStart:       weekStart,
		WeekEnd:         weekEnd,
		SupervisorNotes: payload.SupervisorNotes,
	}
	for _, entry := range payload.Entries {
		in.Entries = append(in.Entries, plan.ScheduleEntryInput{
			Weekday:      entry.Weekday,
			ScheduledAt:  entry.ScheduledAt,
			ActivityType: entry.ActivityType,
			CustomerID:   entry.CustomerID,
		})
	}

	created, err := h.Service.CreateWeeklyPlan(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, plan.ErrPlanConflict):
			api.Fail(w, http.StatusConflict, "plan_conflict", err.Error(), middleware.GetRequestID(r.Context()))
		case errors.Is(err, plan.ErrInvalidSchedule):
			api.Fail(w, http.StatusBadRequest, "invalid_schedule", err.Error(), middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "plan_create_failed", "failed to create plan", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "planID")
	if !ok {
		return
	}
	p, err := h.Service.GetPlan(r.Context(), id)
	if err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			api.Fail(w, http.StatusNotFound, "plan_not_found", "plan not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "plan_get_failed", "failed to load plan", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, p, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 100)
	var employeeID int64
	if raw := r.URL.Query().Get("employeeId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_employee_id", "employeeId must be numeric", middleware.GetRequestID(r.Context()))
			return
		}
		employeeID = parsed
	}

	plans, err := h.Service.ListPlans(r.Context(), employeeID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "plan_list_failed", "failed to list plans", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, plans, middleware.GetRequestID(r.Context()))
}

type statePayload struct {
	State           string  `json:"state"`
	SupervisorNotes *string `json:"supervisorNotes"`
}

func (h *Handler) handleUpdateState(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "planID")
	if !ok {
		return
	}
	var payload statePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.UpdatePlanState(r.Context(), id, payload.State, payload.SupervisorNotes)
	if err != nil {
		switch {
		case errors.Is(err, plan.ErrInvalidState):
			api.Fail(w, http.StatusBadRequest, "invalid_state", err.Error(), middleware.GetRequestID(r.Context()))
		case errors.Is(err, plan.ErrPlanNotFound):
			api.Fail(w, http.StatusNotFound, "plan_not_found", "plan not found", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "plan_state_failed", "failed to update plan state", middleware.GetRequestID(r.Context()))
		}
		return
	}

	p, err := h.Service.GetPlan(r.Context(), id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "plan_get_failed", "failed to load plan", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, p, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "planID")
	if !ok {
		return
	}
	if err := h.Service.DeletePlan(r.Context(), id); err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			api.Fail(w, http.StatusNotFound, "plan_not_found", "plan not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "plan_delete_failed", "failed to delete plan", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]int64{"deleted": id}, middleware.GetRequestID(r.Context()))
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_id", param+" must be a positive integer", middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return id, true
}
