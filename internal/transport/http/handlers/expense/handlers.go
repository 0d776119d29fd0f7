package expensehandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sfa/internal/domain/expense"
	"sfa/internal/transport/http/api"
	"sfa/internal/transport/http/middleware"
	"sfa/internal/transport/http/shared"
)

type Handler struct {
	Service *expense.Service
}

func NewHandler(service *expense.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/expenses", func(r chi.Router) {
		r.Post("/", h.handleRecord)
		r.Delete("/{expenseID}", h.handleDelete)
	})
	r.Get("/plans/{planID}/expenses", h.handleListByPlan)
	r.Get("/plans/{planID}/expenses/pdf", h.handleSheetPDF)
}

type recordPayload struct {
	PlanID         int64   `json:"planId"`
	SpentOn        string  `json:"spentOn"`
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	Reason         string  `json:"reason"`
	CompanyVisited string  `json:"companyVisited"`
	Amount         float64 `json:"amount"`
}

func (h *Handler) handleRecord(w http.ResponseWriter, r *http.Request) {
	var payload recordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	spentOn, _ := v.Date("spentOn", payload.SpentOn)
	if payload.Amount <= 0 {
		v.Add("amount", "must be a positive amount")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	recorded, err := h.Service.Record(r.Context(), expense.Input{
		PlanID:         payload.PlanID,
		SpentOn:        spentOn,
		Origin:         payload.Origin,
		Destination:    payload.Destination,
		Reason:         payload.Reason,
		CompanyVisited: payload.CompanyVisited,
		Amount:         payload.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, expense.ErrInvalidInput):
			api.Fail(w, http.StatusBadRequest, "invalid_expense", err.Error(), middleware.GetRequestID(r.Context()))
		case errors.Is(err, expense.ErrPlanNotFound):
			api.Fail(w, http.StatusNotFound, "plan_not_found", err.Error(), middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "expense_create_failed", "failed to record expense", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Created(w, recorded, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "expenseID")
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, expense.ErrExpenseNotFound) {
			api.Fail(w, http.StatusNotFound, "expense_not_found", "expense not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "expense_delete_failed", "failed to delete expense", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]int64{"deleted": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListByPlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := parseID(w, r, "planID")
	if !ok {
		return
	}
	expenses, err := h.Service.ListByPlan(r.Context(), planID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "expense_list_failed", "failed to list expenses", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, expenses, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSheetPDF(w http.ResponseWriter, r *http.Request) {
	planID, ok := parseID(w, r, "planID")
	if !ok {
		return
	}
	pdf, err := h.Service.ExportWeeklySheet(r.Context(), planID)
	if err != nil {
		if errors.Is(err, expense.ErrPlanNotFound) {
			api.Fail(w, http.StatusNotFound, "plan_not_found", "plan not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "expense_pdf_failed", "failed to render expense sheet", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=expenses-plan-%d.pdf", planID))
	_, _ = w.Write(pdf)
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_id", param+" must be a positive integer", middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return id, true
}
