package kpihandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sfa/internal/domain/kpi"
	"sfa/internal/external/quotations"
	"sfa/internal/transport/http/api"
	"sfa/internal/transport/http/middleware"
	"sfa/internal/transport/http/shared"
)

// QuotationLister provides the read-only quotation browse endpoint. It is nil
// when no external database is configured.
type QuotationLister interface {
	ListDetailed(ctx context.Context, externalSellerID int64, limit int) ([]quotations.Quotation, error)
}

type Handler struct {
	Service *kpi.Service
	Quotes  QuotationLister
}

func NewHandler(service *kpi.Service, quotes QuotationLister) *Handler {
	return &Handler{Service: service, Quotes: quotes}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/", h.handleListReports)
		r.Get("/{reportID}", h.handleGetReport)
		r.Post("/{reportID}/reconcile", h.handleReconcile)
	})
	r.Route("/plans/{planID}/report", func(r chi.Router) {
		r.Get("/", h.handleGetReportByPlan)
		r.Put("/targets", h.handleUpdateTargets)
		r.Get("/pdf", h.handleReportPDF)
	})
	r.Route("/incentives", func(r chi.Router) {
		r.Get("/", h.handleListIncentives)
		r.Post("/{incentiveID}/pay", h.handleMarkPaid)
	})
	r.Get("/quotations", h.handleListQuotations)
}

func (h *Handler) handleListReports(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 100)
	employeeID, ok := optionalID(w, r, "employeeId")
	if !ok {
		return
	}
	reports, err := h.Service.ListReports(r.Context(), employeeID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_list_failed", "failed to list reports", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, reports, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "reportID")
	if !ok {
		return
	}
	report, err := h.Service.GetReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, kpi.ErrReportNotFound) {
			api.Fail(w, http.StatusNotFound, "report_not_found", "report not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "report_get_failed", "failed to load report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, report, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetReportByPlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := parseID(w, r, "planID")
	if !ok {
		return
	}
	report, err := h.Service.GetReportByPlan(r.Context(), planID)
	if err != nil {
		if errors.Is(err, kpi.ErrReportNotFound) {
			api.Fail(w, http.StatusNotFound, "report_not_found", "report not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "report_get_failed", "failed to load report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, report, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReconcile(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "reportID")
	if !ok {
		return
	}
	report, err := h.Service.Reconcile(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, kpi.ErrReportNotFound):
			api.Fail(w, http.StatusNotFound, "report_not_found", "report not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, kpi.ErrExternalDependency):
			api.Fail(w, http.StatusBadGateway, "external_unavailable", "quotations source unavailable", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "reconcile_failed", "failed to reconcile report", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Success(w, report, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateTargets(w http.ResponseWriter, r *http.Request) {
	planID, ok := parseID(w, r, "planID")
	if !ok {
		return
	}
	var targets kpi.Targets
	if err := json.NewDecoder(r.Body).Decode(&targets); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	for field, value := range map[string]int{
		"targetVisits":         targets.TargetVisits,
		"targetAssistedVisits": targets.TargetAssistedVisits,
		"targetCalls":          targets.TargetCalls,
		"targetEmails":         targets.TargetEmails,
		"targetQuotations":     targets.TargetQuotations,
		"objectiveScore":       targets.ObjectiveScore,
	} {
		if value < 0 {
			v.Add(field, "must not be negative")
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	report, err := h.Service.UpdateTargets(r.Context(), planID, targets)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "targets_update_failed", "failed to update targets", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, report, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	planID, ok := parseID(w, r, "planID")
	if !ok {
		return
	}
	pdf, err := h.Service.ExportReportPDF(r.Context(), planID)
	if err != nil {
		if errors.Is(err, kpi.ErrReportNotFound) {
			api.Fail(w, http.StatusNotFound, "report_not_found", "report not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "report_pdf_failed", "failed to render report", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=report-plan-%d.pdf", planID))
	_, _ = w.Write(pdf)
}

func (h *Handler) handleListIncentives(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := optionalID(w, r, "employeeId")
	if !ok {
		return
	}
	pendingOnly := r.URL.Query().Get("pending") == "true"
	incentives, err := h.Service.ListIncentives(r.Context(), employeeID, pendingOnly)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "incentive_list_failed", "failed to list incentives", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, incentives, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "incentiveID")
	if !ok {
		return
	}
	incentive, err := h.Service.MarkIncentivePaid(r.Context(), id)
	if err != nil {
		if errors.Is(err, kpi.ErrIncentiveNotFound) {
			api.Fail(w, http.StatusNotFound, "incentive_not_found", "incentive not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "incentive_pay_failed", "failed to mark incentive paid", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, incentive, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListQuotations(w http.ResponseWriter, r *http.Request) {
	if h.Quotes == nil {
		api.Fail(w, http.StatusServiceUnavailable, "external_not_configured", "quotations source not configured", middleware.GetRequestID(r.Context()))
		return
	}
	sellerID, ok := optionalID(w, r, "sellerId")
	if !ok {
		return
	}
	page := shared.ParsePagination(r, 50, 200)
	quotes, err := h.Quotes.ListDetailed(r.Context(), sellerID, page.Limit)
	if err != nil {
		api.Fail(w, http.StatusBadGateway, "external_unavailable", "quotations source unavailable", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, quotes, middleware.GetRequestID(r.Context()))
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_id", param+" must be a positive integer", middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return id, true
}

func optionalID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_"+param, param+" must be numeric", middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return id, true
}
