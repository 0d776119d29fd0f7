package portfoliohandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sfa/internal/domain/portfolio"
	"sfa/internal/transport/http/api"
	"sfa/internal/transport/http/middleware"
	"sfa/internal/transport/http/shared"
)

type Handler struct {
	Store portfolio.StoreAPI
}

func NewHandler(store portfolio.StoreAPI) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/customers", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{customerID}", h.handleGet)
		r.Put("/{customerID}", h.handleUpdate)
		r.Delete("/{customerID}", h.handleDeactivate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	search := r.URL.Query().Get("q")
	activeOnly := r.URL.Query().Get("all") != "true"

	customers, err := h.Store.List(r.Context(), search, activeOnly, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "customer_list_failed", "failed to list customers", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, customers, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	customer, err := h.Store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, portfolio.ErrCustomerNotFound) {
			api.Fail(w, http.StatusNotFound, "customer_not_found", "customer not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "customer_get_failed", "failed to load customer", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, customer, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload portfolio.Customer
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.Create(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "customer_create_failed", "failed to create customer", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]int64{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var payload portfolio.Customer
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	payload.ID = id

	if err := h.Store.Update(r.Context(), payload); err != nil {
		if errors.Is(err, portfolio.ErrCustomerNotFound) {
			api.Fail(w, http.StatusNotFound, "customer_not_found", "customer not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "customer_update_failed", "failed to update customer", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, payload, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.Store.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, portfolio.ErrCustomerNotFound) {
			api.Fail(w, http.StatusNotFound, "customer_not_found", "customer not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "customer_deactivate_failed", "failed to deactivate customer", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]int64{"deactivated": id}, middleware.GetRequestID(r.Context()))
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "customerID"), 10, 64)
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "customerID must be a positive integer", middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return id, true
}
