package activityhandler

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"sfa/internal/domain/activity"
	"sfa/internal/external/storage"
	"sfa/internal/transport/http/api"
	"sfa/internal/transport/http/middleware"
	"sfa/internal/transport/http/shared"
)

const maxPhotoUploadBytes = 8 * 1024 * 1024

type Handler struct {
	Service *activity.Service
	Photos  storage.Store
}

func NewHandler(service *activity.Service, photos storage.Store) *Handler {
	if photos == nil {
		photos = storage.Noop{}
	}
	return &Handler{Service: service, Photos: photos}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/visits", func(r chi.Router) {
		r.Get("/", h.handleListVisits)
		r.Post("/", h.handleRegisterVisit)
		r.Delete("/{visitID}", h.handleDeleteVisit)
	})
	r.Route("/calls", func(r chi.Router) {
		r.Get("/", h.handleListCalls)
		r.Post("/", h.handleRegisterCall)
		r.Delete("/{callID}", h.handleDeleteCall)
	})
	r.Route("/emails", func(r chi.Router) {
		r.Get("/", h.handleListEmails)
		r.Post("/", h.handleRegisterEmail)
		r.Delete("/{emailID}", h.handleDeleteEmail)
	})
}

type visitPayload struct {
	PlanID        int64    `json:"planId"`
	CustomerID    int64    `json:"customerId"`
	Outcome       string   `json:"outcome"`
	Notes         string   `json:"notes"`
	SitePhotoURL  string   `json:"sitePhotoUrl"`
	StampPhotoURL string   `json:"stampPhotoUrl"`
	Lat           *float64 `json:"lat"`
	Lon           *float64 `json:"lon"`
}

// handleRegisterVisit accepts either a JSON payload referencing already
// hosted photos, or a multipart form carrying the two photo files, which are
// pushed to the evidence store before the visit is recorded.
func (h *Handler) handleRegisterVisit(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		h.handleRegisterVisitMultipart(w, r)
		return
	}

	var payload visitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	h.registerVisit(w, r, activity.VisitInput{
		PlanID:        payload.PlanID,
		CustomerID:    payload.CustomerID,
		Outcome:       payload.Outcome,
		Notes:         payload.Notes,
		SitePhotoURL:  payload.SitePhotoURL,
		StampPhotoURL: payload.StampPhotoURL,
		Lat:           payload.Lat,
		Lon:           payload.Lon,
	})
}

func (h *Handler) handleRegisterVisitMultipart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_multipart", "invalid multipart form", middleware.GetRequestID(r.Context()))
		return
	}

	planID, err := strconv.ParseInt(r.FormValue("planId"), 10, 64)
	if err != nil || planID <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "planId must be a positive integer", middleware.GetRequestID(r.Context()))
		return
	}
	customerID, err := strconv.ParseInt(r.FormValue("customerId"), 10, 64)
	if err != nil || customerID <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "customerId must be a positive integer", middleware.GetRequestID(r.Context()))
		return
	}

	employeeName := r.FormValue("employeeName")
	if user, ok := middleware.GetUser(r.Context()); ok && employeeName == "" {
		employeeName = user.Name
	}
	if employeeName == "" {
		api.Fail(w, http.StatusBadRequest, "missing_employee_name", "employeeName is required for photo storage", middleware.GetRequestID(r.Context()))
		return
	}

	siteURL, err := h.storePhoto(r, "sitePhoto", employeeName)
	if err != nil {
		h.failPhoto(w, r, err)
		return
	}
	stampURL, err := h.storePhoto(r, "stampPhoto", employeeName)
	if err != nil {
		h.failPhoto(w, r, err)
		return
	}

	in := activity.VisitInput{
		PlanID:        planID,
		CustomerID:    customerID,
		Outcome:       r.FormValue("outcome"),
		Notes:         r.FormValue("notes"),
		SitePhotoURL:  siteURL,
		StampPhotoURL: stampURL,
	}
	if lat, err := strconv.ParseFloat(r.FormValue("lat"), 64); err == nil {
		in.Lat = &lat
	}
	if lon, err := strconv.ParseFloat(r.FormValue("lon"), 64); err == nil {
		in.Lon = &lon
	}
	h.registerVisit(w, r, in)
}

func (h *Handler) registerVisit(w http.ResponseWriter, r *http.Request, in activity.VisitInput) {
	visit, err := h.Service.RegisterVisit(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, activity.ErrInvalidInput):
			api.Fail(w, http.StatusBadRequest, "invalid_visit", err.Error(), middleware.GetRequestID(r.Context()))
		case errors.Is(err, activity.ErrPlanNotFound):
			api.Fail(w, http.StatusNotFound, "plan_not_found", err.Error(), middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "visit_create_failed", "failed to record visit", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Created(w, visit, middleware.GetRequestID(r.Context()))
}

// storePhoto spools the uploaded file to disk and pushes it to the evidence
// store, returning the remote path.
func (h *Handler) storePhoto(r *http.Request, field, employeeName string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", errMissingPhoto(field)
	}
	defer file.Close()

	local, err := spoolToTemp(file, header)
	if err != nil {
		return "", err
	}
	defer os.Remove(local)

	return h.Photos.Upload(r.Context(), local, employeeName, "Visits", header.Filename)
}

type missingPhotoError string

func (e missingPhotoError) Error() string { return "missing photo file " + string(e) }

func errMissingPhoto(field string) error { return missingPhotoError(field) }

func (h *Handler) failPhoto(w http.ResponseWriter, r *http.Request, err error) {
	var missing missingPhotoError
	switch {
	case errors.As(err, &missing):
		api.Fail(w, http.StatusBadRequest, "missing_photo", err.Error(), middleware.GetRequestID(r.Context()))
	case errors.Is(err, storage.ErrNotConfigured):
		api.Fail(w, http.StatusServiceUnavailable, "storage_not_configured", "photo storage not configured", middleware.GetRequestID(r.Context()))
	default:
		api.Fail(w, http.StatusBadGateway, "storage_failed", "failed to store photo evidence", middleware.GetRequestID(r.Context()))
	}
}

func spoolToTemp(file multipart.File, header *multipart.FileHeader) (string, error) {
	tmp, err := os.CreateTemp("", "evidence-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", err
	}
	defer tmp.Close()
	if _, err := io.Copy(tmp, file); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func (h *Handler) handleDeleteVisit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "visitID")
	if !ok {
		return
	}
	visit, err := h.Service.DeleteVisit(r.Context(), id)
	if err != nil {
		if errors.Is(err, activity.ErrVisitNotFound) {
			api.Fail(w, http.StatusNotFound, "visit_not_found", "visit not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "visit_delete_failed", "failed to delete visit", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, visit, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListVisits(w http.ResponseWriter, r *http.Request) {
	planID, ok := queryID(w, r, "planId")
	if !ok {
		return
	}
	page := shared.ParsePagination(r, 50, 100)
	visits, err := h.Service.ListVisits(r.Context(), planID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "visit_list_failed", "failed to list visits", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, visits, middleware.GetRequestID(r.Context()))
}

type callPayload struct {
	PlanID          int64  `json:"planId"`
	DialedNumber    string `json:"dialedNumber"`
	ContactName     string `json:"contactName"`
	DurationSeconds int    `json:"durationSeconds"`
	Outcome         string `json:"outcome"`
	Notes           string `json:"notes"`
}

func (h *Handler) handleRegisterCall(w http.ResponseWriter, r *http.Request) {
	var payload callPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	call, err := h.Service.RegisterCall(r.Context(), activity.CallInput{
		PlanID:          payload.PlanID,
		DialedNumber:    payload.DialedNumber,
		ContactName:     payload.ContactName,
		DurationSeconds: payload.DurationSeconds,
		Outcome:         payload.Outcome,
		Notes:           payload.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, activity.ErrInvalidInput):
			api.Fail(w, http.StatusBadRequest, "invalid_call", err.Error(), middleware.GetRequestID(r.Context()))
		case errors.Is(err, activity.ErrPlanNotFound):
			api.Fail(w, http.StatusNotFound, "plan_not_found", err.Error(), middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "call_create_failed", "failed to record call", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Created(w, call, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteCall(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "callID")
	if !ok {
		return
	}
	call, err := h.Service.DeleteCall(r.Context(), id)
	if err != nil {
		if errors.Is(err, activity.ErrCallNotFound) {
			api.Fail(w, http.StatusNotFound, "call_not_found", "call not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "call_delete_failed", "failed to delete call", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, call, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListCalls(w http.ResponseWriter, r *http.Request) {
	planID, ok := queryID(w, r, "planId")
	if !ok {
		return
	}
	page := shared.ParsePagination(r, 50, 100)
	calls, err := h.Service.ListCalls(r.Context(), planID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "call_list_failed", "failed to list calls", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, calls, middleware.GetRequestID(r.Context()))
}

type emailPayload struct {
	PlanID    int64  `json:"planId"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
}

func (h *Handler) handleRegisterEmail(w http.ResponseWriter, r *http.Request) {
	var payload emailPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	email, err := h.Service.RegisterEmail(r.Context(), activity.EmailInput{
		PlanID:    payload.PlanID,
		Recipient: payload.Recipient,
		Subject:   payload.Subject,
	})
	if err != nil {
		switch {
		case errors.Is(err, activity.ErrInvalidInput):
			api.Fail(w, http.StatusBadRequest, "invalid_email", err.Error(), middleware.GetRequestID(r.Context()))
		case errors.Is(err, activity.ErrPlanNotFound):
			api.Fail(w, http.StatusNotFound, "plan_not_found", err.Error(), middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "email_create_failed", "failed to record email", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Created(w, email, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "emailID")
	if !ok {
		return
	}
	email, err := h.Service.DeleteEmail(r.Context(), id)
	if err != nil {
		if errors.Is(err, activity.ErrEmailNotFound) {
			api.Fail(w, http.StatusNotFound, "email_not_found", "email not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "email_delete_failed", "failed to delete email", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, email, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListEmails(w http.ResponseWriter, r *http.Request) {
	planID, ok := queryID(w, r, "planId")
	if !ok {
		return
	}
	page := shared.ParsePagination(r, 50, 100)
	emails, err := h.Service.ListEmails(r.Context(), planID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "email_list_failed", "failed to list emails", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emails, middleware.GetRequestID(r.Context()))
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_id", param+" must be a positive integer", middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return id, true
}

func queryID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
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
