package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sfa/internal/auth"
	"sfa/internal/domain/employee"
	"sfa/internal/transport/http/api"
	"sfa/internal/transport/http/middleware"
)

const tokenTTL = 12 * time.Hour

type Handler struct {
	Employees employee.StoreAPI
	JWTSecret string
}

func NewHandler(employees employee.StoreAPI, jwtSecret string) *Handler {
	return &Handler{Employees: employees, JWTSecret: jwtSecret}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token      string `json:"token"`
	EmployeeID int64  `json:"employeeId"`
	Name       string `json:"name"`
	Position   string `json:"position"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "missing_credentials", "email and password are required", middleware.GetRequestID(r.Context()))
		return
	}

	creds, err := h.Employees.CredentialsByEmail(r.Context(), payload.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to process login", middleware.GetRequestID(r.Context()))
		return
	}
	if creds.PasswordHash == "" || auth.CheckPassword(creds.PasswordHash, payload.Password) != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{
		EmployeeID: creds.EmployeeID,
		Name:       creds.FullName,
		Position:   creds.Position,
	}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, loginResponse{
		Token:      token,
		EmployeeID: creds.EmployeeID,
		Name:       creds.FullName,
		Position:   creds.Position,
	}, middleware.GetRequestID(r.Context()))
}
