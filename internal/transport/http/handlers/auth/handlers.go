package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"salesdash/internal/domain/audit"
	"salesdash/internal/domain/auth"
	"salesdash/internal/transport/http/api"
	"salesdash/internal/transport/http/middleware"
)

const tokenTTL = 8 * time.Hour

type Handler struct {
	Store  *auth.Store
	Audit  *audit.Service
	Secret string
}

func NewHandler(store *auth.Store, auditSvc *audit.Service, secret string) *Handler {
	return &Handler{Store: store, Audit: auditSvc, Secret: secret}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.handleLogin)
		r.Post("/logout", h.handleLogout)
		r.Post("/register", h.handleRegister)
		r.Get("/me", h.handleMe)
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	user, err := h.Store.FindUserByEmail(r.Context(), strings.ToLower(strings.TrimSpace(payload.Email)))
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{UserID: user.ID, Email: user.Email, Role: user.Role}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user":  map[string]string{"id": user.ID, "email": user.Email, "role": user.Role},
	}, middleware.GetRequestID(r.Context()))
}

// handleLogout records the sign-out for the audit trail. Tokens are
// stateless, so the client drops its copy; expiry bounds the window.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, user.UserID, "user.logout", "user", user.UserID, nil)
	api.NoContent(w)
}

// handleRegister creates a user. Only admins may add accounts; the first
// admin comes from the seed routine.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	if actor.Role != auth.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "only admins may register users", middleware.GetRequestID(r.Context()))
		return
	}

	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if email == "" || len(payload.Password) < 8 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "email and a password of at least 8 characters are required", middleware.GetRequestID(r.Context()))
		return
	}
	role := payload.Role
	if role == "" {
		role = auth.RoleViewer
	}
	if _, known := auth.RolePermissions[role]; !known {
		api.Fail(w, http.StatusBadRequest, "invalid_role", "unknown role", middleware.GetRequestID(r.Context()))
		return
	}

	if _, err := h.Store.FindUserByEmail(r.Context(), email); err == nil {
		api.Fail(w, http.StatusConflict, "email_taken", "a user with this email already exists", middleware.GetRequestID(r.Context()))
		return
	} else if !errors.Is(err, auth.ErrUserNotFound) {
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to register user", middleware.GetRequestID(r.Context()))
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "hash_error", "failed to register user", middleware.GetRequestID(r.Context()))
		return
	}
	id, err := h.Store.CreateUser(r.Context(), email, hash, role)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to register user", middleware.GetRequestID(r.Context()))
		return
	}

	h.record(r, actor.UserID, "user.register", "user", id, map[string]string{"email": email, "role": role})
	api.Created(w, map[string]string{"id": id, "email": email, "role": role}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"id":          user.UserID,
		"email":       user.Email,
		"role":        user.Role,
		"permissions": auth.RolePermissions[user.Role],
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) record(r *http.Request, actorID, action, entityType, entityID string, detail any) {
	if h.Audit == nil {
		return
	}
	if err := h.Audit.Record(r.Context(), actorID, action, entityType, entityID, middleware.GetRequestID(r.Context()), detail); err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}
