package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/vecindario/marketplace-api/internal/auth"
	"github.com/vecindario/marketplace-api/internal/store"
	"github.com/vecindario/marketplace-api/internal/web"
)

// Handler exposes the authentication endpoints.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid register payload", "err", err)
		web.Fail(w, http.StatusBadRequest, "invalid payload")
		return
	}
	u, token, err := h.svc.Register(r.Context(), req)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			web.Fail(w, http.StatusBadRequest, ve.Error())
		case errors.Is(err, store.ErrDuplicateEmail):
			web.Fail(w, http.StatusBadRequest, "email already registered")
		case errors.Is(err, store.ErrUnavailable):
			web.Fail(w, http.StatusServiceUnavailable, "database unavailable")
		default:
			h.logger.Errorw("register failed", "err", err)
			web.Fail(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}
	h.logger.Infow("user registered", "id", u.ID, "email", u.Email)
	web.JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "user registered",
		"token":   token,
		"user":    u.Public(),
	})
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid login payload", "err", err)
		web.Fail(w, http.StatusBadRequest, "invalid payload")
		return
	}
	u, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			web.Fail(w, http.StatusBadRequest, "email and password are required")
		case errors.Is(err, ErrBadCredentials):
			h.logger.Debugw("login rejected", "email", req.Email)
			web.Fail(w, http.StatusUnauthorized, "invalid credentials")
		default:
			h.logger.Errorw("login failed", "err", err)
			web.Fail(w, http.StatusInternalServerError, "login failed")
		}
		return
	}
	h.logger.Infow("login ok", "id", u.ID)
	web.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "login ok",
		"token":   token,
		"user":    u.Public(),
	})
}

// Profile handles GET /api/auth/profile. RequireAuth runs before it.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		web.Fail(w, http.StatusUnauthorized, "authorization token required")
		return
	}
	u, err := h.svc.Profile(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			web.Fail(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Errorw("profile lookup failed", "err", err)
		web.Fail(w, http.StatusInternalServerError, "profile lookup failed")
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"success": true, "user": u})
}
