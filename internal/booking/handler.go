package booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/vecindario/marketplace-api/internal/auth"
	"github.com/vecindario/marketplace-api/internal/store"
	"github.com/vecindario/marketplace-api/internal/web"
)

// Handler exposes the booking endpoints. Both run behind RequireAuth.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Create handles POST /api/bookings.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		web.Fail(w, http.StatusUnauthorized, "authorization token required")
		return
	}
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Debugw("invalid booking payload", "err", err)
		web.Fail(w, http.StatusBadRequest, "invalid payload")
		return
	}
	b, err := h.svc.Create(r.Context(), claims.UserID, in)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			web.Fail(w, http.StatusBadRequest, ve.Error())
		case errors.Is(err, store.ErrUnavailable):
			web.Fail(w, http.StatusServiceUnavailable, "database unavailable")
		default:
			h.logger.Errorw("create booking failed", "err", err)
			web.Fail(w, http.StatusInternalServerError, "could not create booking")
		}
		return
	}
	h.logger.Infow("booking created", "id", b.ID, "user", b.UserID)
	web.JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "booking created",
		"data":    b,
	})
}

// List handles GET /api/bookings and returns the caller's bookings.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		web.Fail(w, http.StatusUnauthorized, "authorization token required")
		return
	}
	bookings, err := h.svc.ListByUser(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Errorw("list bookings failed", "err", err)
		web.Fail(w, http.StatusInternalServerError, "could not list bookings")
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(bookings),
		"data":    bookings,
	})
}
