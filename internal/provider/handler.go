package provider

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/vecindario/marketplace-api/internal/auth"
	"github.com/vecindario/marketplace-api/internal/store"
	"github.com/vecindario/marketplace-api/internal/web"
)

// Handler exposes the provider listing endpoints. Source labels the
// backing dataset in list responses ("database" or "mock").
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
	source string
}

func NewHandler(svc *Service, logger *zap.SugaredLogger, source string) *Handler {
	return &Handler{svc: svc, logger: logger, source: source}
}

// List handles GET /api/providers. Reads never fail over to an error
// when the database is down; the fallback dataset answers instead.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	providers, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Errorw("list providers failed", "err", err)
		web.Fail(w, http.StatusInternalServerError, "could not list providers")
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"source":  h.source,
		"count":   len(providers),
		"data":    providers,
	})
}

// Create handles POST /api/providers. RequireAuth and RequireRole run
// before it.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		web.Fail(w, http.StatusUnauthorized, "authorization token required")
		return
	}
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Debugw("invalid provider payload", "err", err)
		web.Fail(w, http.StatusBadRequest, "invalid payload")
		return
	}
	p, err := h.svc.Create(r.Context(), claims.UserID, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidListing):
			web.Fail(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrUnavailable):
			web.Fail(w, http.StatusServiceUnavailable, "database unavailable")
		default:
			h.logger.Errorw("create provider failed", "err", err)
			web.Fail(w, http.StatusInternalServerError, "could not create provider")
		}
		return
	}
	h.logger.Infow("provider created", "id", p.ID, "owner", p.UserID)
	web.JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "provider created",
		"data":    p,
	})
}
