package system

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/vecindario/marketplace-api/internal/web"
)

// Handler answers the unauthenticated app-info and health endpoints.
// db is nil when the process started in fallback mode.
type Handler struct {
	logger *zap.SugaredLogger
	db     *sqlx.DB
}

func NewHandler(logger *zap.SugaredLogger, db *sqlx.DB) *Handler {
	return &Handler{logger: logger, db: db}
}

const appName = "Marketplace Barrios Privados"

// Root handles GET / with the app banner and endpoint index.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	mode := "database"
	if h.db == nil {
		mode = "fallback"
	}
	web.JSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"app":      appName,
		"version":  "1.0.0",
		"database": mode,
		"endpoints": map[string]any{
			"auth": map[string]string{
				"register": "POST /api/auth/register",
				"login":    "POST /api/auth/login",
				"profile":  "GET /api/auth/profile",
			},
			"providers": "GET /api/providers",
			"bookings":  "POST /api/bookings",
			"status":    "GET /api/status",
		},
	})
}

// Status handles GET /api/status: the single idempotent health check.
// It pings the database live rather than reporting a cached flag.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	state := "disconnected"
	connected := false
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Warnw("health ping failed", "err", err)
		} else {
			state = "connected"
			connected = true
		}
	}
	dbType := "postgres"
	if h.db == nil {
		dbType = "simulated"
	}
	web.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"app":     appName,
		"database": map[string]any{
			"connected": connected,
			"state":     state,
			"type":      dbType,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
