package router

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vecindario/marketplace-api/internal/auth"
	"github.com/vecindario/marketplace-api/internal/booking"
	"github.com/vecindario/marketplace-api/internal/provider"
	"github.com/vecindario/marketplace-api/internal/system"
	"github.com/vecindario/marketplace-api/internal/user"
	userentity "github.com/vecindario/marketplace-api/internal/user/entity"
)

// Deps bundles everything the route table needs.
type Deps struct {
	Users     *user.Handler
	Providers *provider.Handler
	Bookings  *booking.Handler
	System    *system.Handler
	Tokens    *auth.TokenManager
}

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// LoggingMiddleware returns a middleware that logs requests at debug level using the provided sugared logger.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			// ensure status is set
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
			)
		})
	}
}

// SecurityHeadersMiddleware returns a middleware that sets common HTTP security headers.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
			next.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware allows browser clients on the known development
// origins plus anything on localhost. Requests without an Origin header
// (curl, server-to-server) pass untouched.
func CORSMiddleware() func(http.Handler) http.Handler {
	allowed := map[string]struct{}{
		"http://127.0.0.1:5500": {},
		"http://127.0.0.1:8080": {},
		"http://127.0.0.1:3000": {},
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				_, ok := allowed[origin]
				if ok || strings.Contains(origin, "localhost") {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
					w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Accept")
					w.Header().Set("Access-Control-Allow-Credentials", "true")
					w.Header().Set("Access-Control-Max-Age", "86400")
				}
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RegisterRoutes mounts HTTP handlers using the standard library's
// http.ServeMux. Auth gates compose per route: RequireRole always runs
// inside RequireAuth so the role check never sees an empty context.
func RegisterRoutes(logger *zap.SugaredLogger, d Deps) http.Handler {
	mux := http.NewServeMux()

	authed := auth.RequireAuth(d.Tokens, logger)
	providerRole := auth.RequireRole(logger, userentity.RoleProvider, userentity.RoleAdmin)

	mux.HandleFunc("GET /{$}", d.System.Root)
	mux.HandleFunc("GET /api/status", d.System.Status)

	mux.HandleFunc("POST /api/auth/register", d.Users.Register)
	mux.HandleFunc("POST /api/auth/login", d.Users.Login)
	mux.Handle("GET /api/auth/profile", authed(http.HandlerFunc(d.Users.Profile)))

	mux.HandleFunc("GET /api/providers", d.Providers.List)
	mux.Handle("POST /api/providers", authed(providerRole(http.HandlerFunc(d.Providers.Create))))

	mux.Handle("POST /api/bookings", authed(http.HandlerFunc(d.Bookings.Create)))
	mux.Handle("GET /api/bookings", authed(http.HandlerFunc(d.Bookings.List)))

	// wrap with CORS, then security headers, then request logging
	handler := LoggingMiddleware(logger)(SecurityHeadersMiddleware()(CORSMiddleware()(mux)))
	return handler
}
