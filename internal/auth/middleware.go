package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/vecindario/marketplace-api/internal/web"
)

// ErrMissingToken means no bearer credential was presented at all.
var ErrMissingToken = errors.New("authorization token required")

type contextKey int

const claimsKey contextKey = iota

// ClaimsFromContext returns the verified claims attached by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok
}

// WithClaims attaches claims to ctx. Exposed for handler tests.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// bearerToken extracts the credential from an Authorization header.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// RequireAuth returns a middleware that verifies the bearer token and
// attaches the decoded claims to the request context. Missing, invalid
// and expired tokens all answer 401; the distinction survives in logs.
func RequireAuth(tm *TokenManager, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				logger.Debugw("missing bearer token", "path", r.URL.Path)
				web.Fail(w, http.StatusUnauthorized, "authorization token required")
				return
			}
			claims, err := tm.Verify(token)
			if err != nil {
				logger.Debugw("token rejected", "path", r.URL.Path, "reason", err)
				web.Fail(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRole returns a middleware that allows only the given roles.
// It must run after RequireAuth; without claims in context it fails
// closed with 403.
func RequireRole(logger *zap.SugaredLogger, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				logger.Warnw("role check without authenticated identity", "path", r.URL.Path)
				web.Fail(w, http.StatusForbidden, "permission denied")
				return
			}
			if _, ok := allowed[claims.Role]; !ok {
				logger.Debugw("role not permitted", "path", r.URL.Path, "role", claims.Role)
				web.Fail(w, http.StatusForbidden, "permission denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
