package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func okHandler(t *testing.T, sawClaims **Claims) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, ok := ClaimsFromContext(r.Context()); ok && sawClaims != nil {
			*sawClaims = c
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	tm := NewTokenManager("test-signing-secret", time.Hour)
	h := RequireAuth(tm, zap.NewNop().Sugar())(okHandler(t, nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"authorization token required"}`, rec.Body.String())
}

func TestRequireAuth_EmptyBearer(t *testing.T) {
	tm := NewTokenManager("test-signing-secret", time.Hour)
	h := RequireAuth(tm, zap.NewNop().Sugar())(okHandler(t, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	tm := NewTokenManager("test-signing-secret", time.Hour)
	h := RequireAuth(tm, zap.NewNop().Sugar())(okHandler(t, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-signing-secret", time.Hour)
	token, err := tm.IssueWithTTL("user-1", "user", "", -time.Minute)
	require.NoError(t, err)

	h := RequireAuth(tm, zap.NewNop().Sugar())(okHandler(t, nil))
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_AttachesClaims(t *testing.T) {
	tm := NewTokenManager("test-signing-secret", time.Hour)
	token, err := tm.Issue("user-1", "provider", "Pocitos")
	require.NoError(t, err)

	var seen *Claims
	h := RequireAuth(tm, zap.NewNop().Sugar())(okHandler(t, &seen))
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "user-1", seen.UserID)
	assert.Equal(t, "provider", seen.Role)
	assert.Equal(t, "Pocitos", seen.Neighborhood)
}

func TestRequireRole(t *testing.T) {
	tm := NewTokenManager("test-signing-secret", time.Hour)

	tests := []struct {
		name     string
		role     string
		allowed  []string
		wantCode int
	}{
		{name: "permitted role", role: "provider", allowed: []string{"provider", "admin"}, wantCode: http.StatusOK},
		{name: "admin permitted", role: "admin", allowed: []string{"provider", "admin"}, wantCode: http.StatusOK},
		{name: "role not in set", role: "user", allowed: []string{"provider", "admin"}, wantCode: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tm.Issue("user-1", tt.role, "")
			require.NoError(t, err)

			gate := RequireAuth(tm, zap.NewNop().Sugar())
			roleGate := RequireRole(zap.NewNop().Sugar(), tt.allowed...)
			h := gate(roleGate(okHandler(t, nil)))

			req := httptest.NewRequest(http.MethodPost, "/api/providers", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestRequireRole_FailsClosedWithoutAuth(t *testing.T) {
	// role gate mounted without the authentication gate: no claims in
	// context must mean 403, never a pass-through
	h := RequireRole(zap.NewNop().Sugar(), "admin")(okHandler(t, nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/providers", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
