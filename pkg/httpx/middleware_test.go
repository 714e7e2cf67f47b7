package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/medranosoft/citamed/pkg/httpx"
	"github.com/medranosoft/citamed/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newVerifier(t *testing.T) *jwtx.HS256 {
	t.Helper()
	h, err := jwtx.NewHS256("middleware-test-secret", "citamed")
	require.NoError(t, err)
	return h
}

func signToken(t *testing.T, h *jwtx.HS256, userID, role string) string {
	t.Helper()
	token, err := h.Sign(jwtx.NewClaims(userID, role, "", "", "citamed", time.Hour, time.Now().UTC()))
	require.NoError(t, err)
	return token
}

func TestAuthnMiddleware(t *testing.T) {
	h := newVerifier(t)

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"user_id": httpx.UserIDFromCtx(r.Context()),
			"role":    httpx.RoleFromCtx(r.Context()),
		})
	})
	secured := httpx.Chain(echo, httpx.AuthnMiddleware(h))

	t.Run("rejects missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		secured.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "msg")
	})

	t.Run("rejects non-bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwdw==")
		rec := httptest.NewRecorder()
		secured.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects forged token", func(t *testing.T) {
		other, err := jwtx.NewHS256("some-other-secret", "citamed")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, other, "u1", "admin"))
		rec := httptest.NewRecorder()
		secured.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("injects identity into context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, h, "u1", "doctor"))
		rec := httptest.NewRecorder()
		secured.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"user_id":"u1"`)
		require.Contains(t, rec.Body.String(), `"role":"doctor"`)
	})
}

func TestRequireRole(t *testing.T) {
	h := newVerifier(t)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	adminOnly := httpx.Chain(ok,
		httpx.AuthnMiddleware(h),
		httpx.RequireRole("admin"),
	)

	t.Run("allows matching role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, h, "u1", "admin"))
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("forbids other roles", func(t *testing.T) {
		for _, role := range []string{"user", "doctor", "recepcion"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, h, "u1", role))
			rec := httptest.NewRecorder()
			adminOnly.ServeHTTP(rec, req)

			require.Equal(t, http.StatusForbidden, rec.Code, "role %s", role)
		}
	})

	t.Run("rejects unauthenticated requests before the role check", func(t *testing.T) {
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
