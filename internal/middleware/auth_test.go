// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractToken(t *testing.T) {
	newRequest := func(header string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		return r
	}

	assert.Equal(t, "abc.def.ghi", ExtractToken(newRequest("Bearer abc.def.ghi")))
	assert.Equal(t, "abc.def.ghi", ExtractToken(newRequest("bearer abc.def.ghi")))
	assert.Empty(t, ExtractToken(newRequest("")))
	assert.Empty(t, ExtractToken(newRequest("Basic dXNlcjpwYXNz")))
	assert.Empty(t, ExtractToken(newRequest("Bearer")))
}

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, GetUserID(ctx))
	assert.False(t, IsAuthenticated(ctx))
	assert.False(t, IsAdmin(ctx))
	assert.Nil(t, GetClaims(ctx))

	claims := &AccessTokenClaims{
		UserID:       "user-1",
		Role:         "admin",
		TokenVersion: 2,
	}
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
	ctx = context.WithValue(ctx, ClaimsKey, claims)

	assert.Equal(t, "user-1", GetUserID(ctx))
	assert.True(t, IsAuthenticated(ctx))
	assert.True(t, IsAdmin(ctx))
	assert.Equal(t, claims, GetClaims(ctx))
}

func TestRequireRole_Forbidden(t *testing.T) {
	handler := RequireRole("admin")(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	))

	ctx := context.WithValue(context.Background(), UserRoleKey, "user")
	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_Unauthenticated(t *testing.T) {
	handler := RequireRole("admin")(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeaders(true)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))

	w = httptest.NewRecorder()
	SecurityHeaders(false)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {},
	)).ServeHTTP(w, r)

	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}
