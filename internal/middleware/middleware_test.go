package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvasnev/hotel_listing/internal/auth"
)

var testSecret = []byte("test-jwt-secret")

func signToken(t *testing.T, roles []string, ttl time.Duration) string {
	t.Helper()
	claims := auth.AccessClaims{
		Email: "user@example.com",
		UID:   7,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return token
}

func newProtectedApp(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, mw...)
	return e
}

func get(e *echo.Echo, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth(t *testing.T) {
	e := newProtectedApp(JWTAuth(testSecret))

	assert.Equal(t, http.StatusUnauthorized, get(e, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(e, "garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, get(e, signToken(t, nil, -time.Minute)).Code, "expired tokens are rejected outside refresh")
	assert.Equal(t, http.StatusOK, get(e, signToken(t, nil, time.Minute)).Code)
}

func TestRequireRole(t *testing.T) {
	e := newProtectedApp(JWTAuth(testSecret), RequireRole("Administrator"))

	assert.Equal(t, http.StatusForbidden, get(e, signToken(t, []string{"User"}, time.Minute)).Code)
	assert.Equal(t, http.StatusOK, get(e, signToken(t, []string{"User", "Administrator"}, time.Minute)).Code)
}
