package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/farmsync/farmsync-api/internal/utils"
)

const testSecret = "test-secret"

func protectedApp(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.GET("/p", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id":   c.Get("user_id"),
			"email":     c.Get("email"),
			"user_type": c.Get("user_type"),
		})
	}, JWTAuth(testSecret))
	return e
}

func get(e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth_MissingOrMalformedHeader(t *testing.T) {
	t.Parallel()

	e := protectedApp(t)
	for _, header := range []string{"", "Basic abc", "Bearer", "token-without-scheme"} {
		rec := get(e, header)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "header=%q", header)
		require.Contains(t, rec.Body.String(), "missing bearer token")
	}
}

func TestJWTAuth_ValidTokenInjectsClaims(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewSessionToken(testSecret, 42, "a@x.com", "FARMER", time.Hour)
	require.NoError(t, err)

	rec := get(protectedApp(t), "Bearer "+tok.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"user_id":42`)
	require.Contains(t, rec.Body.String(), `"email":"a@x.com"`)
	require.Contains(t, rec.Body.String(), `"user_type":"FARMER"`)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewSessionToken(testSecret, 42, "a@x.com", "FARMER", -time.Minute)
	require.NoError(t, err)

	rec := get(protectedApp(t), "Bearer "+tok.Token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "token expired")
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewSessionToken("other-secret", 42, "a@x.com", "FARMER", time.Hour)
	require.NoError(t, err)

	rec := get(protectedApp(t), "Bearer "+tok.Token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid token")
}

func TestRequireUserType(t *testing.T) {
	t.Parallel()

	e := echo.New()
	handler := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	e.GET("/farmers", handler, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user_type", "FARMER")
			return next(c)
		}
	}, RequireUserType("FARMER"))
	e.GET("/researchers", handler, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user_type", "FARMER")
			return next(c)
		}
	}, RequireUserType("RESEARCHER"))
	e.GET("/untyped", handler, RequireUserType("FARMER"))

	req := httptest.NewRequest(http.MethodGet, "/farmers", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/researchers", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/untyped", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}
