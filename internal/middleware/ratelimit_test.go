package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/farmsync/farmsync-api/internal/config"
)

func rateCtx(t *testing.T, userID uint64) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
	req.Header.Set(echo.HeaderXRealIP, "203.0.113.9")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/auth/login")
	if userID != 0 {
		c.Set("user_id", userID)
	}
	return c
}

func TestBuildRateKeyStrategies(t *testing.T) {
	t.Parallel()

	base := config.RateLimitConfig{Prefix: "rl"}
	anon := rateCtx(t, 0)
	authed := rateCtx(t, 42)

	cases := map[string]struct {
		strategy string
		ctx      echo.Context
		want     string
	}{
		"ip":            {"ip", anon, "rl:ip:203.0.113.9"},
		"user anon":     {"user", anon, "rl:user:anon"},
		"user authed":   {"user", authed, "rl:user:42"},
		"route":         {"route", anon, "rl:route:POST /v1/auth/login"},
		"user_route":    {"user_route", authed, "rl:user:42:route:POST /v1/auth/login"},
		"default is ip_route": {"bogus", anon, "rl:ip:203.0.113.9:route:POST /v1/auth/login"},
	}
	for name, tc := range cases {
		cfg := base
		cfg.KeyStrategy = tc.strategy
		require.Equal(t, tc.want, buildRateKey(cfg, tc.ctx), name)
	}
}

func TestBuildRateKeyUnknownIP(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
	req.RemoteAddr = ""
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/auth/login")

	key := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip"}, c)
	require.Equal(t, "rl:ip:unknown", key)
}

// Without a Redis client the limiter must not stand between the request and
// the handler.
func TestTokenBucketPassThroughWithoutRedis(t *testing.T) {
	t.Parallel()

	for _, cfg := range []config.RateLimitConfig{
		{Enabled: true, Capacity: 20},
		{Enabled: false, Capacity: 20},
	} {
		e := echo.New()
		called := false
		e.POST("/v1/auth/login", func(c echo.Context) error {
			called = true
			return c.String(http.StatusOK, "ok")
		}, NewTokenBucket(cfg, nil))

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, called)
		require.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	}
}

func TestAsInt64(t *testing.T) {
	t.Parallel()

	require.Equal(t, int64(7), asInt64(int64(7)))
	require.Equal(t, int64(7), asInt64(int(7)))
	require.Equal(t, int64(7), asInt64(int32(7)))
	require.Equal(t, int64(7), asInt64(float64(7.9)))
	require.Equal(t, int64(7), asInt64("7"))
	require.Equal(t, int64(0), asInt64("not-a-number"))
	require.Equal(t, int64(0), asInt64(nil))
	require.Equal(t, int64(0), asInt64([]byte("7")))
}
