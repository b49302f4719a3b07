package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/farmsync/farmsync-api/internal/handler"    // import the handlers that implement business logic
	"github.com/farmsync/farmsync-api/internal/middleware" // import middleware for JWT authentication
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the signup/login endpoints and the protected
// account routes. Unauthenticated operations live under /v1/auth and are
// wrapped by the rate limiter; protected endpoints live under /v1 behind
// the bearer-token guard.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if limiter != nil {
		g.Use(limiter)
	}
	g.POST("/signup", a.Signup)
	g.POST("/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.PUT("/profile", a.UpdateProfile)
	auth.POST("/password", a.ChangePassword)
}

// RegisterAnalysis registers the protected analysis endpoints. Both account
// types may request reports; the type gate documents that and rejects
// tokens carrying an unknown type claim.
func RegisterAnalysis(e *echo.Echo, h *handler.AnalysisHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireUserType("FARMER", "RESEARCHER"))
	g.POST("/analysis", h.Analyze)
	g.GET("/analysis/history", h.History)
}
