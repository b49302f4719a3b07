package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "errors"
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/farmsync/farmsync-api/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer session token
// and injects the token's claims into the request context. The provided
// secret must match the one used when issuing tokens. This middleware wraps
// protected routes so that handlers can access the authenticated identity
// via c.Get("user_id"), c.Get("email") and c.Get("user_type").
//
// The guard answers 401 in three distinct ways so clients can tell a stale
// session from a broken one: a missing/non-Bearer header, an expired token,
// and anything else (bad signature, wrong algorithm, not a JWT at all).
// Claims are trusted as-is; the credential store is not consulted, so a
// changed email or account type only takes effect after re-login.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header starts with "Bearer " followed by the JWT.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            claims, err := utils.VerifySessionToken(secret, raw)
            if err != nil {
                if errors.Is(err, utils.ErrTokenExpired) {
                    return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token expired"})
                }
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            // Store the claims in the context for handlers and downstream
            // middleware.
            c.Set("user_id", claims.UserID)
            c.Set("email", claims.Email)
            c.Set("user_type", claims.UserType)
            return next(c)
        }
    }
}
