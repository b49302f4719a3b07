package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// RequireUserType returns a middleware that enforces that the authenticated
// user has one of the specified account types. The values correspond to the
// "user_type" claim extracted by JWTAuth. If the type is missing or not in
// the allowed set, the request is aborted with 403 Forbidden.
func RequireUserType(types ...string) echo.MiddlewareFunc {
    allowed := make(map[string]bool, len(types))
    for _, t := range types {
        allowed[t] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            v := c.Get("user_type")
            userType, ok := v.(string)
            if !ok || !allowed[userType] {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}
