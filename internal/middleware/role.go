package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RequireRole enforces that the authenticated caller holds one of
// the given roles. Roles compare case-insensitively; the JWT role
// claim is free text in the store. It assumes JWTAuth ran earlier in
// the chain. This is the authorization gate for admin routes; any
// role value a client may have cached locally is irrelevant.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[strings.ToLower(r)] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allowed[strings.ToLower(Role(c))] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
