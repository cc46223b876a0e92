package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole lets a request through only when its session role is one of
// roleIDs. It must run after Session.
func RequireRole(roleIDs ...int) echo.MiddlewareFunc {
	allowed := make(map[int]bool, len(roleIDs))
	for _, r := range roleIDs {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, ok := SessionFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session"})
			}
			if !allowed[s.UserRole] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
