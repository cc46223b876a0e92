package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/leaf-supply-chain/internal/model"
	"github.com/iliyamo/leaf-supply-chain/internal/service"
)

// SessionCookie is the name of the cookie that carries the session token.
const SessionCookie = "session"

type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*model.SessionData, string, error)
}

// Session requires a valid session cookie and stores the session in the
// context. Requests without one get 401.
func Session(r SessionResolver, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session"})
			}
			data, sid, err := r.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, service.ErrInvalidSession) {
					log.Error("session lookup failed", zap.Error(err))
					return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session"})
			}
			c.Set(ctxSession, data)
			c.Set(ctxSessionID, sid)
			return next(c)
		}
	}
}
