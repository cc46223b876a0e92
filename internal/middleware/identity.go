package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/leaf-supply-chain/internal/model"
)

// Context keys set by the session and request id middleware.
const (
	ctxSession   = "session"
	ctxSessionID = "session_id"
	ctxRequestID = "request_id"
)

// SessionFrom returns the session resolved by Session, if any.
func SessionFrom(c echo.Context) (*model.SessionData, bool) {
	s, ok := c.Get(ctxSession).(*model.SessionData)
	return s, ok && s != nil
}

// SessionID returns the id of the resolved session or "".
func SessionID(c echo.Context) string {
	id, _ := c.Get(ctxSessionID).(string)
	return id
}

// RequestIDFrom returns the id assigned by RequestID.
func RequestIDFrom(c echo.Context) string {
	id, _ := c.Get(ctxRequestID).(string)
	return id
}

func currentUserID(c echo.Context) string {
	if s, ok := SessionFrom(c); ok && s.UserID != "" {
		return s.UserID
	}
	return "anon"
}
