package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/leaf-supply-chain/internal/middleware"
	"github.com/iliyamo/leaf-supply-chain/internal/repository"
	"github.com/iliyamo/leaf-supply-chain/internal/service"
)

// SessionHandler opens and closes cookie sessions.
type SessionHandler struct {
	Sessions     *service.Sessions
	Users        *repository.UserRepo
	SecureCookie bool
}

func NewSessionHandler(sessions *service.Sessions, users *repository.UserRepo, secure bool) *SessionHandler {
	if sessions == nil || users == nil {
		panic("nil dependency passed to NewSessionHandler")
	}
	return &SessionHandler{Sessions: sessions, Users: users, SecureCookie: secure}
}

func (h *SessionHandler) cookie(value string, expires time.Time) *http.Cookie {
	ck := &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		ck.MaxAge = -1
	}
	return ck
}

// Create handles POST /create_session/:user_id.
func (h *SessionHandler) Create(c echo.Context) error {
	userID := c.Param("user_id")
	ctx, cancel := withTimeout(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return fail(err)
	}
	token, exp, err := h.Sessions.Create(ctx, u)
	if err != nil {
		return fail(err)
	}
	c.SetCookie(h.cookie(token, exp))
	return c.JSON(http.StatusOK, fmt.Sprintf("created session for %s", userID))
}

// WhoAmI handles GET /whoami behind the session middleware.
func (h *SessionHandler) WhoAmI(c echo.Context) error {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
	}
	return c.JSON(http.StatusOK, s)
}

// Delete handles DELETE /delete_session. Only the caller's session ends.
func (h *SessionHandler) Delete(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	if err := h.Sessions.Delete(ctx, middleware.SessionID(c)); err != nil {
		return fail(err)
	}
	c.SetCookie(h.cookie("", time.Unix(0, 0)))
	return c.JSON(http.StatusOK, "deleted session")
}
