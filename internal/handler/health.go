package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HealthHandler reports whether the service and its stores are reachable.
type HealthHandler struct {
	DB    *sqlx.DB
	Redis *redis.Client
}

// Live always answers ok while the process serves requests.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Ready pings MySQL and Redis and answers 503 when either is down.
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := echo.Map{"mysql": "ok", "redis": "ok"}
	code := http.StatusOK
	if h.DB == nil || h.DB.PingContext(ctx) != nil {
		status["mysql"], code = "down", http.StatusServiceUnavailable
	}
	if h.Redis == nil || h.Redis.Ping(ctx).Err() != nil {
		status["redis"], code = "down", http.StatusServiceUnavailable
	}
	return c.JSON(code, status)
}
