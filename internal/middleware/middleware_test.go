package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/leaf-supply-chain/internal/config"
	"github.com/iliyamo/leaf-supply-chain/internal/model"
	"github.com/iliyamo/leaf-supply-chain/internal/service"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func do(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestResponseCacheHitAfterMiss(t *testing.T) {
	rdb := newRedis(t)
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{http.MethodGet: true}, TTL: time.Minute, KeyStrategy: "route_query", Prefix: "t"}

	calls := 0
	e := echo.New()
	e.GET("/statistics/all", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"sum_flour": "12"})
	}, ResponseCache(cfg, rdb, zap.NewNop()))

	first := do(e, httptest.NewRequest(http.MethodGet, "/statistics/all", nil))
	if first.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("first X-Cache = %q", first.Header().Get("X-Cache"))
	}
	second := do(e, httptest.NewRequest(http.MethodGet, "/statistics/all", nil))
	if second.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("second X-Cache = %q", second.Header().Get("X-Cache"))
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times", calls)
	}
	if second.Code != http.StatusOK || second.Body.String() != first.Body.String() {
		t.Fatalf("cached response differs: %d %q", second.Code, second.Body.String())
	}
}

func TestResponseCacheKeepsPerRequestHeaders(t *testing.T) {
	rdb := newRedis(t)
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{http.MethodGet: true}, TTL: time.Minute, KeyStrategy: "route_query", Prefix: "t"}

	e := echo.New()
	e.Use(RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: []string{"https://a.example", "https://b.example"}}))
	e.GET("/statistics/all", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"sum_flour": "12"})
	}, ResponseCache(cfg, rdb, zap.NewNop()))

	get := func(origin, id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/statistics/all", nil)
		req.Header.Set(echo.HeaderOrigin, origin)
		req.Header.Set(echo.HeaderXRequestID, id)
		return do(e, req)
	}
	if first := get("https://a.example", "req-A"); first.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("first X-Cache = %q", first.Header().Get("X-Cache"))
	}
	second := get("https://b.example", "req-B")
	if second.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("second X-Cache = %q", second.Header().Get("X-Cache"))
	}
	if got := second.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "https://b.example" {
		t.Fatalf("allow origin = %q", got)
	}
	if got := second.Header().Get(echo.HeaderXRequestID); got != "req-B" {
		t.Fatalf("request id = %q", got)
	}
	if ct := second.Header().Get(echo.HeaderContentType); ct != echo.MIMEApplicationJSON {
		t.Fatalf("content type = %q", ct)
	}
}

func TestResponseCacheSkipsErrors(t *testing.T) {
	rdb := newRedis(t)
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{http.MethodGet: true}, TTL: time.Minute, Prefix: "t"}

	calls := 0
	e := echo.New()
	e.GET("/x", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "boom"})
	}, ResponseCache(cfg, rdb, zap.NewNop()))

	do(e, httptest.NewRequest(http.MethodGet, "/x", nil))
	do(e, httptest.NewRequest(http.MethodGet, "/x", nil))
	if calls != 2 {
		t.Fatalf("handler ran %d times, want 2", calls)
	}
}

func TestRateLimitBlocksAfterCapacity(t *testing.T) {
	rdb := newRedis(t)
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 2, RefillTokens: 1, RefillInterval: time.Hour, TTL: time.Hour, Prefix: "rl"}

	e := echo.New()
	e.POST("/generate_otp", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		RateLimit(cfg, rdb, zap.NewNop()))

	for i := 0; i < 2; i++ {
		rec := do(e, httptest.NewRequest(http.MethodPost, "/generate_otp", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, rec.Code)
		}
	}
	rec := do(e, httptest.NewRequest(http.MethodPost, "/generate_otp", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After")
	}
}

type stubResolver struct {
	data *model.SessionData
	err  error
}

func (s stubResolver) Resolve(context.Context, string) (*model.SessionData, string, error) {
	return s.data, "sid-1", s.err
}

func TestSessionRejectsMissingCookie(t *testing.T) {
	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		Session(stubResolver{}, zap.NewNop()))

	rec := do(e, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSessionRejectsInvalidSession(t *testing.T) {
	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		Session(stubResolver{err: service.ErrInvalidSession}, zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "junk"})
	if rec := do(e, req); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSessionAndRoleGate(t *testing.T) {
	admin := stubResolver{data: &model.SessionData{UserID: "u1", UserRole: model.RoleAdmin}}
	centra := stubResolver{data: &model.SessionData{UserID: "u2", UserRole: model.RoleCentra}}

	for name, tc := range map[string]struct {
		resolver stubResolver
		want     int
	}{
		"allowed":   {admin, http.StatusOK},
		"forbidden": {centra, http.StatusForbidden},
	} {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			e.POST("/role/post", func(c echo.Context) error {
				if SessionID(c) != "sid-1" {
					t.Errorf("session id = %q", SessionID(c))
				}
				return c.NoContent(http.StatusOK)
			}, Session(tc.resolver, zap.NewNop()), RequireRole(model.RoleAdmin))

			req := httptest.NewRequest(http.MethodPost, "/role/post", nil)
			req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "tok"})
			if rec := do(e, req); rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestRequestIDAssignedAndKept(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/health", func(c echo.Context) error { return c.String(http.StatusOK, RequestIDFrom(c)) })

	rec := do(e, httptest.NewRequest(http.MethodGet, "/health", nil))
	if id := rec.Header().Get(echo.HeaderXRequestID); id == "" || id != rec.Body.String() {
		t.Fatalf("generated id %q, body %q", id, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc")
	if rec := do(e, req); rec.Header().Get(echo.HeaderXRequestID) != "abc" {
		t.Fatalf("incoming id not kept: %q", rec.Header().Get(echo.HeaderXRequestID))
	}
}
