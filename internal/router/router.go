// Package router wires handlers and middleware onto an echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/leaf-supply-chain/internal/handler"
	"github.com/iliyamo/leaf-supply-chain/internal/middleware"
	"github.com/iliyamo/leaf-supply-chain/internal/model"
)

// Handlers bundles every HTTP handler the service exposes.
type Handlers struct {
	Health     *handler.HealthHandler
	Users      *handler.UserHandler
	Reference  *handler.ReferenceHandler
	Stages     *handler.StageHandler
	Shipments  *handler.ShipmentHandler
	Statistics *handler.StatisticsHandler
	Market     *handler.MarketHandler
	Sessions   *handler.SessionHandler
	OTP        *handler.OTPHandler
	Invoices   *handler.InvoiceHandler
}

// Options carries the cross-cutting middleware built by main.
type Options struct {
	CORSOrigins  []string
	Sessions     middleware.SessionResolver
	Cache        echo.MiddlewareFunc // statistics responses
	RateLimit    echo.MiddlewareFunc // OTP endpoints
	EnforceAdmin bool                // require an Admin session on admin writes
	Log          *zap.Logger
}

// New returns an echo instance with every route registered.
func New(h Handlers, opt Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(opt.Log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     opt.CORSOrigins,
		AllowCredentials: true,
	}))

	session := middleware.Session(opt.Sessions, opt.Log)
	var admin []echo.MiddlewareFunc
	if opt.EnforceAdmin {
		admin = []echo.MiddlewareFunc{session, middleware.RequireRole(model.RoleAdmin)}
	}
	cache := passThrough(opt.Cache)
	limit := passThrough(opt.RateLimit)

	e.GET("/healthz", h.Health.Live)
	e.GET("/readyz", h.Health.Ready)

	e.POST("/create_session/:user_id", h.Sessions.Create)
	e.GET("/whoami", h.Sessions.WhoAmI, session)
	e.DELETE("/delete_session", h.Sessions.Delete, session)

	e.POST("/generate_otp", h.OTP.Generate, limit)
	e.POST("/verify_otp", h.OTP.Verify, limit)

	e.POST("/create_invoice", h.Invoices.Create)

	registerUsers(e, h.Users, admin)
	registerReference(e, h.Reference)
	registerStages(e, h.Stages)
	registerShipments(e, h.Shipments)
	registerStatistics(e, h.Statistics, cache)
	registerMarket(e, h.Market, admin)
	return e
}

func passThrough(mw echo.MiddlewareFunc) echo.MiddlewareFunc {
	if mw == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return mw
}
