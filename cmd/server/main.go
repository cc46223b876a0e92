package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/leaf-supply-chain/internal/config"
	"github.com/iliyamo/leaf-supply-chain/internal/database"
	"github.com/iliyamo/leaf-supply-chain/internal/handler"
	"github.com/iliyamo/leaf-supply-chain/internal/logger"
	"github.com/iliyamo/leaf-supply-chain/internal/mail"
	"github.com/iliyamo/leaf-supply-chain/internal/middleware"
	"github.com/iliyamo/leaf-supply-chain/internal/queue"
	"github.com/iliyamo/leaf-supply-chain/internal/repository"
	"github.com/iliyamo/leaf-supply-chain/internal/router"
	"github.com/iliyamo/leaf-supply-chain/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional
	cfg := config.Load()

	zlog, err := logger.New(logger.ConfigFromEnv())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return err
	}
	defer db.Close()

	schemaCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = database.EnsureSchema(schemaCtx, db)
	cancel()
	if err != nil {
		return err
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		return errors.New("redis is required for sessions and OTP")
	}
	defer rdb.Close()

	node, err := snowflake.NewNode(cfg.SnowflakeNode)
	if err != nil {
		return err
	}
	publisher := queue.NewPublisher(cfg.RabbitURL, zlog)

	// repositories
	users := repository.NewUserRepo(db)
	roles := repository.NewRoleRepo(db)
	couriers := repository.NewCourierRepo(db)
	locations := repository.NewLocationRepo(db)
	cities := repository.NewCityRepo(db)
	wet := repository.NewWetLeavesRepo(db)
	dry := repository.NewDryLeavesRepo(db)
	flour := repository.NewFlourRepo(db)
	shipments := repository.NewShipmentRepo(db)
	stats := repository.NewStatisticsRepo(db)
	market := repository.NewMarketRepos(db)

	// services
	userSvc := &service.Users{Store: users, Roles: roles, BcryptCost: cfg.BcryptCost}
	inventory := &service.Inventory{Users: users, Wet: wet, Dry: dry, Flour: flour}
	shipmentSvc := &service.Shipments{
		Store: shipments, Flour: flour, Couriers: couriers, Users: users,
		Events: publisher, Log: zlog,
	}
	statsSvc := &service.Statistics{Sums: stats}
	marketSvc := &service.Market{
		Users:           users,
		Shipments:       market.Shipments,
		SubTransactions: market.SubTransactions,
		Transactions:    market.Transactions,
	}
	sessions := &service.Sessions{Redis: rdb, Secret: cfg.SessionSecret, TTL: cfg.SessionTTL}
	otp := &service.OTP{Redis: rdb, TTL: cfg.OTPTTL, BcryptCost: cfg.BcryptCost, Events: publisher}
	invoices := &service.Invoices{
		BaseURL: cfg.XenditBaseURL, APIKey: cfg.XenditAPIKey,
		HTTP: &http.Client{Timeout: 10 * time.Second}, IDs: node,
	}

	e := router.New(router.Handlers{
		Health:     &handler.HealthHandler{DB: db, Redis: rdb},
		Users:      handler.NewUserHandler(userSvc, users, roles),
		Reference:  handler.NewReferenceHandler(couriers, locations, cities),
		Stages:     handler.NewStageHandler(inventory, wet, dry, flour, statsSvc),
		Shipments:  handler.NewShipmentHandler(shipmentSvc, shipments),
		Statistics: handler.NewStatisticsHandler(statsSvc),
		Market:     handler.NewMarketHandler(market, marketSvc),
		Sessions:   handler.NewSessionHandler(sessions, users, cfg.SessionCookieSecure),
		OTP:        handler.NewOTPHandler(otp),
		Invoices:   handler.NewInvoiceHandler(invoices, zlog),
	}, router.Options{
		CORSOrigins:  cfg.CORSOrigins,
		Sessions:     sessions,
		Cache:        middleware.ResponseCache(config.LoadCacheConfig(), rdb, zlog),
		RateLimit:    middleware.RateLimit(config.LoadRateLimitConfig(), rdb, zlog),
		EnforceAdmin: cfg.EnforceAdminSession,
		Log:          zlog,
	})

	mailer := mail.NewSender(cfg.SMTP, zlog)
	consumers := []*queue.Consumer{
		{URL: cfg.RabbitURL, Queue: queue.OTPRequestedQueue, Prefetch: 10, Handler: queue.OTPMailHandler(mailer), Log: zlog},
		{URL: cfg.RabbitURL, Queue: queue.ShipmentEvents, Prefetch: 50, Handler: queue.ShipmentLogHandler(zlog), Log: zlog},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range consumers {
		c := c // per-iteration copy; go.mod targets 1.21 loop semantics
		g.Go(func() error { return c.Run(gctx) })
	}
	g.Go(func() error {
		addr := ":" + cfg.Port
		zlog.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
