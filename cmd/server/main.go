// Package main is the entry point for the API server.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catatuang/internal/config"
	"catatuang/internal/events"
	"catatuang/internal/handlers"
	"catatuang/internal/logger"
	"catatuang/internal/repositories"
	"catatuang/internal/repositories/cache"
	"catatuang/internal/routes"
	"catatuang/internal/services/auth"
	"catatuang/internal/services/category"
	"catatuang/internal/services/transaction"
	"catatuang/internal/services/user"
	"catatuang/internal/services/wallet"
	"catatuang/internal/services/wallettype"
	"catatuang/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	log := logger.New(logger.Config{
		Level:     logger.ParseLevel(cfg.LogLevel),
		Component: logger.ComponentApp,
		JSON:      cfg.IsProduction(),
	})
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("configuration rejected", logger.FieldError, err)
		os.Exit(1)
	}

	if err := repositories.RunMigrations(cfg.Database.URL()); err != nil {
		log.Error("failed to run migrations", logger.FieldOperation, logger.OpMigrate, logger.FieldError, err)
		os.Exit(1)
	}

	db, err := repositories.InitDB(cfg.Database)
	if err != nil {
		log.Error("failed to connect to database", logger.FieldError, err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("failed to get database instance", logger.FieldError, err)
		os.Exit(1)
	}
	defer sqlDB.Close()
	log.Info("connected to database with connection pooling")

	healthChecks := map[string]handlers.HealthCheck{
		"database": sqlDB.PingContext,
		"redis":    nil,
		"amqp":     nil,
	}

	// Redis is optional: without it every cache read misses.
	var appCache cache.Cache = cache.Noop{}
	cacheService := cache.NewRedisCacheService(cfg.Redis)
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := cacheService.HealthCheck(pingCtx); err != nil {
		log.Warn("redis unavailable, caching disabled", logger.FieldError, err)
		cacheService.Close()
	} else {
		appCache = cacheService
		healthChecks["redis"] = cacheService.HealthCheck
		defer cacheService.Close()
		log.Info("connected to redis")
	}
	cancel()

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.AMQP.Enabled() {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, log)
		if err != nil {
			log.Warn("amqp unavailable, ledger events disabled", logger.FieldError, err)
		} else {
			publisher = amqpPublisher
			healthChecks["amqp"] = amqpPublisher.HealthCheck
			log.Info("publishing ledger events", "exchange", cfg.AMQP.Exchange)
		}
	}
	defer publisher.Close()

	ledger := repositories.NewLedger(db)
	userRepo := repositories.NewUserRepository(db, appCache, log)
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, tokens, log)
	deps := routes.Dependencies{
		Auth:          authService,
		Users:         user.NewService(userRepo, log),
		Categories:    category.NewService(ledger, log),
		WalletTypes:   wallettype.NewService(ledger.WalletTypes(), log),
		Wallets:       wallet.NewService(ledger, appCache, log),
		Transactions:  transaction.NewService(ledger, appCache, publisher, log),
		HealthChecks:  healthChecks,
		Logger:        log,
		AuthRateLimit: cfg.AuthRateLimit,
	}

	app := fiber.New(fiber.Config{
		AppName:      "catatuang-api",
		ErrorHandler: errorHandler(log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, deps)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server stopped", logger.FieldError, err)
		}
	}()
	log.Info("server started", "port", cfg.Port, "env", cfg.Env)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("graceful shutdown failed", logger.FieldError, err)
	}
}

// errorHandler renders errors that escape the handlers, such as unknown
// routes and recovered panics, in the response envelope.
func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	httpLog := log.WithComponent(logger.ComponentHTTP)
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.Fail(c, fe.Code, fe.Message)
		}
		httpLog.ErrorContext(c.UserContext(), "unhandled error",
			logger.FieldRequestID, c.Locals(requestid.ConfigDefault.ContextKey),
			logger.FieldError, err)
		return utils.InternalError(c, "Internal server error")
	}
}
