package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"github.com/rooty/finance/finance-backend/internal/config"
	"github.com/rooty/finance/finance-backend/internal/handler"
	"github.com/rooty/finance/finance-backend/internal/middleware"
	"github.com/rooty/finance/finance-backend/internal/repository/postgres"
	"github.com/rooty/finance/finance-backend/internal/service"
	"github.com/rooty/finance/finance-backend/internal/util"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Amounts go over the wire as bare JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Run schema migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Connect to database
	pool, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()
	log.Info().Msg("Connected to database")

	// Initialize repositories
	accountRepo := postgres.NewAccountRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	ruleRepo := postgres.NewRecurringRuleRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	settingsRepo := postgres.NewAppSettingsRepository(pool)

	// Initialize services
	accountService := service.NewAccountService(accountRepo)
	categoryService := service.NewCategoryService(categoryRepo, transactionRepo, budgetRepo, ruleRepo)
	transactionService := service.NewTransactionService(transactionRepo, accountRepo, categoryRepo)
	recurringService := service.NewRecurringService(ruleRepo, transactionRepo, accountRepo, categoryRepo)
	autoPostService := service.NewAutoPostService(ruleRepo, recurringService)
	budgetService := service.NewBudgetService(budgetRepo, categoryRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	analyticsService := service.NewAnalyticsService(transactionRepo, accountRepo, categoryRepo, budgetRepo, ruleRepo)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	recurringHandler := handler.NewRecurringHandler(recurringService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, settingsService)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Rate limiting middleware
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()
	e.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, accountHandler, categoryHandler, transactionHandler, recurringHandler, budgetHandler, analyticsHandler, settingsHandler)

	// Auto-post sweep on a cron schedule
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.AutoPostCron, func() {
		created, err := autoPostService.Sweep(util.Today())
		if err != nil {
			log.Error().Err(err).Msg("Auto-post sweep failed")
			return
		}
		if created > 0 {
			log.Info().Int("created", created).Msg("Auto-post sweep posted occurrences")
		}
	}); err != nil {
		log.Fatal().Err(err).Str("spec", cfg.AutoPostCron).Msg("Invalid auto-post cron spec")
	}
	scheduler.Start()

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
