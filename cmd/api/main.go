package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/config"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/handler"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/middleware"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/repository/postgres"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/repository/storage"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/service"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/websocket"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Run schema migrations before opening the pool
	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	log.Info().Msg("Migrations up to date")

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	expenseRepo := postgres.NewExpenseRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)

	// Notification hub
	hub := websocket.NewHub()

	// Initialize services
	budgetService := service.NewBudgetService(budgetRepo, expenseRepo)
	activityService := service.NewActivityService(activityRepo)
	expenseService := service.NewExpenseService(expenseRepo, budgetRepo, budgetService, activityService, hub)
	categoryService := service.NewCategoryService(categoryRepo)
	dashboardService := service.NewDashboardService(expenseRepo)

	// Receipt storage is optional; the endpoints answer 503 when unset
	var receiptRepo storage.ReceiptRepository
	if cfg.S3.Enabled() {
		s3Repo, err := storage.NewS3ReceiptRepository(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize receipt storage")
		}
		receiptRepo = s3Repo
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Receipt storage enabled")
	} else {
		log.Info().Msg("Receipt storage not configured; uploads disabled")
	}
	receiptService := service.NewReceiptService(receiptRepo, expenseRepo)

	// Initialize handlers
	expenseHandler := handler.NewExpenseHandler(expenseService, receiptService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	activityHandler := handler.NewActivityHandler(activityService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	wsHandler := handler.NewWebSocketHandler(hub, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

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

	// Per-IP rate limiting
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()
	e.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Prometheus metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Register API routes
	handler.RegisterRoutes(e, expenseHandler, budgetHandler, categoryHandler, activityHandler, dashboardHandler, wsHandler)

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
