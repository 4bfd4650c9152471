// @title FinTwin API
// @version 1.0
// @description Personal finance assistant: health score, ledger aggregation, chat guidance and purchase affordability.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Auth0 access token, required when auth is enabled. Format: Bearer {token}
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/fintwin/fintwin-backend/internal/config"
	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
	"github.com/dafibh/fintwin/fintwin-backend/internal/handler"
	"github.com/dafibh/fintwin/fintwin-backend/internal/middleware"
	"github.com/dafibh/fintwin/fintwin-backend/internal/repository/memory"
	"github.com/dafibh/fintwin/fintwin-backend/internal/repository/postgres"
	"github.com/dafibh/fintwin/fintwin-backend/internal/repository/storage"
	"github.com/dafibh/fintwin/fintwin-backend/internal/service"
	"github.com/dafibh/fintwin/fintwin-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
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

	ctx := context.Background()

	// Initialize repositories
	var (
		profileRepo domain.ProfileRepository
		ledger      domain.TransactionLedger
		pool        *pgxpool.Pool
	)
	if cfg.UsesDatabase() {
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to ping database")
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply database schema")
		}
		log.Info().Msg("Connected to database")

		profileRepo = postgres.NewProfileRepository(pool)
		ledger = postgres.NewTransactionLedger(pool)
	} else {
		log.Warn().Msg("DATABASE_URL not set, using in-memory stores")
		profileRepo = memory.NewProfileRepository()
		ledger = memory.NewTransactionLedger()
	}

	var reportRepo domain.ReportRepository
	if cfg.ReportArchiveEnabled() {
		s3Repo, err := storage.NewS3ReportRepository(ctx, cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize report storage")
		}
		reportRepo = s3Repo
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Report archive enabled")
	}

	// Initialize WebSocket hub
	hub := websocket.NewHub()

	// Initialize services
	profileService := service.NewProfileService(profileRepo)
	healthService := service.NewHealthService(profileRepo)
	transactionService := service.NewTransactionService(ledger)
	summaryService := service.NewSummaryService(ledger, profileRepo)
	chatService := service.NewChatService()
	recommendationService := service.NewRecommendationService()
	reportService := service.NewReportService(profileRepo, reportRepo, cfg.S3.URLTTL)

	profileService.SetEventPublisher(hub)
	healthService.SetEventPublisher(hub)
	transactionService.SetEventPublisher(hub)

	// /api middleware, applied in order
	var apiMiddleware []echo.MiddlewareFunc
	var wsValidator handler.JWTValidator
	if cfg.AuthEnabled() {
		authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create auth middleware")
		}
		jwtValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create WebSocket JWT validator")
		}
		apiMiddleware = append(apiMiddleware, authMiddleware.Authenticate())
		wsValidator = jwtValidator
	} else {
		log.Warn().Msg("AUTH0_DOMAIN not set, API is unauthenticated")
	}

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	apiMiddleware = append(apiMiddleware, middleware.RateLimitMiddleware(rateLimiter))

	// Initialize handlers
	handlers := handler.Handlers{
		Profile:        handler.NewProfileHandler(profileService, healthService),
		Health:         handler.NewHealthHandler(healthService),
		Transaction:    handler.NewTransactionHandler(transactionService),
		Summary:        handler.NewSummaryHandler(summaryService),
		Chat:           handler.NewChatHandler(chatService),
		Recommendation: handler.NewRecommendationHandler(recommendationService),
		Report:         handler.NewReportHandler(reportService),
		WebSocket:      handler.NewWebSocketHandler(hub, wsValidator, cfg.CORSOrigins),
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
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

	handler.RegisterRoutes(e, handlers, apiMiddleware...)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hub.CloseAll()
	rateLimiter.Stop()

	if err := e.Shutdown(shutdownCtx); err != nil {
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

			event := log.Info()
			if res.Status >= http.StatusInternalServerError {
				event = log.Error()
			}
			event.
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
