package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/healthconnect/navigator-api/internal/adapters/cache"
	"github.com/healthconnect/navigator-api/internal/adapters/providers/geolocation"
	"github.com/healthconnect/navigator-api/internal/adapters/providers/overpass"
	"github.com/healthconnect/navigator-api/internal/adapters/storage"
	"github.com/healthconnect/navigator-api/internal/api/handlers"
	"github.com/healthconnect/navigator-api/internal/api/middleware"
	"github.com/healthconnect/navigator-api/internal/api/routes"
	"github.com/healthconnect/navigator-api/internal/application/services"
	"github.com/healthconnect/navigator-api/internal/domain/providers"
	"github.com/healthconnect/navigator-api/internal/infrastructure/clients/openai"
	"github.com/healthconnect/navigator-api/internal/infrastructure/clients/redis"
	"github.com/healthconnect/navigator-api/internal/infrastructure/notifications"
	"github.com/healthconnect/navigator-api/internal/infrastructure/observability"
	"github.com/healthconnect/navigator-api/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Environment)
	logger := observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize Redis client; the application degrades gracefully without it
	// (no response cache, no contacts/triage persistence)
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize Redis client, continuing without it")
		redisClient = nil
	} else {
		defer redisClient.Close()
		logger.Info().Msg("Redis client initialized")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// POI source
	poiSource := overpass.NewClient(cfg.Overpass.URL, time.Duration(cfg.Overpass.TimeoutSeconds)*time.Second)

	// Geocoding
	var geolocationProvider providers.GeolocationProvider
	switch cfg.Geocoding.Provider {
	case "nominatim":
		geolocationProvider = geolocation.NewNominatimProvider(cfg.Geocoding.URL, cacheProvider)
	default:
		logger.Warn().Str("provider", cfg.Geocoding.Provider).Msg("unknown geocoding provider, using mock")
		geolocationProvider = geolocation.NewMockGeolocationProvider()
	}

	// Triage model
	var triageProvider providers.TriageProvider
	if cfg.OpenAI.APIKey == "" {
		logger.Warn().Msg("OPENAI_API_KEY is not set; symptom triage disabled")
	} else {
		openaiClient, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialize OpenAI client; symptom triage disabled")
		} else {
			triageProvider = openaiClient
		}
	}

	// Email fallback for alerts
	var emailSender services.EmailSender
	if cfg.Notifications.SMTPHost == "" {
		logger.Warn().Msg("SMTP_HOST is not set; alert email fallback disabled")
	} else {
		sender, err := notifications.NewEmailSender(&cfg.Notifications)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialize email sender; alert email fallback disabled")
		} else {
			emailSender = sender
		}
	}

	// Initialize services
	facilityService := services.NewFacilitySearchService(
		poiSource,
		services.NewSyntheticRatingProvider(time.Now().UnixNano()),
		metrics,
		cfg.Overpass.MaxResults,
	)

	var triageService *services.TriageService
	var contactHandler *handlers.ContactHandler
	var alertHandler *handlers.AlertHandler
	var triageHandler *handlers.TriageHandler
	if redisClient != nil {
		contactRepo := storage.NewContactAdapter(redisClient)
		contactHandler = handlers.NewContactHandler(contactRepo)
		alertHandler = handlers.NewAlertHandler(services.NewAlertService(contactRepo, emailSender, metrics))

		if triageProvider != nil {
			triageService = services.NewTriageService(storage.NewSessionAdapter(redisClient), triageProvider)
			triageHandler = handlers.NewTriageHandler(triageService)
		}
	} else {
		logger.Warn().Msg("contacts, alerts, and triage require Redis; endpoints disabled")
	}

	// Initialize handlers
	facilityHandler := handlers.NewFacilityHandler(facilityService)
	geolocationHandler := handlers.NewGeolocationHandler(geolocationProvider)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
	}

	// Set up router
	router := routes.NewRouter(
		facilityHandler,
		geolocationHandler,
		triageHandler,
		contactHandler,
		alertHandler,
		cacheMiddleware,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	logger.Info().Msg("server stopped")
}
