package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/postad/postad-api/config"
	"github.com/postad/postad-api/internal/cache"
	"github.com/postad/postad-api/internal/catalog"
	"github.com/postad/postad-api/internal/handlers"
	"github.com/postad/postad-api/internal/middleware"
	"github.com/postad/postad-api/internal/services"
	"github.com/postad/postad-api/pkg/logger"
	"github.com/postad/postad-api/pkg/metrics"
	"github.com/postad/postad-api/pkg/profiling"
	"github.com/postad/postad-api/pkg/publisher"
	"github.com/postad/postad-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// registerDraftRoutes registers the JSON drafts and catalog API
func registerDraftRoutes(
	group *gin.RouterGroup,
	cfg *config.Config,
	generalRateLimiter, uploadRateLimiter *middleware.RateLimiter,
	draftHandler *handlers.DraftHandler,
	catalogHandler *handlers.CatalogHandler,
) {
	drafts := group.Group("/drafts", generalRateLimiter.Middleware())
	drafts.POST("", draftHandler.CreateDraft)
	drafts.GET("/:id", draftHandler.GetDraft)
	drafts.PUT("/:id/fields/:field", middleware.BodySizeLimitMiddleware(64*1024), draftHandler.SetField)
	drafts.PUT("/:id/location-tab", middleware.BodySizeLimitMiddleware(1024), draftHandler.SelectLocationTab)
	drafts.POST("/:id/submit", draftHandler.Submit)

	// Single file per request: one image plus multipart framing
	uploadLimit := cfg.Form.MaxImageBytes + 64*1024
	drafts.POST("/:id/images/:index", uploadRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(uploadLimit), draftHandler.UploadImage)
	drafts.POST("/:id/profile-image", uploadRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(uploadLimit), draftHandler.UploadProfileImage)

	cat := group.Group("/catalog", generalRateLimiter.Middleware())
	cat.GET("/brands", catalogHandler.GetBrands)
	cat.GET("/models", catalogHandler.GetModels)
	cat.GET("/variants", catalogHandler.GetVariants)
	cat.GET("/regions", catalogHandler.GetRegions)
	cat.GET("/cities", catalogHandler.GetCities)
	cat.GET("/options/:group", catalogHandler.GetOptions)
}

// registerPageRoutes registers the server-rendered form
func registerPageRoutes(
	router *gin.Engine,
	cfg *config.Config,
	generalRateLimiter *middleware.RateLimiter,
	pageHandler *handlers.PageHandler,
) {
	router.GET("/", pageHandler.Index)
	router.GET("/post", generalRateLimiter.Middleware(), pageHandler.Show)
	router.POST("/post", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(cfg.Form.MaxBodyBytes()), pageHandler.Post)
}

// newCatalogSource picks the configured catalog file, or the built-in catalog
func newCatalogSource(cfg *config.Config) cache.CatalogSource {
	if cfg.Catalog.File != "" {
		return catalog.FileSource{Path: cfg.Catalog.File}
	}
	return catalog.StaticSource{}
}

// newPublisher connects to NATS when configured and falls back to logging listings
func newPublisher(cfg *config.Config) (publisher.Publisher, error) {
	if cfg.NATS.URL == "" {
		logger.Warn("NATS_URL not set, submitted listings are only logged")
		return publisher.NewLogPublisher(cfg.NATS.Subject), nil
	}

	conn, err := publisher.Connect(cfg.NATS.URL, cfg.NATS.ClientName)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return publisher.NewNATSPublisher(conn, cfg.NATS.Subject), nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting postad API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(tracing.Config{
		ServiceName:       cfg.Observability.ServiceName,
		ServiceNamespace:  cfg.Observability.ServiceNamespace,
		ServiceVersion:    cfg.Observability.ServiceVersion,
		ServiceInstanceID: cfg.Observability.ServiceInstanceID,
		Environment:       cfg.Server.AppEnv,
		Endpoint:          cfg.Observability.AlloyEndpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Continuous profiling (no-op unless enabled)
	stopProfiler, err := profiling.InitProfiler(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Load the catalog before accepting requests
	catalogCache := cache.NewCatalogCache(newCatalogSource(cfg))
	if err := catalogCache.Initialize(ctx); err != nil {
		logger.Fatal("Failed to initialize catalog cache", zap.Error(err))
	}

	listingPublisher, err := newPublisher(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize listing publisher", zap.Error(err))
	}
	defer listingPublisher.Close()

	// Form sessions
	formCache := cache.NewFormCache(cfg.Form.SessionTTL(), services.NewFormFactory(services.FormOptions{
		MaxImageBytes:        cfg.Form.MaxImageBytes,
		NotificationInterval: cfg.Form.NotificationInterval(),
	}))

	// Initialize services
	adFormService := services.NewAdFormService(formCache, catalogCache, listingPublisher, nil)
	catalogService := services.NewCatalogService(catalogCache)

	// Initialize handlers
	handlers.UseJSONFieldNames()
	draftHandler := handlers.NewDraftHandler(adFormService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	healthHandler := handlers.NewHealthHandler(catalogCache.IsReady)
	pageHandler := handlers.NewPageHandler(adFormService, catalogService, handlers.PageConfig{
		SessionTTL:           cfg.Form.SessionTTL(),
		NotificationInterval: cfg.Form.NotificationInterval(),
		UploadTimeout:        cfg.Form.UploadTimeout(),
		SecureCookie:         cfg.Form.CookieSecure,
	})

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.MaxMultipartMemory = 32 << 20

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := cfg.Server.AllowedOrigins
	// Allow localhost in development
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true, // Required for the form session cookie
		MaxAge:           12 * time.Hour,
	}))

	generalRateLimiter := middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst, time.Minute)
	uploadRateLimiter := middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimit.RequestsPerSecond*2), cfg.RateLimit.Burst, time.Minute)

	// Utility endpoints (not versioned - operational endpoints)
	api := router.Group("/api")
	api.GET("/healthcheck", healthHandler.Healthcheck)
	api.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registerDraftRoutes(router.Group("/api/v1"), cfg, generalRateLimiter, uploadRateLimiter, draftHandler, catalogHandler)
	registerPageRoutes(router, cfg, generalRateLimiter, pageHandler)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited", zap.Int("open_sessions", formCache.Count()))
}
