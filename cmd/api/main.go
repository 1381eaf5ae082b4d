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

	"github.com/mentorstack/mentorstack-api/config"
	"github.com/mentorstack/mentorstack-api/internal/cache"
	"github.com/mentorstack/mentorstack-api/internal/changefeed"
	"github.com/mentorstack/mentorstack-api/internal/database/postgres"
	"github.com/mentorstack/mentorstack-api/internal/handlers"
	"github.com/mentorstack/mentorstack-api/internal/middleware"
	"github.com/mentorstack/mentorstack-api/internal/repository"
	"github.com/mentorstack/mentorstack-api/internal/services"
	"github.com/mentorstack/mentorstack-api/internal/websocket"
	"github.com/mentorstack/mentorstack-api/pkg/db"
	"github.com/mentorstack/mentorstack-api/pkg/httpclient"
	"github.com/mentorstack/mentorstack-api/pkg/jwt"
	"github.com/mentorstack/mentorstack-api/pkg/logger"
	"github.com/mentorstack/mentorstack-api/pkg/metrics"
	"github.com/mentorstack/mentorstack-api/pkg/profiling"
	"github.com/mentorstack/mentorstack-api/pkg/storage"
	"github.com/mentorstack/mentorstack-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// registerMentorRoutes registers the authenticated mentor dashboard routes.
// Every route in this group runs behind token validation plus identity
// resolution, so handlers can rely on a mentor being present in the context.
func registerMentorRoutes(
	router *gin.Engine,
	cfg *config.Config,
	verifier *jwt.Verifier,
	identityService services.IdentityServiceInterface,
	profileRateLimiter *middleware.RateLimiter,
	availabilityHandler *handlers.AvailabilityHandler,
	sessionsHandler *handlers.SessionsHandler,
	profileHandler *handlers.ProfileHandler,
	hub *websocket.Hub,
	feed *changefeed.Feed,
) {
	mentor := router.Group("/api/v1/mentor")
	mentor.Use(middleware.AuthMiddleware(verifier))
	mentor.Use(middleware.MentorMiddleware(identityService))

	mentor.GET("/slots", availabilityHandler.ListSlots)
	mentor.POST("/slots", middleware.BodySizeLimitMiddleware(10*1024), availabilityHandler.CreateSlot)
	mentor.DELETE("/slots/:id", availabilityHandler.DeleteSlot)

	mentor.GET("/sessions/stats", sessionsHandler.GetStats)
	mentor.GET("/sessions/upcoming", sessionsHandler.ListUpcoming)

	mentor.GET("/profile", profileHandler.GetProfile)
	mentor.POST("/profile", profileRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), profileHandler.UpdateProfile)
	mentor.POST("/profile/picture", profileRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024*1024), profileHandler.UploadPicture)

	mentor.GET("/ws", websocket.Handler(hub, feed, cfg.Server.AllowedOrigins))
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
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting MentorStack API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.CollectorEndpoint,
	)
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

	// Initialize metrics with service name from config
	metrics.Init(cfg.Observability.ServiceName)
	metrics.RecordInfrastructureMetrics()

	// Continuous profiling (optional)
	stopProfiler, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	// Initialize PostgreSQL connection pool
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer pool.Close()

	// NOTE: Database migrations are run separately via the migrate command
	// Run migrations before starting the app: ./migrate or docker-compose run migrate

	dbClient := postgres.NewClient(pool)

	// Initialize object storage client (optional, profile pictures only)
	var storageClient storage.ClientInterface
	if cfg.Storage.AccessKeyID != "" && cfg.Storage.SecretAccessKey != "" {
		client, storageErr := storage.NewClient(
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			cfg.Storage.BucketName,
			cfg.Storage.Endpoint,
			cfg.Storage.Region,
		)
		if storageErr != nil {
			logger.Fatal("Failed to initialize storage client", zap.Error(storageErr))
		}
		storageClient = client
	} else {
		logger.Warn("Object storage not configured - profile picture uploads disabled")
	}

	// Slot list cache
	var slotCache *cache.SlotCache
	if cfg.Cache.DisableSlotCache {
		logger.Warn("Slot cache is DISABLED - reading from database on every request")
	} else {
		slotCache = cache.NewSlotCache(cfg.Cache.SlotTTLSeconds)
	}

	// Initialize repositories
	mentorRepo := repository.NewMentorRepository(dbClient)
	availabilityRepo := repository.NewAvailabilityRepository(dbClient, slotCache)
	sessionRepo := repository.NewSessionRepository(dbClient)

	// Change feed: start listening before accepting requests so the first
	// websocket subscription never misses the LISTEN window.
	feed := changefeed.NewFeed(pool)
	if err := feed.Start(context.Background()); err != nil {
		logger.Fatal("Failed to start change feed", zap.Error(err))
	}
	defer feed.Close()

	// Slot writes arriving from any source invalidate the cached slot list
	// for the affected mentor.
	invalidationSub := feed.Subscribe(changefeed.TableAvailabilitySlots, changefeed.AllMentors)
	invalidationSub.OnAnyChange(func(e changefeed.Event) {
		availabilityRepo.InvalidateCache(e.MentorID)
	})
	defer invalidationSub.Close()

	// Websocket hub for realtime pushes outside the change feed
	hub := websocket.NewHub()

	// Initialize HTTP client for webhook triggers
	httpClient := httpclient.NewStandardClient()

	// Initialize services
	identityService := services.NewIdentityService(mentorRepo, cfg, httpClient)
	availabilityService := services.NewAvailabilityService(availabilityRepo)
	sessionSummaryService := services.NewSessionSummaryService(sessionRepo)
	profileService := services.NewProfileService(mentorRepo, storageClient, hub)
	applicationService := services.NewApplicationService(mentorRepo, cfg, httpClient)

	// Initialize handlers
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	sessionsHandler := handlers.NewSessionsHandler(sessionSummaryService)
	profileHandler := handlers.NewProfileHandler(profileService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	healthHandler := handlers.NewHealthHandler(dbClient.Ping)

	verifier := jwt.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS: only the configured origins may call the API with credentials
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters per endpoint class
	generalRateLimiter := middleware.NewRateLimiter(100, 200)       // 100 req/sec, burst of 200
	applicationRateLimiter := middleware.NewRateLimiter(0.00667, 3) // 2 req/5min, burst of 3 (application spam)
	profileRateLimiter := middleware.NewRateLimiter(10, 20)         // 10 req/sec, burst of 20

	// Operational endpoints
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// Public application intake
	v1 := router.Group("/api/v1")
	v1.POST("/apply", applicationRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), applicationHandler.Apply)

	// Authenticated mentor dashboard
	registerMentorRoutes(router, cfg, verifier, identityService, profileRateLimiter,
		availabilityHandler, sessionsHandler, profileHandler, hub, feed)

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
