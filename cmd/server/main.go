package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adminapp "github.com/marketplace/backend/internal/application/admin"
	catalogapp "github.com/marketplace/backend/internal/application/catalog"
	merchantapp "github.com/marketplace/backend/internal/application/merchant"
	shoppingapp "github.com/marketplace/backend/internal/application/shopping"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/infrastructure/cache"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/event"
	"github.com/marketplace/backend/internal/infrastructure/lock"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"github.com/marketplace/backend/internal/infrastructure/persistence"
	"github.com/marketplace/backend/internal/infrastructure/storage"
	"github.com/marketplace/backend/internal/infrastructure/telemetry"
	"github.com/marketplace/backend/internal/interfaces/http/handler"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
	"github.com/marketplace/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//	@title			Marketplace Backend API
//	@version		1.0
//	@description	Single-marketplace e-commerce backend: catalog browsing, merchant listings, admin approval workflow, shopping cart and delivery addresses.
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	https://github.com/marketplace/backend
//	@contact.email	support@marketplace.example.com

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Marketplace Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Continuous profiling must start before span profiles are enabled
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.ProfilerEnabled,
		ServerAddress:     cfg.Telemetry.ProfilerServerAddress,
		ApplicationName:   cfg.App.Name,
		ProfileCPU:        true,
		ProfileAllocSpace: true,
		ProfileInuseSpace: true,
		ProfileGoroutines: true,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()

	// Tracer and meter providers; disabled configs yield no-op providers
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.App.Name,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()
	if cfg.Telemetry.Enabled && cfg.Telemetry.ProfilerEnabled {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	meterProvider, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       cfg.App.Name,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// When log export is enabled, tee zap output to the OTLP collector
	if cfg.Telemetry.LogsEnabled {
		loggerProvider, err := telemetry.NewLoggerProvider(context.Background(), telemetry.LogsConfig{
			Enabled:           true,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			ServiceName:       cfg.App.Name,
			Insecure:          cfg.Telemetry.Insecure,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize logger provider", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
				log.Error("Error shutting down logger provider", zap.Error(err))
			}
		}()

		bridgeLevel, levelErr := zapcore.ParseLevel(cfg.Log.Level)
		if levelErr != nil {
			bridgeLevel = zapcore.InfoLevel
		}
		otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.App.Name,
			LoggerProvider: loggerProvider,
			Level:          bridgeLevel,
		})
		log = telemetry.NewBridgedLogger(log.Core(), otelCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
		log.Info("Log export to OTLP collector enabled", zap.String("endpoint", cfg.Telemetry.CollectorEndpoint))
	}

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Query tracing via otelgorm, parameters stripped from recorded SQL
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:          cfg.Telemetry.Enabled,
		SlowQueryThresh:  200 * time.Millisecond,
		DBSystem:         "postgresql",
		WithoutVariables: true,
	}, log)
	if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	// Query latency and connection pool metrics
	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, telemetry.DefaultDBMetricsConfig(), log)
	if err != nil {
		log.Warn("Failed to register database metrics", zap.Error(err))
	} else if dbMetrics != nil {
		dbMetrics.StartPoolStatsCollection(context.Background())
		defer dbMetrics.Stop()
	}

	// Business metrics: cart activity counters plus the pending-approval backlog gauge
	businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:            meterProvider.Meter("marketplace.business"),
		Logger:           log,
		ApprovalProvider: telemetry.NewGormApprovalMetricsProvider(db.DB),
	})
	if err != nil {
		log.Fatal("Failed to initialize business metrics", zap.Error(err))
	}
	businessMetrics.StartPeriodicCollection(context.Background(), cfg.Telemetry.BusinessMetricsPeriod)
	defer businessMetrics.Stop()

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	// Initialize event serializer and register all domain events
	eventSerializer := event.NewEventSerializer()
	event.RegisterAllEvents(eventSerializer)

	// Create outbox publisher for transactional event saving
	outboxPublisher := event.NewOutboxPublisher(eventSerializer)

	// Inject outbox publisher into repositories that need transactional event publishing
	productRepo.SetOutboxEventSaver(outboxPublisher)
	companyRepo.SetOutboxEventSaver(outboxPublisher)

	// Optional Redis client, shared by the distributed lock and the token blacklist
	var redisClient *redis.Client
	if cfg.Lock.Distributed {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cancel()
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		log.Info("Redis connected successfully", zap.String("addr", cfg.Redis.Addr()))
	}

	// Per-user lock serializes cart and address mutations for the same user
	var userLocker shared.UserLocker
	if cfg.Lock.Distributed {
		userLocker, err = lock.NewRedisUserLocker(redisClient,
			lock.WithLogger(log),
			lock.WithTTL(cfg.Lock.TTL),
			lock.WithRetryInterval(cfg.Lock.RetryInterval),
		)
		if err != nil {
			log.Fatal("Failed to create distributed user locker", zap.Error(err))
		}
		log.Info("Distributed user locking enabled", zap.Duration("ttl", cfg.Lock.TTL))
	} else {
		userLocker = lock.NewInMemoryUserLocker()
	}

	// Object storage for product images (S3-compatible, or a stub in dev)
	var objectStorage catalogapp.ObjectStorageService
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage enabled",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("region", cfg.Storage.Region),
		)
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Object storage disabled, using stub backend for image URLs")
	}

	// Initialize application services
	productService := catalogapp.NewProductService(productRepo, companyRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	imageService := catalogapp.NewImageService(productRepo, objectStorage)
	companyService := merchantapp.NewCompanyService(companyRepo)
	approvalService := adminapp.NewApprovalService(productRepo, companyRepo)
	cartService := shoppingapp.NewCartService(cartRepo, productRepo, companyRepo, userLocker)
	addressService := shoppingapp.NewAddressService(addressRepo, userLocker)

	// JWT service for token validation
	jwtService := auth.NewJWTService(cfg.JWT)

	// Token blacklist backed by Redis when available
	var tokenBlacklist auth.TokenBlacklist
	if redisClient != nil {
		tokenBlacklist = auth.NewRedisTokenBlacklistWithClient(redisClient)
	}

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Idempotency store dedupes redelivered events; Redis-backed when available
	var idempotencyStore shared.IdempotencyStore
	if redisClient != nil {
		idempotencyStore = cache.NewRedisIdempotencyStoreWithClient(redisClient, "idempotency:")
	} else {
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
	}

	// Approval changes -> audit log / notification fan-out
	approvalChangedHandler := adminapp.NewApprovalChangedHandler(log)
	eventBus.Subscribe(event.NewIdempotentHandler(approvalChangedHandler, idempotencyStore, log))

	log.Info("Event handlers registered",
		zap.Strings("approval_changed_events", approvalChangedHandler.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize and start outbox processor for guaranteed event delivery
	// The outbox processor reads events from the outbox_events table and publishes them to the event bus
	outboxProcessorConfig := event.DefaultOutboxProcessorConfig()
	outboxProcessor := event.NewOutboxProcessor(outboxRepo, eventBus, eventSerializer, outboxProcessorConfig, log)
	if err := outboxProcessor.Start(context.Background()); err != nil {
		log.Fatal("Failed to start outbox processor", zap.Error(err))
	}
	defer func() {
		if err := outboxProcessor.Stop(context.Background()); err != nil {
			log.Error("Error stopping outbox processor", zap.Error(err))
		}
	}()
	log.Info("Outbox processor started",
		zap.Int("batch_size", outboxProcessorConfig.BatchSize),
		zap.Duration("poll_interval", outboxProcessorConfig.PollInterval),
	)

	// Inject event bus into services that publish events directly.
	// Product and company save-path events flow through the outbox instead.
	productService.SetEventPublisher(eventBus)
	categoryService.SetEventPublisher(eventBus)
	cartService.SetEventPublisher(eventBus)
	addressService.SetEventPublisher(eventBus)

	// Inject business metrics into the services that record them
	cartService.SetBusinessMetrics(businessMetrics)
	approvalService.SetBusinessMetrics(businessMetrics)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	companyHandler := handler.NewCompanyHandler(companyService)
	imageHandler := handler.NewImageHandler(imageService)
	approvalHandler := handler.NewApprovalHandler(approvalService)
	cartHandler := handler.NewCartHandler(cartService)
	addressHandler := handler.NewAddressHandler(addressService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - OpenTelemetry spans
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing())
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health and readiness endpoints (outside API versioning)
	engine.GET("/health", healthHandler(db, log))
	engine.GET("/ready", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	// The catalog and system surfaces are public; everything else requires a token
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/api/v1/ping",
		},
		SkipPathPrefixes: []string{
			"/api/v1/catalog",
			"/api/v1/system",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Catalog domain: public browsing of approved products and companies
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/:id", productHandler.Get)
	catalogRoutes.GET("/categories", categoryHandler.List)
	catalogRoutes.GET("/categories/:id", categoryHandler.Get)
	catalogRoutes.GET("/companies", companyHandler.List)
	catalogRoutes.GET("/companies/:id", companyHandler.Get)
	catalogRoutes.GET("/companies/:id/products", productHandler.ListByCompany)
	catalogRoutes.GET("/images/download", imageHandler.GetDownloadURL)

	// Shopping domain: cart and delivery addresses for the authenticated user
	shoppingRoutes := router.NewDomainGroup("shopping", "/shopping")
	shoppingRoutes.GET("/cart", cartHandler.GetCart)
	shoppingRoutes.DELETE("/cart", cartHandler.ClearCart)
	shoppingRoutes.POST("/cart/items", cartHandler.AddItem)
	shoppingRoutes.PUT("/cart/items/:productId", cartHandler.UpdateItemQuantity)
	shoppingRoutes.DELETE("/cart/items/:productId", cartHandler.RemoveItem)
	shoppingRoutes.GET("/addresses", addressHandler.List)
	shoppingRoutes.POST("/addresses", addressHandler.Create)
	shoppingRoutes.GET("/addresses/:id", addressHandler.Get)
	shoppingRoutes.PUT("/addresses/:id", addressHandler.Update)
	shoppingRoutes.DELETE("/addresses/:id", addressHandler.Delete)
	shoppingRoutes.PUT("/addresses/:id/default", addressHandler.SetDefault)

	// Merchant domain: company registration and product listing management
	merchantRoutes := router.NewDomainGroup("merchant", "/merchant")
	merchantRoutes.Use(middleware.RequireRole(auth.RoleMerchant, auth.RoleAdmin))
	merchantRoutes.PUT("/company", companyHandler.Upsert)
	merchantRoutes.GET("/company", companyHandler.GetMine)
	merchantRoutes.POST("/products", productHandler.Create)
	merchantRoutes.GET("/products", productHandler.ListMine)
	merchantRoutes.PUT("/products/:id", productHandler.Update)
	merchantRoutes.DELETE("/products/:id", productHandler.Delete)
	merchantRoutes.POST("/images/initiate", imageHandler.InitiateUpload)
	merchantRoutes.POST("/products/:id/images", imageHandler.ConfirmUpload)
	merchantRoutes.DELETE("/products/:id/images", imageHandler.RemoveImage)

	// Admin domain: approval workflow and category management
	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.Use(middleware.RequireAdmin())
	adminRoutes.GET("/products", approvalHandler.ListProducts)
	adminRoutes.PUT("/products/:id/approval", approvalHandler.SetProductApproval)
	adminRoutes.GET("/companies", approvalHandler.ListCompanies)
	adminRoutes.PUT("/companies/:id/approval", approvalHandler.SetCompanyApproval)
	adminRoutes.POST("/categories", categoryHandler.Create)
	adminRoutes.PUT("/categories/:id", categoryHandler.Update)
	adminRoutes.POST("/categories/:id/subcategories", categoryHandler.AddSubCategory)
	adminRoutes.DELETE("/categories/:id", categoryHandler.Delete)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(catalogRoutes).
		Register(shoppingRoutes).
		Register(merchantRoutes).
		Register(adminRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
