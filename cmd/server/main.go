package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"rimmarsa.backend/internal/config"
	domainrepos "rimmarsa.backend/internal/domain/repositories"
	"rimmarsa.backend/internal/infrastructure/identity"
	"rimmarsa.backend/internal/infrastructure/jobs"
	"rimmarsa.backend/internal/infrastructure/metrics"
	"rimmarsa.backend/internal/infrastructure/models"
	"rimmarsa.backend/internal/infrastructure/repositories"
	"rimmarsa.backend/internal/infrastructure/storage"
	"rimmarsa.backend/internal/interfaces/http/handlers"
	"rimmarsa.backend/internal/interfaces/http/middleware"
	"rimmarsa.backend/internal/usecases"
	"rimmarsa.backend/pkg/imageproc"
	"rimmarsa.backend/pkg/jwt"
	"rimmarsa.backend/pkg/logger"
	"rimmarsa.backend/pkg/redis"
)

var (
	loadDotenv   = godotenv.Load
	loadCfg      = config.Load
	initLog      = logger.Init
	connectRedis = redis.Connect
	openDB       = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		pgCfg := postgres.Config{
			DSN:                  cfg.URL(),
			PreferSimpleProtocol: true,
		}
		// "postgres" routes through lib/pq, anything else uses pgx
		if cfg.Driver == "postgres" {
			pgCfg.DriverName = "postgres"
		}
		return gorm.Open(postgres.New(pgCfg), &gorm.Config{
			PrepareStmt: false,
			Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
		})
	}
	runServer      = func(srv *http.Server) error { return srv.ListenAndServe() }
	getStdDB       = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	shutdownSignal = func() <-chan os.Signal {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		return quit
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis backs the public rate limits; an empty URL leaves them off
	var redisClient *goredis.Client
	if cfg.Redis.URL != "" {
		client, err := connectRedis(ctx, cfg.Redis.URL, cfg.Redis.Password)
		if err != nil {
			logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer client.Close()
		redisClient = client
		logger.Info(ctx, "Redis initialized")
	} else {
		logger.Warn(ctx, "REDIS_URL empty, public rate limits disabled")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(ctx, "Connected to database", zap.String("driver", cfg.Database.Driver))
		if cfg.Database.AutoMigrate {
			if err := models.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
		}
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	identityStore, err := newIdentityStore(cfg.Identity, db)
	if err != nil {
		return err
	}
	objectStorage, err := newObjectStorage(cfg.Storage)
	if err != nil {
		return err
	}
	collector := metrics.NewCollector()

	// Initialize repositories
	requestRepo := repositories.NewVendorRequestRepository(db)
	vendorRepo := repositories.NewVendorRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)
	referralRepo := repositories.NewReferralRepository(db)
	uploadTokenRepo := repositories.NewUploadTokenRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	regionRepo := repositories.NewRegionRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize usecases
	approvalUsecase := usecases.NewVendorApprovalUsecase(
		requestRepo,
		vendorRepo,
		subscriptionRepo,
		referralRepo,
		identityStore,
		uow,
		usecases.NewPromoCodeGenerator(),
		collector,
		usecases.ApprovalConfig{EmailDomain: cfg.Vendor.EmailDomain, LoginURL: cfg.Vendor.LoginURL},
	)
	requestUsecase := usecases.NewVendorRequestUsecase(requestRepo, regionRepo)
	tokenUsecase := usecases.NewUploadTokenUsecase(uploadTokenRepo, requestRepo)
	uploadUsecase := usecases.NewUploadUsecase(uploadTokenRepo, objectStorage, imageproc.Limits{
		MaxBytes:  cfg.Upload.MaxBytes,
		MaxWidth:  cfg.Upload.MaxWidth,
		MaxHeight: cfg.Upload.MaxHeight,
		MaxPixels: cfg.Upload.MaxPixels,
	}, collector)
	promoUsecase := usecases.NewPromoUsecase(vendorRepo, collector)
	authUsecase := usecases.NewAuthUsecase(adminRepo, vendorRepo, identityStore, jwtService, cfg.Vendor.EmailDomain)
	accountUsecase := usecases.NewVendorAccountUsecase(vendorRepo, subscriptionRepo, referralRepo)

	deps := routeDeps{
		adminHandler:         handlers.NewAdminHandler(approvalUsecase, requestUsecase),
		authHandler:          handlers.NewAuthHandler(authUsecase),
		uploadHandler:        handlers.NewUploadHandler(uploadUsecase, tokenUsecase, cfg.Upload.MaxBytes),
		promoHandler:         handlers.NewPromoHandler(promoUsecase),
		vendorRequestHandler: handlers.NewVendorRequestHandler(requestUsecase),
		vendorHandler:        handlers.NewVendorHandler(accountUsecase),
		authMiddleware:       middleware.AuthMiddleware(jwtService),
		promoRateLimit:       passThrough,
		uploadTokenRateLimit: passThrough,
	}
	if redisClient != nil {
		deps.promoRateLimit = middleware.RateLimitByIP(redis.NewFixedWindowLimiter(
			redisClient, "rl:validate-promo", int64(cfg.RateLimit.PromoValidationLimit), cfg.RateLimit.PromoValidationWindow))
		deps.uploadTokenRateLimit = middleware.RateLimitByIP(redis.NewFixedWindowLimiter(
			redisClient, "rl:upload-token", int64(cfg.RateLimit.UploadTokenLimit), cfg.RateLimit.UploadTokenWindow))
	}

	// Start background jobs
	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var expiryJob *jobs.SubscriptionExpiryJob
	if cfg.Jobs.SubscriptionExpiryInterval > 0 {
		expiryJob = jobs.NewSubscriptionExpiryJob(subscriptionRepo, cfg.Jobs.SubscriptionExpiryInterval)
		go expiryJob.Start(jobCtx)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware(collector))

	applyCORSMiddleware(r, cfg.CORS.AllowedOrigins)
	registerHealthRoute(r, handlers.NewHealthHandler(sqlDB.PingContext))
	registerMetricsRoute(r, collector.Registry())
	if cfg.Storage.Provider == "local" {
		r.Static("/uploads", cfg.Storage.LocalDir)
	}
	registerAPIRoutes(r, deps)

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Graceful shutdown
	quit := shutdownSignal()
	go func() {
		<-quit
		logger.Info(ctx, "Shutting down server")
		if expiryJob != nil {
			expiryJob.Stop()
		}
		cancel()
		shutdownCtx, done := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info(ctx, "Rimmarsa backend starting", zap.String("port", cfg.Server.Port))
	if err := runServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func newIdentityStore(cfg config.IdentityConfig, db *gorm.DB) (domainrepos.IdentityStore, error) {
	switch cfg.Provider {
	case "", "database":
		return identity.NewDatabaseStore(db), nil
	case "supabase":
		if cfg.SupabaseURL == "" || cfg.SupabaseServiceKey == "" {
			return nil, errors.New("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required for the supabase identity provider")
		}
		return identity.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown identity provider %q", cfg.Provider)
	}
}

func newObjectStorage(cfg config.StorageConfig) (domainrepos.ObjectStorage, error) {
	switch cfg.Provider {
	case "", "local":
		store, err := storage.NewLocalStorage(cfg.LocalDir, cfg.LocalPublicURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		return store, nil
	case "r2":
		store, err := storage.NewR2Storage(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			Bucket:          cfg.R2Bucket,
			PublicURL:       cfg.R2PublicURL,
			Endpoint:        cfg.R2Endpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize r2 storage: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}
