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

	"job-portal-backend/config"
	_ "job-portal-backend/docs" // Important for Swagger
	"job-portal-backend/internal/delivery/http/middleware"
	v1 "job-portal-backend/internal/delivery/http/v1"
	"job-portal-backend/internal/repository/postgres"
	rediscache "job-portal-backend/internal/repository/redis"
	"job-portal-backend/internal/usecase"
	"job-portal-backend/pkg/audit"
	"job-portal-backend/pkg/auth"
	"job-portal-backend/pkg/database"
	"job-portal-backend/pkg/email"
	"job-portal-backend/pkg/logger"
	"job-portal-backend/pkg/redis"
	"job-portal-backend/pkg/storage"
	"job-portal-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// @title           Job Portal API
// @version         1.0
// @description     Candidate applications, posting lifecycle and skill matching.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.AppEnv)
	logger.Log.Info("Starting job portal backend", "port", cfg.Port, "env", cfg.AppEnv)
	auditLogger := audit.New("job-portal-backend", cfg.AppEnv)
	defer func() { _ = auditLogger.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, database.PoolConfig{
		MaxConns: int32(cfg.DBMaxConns),
		MinConns: int32(cfg.DBMinConns),
	})
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional)
	var redisClient *goredis.Client
	redisClient, err = redis.New(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		logger.Log.Warn("Redis not configured - using in-memory rate limiting, skill cache disabled")
	case err != nil:
		logger.Log.Warn("Redis unavailable - using in-memory rate limiting, skill cache disabled", "error", err)
	default:
		defer redisClient.Close()
		logger.Log.Info("Redis connection established")
	}

	// 5. Setup CV storage (optional)
	var cvStorage usecase.CVPresigner
	if cfg.StorageConfigured() {
		storageCfg := storage.Config{
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
			URLTTL:          cfg.CVUploadURLTTL,
		}
		s3Client, err := storage.NewS3Client(ctx, storageCfg)
		if err != nil {
			logger.Log.Warn("CV storage unavailable", "error", err)
		} else {
			cvStorage = storage.NewCVStorage(s3Client, storageCfg)
		}
	} else {
		logger.Log.Warn("S3 not configured - CV upload URLs will be unavailable")
	}

	// 6. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - application emails will be skipped")
	}

	// 7. Setup Repositories
	txManager := postgres.NewTxManager(dbPool)
	userRepo := postgres.NewUserRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	postingRepo := postgres.NewPostingRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	matchingRepo := postgres.NewMatchingRepository(dbPool)
	skillRepo := postgres.NewSkillRepository(dbPool)
	skillCache := rediscache.NewSkillCache(redisClient, cfg.SkillCacheTTL)

	// 8. Setup UseCases
	validate := validation.New()
	candidateUC := usecase.NewCandidateUsecase(usecase.CandidateDeps{
		Users:        userRepo,
		Candidates:   candidateRepo,
		Postings:     postingRepo,
		Applications: applicationRepo,
		Tx:           txManager,
		Validate:     validate,
		Audit:        auditLogger,
		Notifier:     emailService,
		Storage:      cvStorage,
		BcryptCost:   cfg.BcryptCost,
		DefaultSex:   cfg.DefaultSex,
	})
	postingUC := usecase.NewPostingUsecase(postingRepo, applicationRepo, candidateRepo, matchingRepo, txManager, validate, auditLogger)
	matchingUC := usecase.NewMatchingUsecase(matchingRepo, postingRepo)
	skillUC := usecase.NewSkillUsecase(skillRepo, skillCache)

	var redisPing func(context.Context) error
	if redisClient != nil {
		redisPing = func(ctx context.Context) error { return redis.HealthCheck(ctx, redisClient) }
	}
	healthUC := usecase.NewHealthUsecase(dbPool, redisPing)

	// 9. Setup Router
	rateLimiter := middleware.NewRateLimiter(redisClient, auditLogger)
	rateLimiter.StartCleanup(ctx, 5*time.Minute)

	router := v1.NewRouter(v1.RouterDeps{
		HealthUC:    healthUC,
		SkillUC:     skillUC,
		CandidateUC: candidateUC,
		PostingUC:   postingUC,
		MatchingUC:  matchingUC,
		Tokens:      auth.NewTokenManager(cfg.JWTSecret),
		RateLimiter: rateLimiter,
		Config:      cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
