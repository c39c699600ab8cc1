package v1

import (
	"time"

	"job-portal-backend/config"
	"job-portal-backend/internal/delivery/http/middleware"
	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	HealthUC    domain.HealthUsecase
	SkillUC     domain.SkillUsecase
	CandidateUC domain.CandidateUsecase
	PostingUC   domain.PostingUsecase
	MatchingUC  domain.MatchingUsecase
	Tokens      *auth.TokenManager
	RateLimiter *middleware.RateLimiter
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, cfg.IsProduction())) // CORS must be first
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.ErrorHandler())

	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	var registration []gin.HandlerFunc
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))
		registration = append(registration, deps.RateLimiter.Middleware(middleware.ApplyRateLimitConfig(cfg.RateLimitApplyThreshold, window)))
	}

	v1 := r.Group("/v1")

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	NewHealthHandler(v1, deps.HealthUC)

	api := v1.Group("")
	api.Use(middleware.OptionalEmployerAuth(deps.Tokens))
	{
		NewSkillHandler(api, deps.SkillUC)
		NewCandidateHandler(api, deps.CandidateUC, registration...)
		NewPostingHandler(api, deps.PostingUC)
		NewMatchingHandler(api, deps.MatchingUC)
	}

	return r
}
