package v1

import (
	"time"

	"talent-workflow-api/config"
	"talent-workflow-api/internal/delivery/http/middleware"
	"talent-workflow-api/internal/domain"
	"talent-workflow-api/internal/usecase"
	"talent-workflow-api/pkg/auth"
	"talent-workflow-api/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	JobUC        domain.JobUsecase
	SkillUC      domain.SkillUsecase
	CandidateUC  domain.CandidateUsecase
	HealthUC     usecase.HealthUsecase
	Sessions     *auth.SessionManager
	RateLimiter  *middleware.RateLimiter
	LoginTracker *security.LoginTracker
	SecLog       *security.SecurityLogger
	Config       *config.Config
	Log          *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, cfg.IsRelease())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(deps.Log))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler(deps.Log))
	r.Use(middleware.AccessGuard(deps.Sessions))
	r.Use(deps.RateLimiter.Middleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))

	api := r.Group("/api")

	NewHealthHandler(api, deps.HealthUC)

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	NewAuthHandler(api, AuthHandlerDeps{
		AuthUC:          deps.AuthUC,
		Sessions:        deps.Sessions,
		LoginTracker:    deps.LoginTracker,
		SecLog:          deps.SecLog,
		SecureCookie:    cfg.IsRelease(),
		Log:             deps.Log,
		CredentialLimit: deps.RateLimiter.Middleware(middleware.LoginRateLimitConfig(cfg.RateLimitLoginThreshold, window)),
	})
	NewJobHandler(api, deps.JobUC, deps.SkillUC)
	NewCandidateHandler(api, CandidateHandlerDeps{
		CandidateUC:    deps.CandidateUC,
		SecLog:         deps.SecLog,
		MaxUploadBytes: int64(cfg.MaxUploadMB) << 20,
		Log:            deps.Log,
		UploadLimit:    deps.RateLimiter.Middleware(middleware.UploadRateLimitConfig(window)),
	})

	return r
}
