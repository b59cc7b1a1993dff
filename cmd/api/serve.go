package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talent-workflow-api/config"
	_ "talent-workflow-api/docs" // Important for Swagger
	"talent-workflow-api/internal/delivery/http/middleware"
	v1 "talent-workflow-api/internal/delivery/http/v1"
	"talent-workflow-api/internal/gateway/agentcore"
	"talent-workflow-api/internal/repository/postgres"
	"talent-workflow-api/internal/usecase"
	"talent-workflow-api/pkg/auth"
	"talent-workflow-api/pkg/database"
	redisclient "talent-workflow-api/pkg/redis"
	"talent-workflow-api/pkg/security"
	"talent-workflow-api/pkg/validation"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap(flags)
			if err != nil {
				return err
			}
			defer log.Sync()

			return serve(cmd.Context(), cfg, log, migrateFirst)
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger, migrateFirst bool) error {
	gin.SetMode(cfg.GinMode)
	log.Info("starting talent workflow api", zap.String("port", cfg.Port), zap.String("mode", cfg.GinMode))

	if migrateFirst {
		if err := database.Migrate(ctx, cfg.DBUrl, log); err != nil {
			return err
		}
	}

	// 1. Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, log)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	// 2. Redis (optional: rate limits fall back to memory, login blocking is off)
	redis := connectRedis(ctx, cfg, log)
	if redis != nil {
		defer redis.Close()
	}

	// 3. Security
	secLog := security.NewSecurityLogger(log, "talent-workflow-api", cfg.GinMode)
	loginTracker := security.NewLoginTracker(redis, security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		UseIPTracking: true,
	}, secLog)

	// 4. Agent gateway
	agentCfg := agentcore.Config{
		Region:           cfg.AWSRegion,
		AccessKeyID:      cfg.AWSAccessKeyID,
		SecretAccessKey:  cfg.AWSSecretAccessKey,
		JDRuntimeARN:     cfg.JDAgentRuntimeARN,
		ResumeRuntimeARN: cfg.ResumeAgentRuntimeARN,
		Qualifier:        cfg.AgentQualifier,
		Timeout:          cfg.AgentTimeout(),
	}
	invoker, err := agentcore.NewAWSInvoker(ctx, agentCfg)
	if err != nil {
		return err
	}
	gateway := agentcore.NewClient(invoker, agentCfg, log)

	// 5. Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)

	// 6. UseCases
	validate := validation.New()
	authUC := usecase.NewAuthUsecase(userRepo, validate, log)
	jobUC := usecase.NewJobUsecase(jobRepo, gateway, validate, log)
	skillUC := usecase.NewSkillUsecase(jobRepo, log)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, jobRepo, gateway, validate, log)

	probes := map[string]usecase.Probe{"database": dbPool.Ping}
	if redis != nil {
		probes["redis"] = func(ctx context.Context) error { return redis.Ping(ctx).Err() }
	}
	healthUC := usecase.NewHealthUsecase(probes)

	// 7. Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		JobUC:        jobUC,
		SkillUC:      skillUC,
		CandidateUC:  candidateUC,
		HealthUC:     healthUC,
		Sessions:     auth.NewSessionManager(cfg.JWTSecret, cfg.SessionTTL()),
		RateLimiter:  middleware.NewRateLimiter(redis, secLog),
		LoginTracker: loginTracker,
		SecLog:       secLog,
		Config:       cfg,
		Log:          log,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		log.Error("listen failed", zap.Error(err))
		return err
	case <-quit:
	}
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exiting")
	return nil
}

func connectRedis(ctx context.Context, cfg *config.Config, log *zap.Logger) *goredis.Client {
	if cfg.UpstashRedisURL == "" {
		log.Warn("redis not configured - using in-memory rate limits, login blocking disabled")
		return nil
	}

	client, err := redisclient.NewClient(ctx, redisclient.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	})
	if err != nil {
		log.Warn("redis unavailable - using in-memory rate limits, login blocking disabled", zap.Error(err))
		return nil
	}
	log.Info("connected to redis")
	return client
}
