package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	operatorusecases "lineup/internal/application/operator/usecases"
	queueusecases "lineup/internal/application/queue/usecases"
	"lineup/internal/domain/operator"
	"lineup/internal/domain/queue"
	"lineup/internal/infrastructure/auth"
	"lineup/internal/infrastructure/config"
	"lineup/internal/infrastructure/database"
	"lineup/internal/infrastructure/migration"
	"lineup/internal/infrastructure/pubsub"
	"lineup/internal/infrastructure/qrcode"
	"lineup/internal/infrastructure/ratelimit"
	"lineup/internal/infrastructure/repository"
	httpRouter "lineup/internal/interfaces/http"
	"lineup/internal/interfaces/http/middleware"
	"lineup/internal/interfaces/ws"
	"lineup/internal/shared/goroutine"
	"lineup/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the queue server with the configured storage driver.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server",
		"environment", env,
		"storage_driver", cfg.Storage.Driver,
		"redis_enabled", cfg.Redis.Enabled)

	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	log := logger.NewLogger()

	// Storage driver selection happens once here; everything downstream
	// sees only the repository interfaces.
	var (
		queueRepo    queue.Repository
		operatorRepo operator.Repository
	)
	switch cfg.Storage.Driver {
	case "memory":
		logger.Warn("using in-memory storage; all queue state is lost on restart")
		queueRepo = repository.NewMemoryQueueRepository()
		operatorRepo = repository.NewMemoryOperatorRepository()
	default:
		if err := database.Init(&cfg.Storage, &cfg.Database); err != nil {
			logger.Fatal("failed to initialize database", "error", err)
		}
		defer database.Close()

		if autoMigrate || cfg.Storage.Driver == "sqlite" {
			if err := migration.NewManager(cfg.Storage.Driver).Migrate(database.Get()); err != nil {
				logger.Fatal("migration failed", "error", err)
			}
		}

		queueRepo = repository.NewQueueRepository(database.Get(), log)
		operatorRepo = repository.NewOperatorRepository(database.Get(), log)
	}

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Redis carries the join limiter and the cross-instance change
	// signals. Without it both fall back to per-instance memory
	// implementations.
	joinWindow := time.Duration(cfg.Queue.JoinLimitWindowSeconds) * time.Second
	var (
		limiter  queueusecases.RateLimiter
		eventBus pubsub.QueueEventBus
	)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(rootCtx).Err(); err != nil {
			logger.Fatal("failed to connect to redis", "error", err)
		}
		defer redisClient.Close()

		limiter = ratelimit.NewRedisJoinLimiter(redisClient, cfg.Queue.JoinLimit, joinWindow)
		eventBus = pubsub.NewRedisQueueEventBus(redisClient, log)
	} else {
		limiter = ratelimit.NewMemoryJoinLimiter(cfg.Queue.JoinLimit, joinWindow)
		eventBus = pubsub.NewMemoryQueueEventBus(log)
	}

	jwtService := auth.NewJWTService(
		cfg.Auth.JWT.Secret,
		cfg.Auth.JWT.AccessExpMinutes,
		cfg.Auth.JWT.RefreshExpDays,
	)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)

	joinQueueUC := queueusecases.NewJoinQueueUseCase(
		queueRepo, limiter, eventBus, cfg.Queue.JoinRetryAttempts, log)
	advanceQueueUC := queueusecases.NewAdvanceQueueUseCase(queueRepo, eventBus, log)
	resetQueueUC := queueusecases.NewResetQueueUseCase(queueRepo, eventBus, log)
	getQueueStateUC := queueusecases.NewGetQueueStateUseCase(queueRepo, log)
	getTicketUC := queueusecases.NewGetTicketUseCase(queueRepo, log)
	loginUC := operatorusecases.NewLoginUseCase(operatorRepo, hasher, jwtService, log)

	displayHub := ws.NewHub(log.With("component", "display-hub"))
	goroutine.SafeGo(log, "display-hub", func() {
		displayHub.Run(rootCtx)
	})
	displayHub.ListenQueueEvents(rootCtx, eventBus)

	engine := httpRouter.NewRouter(&httpRouter.RouterConfig{
		ServerConfig:    &cfg.Server,
		JoinQueueUC:     joinQueueUC,
		GetQueueStateUC: getQueueStateUC,
		GetTicketUC:     getTicketUC,
		AdvanceQueueUC:  advanceQueueUC,
		ResetQueueUC:    resetQueueUC,
		LoginUC:         loginUC,
		QRGenerator:     qrcode.NewGenerator(cfg.Server.BaseURL),
		AuthMiddleware:  middleware.NewAuthMiddleware(jwtService, log),
		DisplayHub:      displayHub,
		Logger:          log,
	})

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "address", cfg.Server.GetAddr())

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	rootCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}
