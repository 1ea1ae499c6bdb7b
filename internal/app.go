package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"contacts-api/config"
	"contacts-api/internal/application/ports"
	"contacts-api/internal/application/services"
	"contacts-api/internal/domain/contact"
	"contacts-api/internal/domain/user"
	"contacts-api/internal/infrastructure/cache"
	"contacts-api/internal/infrastructure/db/memory"
	"contacts-api/internal/infrastructure/db/postgres"
	pgcontact "contacts-api/internal/infrastructure/db/postgres/contact"
	pguser "contacts-api/internal/infrastructure/db/postgres/user"
	"contacts-api/internal/infrastructure/jwt"
	"contacts-api/internal/infrastructure/metrics"
	"contacts-api/internal/infrastructure/mq"
	"contacts-api/internal/infrastructure/storage"
	"contacts-api/internal/interface/api/rest"
	"contacts-api/internal/interface/api/rest/middleware"
	"contacts-api/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	redis      *redis.Client
	avatars    ports.AvatarStorage
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.EventBroker
	mqConsumer ports.EventConsumer
	publisher  ports.EventPublisher
	userRepo   user.Repository
	contactUoW contact.UnitOfWork
}

func NewApp(ctx context.Context) (*App, error) {
	// config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	// logger
	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           rest.WithCORS(r, cfg.App.CORSAllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	a := &App{
		logger:    logger,
		cfg:       cfg,
		httpSrv:   httpSrv,
		router:    r,
		mCounter:  mCounter,
		publisher: mq.Nop{},
	}

	// storage
	switch cfg.App.StorageDriver {
	case config.StoragePostgres:
		dbDsn, err := cfg.DBDSN()
		if err != nil {
			logger.Fatal("DB config error", zap.Error(err))
		}
		a.db, err = postgres.New(ctx, logger, dbDsn, cfg.DB.MaxConns)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		a.userRepo = pguser.NewRepository(a.db)
		a.contactUoW = pgcontact.NewUnitOfWork(a.db)
	case config.StorageMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		a.userRepo = memory.NewUserStore()
		a.contactUoW = memory.NewContactStore()
	default:
		logger.Fatal("unknown storage driver", zap.String("driver", cfg.App.StorageDriver))
	}

	// avatars
	switch cfg.Avatar.Storage {
	case config.AvatarStorageS3:
		if a.avatars, err = storage.NewS3(ctx, logger, cfg.S3); err != nil {
			logger.Fatal("failed to connect to S3", zap.Error(err))
		}
	case config.AvatarStorageMinIO:
		if a.avatars, err = storage.NewMinIO(ctx, logger, cfg.MinIO); err != nil {
			logger.Fatal("failed to connect to MinIO", zap.Error(err))
		}
	case config.AvatarStorageNone:
		a.avatars = storage.Disabled{}
	default:
		logger.Fatal("unknown avatar storage", zap.String("storage", cfg.Avatar.Storage))
	}

	// rabbitMQ
	if cfg.MQEnabled() {
		rabbitDsn, err := cfg.AMQPDSN()
		if err != nil {
			logger.Fatal("RabbitMQ config error", zap.Error(err))
		}
		rbMQ := mq.New(cfg.MQ, logger, mCounter)
		if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
			logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
		}
		if err = rbMQ.Init(); err != nil {
			logger.Fatal("failed init rabbitMQ", zap.Error(err))
		}
		a.mq = rbMQ
		a.publisher = rbMQ

		if cfg.MQ.Consume {
			rmqConsumer := rmqconsumer.New(cfg.MQ, logger, rbMQ.GetConn())
			if err = rmqConsumer.Init(); err != nil {
				logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
			}
			a.mqConsumer = rmqConsumer
		}
	} else {
		logger.Info("rabbitMQ host not set, contact events are disabled")
	}

	// redis
	if cfg.Redis.URL != "" {
		if a.redis, err = cache.NewClient(ctx, cfg.Redis.URL); err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
	}

	return a, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		_ = a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run starts the HTTP server and the MQ workers under one context
// and shuts them down together on SIGINT/SIGTERM.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	if a.mq != nil {
		g.Go(func() error {
			a.mq.PublisherWorker(ctx)
			return nil
		})
	}

	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.App.ShutdownTimeout)
	defer shutdownCancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
		return err
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() error {
	scope, err := contact.ParseEmailScope(a.cfg.Contacts.EmailScope)
	if err != nil {
		return err
	}
	loc, err := a.cfg.BirthdayLocation()
	if err != nil {
		return fmt.Errorf("birthday timezone: %w", err)
	}

	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret, a.cfg.App.Name)
	authService := services.NewAuthService(a.userRepo, jwtService, a.cfg.App.TokenTTL, a.mCounter)
	userService := services.NewUserService(a.userRepo, a.avatars, a.mCounter)
	contactService := services.NewContactService(
		a.contactUoW, scope, a.publisher, a.mCounter, services.WithLocation(loc),
	)

	// middlewares
	auth := middleware.AuthMiddleware(jwtService)
	var authLimit gin.HandlerFunc
	if a.redis != nil {
		limiter := cache.NewRateLimiter(a.redis, a.cfg.Redis.AuthLimit, a.cfg.Redis.AuthWindow)
		authLimit = middleware.RateLimit(limiter, a.logger, a.mCounter)
	}

	// controllers
	rest.NewAuthController(a.router, a.logger, authService, authLimit)
	rest.NewUserController(a.router, userService, a.logger, auth, a.cfg.Avatar.MaxBytes)
	rest.NewContactController(a.router, contactService, a.logger, auth)

	// ops
	a.router.GET(rest.RouteHealth, a.healthHandler)
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))

	return nil
}

func (a *App) healthHandler(c *gin.Context) {
	if a.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := a.db.Ping(ctx); err != nil {
			a.logger.Warn("health: database ping failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *App) Logger() *zap.Logger { return a.logger }
