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
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"user-account-api/config"
	"user-account-api/internal/application/ports"
	"user-account-api/internal/application/services"
	domain "user-account-api/internal/domain/user"
	memoryUser "user-account-api/internal/infrastructure/db/memory/user"
	"user-account-api/internal/infrastructure/db/postgres"
	postgresUser "user-account-api/internal/infrastructure/db/postgres/user"
	"user-account-api/internal/infrastructure/hasher"
	"user-account-api/internal/infrastructure/jwt"
	"user-account-api/internal/infrastructure/metrics"
	"user-account-api/internal/infrastructure/mq"
	"user-account-api/internal/interface/api/rest"
	"user-account-api/internal/interface/api/rest/middleware"
	"user-account-api/pkg/logger"
	"user-account-api/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	userRepo   domain.Repository
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	events     ports.EventPublisher
	mq         ports.RabbitMQ
	auditor    ports.EventAuditor
}

func NewApp(ctx context.Context) (*App, error) {
	// config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	// logger
	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", config.EnvProduction:
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(lg, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	app := &App{
		logger:   lg,
		cfg:      cfg,
		httpSrv:  httpSrv,
		router:   r,
		mCounter: mCounter,
	}

	// db
	switch cfg.DB.Driver {
	case config.DriverMemory:
		lg.Warn("using in-memory user store, data is lost on restart")
		app.userRepo = memoryUser.NewRepository()
	default:
		dbDsn, err := cfg.DBDSN()
		if err != nil {
			lg.Fatal("DB config error", zap.Error(err))
		}
		if cfg.DB.Migrate {
			if err = postgres.Migrate(lg, dbDsn); err != nil {
				lg.Fatal("failed to migrate database", zap.Error(err))
			}
		}
		dbPool, err := postgres.New(ctx, lg, dbDsn)
		if err != nil {
			lg.Fatal("failed to connect to database", zap.Error(err))
		}
		app.db = dbPool
		app.userRepo = postgresUser.NewRepository(dbPool)
	}

	// rabbitMQ
	if !cfg.MQ.Enabled {
		lg.Info("rabbitMQ disabled, user events are discarded")
		app.events = mq.NewDiscard(lg)
		return app, nil
	}

	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		lg.Fatal("RabbitMQ config error", zap.Error(err))
	}
	rbMQ := mq.New(cfg.MQ, lg)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		lg.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		lg.Fatal("failed init rabbitMQ", zap.Error(err))
	}
	// event audit log
	auditor := rmqconsumer.New(cfg.MQ, lg, rbMQ.GetConn())
	if err = auditor.Connect(rabbitDsn); err != nil {
		lg.Fatal("failed to connect event auditor", zap.Error(err))
	}
	if err = auditor.Init(); err != nil {
		lg.Fatal("failed to init event auditor", zap.Error(err))
	}

	app.events = rbMQ
	app.mq = rbMQ
	app.auditor = auditor

	return app, nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
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

	if a.auditor != nil {
		g.Go(func() error {
			a.auditor.AuditWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	userService := services.NewUserService(
		a.userRepo,
		hasher.NewBcrypt(a.cfg.Security.BcryptCost),
		a.events,
		a.logger,
		a.mCounter,
	)
	accountService := services.NewAccountService(userService)
	authService := services.NewAuthService(userService, jwtService, a.cfg.App.JWTTTL, a.logger)

	limit := middleware.RateLimit{
		Requests: a.cfg.Security.LoginRequests,
		Window:   a.cfg.Security.LoginWindow,
	}

	// controllers
	rest.NewAuthController(a.router, a.logger, authService, limit)
	rest.NewUserController(a.router, accountService, a.logger, jwtService, limit)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
