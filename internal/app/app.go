package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/moodify/core/internal/config"
	"github.com/moodify/core/internal/database"
	"github.com/moodify/core/internal/middleware"
	pkgcron "github.com/moodify/core/internal/pkg/cron"
	pkgredis "github.com/moodify/core/internal/pkg/redis"
	"github.com/moodify/core/internal/repository"
	"github.com/moodify/core/internal/repository/memstore"
	"github.com/moodify/core/internal/repository/mongostore"
	"go.uber.org/zap"
)

const connectTimeout = 15 * time.Second

// App holds all application dependencies.
type App struct {
	cfg      *config.AppConfig
	router   *gin.Engine
	store    repository.Store
	rc       *pkgredis.Client
	logger   *zap.Logger
	cancel   context.CancelFunc
	sched    *pkgcron.Scheduler
	stoppers []func()
}

// New initializes the application: store → Redis → services → routes → cron.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	var rc *pkgredis.Client
	if cfg.RedisEnabled() {
		rc, err = pkgredis.Connect(ctx, cfg.Redis.URLValue())
		if err != nil {
			_ = store.Close(context.Background())
			return nil, fmt.Errorf("redis: %w", err)
		}
	}

	a, err := build(logger, cfg, store, rc)
	if err != nil {
		_ = store.Close(context.Background())
		if rc != nil {
			_ = rc.Close()
		}
		return nil, err
	}
	return a, nil
}

func openStore(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (repository.Store, error) {
	if cfg.Store == config.StoreMemory {
		logger.Warn("using in-memory store, data is lost on restart")
		return memstore.New(), nil
	}
	client, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.Mongo.Database)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	logger.Info("mongo connected", zap.String("database", cfg.Mongo.Database))
	return mongostore.New(client, cfg.Mongo.Database), nil
}

func build(logger *zap.Logger, cfg *config.AppConfig, store repository.Store, rc *pkgredis.Client) (*App, error) {
	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.MaxMultipartMemory = 8 << 20
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Idempotence"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		cfg:    cfg,
		router: router,
		store:  store,
		rc:     rc,
		logger: logger,
		cancel: cancel,
		sched:  pkgcron.New(logger),
	}

	svcs, err := a.registerRoutes()
	if err != nil {
		cancel()
		return nil, err
	}
	registerCronJobs(a.sched, svcs, cfg, logger)
	a.sched.Start(ctx)
	return a, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return a.cfg.Addr() }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background jobs and releases connections.
func (a *App) Shutdown(ctx context.Context) {
	a.cancel()
	a.sched.Wait()
	for _, stop := range a.stoppers {
		stop()
	}
	if a.rc != nil {
		if err := a.rc.Close(); err != nil {
			a.logger.Warn("close redis", zap.Error(err))
		}
	}
	if err := a.store.Close(ctx); err != nil {
		a.logger.Warn("close store", zap.Error(err))
	}
}
