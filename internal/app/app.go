package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/db"
	"github.com/yungbote/foodgram-backend/internal/http"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

const serviceName = "foodgram"

type App struct {
	Log        *logger.Logger
	DB         *gorm.DB
	Router     *gin.Engine
	Cfg        Config
	Metrics    *observability.Metrics
	Clients    Clients
	Repos      Repos
	Aggregates Aggregates
	Services   Services

	pg           *db.PostgresService
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

// OpenDB connects and optionally migrates the relational store. The CLI uses
// it directly for migrate and the fixture loaders.
func OpenDB(log *logger.Logger, cfg Config, migrate bool) (*db.PostgresService, error) {
	pg, err := db.NewPostgresService(log, cfg.DBConfig())
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if migrate {
		if err := pg.AutoMigrateAll(); err != nil {
			_ = pg.Close()
			return nil, fmt.Errorf("automigrate: %w", err)
		}
	}
	return pg, nil
}

func New(log *logger.Logger, cfg Config) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{Log: log, Cfg: cfg, cancel: cancel}

	a.otelShutdown = observability.InitOTel(ctx, log, cfg.TracingConfig(serviceName))
	if cfg.MetricsEnabled {
		a.Metrics = observability.NewMetrics()
	}

	pg, err := OpenDB(log, cfg, true)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.pg = pg
	a.DB = pg.DB()
	if err := a.Metrics.RegisterDB(a.DB); err != nil {
		log.Warn("register db metrics failed (continuing)", "error", err)
	}

	clients, err := wireClients(ctx, log, cfg, a.Metrics)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Clients = clients
	a.Repos = wireRepos(a.DB, log)

	a.Services, a.Aggregates, err = wireServices(a.DB, log, cfg, a.Metrics, a.Repos, a.Clients)
	if err != nil {
		a.Close()
		return nil, err
	}

	handlers := wireHandlers(log, cfg, a.DB, a.Services, a.Clients)
	middleware := wireMiddleware(log, a.Services)
	a.Router = wireRouter(log, cfg, a.Metrics, a.Clients, handlers, middleware)
	return a, nil
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := ":" + a.Cfg.Port
	a.Log.Info("Server listening", "addr", addr)
	srv := &http.Server{Engine: a.Router}
	return srv.Run(ctx, addr, a.Cfg.ShutdownTimeout)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.Clients.Close()
	if a.pg != nil {
		if err := a.pg.Close(); err != nil && a.Log != nil {
			a.Log.Warn("close database", "error", err)
		}
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown", "error", err)
		}
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
