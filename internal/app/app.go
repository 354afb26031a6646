package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	redisclient "github.com/smartmeal/smartmeal-backend/internal/clients/redis"
	"github.com/smartmeal/smartmeal-backend/internal/data/db"
	"github.com/smartmeal/smartmeal-backend/internal/observability"
	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
	"github.com/smartmeal/smartmeal-backend/internal/platform/neo4jdb"
	"github.com/smartmeal/smartmeal-backend/internal/realtime"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	DB       *gorm.DB
	Graph    *neo4jdb.Client
	Bus      redisclient.EventBus
	Hub      *realtime.Hub
	Repos    Repos
	Services Services
	Router   *gin.Engine

	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "smartmeal-backend",
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init relational store: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := pg.DB()

	// Graph store is optional; nil means permanently degraded metadata.
	graph, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		log.Warn("graph store init failed, metadata will use defaults", "error", err)
		graph = nil
	}

	hub := realtime.NewHub(log)

	bus, err := redisclient.NewEventBus(log)
	if err != nil {
		log.Warn("redis event bus init failed, using local-only fanout", "error", err)
		bus = nil
	}
	publisher := realtime.NewPublisher(hub, busOrNil(bus), log)

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(log, reposet, graph, publisher)
	handlerset := wireHandlers(log, serviceset, theDB, graph, bus, hub)
	router := wireRouter(log, handlerset)

	return &App{
		Log:          log,
		Cfg:          cfg,
		DB:           theDB,
		Graph:        graph,
		Bus:          bus,
		Hub:          hub,
		Repos:        reposet,
		Services:     serviceset,
		Router:       router,
		otelShutdown: otelShutdown,
	}, nil
}

// busOrNil keeps a typed-nil EventBus from masquerading as a live RemoteBus.
func busOrNil(bus redisclient.EventBus) realtime.RemoteBus {
	if bus == nil {
		return nil
	}
	return bus
}

// Start launches the cross-instance event forwarder. Without Redis the local
// hub already receives publishes directly.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if a.Bus != nil {
		if err := a.Bus.StartForwarder(ctx, a.Hub.Broadcast); err != nil {
			a.Log.Warn("event forwarder start failed", "error", err)
		}
	}
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.Bus != nil {
		_ = a.Bus.Close()
	}
	if a.Graph != nil {
		a.Graph.Close(ctx)
	}
	if a.otelShutdown != nil {
		_ = a.otelShutdown(ctx)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
