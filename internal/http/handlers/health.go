package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	redisclient "github.com/smartmeal/smartmeal-backend/internal/clients/redis"
	"github.com/smartmeal/smartmeal-backend/internal/platform/neo4jdb"
)

// HealthHandler pings every dependency concurrently. Postgres is the system
// of record: when it is down the service reports unavailable. The graph
// store and the event bus are best-effort and only degrade the status.
type HealthHandler struct {
	db    *gorm.DB
	graph *neo4jdb.Client
	bus   redisclient.EventBus
}

func NewHealthHandler(db *gorm.DB, graph *neo4jdb.Client, bus redisclient.EventBus) *HealthHandler {
	return &HealthHandler{db: db, graph: graph, bus: bus}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	var mu sync.Mutex
	checks := map[string]string{}
	set := func(name, status string) {
		mu.Lock()
		checks[name] = status
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if h.db == nil {
			set("postgres", "unconfigured")
			return nil
		}
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(gctx)
		}
		if err != nil {
			set("postgres", "down")
			return err
		}
		set("postgres", "up")
		return nil
	})
	g.Go(func() error {
		if h.graph == nil || h.graph.Driver == nil {
			set("neo4j", "unconfigured")
			return nil
		}
		if err := h.graph.Driver.VerifyConnectivity(gctx); err != nil {
			set("neo4j", "down")
			return nil
		}
		set("neo4j", "up")
		return nil
	})
	g.Go(func() error {
		if h.bus == nil {
			set("redis", "unconfigured")
			return nil
		}
		if err := h.bus.Ping(gctx); err != nil {
			set("redis", "down")
			return nil
		}
		set("redis", "up")
		return nil
	})

	primaryErr := g.Wait()

	status := "ok"
	httpStatus := http.StatusOK
	if primaryErr != nil {
		status = "unavailable"
		httpStatus = http.StatusServiceUnavailable
	} else {
		for _, v := range checks {
			if v == "down" {
				status = "degraded"
				break
			}
		}
	}
	c.JSON(httpStatus, gin.H{"status": status, "checks": checks})
}
