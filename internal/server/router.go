package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/smartmeal/smartmeal-backend/internal/http/handlers"
	httpMW "github.com/smartmeal/smartmeal-backend/internal/http/middleware"
	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	HealthHandler *httpH.HealthHandler
	UserHandler   *httpH.UserHandler
	PantryHandler *httpH.PantryHandler
	WasteHandler  *httpH.WasteHandler
	EventsHandler *httpH.EventsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("smartmeal-backend"))
	r.Use(httpMW.CORS())
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log))

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.UserHandler != nil {
			api.POST("/users", cfg.UserHandler.CreateUser)
			api.GET("/users/:user_id", cfg.UserHandler.GetUser)
		}

		if cfg.PantryHandler != nil {
			api.POST("/users/:user_id/pantry", cfg.PantryHandler.UpsertEntry)
			api.GET("/users/:user_id/pantry", cfg.PantryHandler.GetPantry)
			api.GET("/users/:user_id/pantry/expiring", cfg.PantryHandler.GetExpiring)
		}

		if cfg.WasteHandler != nil {
			api.POST("/users/:user_id/waste", cfg.WasteHandler.LogWaste)
			api.GET("/users/:user_id/waste", cfg.WasteHandler.ListWaste)
			api.GET("/users/:user_id/waste/insights", cfg.WasteHandler.GetInsights)
		}

		if cfg.EventsHandler != nil {
			api.GET("/users/:user_id/events", cfg.EventsHandler.Stream)
		}
	}

	return r
}
