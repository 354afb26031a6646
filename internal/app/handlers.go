package app

import (
	"gorm.io/gorm"

	redisclient "github.com/smartmeal/smartmeal-backend/internal/clients/redis"
	"github.com/smartmeal/smartmeal-backend/internal/http/handlers"
	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
	"github.com/smartmeal/smartmeal-backend/internal/platform/neo4jdb"
	"github.com/smartmeal/smartmeal-backend/internal/realtime"
)

type Handlers struct {
	Health *handlers.HealthHandler
	User   *handlers.UserHandler
	Pantry *handlers.PantryHandler
	Waste  *handlers.WasteHandler
	Events *handlers.EventsHandler
}

func wireHandlers(
	log *logger.Logger,
	serviceset Services,
	db *gorm.DB,
	graph *neo4jdb.Client,
	bus redisclient.EventBus,
	hub *realtime.Hub,
) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: handlers.NewHealthHandler(db, graph, bus),
		User:   handlers.NewUserHandler(serviceset.User),
		Pantry: handlers.NewPantryHandler(serviceset.Pantry),
		Waste:  handlers.NewWasteHandler(serviceset.Waste, serviceset.Insights),
		Events: handlers.NewEventsHandler(hub),
	}
}
