package app

import (
	"github.com/gin-gonic/gin"

	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
	"github.com/smartmeal/smartmeal-backend/internal/server"
)

func wireRouter(log *logger.Logger, handlerset Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:           log,
		HealthHandler: handlerset.Health,
		UserHandler:   handlerset.User,
		PantryHandler: handlerset.Pantry,
		WasteHandler:  handlerset.Waste,
		EventsHandler: handlerset.Events,
	})
}
