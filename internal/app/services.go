package app

import (
	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
	"github.com/smartmeal/smartmeal-backend/internal/platform/neo4jdb"
	"github.com/smartmeal/smartmeal-backend/internal/realtime"
	"github.com/smartmeal/smartmeal-backend/internal/services"
)

type Services struct {
	Metadata services.MetadataResolver
	User     services.UserService
	Pantry   services.PantryService
	Waste    services.WasteService
	Insights services.InsightsService
}

func wireServices(log *logger.Logger, reposet Repos, graph *neo4jdb.Client, publisher *realtime.Publisher) Services {
	log.Info("Wiring services...")
	resolver := services.NewMetadataResolver(graph, log)
	pantry := services.NewPantryService(reposet.TxRunner, reposet.User, reposet.PantryEntry, resolver, publisher, log)
	return Services{
		Metadata: resolver,
		User:     services.NewUserService(reposet.User, log),
		Pantry:   pantry,
		Waste:    services.NewWasteService(reposet.User, reposet.WasteLog, pantry, publisher, log),
		Insights: services.NewInsightsService(reposet.User, reposet.WasteLog, resolver, log),
	}
}
