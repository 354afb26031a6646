package app

import (
	"gorm.io/gorm"

	dataagg "github.com/smartmeal/smartmeal-backend/internal/data/aggregates"
	"github.com/smartmeal/smartmeal-backend/internal/data/repos"
	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
)

type Repos struct {
	TxRunner    dataagg.TxRunner
	User        repos.UserRepo
	PantryEntry repos.PantryEntryRepo
	WasteLog    repos.WasteLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		TxRunner:    dataagg.NewGormTxRunner(db),
		User:        repos.NewUserRepo(db, log),
		PantryEntry: repos.NewPantryEntryRepo(db, log),
		WasteLog:    repos.NewWasteLogRepo(db, log),
	}
}
