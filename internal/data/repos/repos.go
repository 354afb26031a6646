package repos

import (
	"gorm.io/gorm"

	"github.com/smartmeal/smartmeal-backend/internal/data/repos/pantry"
	"github.com/smartmeal/smartmeal-backend/internal/data/repos/user"
	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type PantryEntryRepo = pantry.PantryEntryRepo
type WasteLogRepo = pantry.WasteLogRepo

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo {
	return user.NewUserRepo(db, log)
}

func NewPantryEntryRepo(db *gorm.DB, log *logger.Logger) PantryEntryRepo {
	return pantry.NewPantryEntryRepo(db, log)
}

func NewWasteLogRepo(db *gorm.DB, log *logger.Logger) WasteLogRepo {
	return pantry.NewWasteLogRepo(db, log)
}
