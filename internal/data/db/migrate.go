package db

import (
	types "github.com/smartmeal/smartmeal-backend/internal/domain"
)

func (s *PostgresService) AutoMigrateAll() error {
	return s.db.AutoMigrate(
		&types.AppUser{},
		&types.PantryEntry{},
		&types.WasteLogEntry{},
	)
}
