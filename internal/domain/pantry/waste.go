package pantry

import (
	"time"

	"github.com/google/uuid"
)

// WasteLogEntry is an append-only record of discarded food. LoggedAt is
// assigned server-side at insert time, never taken from the client.
type WasteLogEntry struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	IngredientID uuid.UUID `gorm:"type:uuid;not null" json:"ingredient_id"`
	Quantity     float64   `gorm:"column:quantity;type:numeric;not null" json:"quantity"`
	Unit         string    `gorm:"column:unit" json:"unit,omitempty"`
	Reason       string    `gorm:"column:reason" json:"reason,omitempty"`
	LoggedAt     time.Time `gorm:"column:logged_at;not null;index" json:"logged_at"`
}

func (WasteLogEntry) TableName() string { return "waste_log" }
