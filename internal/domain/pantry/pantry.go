package pantry

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PantryEntry holds the accumulated quantity of one ingredient, in one unit,
// for one user. The (user_id, ingredient_id, unit) triple is unique; quantity
// only ever changes through the ledger's delta upsert.
type PantryEntry struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pantry_user_ingredient_unit,priority:1" json:"user_id"`
	IngredientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pantry_user_ingredient_unit,priority:2" json:"ingredient_id"`
	Unit         string    `gorm:"column:unit;not null;uniqueIndex:idx_pantry_user_ingredient_unit,priority:3" json:"unit"`
	Quantity     float64   `gorm:"column:quantity;type:numeric;not null;default:0" json:"quantity"`
	// BestBefore stays NULL until a shelf life is known; a known date is never
	// replaced by an unknown one.
	BestBefore *datatypes.Date `gorm:"column:best_before;type:date" json:"best_before,omitempty"`
	Source     string          `gorm:"column:source" json:"source,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (PantryEntry) TableName() string { return "pantry_entry" }
