package insights

import "github.com/google/uuid"

// Report is derived on every request and never persisted. Breakdown slices
// are ordered by descending quantity with lexicographic tie-breaks, so
// identical inputs always produce identical output.
type Report struct {
	HorizonDays   int     `json:"horizon_days"`
	TotalEvents   int     `json:"total_events"`
	TotalQuantity float64 `json:"total_quantity"`

	ByIngredient []IngredientGroup `json:"by_ingredient"`
	ByCategory   []CategoryGroup   `json:"by_category"`
	WeeklyTrend  []TrendBucket     `json:"weekly_trend"`
	ByReason     []ReasonGroup     `json:"by_reason"`

	// MetadataDegraded reports that category data was default-filled because
	// the graph store was unavailable.
	MetadataDegraded bool `json:"metadata_degraded,omitempty"`
}

type IngredientGroup struct {
	IngredientID   uuid.UUID `json:"ingredient_id"`
	IngredientName string    `json:"ingredient_name,omitempty"`
	Unit           string    `json:"unit,omitempty"`
	Events         int       `json:"events"`
	TotalQuantity  float64   `json:"total_quantity"`
	Percentage     float64   `json:"percentage"`
}

type CategoryGroup struct {
	Category      string  `json:"category"`
	Events        int     `json:"events"`
	TotalQuantity float64 `json:"total_quantity"`
	Percentage    float64 `json:"percentage"`
}

// TrendBucket is one calendar week. Period uses ISO-week labels (2026-W35);
// weeks inside the horizon with no events are present with zero values.
type TrendBucket struct {
	Period        string  `json:"period"`
	Events        int     `json:"events"`
	TotalQuantity float64 `json:"total_quantity"`
}

// ReasonGroup carries both an event count and a quantity sum. Percentage is
// quantity-based, consistent with the ingredient and category breakdowns.
type ReasonGroup struct {
	Reason        string  `json:"reason"`
	Events        int     `json:"events"`
	TotalQuantity float64 `json:"total_quantity"`
	Percentage    float64 `json:"percentage"`
}
