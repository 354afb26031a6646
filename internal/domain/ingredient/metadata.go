package ingredient

// DefaultShelfLifeDays applies when the graph store carries no shelf life for
// an ingredient, or is unreachable.
const DefaultShelfLifeDays = 7

const (
	CategoryUnknown          = "unknown"
	PerishabilityNonPerish   = "non_perishable"
	PerishabilityPerishable  = "perishable"
	PerishabilitySemiPerish  = "semi_perishable"
)

// Metadata is the graph-resident view of an ingredient. It is read-only from
// this core; the Degraded flag marks records that were default-filled because
// the graph store was unavailable or had no match.
type Metadata struct {
	Name          string `json:"name,omitempty"`
	Category      string `json:"category"`
	Perishability string `json:"perishability"`
	ShelfLifeDays int    `json:"shelf_life_days"`
	Degraded      bool   `json:"-"`
}

// DefaultMetadata is the substitute record used in degraded mode and for
// unmatched ids.
func DefaultMetadata() Metadata {
	return Metadata{
		Category:      CategoryUnknown,
		Perishability: PerishabilityNonPerish,
		ShelfLifeDays: DefaultShelfLifeDays,
		Degraded:      true,
	}
}
