package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	types "github.com/smartmeal/smartmeal-backend/internal/domain"
	"github.com/smartmeal/smartmeal-backend/internal/domain/ingredient"
	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
	"github.com/smartmeal/smartmeal-backend/internal/platform/neo4jdb"
)

// Store errors and misses propagate raw from this layer; the resolver service
// owns the defaulting policy.

const metaReturnClause = `
RETURN i.id AS id,
       i.name AS name,
       coalesce(i.category, '') AS category,
       coalesce(i.perishability, '') AS perishability,
       coalesce(i.shelf_life_days, 0) AS shelf_life_days`

// GetIngredientMeta looks one ingredient up by id, alternate id, or
// case-insensitive name.
func GetIngredientMeta(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, key string) (types.IngredientMetadata, bool, error) {
	var zero types.IngredientMetadata
	if client == nil || client.Driver == nil {
		return zero, false, fmt.Errorf("neo4j ingredient meta: driver not initialized")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return zero, false, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (i:Ingredient)
WHERE i.id = $key OR i.alt_id = $key OR toLower(i.name) = toLower($key)
`+metaReturnClause+`
LIMIT 1
`, map[string]any{"key": key})
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		return records, nil
	})
	if err != nil {
		return zero, false, err
	}

	records, _ := result.([]*neo4j.Record)
	if len(records) == 0 {
		return zero, false, nil
	}
	return metaFromRecord(records[0]), true, nil
}

// GetIngredientMetaBatch resolves N ids in a single round trip. Ids absent
// from the graph are simply missing from the returned map.
func GetIngredientMetaBatch(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, ids []string) (map[string]types.IngredientMetadata, error) {
	if client == nil || client.Driver == nil {
		return nil, fmt.Errorf("neo4j ingredient meta: driver not initialized")
	}
	out := make(map[string]types.IngredientMetadata, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
UNWIND $ids AS lookup_id
MATCH (i:Ingredient)
WHERE i.id = lookup_id OR i.alt_id = lookup_id
WITH DISTINCT lookup_id, i
`+strings.Replace(metaReturnClause, "i.id AS id", "lookup_id AS id", 1)+`
`, map[string]any{"ids": ids})
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		return records, nil
	})
	if err != nil {
		return nil, err
	}

	records, _ := result.([]*neo4j.Record)
	for _, rec := range records {
		id := stringValue(rec, "id")
		if id == "" {
			continue
		}
		if _, seen := out[id]; seen {
			continue
		}
		out[id] = metaFromRecord(rec)
	}
	if log != nil {
		log.Debug("batch ingredient meta resolved", "requested", len(ids), "matched", len(out))
	}
	return out, nil
}

func metaFromRecord(rec *neo4j.Record) types.IngredientMetadata {
	meta := types.IngredientMetadata{
		Name:          stringValue(rec, "name"),
		Category:      stringValue(rec, "category"),
		Perishability: stringValue(rec, "perishability"),
		ShelfLifeDays: intValue(rec, "shelf_life_days"),
	}
	if meta.Category == "" {
		meta.Category = ingredient.CategoryUnknown
	}
	if meta.Perishability == "" {
		meta.Perishability = ingredient.PerishabilityNonPerish
	}
	if meta.ShelfLifeDays <= 0 {
		meta.ShelfLifeDays = ingredient.DefaultShelfLifeDays
	}
	return meta
}

func stringValue(rec *neo4j.Record, key string) string {
	val, ok := rec.Get(key)
	if !ok || val == nil {
		return ""
	}
	s, _ := val.(string)
	return strings.TrimSpace(s)
}

func intValue(rec *neo4j.Record, key string) int {
	val, ok := rec.Get(key)
	if !ok || val == nil {
		return 0
	}
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
