package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/smartmeal/smartmeal-backend/internal/data/graph"
	types "github.com/smartmeal/smartmeal-backend/internal/domain"
	"github.com/smartmeal/smartmeal-backend/internal/domain/ingredient"
	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
	"github.com/smartmeal/smartmeal-backend/internal/platform/neo4jdb"
)

// MetadataResolver resolves ingredient metadata from the graph store. It
// never fails: store outages, timeouts, and unmatched ids all resolve to the
// default record with the Degraded flag set, so pantry and waste flows are
// never blocked on graph-store downtime.
//
// No result is cached across calls; ResolveBatch is the per-request cache.
type MetadataResolver interface {
	Resolve(ctx context.Context, ingredientID uuid.UUID) types.IngredientMetadata
	ResolveByKey(ctx context.Context, key string) types.IngredientMetadata
	// ResolveBatch issues a single graph round trip for the full id set and
	// returns an entry for every requested id, default-filling misses.
	ResolveBatch(ctx context.Context, ingredientIDs []uuid.UUID) map[uuid.UUID]types.IngredientMetadata
}

// ingredientGraph is the slice of the graph layer the resolver needs;
// narrowed for test fakes.
type ingredientGraph interface {
	Get(ctx context.Context, key string) (types.IngredientMetadata, bool, error)
	GetBatch(ctx context.Context, ids []string) (map[string]types.IngredientMetadata, error)
}

type neo4jIngredientGraph struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func (g *neo4jIngredientGraph) Get(ctx context.Context, key string) (types.IngredientMetadata, bool, error) {
	return graph.GetIngredientMeta(ctx, g.client, g.log, key)
}

func (g *neo4jIngredientGraph) GetBatch(ctx context.Context, ids []string) (map[string]types.IngredientMetadata, error) {
	return graph.GetIngredientMetaBatch(ctx, g.client, g.log, ids)
}

type metadataResolver struct {
	graph   ingredientGraph
	timeout time.Duration
	log     *logger.Logger
}

const defaultGraphTimeout = 3 * time.Second

// NewMetadataResolver wraps a Neo4j client. A nil client (graph store not
// configured) yields a resolver that is permanently degraded but functional.
func NewMetadataResolver(client *neo4jdb.Client, log *logger.Logger) MetadataResolver {
	resolverLog := log.With("service", "MetadataResolver")
	timeout := defaultGraphTimeout
	var g ingredientGraph
	if client != nil && client.Driver != nil {
		if client.QueryTimeout > 0 {
			timeout = client.QueryTimeout
		}
		g = &neo4jIngredientGraph{client: client, log: resolverLog}
	}
	return &metadataResolver{graph: g, timeout: timeout, log: resolverLog}
}

func newMetadataResolverWithGraph(g ingredientGraph, timeout time.Duration, log *logger.Logger) MetadataResolver {
	return &metadataResolver{graph: g, timeout: timeout, log: log}
}

func (r *metadataResolver) Resolve(ctx context.Context, ingredientID uuid.UUID) types.IngredientMetadata {
	if ingredientID == uuid.Nil {
		return ingredient.DefaultMetadata()
	}
	return r.ResolveByKey(ctx, ingredientID.String())
}

func (r *metadataResolver) ResolveByKey(ctx context.Context, key string) types.IngredientMetadata {
	if r.graph == nil {
		return ingredient.DefaultMetadata()
	}
	ctx, cancel := r.bounded(ctx)
	defer cancel()

	meta, found, err := r.graph.Get(ctx, key)
	if err != nil {
		r.log.Warn("graph store lookup degraded, using defaults", "key", key, "error", err)
		return ingredient.DefaultMetadata()
	}
	if !found {
		return ingredient.DefaultMetadata()
	}
	return meta
}

func (r *metadataResolver) ResolveBatch(ctx context.Context, ingredientIDs []uuid.UUID) map[uuid.UUID]types.IngredientMetadata {
	out := make(map[uuid.UUID]types.IngredientMetadata, len(ingredientIDs))
	if len(ingredientIDs) == 0 {
		return out
	}

	ids := make([]string, 0, len(ingredientIDs))
	seen := make(map[uuid.UUID]struct{}, len(ingredientIDs))
	for _, id := range ingredientIDs {
		if id == uuid.Nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id.String())
	}

	var resolved map[string]types.IngredientMetadata
	if r.graph != nil {
		ctx, cancel := r.bounded(ctx)
		defer cancel()
		var err error
		resolved, err = r.graph.GetBatch(ctx, ids)
		if err != nil {
			r.log.Warn("graph store batch lookup degraded, using defaults", "ids", len(ids), "error", err)
			resolved = nil
		}
	}

	// Every requested id gets an entry; misses are default-filled.
	for id := range seen {
		if meta, ok := resolved[id.String()]; ok {
			out[id] = meta
			continue
		}
		out[id] = ingredient.DefaultMetadata()
	}
	return out
}

func (r *metadataResolver) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}
