package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	dataagg "github.com/smartmeal/smartmeal-backend/internal/data/aggregates"
	"github.com/smartmeal/smartmeal-backend/internal/data/repos"
	"github.com/smartmeal/smartmeal-backend/internal/data/repos/testutil"
	types "github.com/smartmeal/smartmeal-backend/internal/domain"
	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
)

func testLogger(tb testing.TB) *logger.Logger {
	tb.Helper()
	return testutil.Logger(tb)
}

// fixture wires the real repo stack over the shared test database with a
// controllable graph fake and a fixed clock.
type fixture struct {
	db       *gorm.DB
	graph    *fakeGraph
	resolver MetadataResolver
	users    repos.UserRepo
	entries  repos.PantryEntryRepo
	wastes   repos.WasteLogRepo
	pantry   PantryService
	waste    WasteService
	insights InsightsService
	now      time.Time
}

func newFixture(tb testing.TB) *fixture {
	tb.Helper()

	db := testutil.DB(tb)
	log := testLogger(tb)

	f := &fixture{
		db:    db,
		graph: &fakeGraph{metas: map[string]types.IngredientMetadata{}},
		now:   time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC),
	}
	f.resolver = newMetadataResolverWithGraph(f.graph, time.Second, log)
	f.users = repos.NewUserRepo(db, log)
	f.entries = repos.NewPantryEntryRepo(db, log)
	f.wastes = repos.NewWasteLogRepo(db, log)

	runner := dataagg.NewGormTxRunner(db)
	f.pantry = NewPantryService(runner, f.users, f.entries, f.resolver, nil, log)
	f.pantry.(*pantryService).clock = func() time.Time { return f.now }
	f.waste = NewWasteService(f.users, f.wastes, f.pantry, nil, log)
	f.waste.(*wasteService).clock = func() time.Time { return f.now }
	f.insights = NewInsightsService(f.users, f.wastes, f.resolver, log)
	f.insights.(*insightsService).clock = func() time.Time { return f.now }

	return f
}

func (f *fixture) setMeta(id string, meta types.IngredientMetadata) {
	f.graph.metas[id] = meta
}
