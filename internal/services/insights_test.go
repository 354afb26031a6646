package services

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"testing"

	"github.com/google/uuid"

	"github.com/smartmeal/smartmeal-backend/internal/data/repos/testutil"
	types "github.com/smartmeal/smartmeal-backend/internal/domain"
	domainagg "github.com/smartmeal/smartmeal-backend/internal/domain/aggregates"
	"github.com/smartmeal/smartmeal-backend/internal/domain/ingredient"
)

func TestComputeInsightsEmptyLog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, f.db, testutil.UniqueEmail("insights-empty"))

	report, err := f.insights.ComputeInsights(ctx, u.ID, 30)
	if err != nil {
		t.Fatalf("ComputeInsights: %v", err)
	}

	if report.TotalEvents != 0 || report.TotalQuantity != 0 {
		t.Fatalf("totals = %d/%v, want 0/0", report.TotalEvents, report.TotalQuantity)
	}
	if report.ByIngredient == nil || len(report.ByIngredient) != 0 {
		t.Fatalf("by_ingredient = %v, want empty slice", report.ByIngredient)
	}
	if report.ByCategory == nil || len(report.ByCategory) != 0 {
		t.Fatalf("by_category = %v, want empty slice", report.ByCategory)
	}
	if report.ByReason == nil || len(report.ByReason) != 0 {
		t.Fatalf("by_reason = %v, want empty slice", report.ByReason)
	}
	if len(report.WeeklyTrend) == 0 {
		t.Fatal("weekly_trend should cover the horizon even with no events")
	}
	for _, b := range report.WeeklyTrend {
		if b.Events != 0 || b.TotalQuantity != 0 {
			t.Fatalf("bucket %s not zero: %+v", b.Period, b)
		}
	}
	if f.graph.batchCalls != 0 {
		t.Fatalf("batchCalls = %d, want 0 for an empty log", f.graph.batchCalls)
	}
}

func TestComputeInsightsBreakdowns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, f.db, testutil.UniqueEmail("insights-breakdown"))

	bread := uuid.New()
	milk := uuid.New()
	f.setMeta(bread.String(), types.IngredientMetadata{Name: "bread", Category: "bakery", Perishability: "perishable", ShelfLifeDays: 4})
	f.setMeta(milk.String(), types.IngredientMetadata{Name: "milk", Category: "dairy", Perishability: "perishable", ShelfLifeDays: 5})

	testutil.SeedWaste(t, ctx, f.db, u.ID, bread, 1, "expired", f.now.AddDate(0, 0, -3))
	testutil.SeedWaste(t, ctx, f.db, u.ID, bread, 2, "moldy", f.now.AddDate(0, 0, -2))
	testutil.SeedWaste(t, ctx, f.db, u.ID, milk, 1, "expired", f.now.AddDate(0, 0, -1))

	report, err := f.insights.ComputeInsights(ctx, u.ID, 30)
	if err != nil {
		t.Fatalf("ComputeInsights: %v", err)
	}

	if report.TotalEvents != 3 {
		t.Fatalf("total_events = %d, want 3", report.TotalEvents)
	}
	if report.TotalQuantity != 4 {
		t.Fatalf("total_quantity = %v, want 4", report.TotalQuantity)
	}
	if f.graph.batchCalls != 1 {
		t.Fatalf("batchCalls = %d, want exactly 1", f.graph.batchCalls)
	}

	if len(report.ByIngredient) != 2 {
		t.Fatalf("by_ingredient has %d groups, want 2", len(report.ByIngredient))
	}
	top := report.ByIngredient[0]
	if top.IngredientID != bread || top.TotalQuantity != 3 || top.Percentage != 75 || top.Events != 2 {
		t.Fatalf("top ingredient = %+v, want bread 3/75%%/2 events", top)
	}
	second := report.ByIngredient[1]
	if second.IngredientID != milk || second.TotalQuantity != 1 || second.Percentage != 25 {
		t.Fatalf("second ingredient = %+v, want milk 1/25%%", second)
	}
	if top.IngredientName != "bread" {
		t.Fatalf("ingredient_name = %q, want bread", top.IngredientName)
	}

	if len(report.ByCategory) != 2 {
		t.Fatalf("by_category has %d groups, want 2", len(report.ByCategory))
	}
	if report.ByCategory[0].Category != "bakery" || report.ByCategory[0].Percentage != 75 {
		t.Fatalf("top category = %+v, want bakery 75%%", report.ByCategory[0])
	}
	if report.ByCategory[1].Category != "dairy" || report.ByCategory[1].Percentage != 25 {
		t.Fatalf("second category = %+v, want dairy 25%%", report.ByCategory[1])
	}

	if len(report.ByReason) != 2 {
		t.Fatalf("by_reason has %d groups, want 2", len(report.ByReason))
	}
	// both reasons total 2, so the lexicographic tie-break applies
	if report.ByReason[0].Reason != "expired" || report.ByReason[0].Events != 2 || report.ByReason[0].Percentage != 50 {
		t.Fatalf("top reason = %+v, want expired with 2 events at 50%%", report.ByReason[0])
	}
	if report.ByReason[1].Reason != "moldy" || report.ByReason[1].TotalQuantity != 2 {
		t.Fatalf("second reason = %+v, want moldy 2", report.ByReason[1])
	}

	var pctSum float64
	for _, g := range report.ByIngredient {
		pctSum += g.Percentage
	}
	if pctSum != 100 {
		t.Fatalf("ingredient percentages sum to %v, want 100", pctSum)
	}
	if report.MetadataDegraded {
		t.Fatal("metadata_degraded should be false with a healthy store")
	}
}

func TestComputeInsightsWeeklyTrendZeroFills(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, f.db, testutil.UniqueEmail("insights-trend"))
	ing := uuid.New()

	testutil.SeedWaste(t, ctx, f.db, u.ID, ing, 2, "expired", f.now.AddDate(0, 0, -1))

	report, err := f.insights.ComputeInsights(ctx, u.ID, 28)
	if err != nil {
		t.Fatalf("ComputeInsights: %v", err)
	}

	if len(report.WeeklyTrend) < 4 {
		t.Fatalf("weekly_trend has %d buckets, want at least 4 for a 28-day horizon", len(report.WeeklyTrend))
	}
	labelRe := regexp.MustCompile(`^\d{4}-W\d{2}$`)
	seen := map[string]bool{}
	var events int
	for _, b := range report.WeeklyTrend {
		if !labelRe.MatchString(b.Period) {
			t.Fatalf("bad period label %q", b.Period)
		}
		if seen[b.Period] {
			t.Fatalf("duplicate period %q", b.Period)
		}
		seen[b.Period] = true
		events += b.Events
	}
	if events != 1 {
		t.Fatalf("bucketed events = %d, want 1", events)
	}

	want := isoWeekLabel(f.now.AddDate(0, 0, -1))
	for _, b := range report.WeeklyTrend {
		if b.Period == want {
			if b.Events != 1 || b.TotalQuantity != 2 {
				t.Fatalf("bucket %s = %+v, want 1 event / quantity 2", want, b)
			}
			return
		}
	}
	t.Fatalf("no bucket for %s", want)
}

func TestComputeInsightsDeterministicOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, f.db, testutil.UniqueEmail("insights-determinism"))

	// equal quantities force the lexicographic tie-break
	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	testutil.SeedWaste(t, ctx, f.db, u.ID, b, 2, "expired", f.now.AddDate(0, 0, -2))
	testutil.SeedWaste(t, ctx, f.db, u.ID, a, 2, "expired", f.now.AddDate(0, 0, -1))

	first, err := f.insights.ComputeInsights(ctx, u.ID, 30)
	if err != nil {
		t.Fatalf("first ComputeInsights: %v", err)
	}
	second, err := f.insights.ComputeInsights(ctx, u.ID, 30)
	if err != nil {
		t.Fatalf("second ComputeInsights: %v", err)
	}

	if first.ByIngredient[0].IngredientID != a {
		t.Fatalf("tie-break order wrong: got %s first", first.ByIngredient[0].IngredientID)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different reports")
	}
}

func TestComputeInsightsDegradedMetadata(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, f.db, testutil.UniqueEmail("insights-degraded"))
	ing := uuid.New()

	testutil.SeedWaste(t, ctx, f.db, u.ID, ing, 1, "expired", f.now.AddDate(0, 0, -1))
	f.graph.err = errors.New("graph store down")

	report, err := f.insights.ComputeInsights(ctx, u.ID, 30)
	if err != nil {
		t.Fatalf("ComputeInsights must not fail on a degraded store: %v", err)
	}
	if !report.MetadataDegraded {
		t.Fatal("metadata_degraded should be set")
	}
	if len(report.ByCategory) != 1 || report.ByCategory[0].Category != ingredient.CategoryUnknown {
		t.Fatalf("by_category = %+v, want single %q group", report.ByCategory, ingredient.CategoryUnknown)
	}
}

func TestComputeInsightsUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.insights.ComputeInsights(context.Background(), uuid.New(), 30)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("err = %v, want not_found", err)
	}
}
