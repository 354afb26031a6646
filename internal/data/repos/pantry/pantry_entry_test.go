package pantry

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	dataagg "github.com/smartmeal/smartmeal-backend/internal/data/aggregates"
	"github.com/smartmeal/smartmeal-backend/internal/data/repos/testutil"
	types "github.com/smartmeal/smartmeal-backend/internal/domain"
	domainagg "github.com/smartmeal/smartmeal-backend/internal/domain/aggregates"
)

func TestLockByKeyMissingRow(t *testing.T) {
	db := testutil.DB(t)
	repo := NewPantryEntryRepo(db, testutil.Logger(t))
	ctx := context.Background()

	row, err := repo.LockByKey(ctx, nil, uuid.New(), uuid.New(), "g")
	if err != nil {
		t.Fatalf("LockByKey: %v", err)
	}
	if row != nil {
		t.Fatalf("row = %+v, want nil for a missing key", row)
	}
}

func TestCreateThenGetByKey(t *testing.T) {
	db := testutil.DB(t)
	repo := NewPantryEntryRepo(db, testutil.Logger(t))
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, db, testutil.UniqueEmail("repo-create"))
	ing := uuid.New()

	created, err := repo.Create(ctx, nil, &types.PantryEntry{
		UserID: u.ID, IngredientID: ing, Unit: "g", Quantity: 250,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("Create did not assign an id")
	}

	got, err := repo.GetByKey(ctx, nil, u.ID, ing, "g")
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if got == nil || got.Quantity != 250 {
		t.Fatalf("got = %+v, want quantity 250", got)
	}
}

func TestCreateDuplicateKeyMapsToConflict(t *testing.T) {
	db := testutil.DB(t)
	repo := NewPantryEntryRepo(db, testutil.Logger(t))
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, db, testutil.UniqueEmail("repo-dup"))
	ing := uuid.New()

	if _, err := repo.Create(ctx, nil, &types.PantryEntry{
		UserID: u.ID, IngredientID: ing, Unit: "g", Quantity: 1,
	}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := repo.Create(ctx, nil, &types.PantryEntry{
		UserID: u.ID, IngredientID: ing, Unit: "g", Quantity: 2,
	})
	if err == nil {
		t.Fatal("duplicate key insert succeeded")
	}
	if mapped := dataagg.MapError("test", err); !domainagg.IsCode(mapped, domainagg.CodeConflict) {
		t.Fatalf("mapped = %v, want conflict", mapped)
	}
}

func TestUpdateAccumulateKeepsKnownBestBefore(t *testing.T) {
	db := testutil.DB(t)
	repo := NewPantryEntryRepo(db, testutil.Logger(t))
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, db, testutil.UniqueEmail("repo-coalesce"))
	ing := uuid.New()

	bb := datatypes.Date(time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC))
	created, err := repo.Create(ctx, nil, &types.PantryEntry{
		UserID: u.ID, IngredientID: ing, Unit: "g", Quantity: 500, BestBefore: &bb,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// nil bestBefore means unknown and must not clear the stored date
	if err := repo.UpdateAccumulate(ctx, nil, created.ID, 700, nil); err != nil {
		t.Fatalf("UpdateAccumulate: %v", err)
	}

	got, err := repo.GetByKey(ctx, nil, u.ID, ing, "g")
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if got.Quantity != 700 {
		t.Fatalf("quantity = %v, want 700", got.Quantity)
	}
	if got.BestBefore == nil {
		t.Fatal("best_before was cleared by an unknown date")
	}
	if time.Time(*got.BestBefore).Format("2006-01-02") != "2026-09-06" {
		t.Fatalf("best_before = %v, want 2026-09-06", time.Time(*got.BestBefore))
	}
}

func TestGetExpiringBefore(t *testing.T) {
	db := testutil.DB(t)
	repo := NewPantryEntryRepo(db, testutil.Logger(t))
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, db, testutil.UniqueEmail("repo-expiring"))

	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	near := datatypes.Date(now.AddDate(0, 0, 2))
	far := datatypes.Date(now.AddDate(0, 0, 60))

	if _, err := repo.Create(ctx, nil, &types.PantryEntry{
		UserID: u.ID, IngredientID: uuid.New(), Unit: "pcs", Quantity: 1, BestBefore: &near,
	}); err != nil {
		t.Fatalf("Create near: %v", err)
	}
	if _, err := repo.Create(ctx, nil, &types.PantryEntry{
		UserID: u.ID, IngredientID: uuid.New(), Unit: "g", Quantity: 1, BestBefore: &far,
	}); err != nil {
		t.Fatalf("Create far: %v", err)
	}
	if _, err := repo.Create(ctx, nil, &types.PantryEntry{
		UserID: u.ID, IngredientID: uuid.New(), Unit: "g", Quantity: 1,
	}); err != nil {
		t.Fatalf("Create undated: %v", err)
	}

	got, err := repo.GetExpiringBefore(ctx, nil, u.ID, now.AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("GetExpiringBefore: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
}

func TestDeleteByID(t *testing.T) {
	db := testutil.DB(t)
	repo := NewPantryEntryRepo(db, testutil.Logger(t))
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, db, testutil.UniqueEmail("repo-delete"))

	created, err := repo.Create(ctx, nil, &types.PantryEntry{
		UserID: u.ID, IngredientID: uuid.New(), Unit: "g", Quantity: 1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, err := repo.DeleteByID(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if !deleted {
		t.Fatal("DeleteByID reported no rows")
	}
	deleted, err = repo.DeleteByID(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("second DeleteByID: %v", err)
	}
	if deleted {
		t.Fatal("second delete reported rows")
	}
}
