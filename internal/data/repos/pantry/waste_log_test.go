package pantry

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/smartmeal/smartmeal-backend/internal/data/repos/testutil"
	types "github.com/smartmeal/smartmeal-backend/internal/domain"
)

func TestWasteLogGetByUserSince(t *testing.T) {
	db := testutil.DB(t)
	repo := NewWasteLogRepo(db, testutil.Logger(t))
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, db, testutil.UniqueEmail("waste-repo"))
	other := testutil.SeedUser(t, ctx, db, testutil.UniqueEmail("waste-repo-other"))
	ing := uuid.New()

	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	testutil.SeedWaste(t, ctx, db, u.ID, ing, 2, "expired", now.AddDate(0, 0, -1))
	testutil.SeedWaste(t, ctx, db, u.ID, ing, 1, "moldy", now.AddDate(0, 0, -8))
	testutil.SeedWaste(t, ctx, db, u.ID, ing, 3, "expired", now.AddDate(0, 0, -40))
	testutil.SeedWaste(t, ctx, db, other.ID, ing, 9, "expired", now.AddDate(0, 0, -1))

	got, err := repo.GetByUserSince(ctx, nil, u.ID, now.AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("GetByUserSince: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if !got[0].LoggedAt.Before(got[1].LoggedAt) {
		t.Fatalf("rows not ordered by logged_at asc: %v, %v", got[0].LoggedAt, got[1].LoggedAt)
	}
	for _, row := range got {
		if row.UserID != u.ID {
			t.Fatalf("row for wrong user: %+v", row)
		}
	}
}

func TestWasteLogCreateAssignsID(t *testing.T) {
	db := testutil.DB(t)
	repo := NewWasteLogRepo(db, testutil.Logger(t))
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, db, testutil.UniqueEmail("waste-repo-id"))

	created, err := repo.Create(ctx, nil, &types.WasteLogEntry{
		UserID:       u.ID,
		IngredientID: uuid.New(),
		Quantity:     1,
		Unit:         "g",
		Reason:       "expired",
		LoggedAt:     time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("Create did not assign an id")
	}
}
