package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/smartmeal/smartmeal-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.AppUser {
	tb.Helper()
	u := &types.AppUser{
		ID:       uuid.New(),
		Email:    email,
		FullName: "Test User",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedWaste(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, ingredientID uuid.UUID, qty float64, reason string, loggedAt time.Time) *types.WasteLogEntry {
	tb.Helper()
	w := &types.WasteLogEntry{
		ID:           uuid.New(),
		UserID:       userID,
		IngredientID: ingredientID,
		Quantity:     qty,
		Unit:         "g",
		Reason:       reason,
		LoggedAt:     loggedAt,
	}
	if err := tx.WithContext(ctx).Create(w).Error; err != nil {
		tb.Fatalf("seed waste: %v", err)
	}
	return w
}

func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.New().String()[:8])
}
