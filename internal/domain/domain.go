package domain

import (
	"github.com/smartmeal/smartmeal-backend/internal/domain/ingredient"
	"github.com/smartmeal/smartmeal-backend/internal/domain/insights"
	"github.com/smartmeal/smartmeal-backend/internal/domain/pantry"
	"github.com/smartmeal/smartmeal-backend/internal/domain/user"
)

type AppUser = user.AppUser

type PantryEntry = pantry.PantryEntry
type WasteLogEntry = pantry.WasteLogEntry

type IngredientMetadata = ingredient.Metadata

type InsightsReport = insights.Report
type WasteByIngredient = insights.IngredientGroup
type WasteByCategory = insights.CategoryGroup
type WasteTrendBucket = insights.TrendBucket
type WasteByReason = insights.ReasonGroup
