package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	dataagg "github.com/smartmeal/smartmeal-backend/internal/data/aggregates"
	"github.com/smartmeal/smartmeal-backend/internal/data/repos"
	types "github.com/smartmeal/smartmeal-backend/internal/domain"
	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
)

const reasonUnspecified = "unspecified"

// InsightsService derives waste reports on demand. A report costs exactly
// one relational query over the horizon plus one batch metadata resolve;
// nothing is persisted.
type InsightsService interface {
	ComputeInsights(ctx context.Context, userID uuid.UUID, horizonDays int) (*types.InsightsReport, error)
}

type insightsService struct {
	users    repos.UserRepo
	wastes   repos.WasteLogRepo
	resolver MetadataResolver
	clock    func() time.Time
	log      *logger.Logger
}

func NewInsightsService(
	users repos.UserRepo,
	wastes repos.WasteLogRepo,
	resolver MetadataResolver,
	baseLog *logger.Logger,
) InsightsService {
	return &insightsService{
		users:    users,
		wastes:   wastes,
		resolver: resolver,
		clock:    func() time.Time { return time.Now().UTC() },
		log:      baseLog.With("service", "InsightsService"),
	}
}

func (s *insightsService) ComputeInsights(ctx context.Context, userID uuid.UUID, horizonDays int) (*types.InsightsReport, error) {
	const op = "insights.compute"

	if userID == uuid.Nil {
		return nil, dataagg.MapError(op, dataagg.ValidationError("user_id is required"))
	}
	if horizonDays <= 0 {
		horizonDays = 30
	}

	exists, err := s.users.Exists(ctx, nil, userID)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if !exists {
		return nil, dataagg.MapError(op, dataagg.NotFoundError(fmt.Sprintf("user %s not found", userID)))
	}

	now := s.clock()
	since := now.AddDate(0, 0, -horizonDays)

	rows, err := s.wastes.GetByUserSince(ctx, nil, userID, since)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}

	report := &types.InsightsReport{
		HorizonDays:  horizonDays,
		ByIngredient: []types.WasteByIngredient{},
		ByCategory:   []types.WasteByCategory{},
		WeeklyTrend:  weeklyBuckets(since, now),
		ByReason:     []types.WasteByReason{},
	}
	if len(rows) == 0 {
		return report, nil
	}

	ids := distinctIngredientIDs(rows)
	meta := s.resolver.ResolveBatch(ctx, ids)

	var total float64
	byIngredient := map[uuid.UUID]*types.WasteByIngredient{}
	byCategory := map[string]*types.WasteByCategory{}
	byReason := map[string]*types.WasteByReason{}
	byWeek := map[string]*types.WasteTrendBucket{}
	for i := range report.WeeklyTrend {
		byWeek[report.WeeklyTrend[i].Period] = &report.WeeklyTrend[i]
	}

	for _, row := range rows {
		total += row.Quantity

		m := meta[row.IngredientID]
		if m.Degraded {
			report.MetadataDegraded = true
		}

		ig, ok := byIngredient[row.IngredientID]
		if !ok {
			ig = &types.WasteByIngredient{
				IngredientID:   row.IngredientID,
				IngredientName: m.Name,
				Unit:           row.Unit,
			}
			byIngredient[row.IngredientID] = ig
		}
		ig.Events++
		ig.TotalQuantity += row.Quantity

		cg, ok := byCategory[m.Category]
		if !ok {
			cg = &types.WasteByCategory{Category: m.Category}
			byCategory[m.Category] = cg
		}
		cg.Events++
		cg.TotalQuantity += row.Quantity

		reason := row.Reason
		if reason == "" {
			reason = reasonUnspecified
		}
		rg, ok := byReason[reason]
		if !ok {
			rg = &types.WasteByReason{Reason: reason}
			byReason[reason] = rg
		}
		rg.Events++
		rg.TotalQuantity += row.Quantity

		if bucket, ok := byWeek[isoWeekLabel(row.LoggedAt)]; ok {
			bucket.Events++
			bucket.TotalQuantity += row.Quantity
		}
	}

	report.TotalEvents = len(rows)
	report.TotalQuantity = round2(total)

	for _, ig := range byIngredient {
		ig.TotalQuantity = round2(ig.TotalQuantity)
		ig.Percentage = percentage(ig.TotalQuantity, total)
		report.ByIngredient = append(report.ByIngredient, *ig)
	}
	sort.Slice(report.ByIngredient, func(i, j int) bool {
		a, b := report.ByIngredient[i], report.ByIngredient[j]
		if a.TotalQuantity != b.TotalQuantity {
			return a.TotalQuantity > b.TotalQuantity
		}
		return a.IngredientID.String() < b.IngredientID.String()
	})

	for _, cg := range byCategory {
		cg.TotalQuantity = round2(cg.TotalQuantity)
		cg.Percentage = percentage(cg.TotalQuantity, total)
		report.ByCategory = append(report.ByCategory, *cg)
	}
	sort.Slice(report.ByCategory, func(i, j int) bool {
		a, b := report.ByCategory[i], report.ByCategory[j]
		if a.TotalQuantity != b.TotalQuantity {
			return a.TotalQuantity > b.TotalQuantity
		}
		return a.Category < b.Category
	})

	for _, rg := range byReason {
		rg.TotalQuantity = round2(rg.TotalQuantity)
		rg.Percentage = percentage(rg.TotalQuantity, total)
		report.ByReason = append(report.ByReason, *rg)
	}
	sort.Slice(report.ByReason, func(i, j int) bool {
		a, b := report.ByReason[i], report.ByReason[j]
		if a.TotalQuantity != b.TotalQuantity {
			return a.TotalQuantity > b.TotalQuantity
		}
		return a.Reason < b.Reason
	})

	for i := range report.WeeklyTrend {
		report.WeeklyTrend[i].TotalQuantity = round2(report.WeeklyTrend[i].TotalQuantity)
	}

	return report, nil
}

func distinctIngredientIDs(rows []*types.WasteLogEntry) []uuid.UUID {
	seen := map[uuid.UUID]struct{}{}
	out := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.IngredientID]; ok {
			continue
		}
		seen[row.IngredientID] = struct{}{}
		out = append(out, row.IngredientID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// weeklyBuckets enumerates every ISO week touched by [since, now] in
// chronological order, all zero-valued. Stepping seven days at a time visits
// each week exactly once.
func weeklyBuckets(since, now time.Time) []types.WasteTrendBucket {
	out := []types.WasteTrendBucket{}
	if now.Before(since) {
		return out
	}
	last := ""
	for cursor := since; !cursor.After(now); cursor = cursor.AddDate(0, 0, 7) {
		label := isoWeekLabel(cursor)
		out = append(out, types.WasteTrendBucket{Period: label})
		last = label
	}
	if final := isoWeekLabel(now); final != last {
		out = append(out, types.WasteTrendBucket{Period: final})
	}
	return out
}

func isoWeekLabel(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func percentage(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return round2(part / total * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
