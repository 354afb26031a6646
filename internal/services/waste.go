package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	dataagg "github.com/smartmeal/smartmeal-backend/internal/data/aggregates"
	"github.com/smartmeal/smartmeal-backend/internal/data/repos"
	types "github.com/smartmeal/smartmeal-backend/internal/domain"
	domainagg "github.com/smartmeal/smartmeal-backend/internal/domain/aggregates"
	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
)

// WasteEvent is one discard report. DecrementPantry asks the service to also
// consume the wasted amount from the matching pantry row; that adjustment is
// best-effort and never blocks the append.
type WasteEvent struct {
	UserID          uuid.UUID
	IngredientID    uuid.UUID
	Quantity        float64
	Unit            string
	Reason          string
	DecrementPantry bool
}

// WasteService appends to the waste log. The log is immutable history; there
// is no update or delete path.
type WasteService interface {
	LogWaste(ctx context.Context, event WasteEvent) (*types.WasteLogEntry, error)
	ListSince(ctx context.Context, userID uuid.UUID, horizonDays int) ([]*types.WasteLogEntry, error)
}

type wasteService struct {
	users  repos.UserRepo
	wastes repos.WasteLogRepo
	pantry PantryService
	events EventPublisher
	clock  func() time.Time
	log    *logger.Logger
}

func NewWasteService(
	users repos.UserRepo,
	wastes repos.WasteLogRepo,
	pantry PantryService,
	events EventPublisher,
	baseLog *logger.Logger,
) WasteService {
	return &wasteService{
		users:  users,
		wastes: wastes,
		pantry: pantry,
		events: events,
		clock:  func() time.Time { return time.Now().UTC() },
		log:    baseLog.With("service", "WasteService"),
	}
}

func (s *wasteService) LogWaste(ctx context.Context, event WasteEvent) (*types.WasteLogEntry, error) {
	const op = "waste.log"

	unit := strings.ToLower(strings.TrimSpace(event.Unit))
	reason := strings.ToLower(strings.TrimSpace(event.Reason))
	switch {
	case event.UserID == uuid.Nil:
		return nil, dataagg.MapError(op, dataagg.ValidationError("user_id is required"))
	case event.IngredientID == uuid.Nil:
		return nil, dataagg.MapError(op, dataagg.ValidationError("ingredient_id is required"))
	case event.Quantity <= 0:
		return nil, dataagg.MapError(op, dataagg.ValidationError("quantity must be positive"))
	}

	exists, err := s.users.Exists(ctx, nil, event.UserID)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if !exists {
		return nil, dataagg.MapError(op, dataagg.NotFoundError(fmt.Sprintf("user %s not found", event.UserID)))
	}

	if event.DecrementPantry {
		s.decrementPantry(ctx, event, unit)
	}

	entry := &types.WasteLogEntry{
		UserID:       event.UserID,
		IngredientID: event.IngredientID,
		Quantity:     event.Quantity,
		Unit:         unit,
		Reason:       reason,
		LoggedAt:     s.clock(),
	}
	created, err := s.wastes.Create(ctx, nil, entry)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}

	if s.events != nil {
		if err := s.events.Publish(ctx, EventWasteLogged, created.UserID, created); err != nil {
			s.log.Warn("event publish failed", "event", EventWasteLogged, "error", err)
		}
	}
	return created, nil
}

// decrementPantry consumes the wasted amount from the pantry ledger. A
// missing row or an underflow only means the ledger was already behind; the
// waste append proceeds regardless.
func (s *wasteService) decrementPantry(ctx context.Context, event WasteEvent, unit string) {
	if s.pantry == nil {
		return
	}
	_, err := s.pantry.ApplyDelta(ctx, PantryDelta{
		UserID:        event.UserID,
		IngredientID:  event.IngredientID,
		Unit:          unit,
		QuantityDelta: -event.Quantity,
		Source:        "waste",
	})
	if err != nil && !domainagg.IsCode(err, domainagg.CodeValidation) && !domainagg.IsCode(err, domainagg.CodeNotFound) {
		s.log.Warn("pantry decrement failed", "ingredient_id", event.IngredientID, "error", err)
	}
}

func (s *wasteService) ListSince(ctx context.Context, userID uuid.UUID, horizonDays int) ([]*types.WasteLogEntry, error) {
	const op = "waste.list"
	if userID == uuid.Nil {
		return nil, dataagg.MapError(op, dataagg.ValidationError("user_id is required"))
	}
	if horizonDays <= 0 {
		horizonDays = 30
	}
	since := s.clock().AddDate(0, 0, -horizonDays)
	out, err := s.wastes.GetByUserSince(ctx, nil, userID, since)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return out, nil
}
