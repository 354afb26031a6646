package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	dataagg "github.com/smartmeal/smartmeal-backend/internal/data/aggregates"
	"github.com/smartmeal/smartmeal-backend/internal/data/repos"
	types "github.com/smartmeal/smartmeal-backend/internal/domain"
	"github.com/smartmeal/smartmeal-backend/internal/platform/dbctx"
	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
)

// PantryDelta is one quantity adjustment against a (user, ingredient, unit)
// key. A positive delta restocks, a negative delta consumes. BestBefore, when
// set, wins over any shelf-life-derived date.
type PantryDelta struct {
	UserID        uuid.UUID
	IngredientID  uuid.UUID
	Unit          string
	QuantityDelta float64
	BestBefore    *time.Time
	Source        string
}

// PantryService owns the upsert path for pantry quantities. Each ApplyDelta
// runs in a single transaction holding the row lock for its key, so
// concurrent deltas against the same key serialize and both survive.
type PantryService interface {
	ApplyDelta(ctx context.Context, delta PantryDelta) (*types.PantryEntry, error)
	GetPantry(ctx context.Context, userID uuid.UUID) ([]*types.PantryEntry, error)
	GetExpiringSoon(ctx context.Context, userID uuid.UUID, withinDays int) ([]*types.PantryEntry, error)
}

type pantryService struct {
	runner   dataagg.TxRunner
	users    repos.UserRepo
	entries  repos.PantryEntryRepo
	resolver MetadataResolver
	events   EventPublisher
	clock    func() time.Time
	log      *logger.Logger
}

func NewPantryService(
	runner dataagg.TxRunner,
	users repos.UserRepo,
	entries repos.PantryEntryRepo,
	resolver MetadataResolver,
	events EventPublisher,
	baseLog *logger.Logger,
) PantryService {
	return &pantryService{
		runner:   runner,
		users:    users,
		entries:  entries,
		resolver: resolver,
		events:   events,
		clock:    func() time.Time { return time.Now().UTC() },
		log:      baseLog.With("service", "PantryService"),
	}
}

func (s *pantryService) ApplyDelta(ctx context.Context, delta PantryDelta) (*types.PantryEntry, error) {
	const op = "pantry.apply_delta"

	unit := strings.ToLower(strings.TrimSpace(delta.Unit))
	switch {
	case delta.UserID == uuid.Nil:
		return nil, dataagg.MapError(op, dataagg.ValidationError("user_id is required"))
	case delta.IngredientID == uuid.Nil:
		return nil, dataagg.MapError(op, dataagg.ValidationError("ingredient_id is required"))
	case unit == "":
		return nil, dataagg.MapError(op, dataagg.ValidationError("unit is required"))
	case delta.QuantityDelta == 0:
		return nil, dataagg.MapError(op, dataagg.ValidationError("quantity_delta must be non-zero"))
	}

	exists, err := s.users.Exists(ctx, nil, delta.UserID)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if !exists {
		return nil, dataagg.MapError(op, dataagg.NotFoundError(fmt.Sprintf("user %s not found", delta.UserID)))
	}

	var result *types.PantryEntry
	txErr := s.runner.InTx(ctx, func(dbc dbctx.Context) error {
		existing, err := s.entries.LockByKey(dbc.Ctx, dbc.Tx, delta.UserID, delta.IngredientID, unit)
		if err != nil {
			return err
		}

		if existing == nil {
			if delta.QuantityDelta < 0 {
				return dataagg.ValidationError("quantity cannot go negative: no pantry entry to consume from")
			}
			entry := &types.PantryEntry{
				UserID:       delta.UserID,
				IngredientID: delta.IngredientID,
				Unit:         unit,
				Quantity:     delta.QuantityDelta,
				BestBefore:   s.bestBeforeFor(dbc.Ctx, delta, true),
				Source:       strings.TrimSpace(delta.Source),
			}
			created, err := s.entries.Create(dbc.Ctx, dbc.Tx, entry)
			if err != nil {
				// two first-inserts racing on the same key: the loser hits
				// the unique index and the caller retries
				return err
			}
			result = created
			return nil
		}

		newQuantity := existing.Quantity + delta.QuantityDelta
		if newQuantity < 0 {
			return dataagg.ValidationError(fmt.Sprintf(
				"quantity cannot go negative: have %.3f, delta %.3f", existing.Quantity, delta.QuantityDelta))
		}

		newBestBefore := s.bestBeforeFor(dbc.Ctx, delta, false)
		if err := s.entries.UpdateAccumulate(dbc.Ctx, dbc.Tx, existing.ID, newQuantity, newBestBefore); err != nil {
			return err
		}
		existing.Quantity = newQuantity
		if newBestBefore != nil {
			existing.BestBefore = newBestBefore
		}
		result = existing
		return nil
	})
	if txErr != nil {
		return nil, dataagg.MapError(op, txErr)
	}

	s.publish(ctx, EventPantryUpdated, result)
	return result, nil
}

// bestBeforeFor computes the expiry date for this delta. An explicit date
// always wins. Otherwise the shelf life from the graph store anchors at the
// current day; in degraded mode a default-based date is only used when
// creating a row, never to overwrite a stored date on update.
func (s *pantryService) bestBeforeFor(ctx context.Context, delta PantryDelta, creating bool) *datatypes.Date {
	if delta.BestBefore != nil {
		d := datatypes.Date(delta.BestBefore.UTC())
		return &d
	}
	meta := s.resolver.Resolve(ctx, delta.IngredientID)
	if meta.Degraded && !creating {
		return nil
	}
	d := datatypes.Date(s.clock().AddDate(0, 0, meta.ShelfLifeDays))
	return &d
}

func (s *pantryService) GetPantry(ctx context.Context, userID uuid.UUID) ([]*types.PantryEntry, error) {
	const op = "pantry.get"
	if userID == uuid.Nil {
		return nil, dataagg.MapError(op, dataagg.ValidationError("user_id is required"))
	}
	out, err := s.entries.GetByUser(ctx, nil, userID)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return out, nil
}

func (s *pantryService) GetExpiringSoon(ctx context.Context, userID uuid.UUID, withinDays int) ([]*types.PantryEntry, error) {
	const op = "pantry.get_expiring"
	if userID == uuid.Nil {
		return nil, dataagg.MapError(op, dataagg.ValidationError("user_id is required"))
	}
	if withinDays <= 0 {
		withinDays = 3
	}
	cutoff := s.clock().AddDate(0, 0, withinDays)
	out, err := s.entries.GetExpiringBefore(ctx, nil, userID, cutoff)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return out, nil
}

func (s *pantryService) publish(ctx context.Context, event string, entry *types.PantryEntry) {
	if s.events == nil || entry == nil {
		return
	}
	if err := s.events.Publish(ctx, event, entry.UserID, entry); err != nil {
		s.log.Warn("event publish failed", "event", event, "error", err)
	}
}
