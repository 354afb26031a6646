package pantry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/smartmeal/smartmeal-backend/internal/domain"
	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
)

// PantryEntryRepo is the ledger of per-user, per-ingredient, per-unit
// quantities. Writes go through LockByKey + Create/UpdateAccumulate inside a
// caller-owned transaction; the row lock serializes concurrent deltas for the
// same key while leaving other keys uncontended.
type PantryEntryRepo interface {
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PantryEntry, error)
	GetByKey(ctx context.Context, tx *gorm.DB, userID, ingredientID uuid.UUID, unit string) (*types.PantryEntry, error)
	// LockByKey acquires a FOR UPDATE lock on the key's row. A nil result
	// with nil error means no row exists yet; the unique index on the triple
	// makes a duplicate first-insert race fail as a conflict.
	LockByKey(ctx context.Context, tx *gorm.DB, userID, ingredientID uuid.UUID, unit string) (*types.PantryEntry, error)
	Create(ctx context.Context, tx *gorm.DB, entry *types.PantryEntry) (*types.PantryEntry, error)
	UpdateAccumulate(ctx context.Context, tx *gorm.DB, id uuid.UUID, quantity float64, bestBefore *datatypes.Date) error
	GetExpiringBefore(ctx context.Context, tx *gorm.DB, userID uuid.UUID, cutoff time.Time) ([]*types.PantryEntry, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
}

type pantryEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPantryEntryRepo(db *gorm.DB, baseLog *logger.Logger) PantryEntryRepo {
	return &pantryEntryRepo{db: db, log: baseLog.With("repo", "PantryEntryRepo")}
}

func (r *pantryEntryRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PantryEntry, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.PantryEntry
	if err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("ingredient_id asc, unit asc").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *pantryEntryRepo) GetByKey(ctx context.Context, tx *gorm.DB, userID, ingredientID uuid.UUID, unit string) (*types.PantryEntry, error) {
	return r.findByKey(ctx, tx, userID, ingredientID, unit, false)
}

func (r *pantryEntryRepo) LockByKey(ctx context.Context, tx *gorm.DB, userID, ingredientID uuid.UUID, unit string) (*types.PantryEntry, error) {
	return r.findByKey(ctx, tx, userID, ingredientID, unit, true)
}

func (r *pantryEntryRepo) findByKey(ctx context.Context, tx *gorm.DB, userID, ingredientID uuid.UUID, unit string, forUpdate bool) (*types.PantryEntry, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(ctx)
	// sqlite has no row locks; its single writer serializes the transaction
	// instead, mirroring the production FOR UPDATE discipline.
	if forUpdate && t.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var row types.PantryEntry
	err := q.
		Where("user_id = ? AND ingredient_id = ? AND unit = ?", userID, ingredientID, unit).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *pantryEntryRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.PantryEntry) (*types.PantryEntry, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if err := t.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *pantryEntryRepo) UpdateAccumulate(ctx context.Context, tx *gorm.DB, id uuid.UUID, quantity float64, bestBefore *datatypes.Date) error {
	t := tx
	if t == nil {
		t = r.db
	}
	updates := map[string]any{
		"quantity":   quantity,
		"updated_at": time.Now().UTC(),
	}
	// A nil bestBefore means "unknown"; it never clears a stored date.
	if bestBefore != nil {
		updates["best_before"] = *bestBefore
	}
	return t.WithContext(ctx).
		Model(&types.PantryEntry{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *pantryEntryRepo) GetExpiringBefore(ctx context.Context, tx *gorm.DB, userID uuid.UUID, cutoff time.Time) ([]*types.PantryEntry, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.PantryEntry
	if err := t.WithContext(ctx).
		Where("user_id = ? AND best_before IS NOT NULL AND best_before <= ?", userID, datatypes.Date(cutoff)).
		Order("best_before asc").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *pantryEntryRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(ctx).Where("id = ?", id).Delete(&types.PantryEntry{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
