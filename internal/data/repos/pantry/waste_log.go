package pantry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/smartmeal/smartmeal-backend/internal/domain"
	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
)

// WasteLogRepo is append-only: no update or delete is exposed. Rows are
// returned ordered by logged_at ascending so aggregation over a horizon is
// deterministic.
type WasteLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.WasteLogEntry) (*types.WasteLogEntry, error)
	GetByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.WasteLogEntry, error)
	GetSince(ctx context.Context, tx *gorm.DB, since time.Time) ([]*types.WasteLogEntry, error)
}

type wasteLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWasteLogRepo(db *gorm.DB, baseLog *logger.Logger) WasteLogRepo {
	return &wasteLogRepo{db: db, log: baseLog.With("repo", "WasteLogRepo")}
}

func (r *wasteLogRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.WasteLogEntry) (*types.WasteLogEntry, error) {
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

func (r *wasteLogRepo) GetByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.WasteLogEntry, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.WasteLogEntry
	if err := t.WithContext(ctx).
		Where("user_id = ? AND logged_at >= ?", userID, since).
		Order("logged_at asc, id asc").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *wasteLogRepo) GetSince(ctx context.Context, tx *gorm.DB, since time.Time) ([]*types.WasteLogEntry, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.WasteLogEntry
	if err := t.WithContext(ctx).
		Where("logged_at >= ?", since).
		Order("logged_at asc, id asc").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
