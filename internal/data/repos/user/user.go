package user

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/smartmeal/smartmeal-backend/internal/domain"
	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, users []*types.AppUser) ([]*types.AppUser, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.AppUser, error)
	Exists(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (bool, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.AppUser) ([]*types.AppUser, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(users) == 0 {
		return []*types.AppUser{}, nil
	}
	if err := t.WithContext(ctx).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.AppUser, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.AppUser
	if err := t.WithContext(ctx).Where("id = ?", userID).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *userRepo) Exists(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var count int64
	if err := t.WithContext(ctx).
		Model(&types.AppUser{}).
		Where("id = ?", userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
