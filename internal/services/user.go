package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	dataagg "github.com/smartmeal/smartmeal-backend/internal/data/aggregates"
	"github.com/smartmeal/smartmeal-backend/internal/data/repos"
	types "github.com/smartmeal/smartmeal-backend/internal/domain"
	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
)

type UserService interface {
	CreateUser(ctx context.Context, email, fullName string) (*types.AppUser, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*types.AppUser, error)
}

type userService struct {
	users repos.UserRepo
	log   *logger.Logger
}

func NewUserService(users repos.UserRepo, baseLog *logger.Logger) UserService {
	return &userService{users: users, log: baseLog.With("service", "UserService")}
}

func (s *userService) CreateUser(ctx context.Context, email, fullName string) (*types.AppUser, error) {
	const op = "user.create"

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, dataagg.MapError(op, dataagg.ValidationError("a valid email is required"))
	}

	u := &types.AppUser{
		ID:       uuid.New(),
		Email:    email,
		FullName: strings.TrimSpace(fullName),
	}
	created, err := s.users.Create(ctx, nil, []*types.AppUser{u})
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return created[0], nil
}

func (s *userService) GetUser(ctx context.Context, userID uuid.UUID) (*types.AppUser, error) {
	const op = "user.get"

	if userID == uuid.Nil {
		return nil, dataagg.MapError(op, dataagg.ValidationError("user_id is required"))
	}
	u, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if u == nil {
		return nil, dataagg.MapError(op, dataagg.NotFoundError(fmt.Sprintf("user %s not found", userID)))
	}
	return u, nil
}
