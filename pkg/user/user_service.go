package user

import (
	"context"
	"fmt"
	"time"
)

type Service interface {
	GetUserByUid(ctx context.Context, uid string) (User, error)
	GetCurrentUser(ctx context.Context) (User, error)
	CreateUser(ctx context.Context, user User) (User, error)
	UpdateCurrentUser(ctx context.Context, user User) (User, error)
	DeleteCurrentUser(ctx context.Context) error
}

type ServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return s.repo.GetUserByUid(ctx, uid)
}

func (s *ServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	return CurrentUser(ctx)
}

func (s *ServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	if user.Uid == "" {
		return User{}, fmt.Errorf("user uid must not be empty")
	}
	if user.Settings.Timezone == "" {
		user.Settings.Timezone = "UTC"
	}
	if user.Settings.WeekFirstDay < time.Sunday || user.Settings.WeekFirstDay > time.Saturday {
		user.Settings.WeekFirstDay = time.Monday
	}
	return s.repo.CreateUser(ctx, user)
}

func (s *ServiceImpl) UpdateCurrentUser(ctx context.Context, user User) (User, error) {
	uid, err := CurrentUid(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.UpdateUser(ctx, uid, user)
}

func (s *ServiceImpl) DeleteCurrentUser(ctx context.Context) error {
	uid, err := CurrentUid(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteUser(ctx, uid)
}
