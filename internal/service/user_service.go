package service

import (
	"context"
	"edu_portal/internal/model"
	"edu_portal/internal/repository"
	"edu_portal/internal/util"
	"fmt"
	"strings"
)

type ProfileForm struct {
	Nickname string `form:"nickname"`
}

// UserService 当前登录用户的资料
type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) Profile(ctx context.Context, token string) (*model.User, error) {
	user, err := s.UserRepo.Me(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, token string, form ProfileForm) (*model.User, error) {
	nickname := strings.TrimSpace(form.Nickname)
	if nickname == "" {
		return nil, util.ValidationError("닉네임을 입력해주세요.")
	}

	user, err := s.UserRepo.UpdateMe(ctx, token, model.UserUpdate{Nickname: nickname})
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func (s *UserService) DeleteAccount(ctx context.Context, token string) error {
	if err := s.UserRepo.DeleteMe(ctx, token); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
