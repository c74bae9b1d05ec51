package service

import (
	"context"
	"edu_portal/internal/model"
	"edu_portal/internal/repository"
	"edu_portal/internal/util"
	"fmt"
	"strings"
)

type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type RegisterForm struct {
	Username    string `form:"username" binding:"required"`
	Email       string `form:"email" binding:"required,email"`
	Password    string `form:"password" binding:"required"`
	Nickname    string `form:"nickname"`
	PhoneNumber string `form:"phone_number"`
}

type AuthService struct {
	AuthRepo *repository.AuthRepository
	UserRepo *repository.UserRepository
}

func NewAuthService(authRepo *repository.AuthRepository, userRepo *repository.UserRepository) *AuthService {
	return &AuthService{
		AuthRepo: authRepo,
		UserRepo: userRepo,
	}
}

// Login 返回后端签发的 access_token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return "", util.ValidationError("아이디와 비밀번호를 입력해주세요.")
	}

	resp, err := s.AuthRepo.Token(ctx, username, req.Password)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if resp.AccessToken == "" {
		return "", &util.APIError{Kind: util.ErrServer, Detail: "access_token이 없습니다."}
	}
	return resp.AccessToken, nil
}

// Register 新账号总是启用状态的学生
func (s *AuthService) Register(ctx context.Context, form RegisterForm) (*model.User, error) {
	req := &model.RegisterRequest{
		Username:    strings.TrimSpace(form.Username),
		Email:       strings.TrimSpace(form.Email),
		Password:    form.Password,
		Nickname:    strings.TrimSpace(form.Nickname),
		PhoneNumber: strings.TrimSpace(form.PhoneNumber),
		IsActive:    true,
		Role:        model.Student,
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, util.ValidationError("필수 항목을 입력해주세요.")
	}

	user, err := s.AuthRepo.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return user, nil
}

// CurrentUser 每次页面访问都向后端确认令牌
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}
	return s.UserRepo.Me(ctx, token)
}
