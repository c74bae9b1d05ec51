package repository

import (
	"context"
	"edu_portal/internal/model"
	"edu_portal/pkg/apiclient"
	"net/http"
	"net/url"
)

type AuthRepository struct {
	Client *apiclient.Client
}

func NewAuthRepository(client *apiclient.Client) *AuthRepository {
	return &AuthRepository{Client: client}
}

// Token 表单编码的用户名密码换取 access_token
func (r *AuthRepository) Token(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	var resp model.TokenResponse
	err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/auth/token",
		Form: url.Values{
			"username": {username},
			"password": {password},
		},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *AuthRepository) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	var user model.User
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		JSON:   req,
	}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
