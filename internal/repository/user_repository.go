package repository

import (
	"context"
	"edu_portal/internal/model"
	"edu_portal/pkg/apiclient"
	"net/http"
)

type UserRepository struct {
	Client *apiclient.Client
}

func NewUserRepository(client *apiclient.Client) *UserRepository {
	return &UserRepository{Client: client}
}

func (r *UserRepository) Me(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/users/me",
		Token:  token,
	}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateMe(ctx context.Context, token string, update model.UserUpdate) (*model.User, error) {
	var user model.User
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodPut,
		Path:   "/users/me",
		Token:  token,
		JSON:   update,
	}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) DeleteMe(ctx context.Context, token string) error {
	return r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodDelete,
		Path:   "/users/me",
		Token:  token,
	}, nil)
}
