package repository

import (
	"context"
	"edu_portal/internal/model"
	"edu_portal/pkg/apiclient"
	"net/http"
)

type AdminRepository struct {
	Client *apiclient.Client
}

func NewAdminRepository(client *apiclient.Client) *AdminRepository {
	return &AdminRepository{Client: client}
}

func (r *AdminRepository) Users(ctx context.Context, token string) ([]model.User, error) {
	var users []model.User
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/admin/users",
		Token:  token,
	}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *AdminRepository) User(ctx context.Context, token string, id int) (*model.User, error) {
	var user model.User
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   apiclient.PathID("/admin/users", id),
		Route:  "/admin/users/{id}",
		Token:  token,
	}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
