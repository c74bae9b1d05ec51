package repository

import (
	"context"
	"edu_portal/internal/model"
	"edu_portal/pkg/apiclient"
	"net/http"
)

type PaymentRepository struct {
	Client *apiclient.Client
}

func NewPaymentRepository(client *apiclient.Client) *PaymentRepository {
	return &PaymentRepository{Client: client}
}

func (r *PaymentRepository) Prepare(ctx context.Context, token string, req *model.PaymentPrepareRequest) (*model.PaymentPrepareResponse, error) {
	var resp model.PaymentPrepareResponse
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/payments/prepare",
		Token:  token,
		JSON:   req,
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *PaymentRepository) Confirm(ctx context.Context, token string, req *model.PaymentConfirmRequest) (*model.PaymentConfirmResponse, error) {
	var resp model.PaymentConfirmResponse
	if err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/payments/confirm",
		Token:  token,
		JSON:   req,
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
