package repository

import (
	"context"
	"edu_portal/internal/model"
	"edu_portal/internal/util"
	"edu_portal/pkg/apiclient"
	"encoding/json"
	"net/http"
)

// MissionRepository 题目目录客户端：列表、详情、提交。每次都重新请求，不缓存
type MissionRepository struct {
	Client *apiclient.Client
}

func NewMissionRepository(client *apiclient.Client) *MissionRepository {
	return &MissionRepository{Client: client}
}

func (r *MissionRepository) List(ctx context.Context, token string) ([]model.MissionSummary, error) {
	var missions []model.MissionSummary
	err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/missions",
		Token:  token,
	}, &missions)
	if err != nil {
		return nil, err
	}
	if missions == nil {
		missions = []model.MissionSummary{}
	}
	return missions, nil
}

func (r *MissionRepository) Get(ctx context.Context, token string, id int) (*model.Mission, error) {
	var raw json.RawMessage
	err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   apiclient.PathID("/missions", id),
		Route:  "/missions/{id}",
		Token:  token,
	}, &raw)
	if err != nil {
		return nil, err
	}

	var mission model.Mission
	if err := json.Unmarshal(raw, &mission); err != nil {
		return nil, util.UnhandledVariant(err.Error())
	}
	return &mission, nil
}

func (r *MissionRepository) Submit(ctx context.Context, token string, id int, answer model.Answer) (*model.SubmissionResult, error) {
	var result model.SubmissionResult
	err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   apiclient.PathID("/missions", id, "/submit"),
		Route:  "/missions/{id}/submit",
		Token:  token,
		JSON:   answer,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *MissionRepository) Create(ctx context.Context, token string, mission *model.MissionCreate) (*model.Mission, error) {
	var created model.Mission
	err := r.Client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/missions",
		Token:  token,
		JSON:   mission,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}
