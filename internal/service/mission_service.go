package service

import (
	"context"
	"edu_portal/internal/model"
	"edu_portal/internal/util"
	"edu_portal/pkg/monitoring"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// MissionCatalog 题目目录客户端，见 repository.MissionRepository
type MissionCatalog interface {
	List(ctx context.Context, token string) ([]model.MissionSummary, error)
	Get(ctx context.Context, token string, id int) (*model.Mission, error)
	Submit(ctx context.Context, token string, id int, answer model.Answer) (*model.SubmissionResult, error)
}

type ViewMode int

const (
	ListView ViewMode = iota
	DetailView
)

func (m ViewMode) String() string {
	switch m {
	case ListView:
		return "list"
	case DetailView:
		return "detail"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// MissionView 题目页面的显式视图状态。每次状态迁移都返回新值，不共享
type MissionView struct {
	Mode     ViewMode
	Missions []model.MissionSummary
	Mission  *model.Mission
	// Draft 最近一次提交的答案，仅在 DetailView 中保留，返回列表即丢弃
	Draft  model.Answer
	Result *model.SubmissionResult
}

type MissionService struct {
	Missions MissionCatalog
}

func NewMissionService(missions MissionCatalog) *MissionService {
	return &MissionService{Missions: missions}
}

// Open 进入列表视图（页面初始状态）
func (s *MissionService) Open(ctx context.Context, token string) (MissionView, error) {
	missions, err := s.Missions.List(ctx, token)
	if err != nil {
		return MissionView{Mode: ListView}, fmt.Errorf("list missions: %w", err)
	}
	return MissionView{Mode: ListView, Missions: missions}, nil
}

// Select ListView -> DetailView(m)，每次都重新获取详情
func (s *MissionService) Select(ctx context.Context, token string, id int) (MissionView, error) {
	mission, err := s.Missions.Get(ctx, token, id)
	if err != nil {
		return MissionView{Mode: ListView}, fmt.Errorf("get mission %d: %w", id, err)
	}
	return MissionView{Mode: DetailView, Mission: mission}, nil
}

// Back DetailView -> ListView，未提交的答案随之丢弃
func (s *MissionService) Back(ctx context.Context, token string) (MissionView, error) {
	return s.Open(ctx, token)
}

// Submit 在详情视图中提交答案，只设置 Result/Draft，其它视图状态不变
func (s *MissionService) Submit(ctx context.Context, token string, v MissionView, answer model.Answer) (MissionView, error) {
	if v.Mode != DetailView || v.Mission == nil {
		return v, util.ValidationError("제출할 미션이 선택되지 않았습니다.")
	}
	if err := CheckAnswer(v.Mission.Payload, answer); err != nil {
		return v, err
	}

	result, err := s.dispatch(ctx, token, v.Mission.ID, v.Mission.Type, answer)
	if err != nil {
		return v, err
	}

	v.Draft = answer
	v.Result = result
	return v, nil
}

// SubmitAnswer 只知道题型时的提交入口（表单回传的隐藏字段）
func (s *MissionService) SubmitAnswer(ctx context.Context, token string, id int, missionType model.MissionType, answer model.Answer) (*model.SubmissionResult, error) {
	switch missionType {
	case model.MultipleChoice:
		if _, ok := answer.(model.OptionAnswer); !ok {
			return nil, util.ValidationError(promptSelectOption)
		}
	case model.CodeSubmission:
		if _, ok := answer.(model.CodeAnswer); !ok {
			return nil, util.ValidationError("코드를 입력해주세요.")
		}
	default:
		return nil, util.UnhandledVariant(string(missionType))
	}
	return s.dispatch(ctx, token, id, missionType, answer)
}

// 每次点击只发一次请求，不重试
func (s *MissionService) dispatch(ctx context.Context, token string, id int, missionType model.MissionType, answer model.Answer) (*model.SubmissionResult, error) {
	result, err := s.Missions.Submit(ctx, token, id, answer)
	if err != nil {
		return nil, fmt.Errorf("submit mission %d: %w", id, err)
	}
	monitoring.ObserveSubmission(string(missionType), result.IsCorrect)
	return result, nil
}

const promptSelectOption = "답안을 선택해주세요."

// CheckAnswer 答案必须与题目载荷属于同一变体
func CheckAnswer(payload model.MissionPayload, answer model.Answer) error {
	switch p := payload.(type) {
	case *model.MultipleChoicePayload:
		a, ok := answer.(model.OptionAnswer)
		if !ok {
			return util.ValidationError(promptSelectOption)
		}
		if a.Index < 0 || a.Index >= len(p.Options) {
			return util.ValidationError("잘못된 선택지입니다.")
		}
		return nil
	case *model.CodeSubmissionPayload:
		if _, ok := answer.(model.CodeAnswer); !ok {
			return util.ValidationError("코드를 입력해주세요.")
		}
		return nil
	case *model.UnknownPayload:
		return util.UnhandledVariant(string(p.Type))
	default:
		return util.UnhandledVariant(fmt.Sprintf("%T", payload))
	}
}

// ParseAnswer 从提交表单构造答案；选择题未选中时在发出请求前拒绝
func ParseAnswer(missionType model.MissionType, form url.Values) (model.Answer, error) {
	switch missionType {
	case model.MultipleChoice:
		raw := strings.TrimSpace(form.Get("selected_option"))
		if raw == "" {
			return nil, util.ValidationError(promptSelectOption)
		}
		index, err := strconv.Atoi(raw)
		if err != nil || index < 0 {
			return nil, util.ValidationError("잘못된 선택지입니다.")
		}
		return model.OptionAnswer{Index: index}, nil
	case model.CodeSubmission:
		return model.CodeAnswer{Code: form.Get("code")}, nil
	default:
		return nil, util.UnhandledVariant(string(missionType))
	}
}
