package service

import (
	"context"
	"edu_portal/internal/model"
	"edu_portal/internal/util"
	"encoding/json"
	"errors"
	"net/url"
	"testing"
)

type fakeCatalog struct {
	missions  []model.MissionSummary
	detail    map[int]*model.Mission
	result    *model.SubmissionResult
	listErr   error
	getErr    error
	submitErr error

	lists   int
	gets    []int
	submits []model.Answer
	tokens  []string
}

func (f *fakeCatalog) List(ctx context.Context, token string) ([]model.MissionSummary, error) {
	f.lists++
	f.tokens = append(f.tokens, token)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.missions, nil
}

func (f *fakeCatalog) Get(ctx context.Context, token string, id int) (*model.Mission, error) {
	f.gets = append(f.gets, id)
	f.tokens = append(f.tokens, token)
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.detail[id], nil
}

func (f *fakeCatalog) Submit(ctx context.Context, token string, id int, answer model.Answer) (*model.SubmissionResult, error) {
	f.submits = append(f.submits, answer)
	f.tokens = append(f.tokens, token)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.result, nil
}

func mcMission(id int, options ...string) *model.Mission {
	return &model.Mission{
		ID:       id,
		Question: "2+2?",
		Type:     model.MultipleChoice,
		Payload:  &model.MultipleChoicePayload{Options: options},
	}
}

func TestOpenEmptyList(t *testing.T) {
	catalog := &fakeCatalog{missions: []model.MissionSummary{}}
	s := NewMissionService(catalog)

	v, err := s.Open(context.Background(), "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if v.Mode != ListView || len(v.Missions) != 0 {
		t.Fatalf("view = %+v", v)
	}
}

func TestOpenAuthFailure(t *testing.T) {
	catalog := &fakeCatalog{listErr: &util.APIError{Kind: util.ErrAuth, Status: 401}}
	s := NewMissionService(catalog)

	v, err := s.Open(context.Background(), "")
	if !errors.Is(err, util.ErrAuth) {
		t.Fatalf("err = %v, want ErrAuth", err)
	}
	if v.Mode != ListView {
		t.Fatalf("mode = %v, want list", v.Mode)
	}
}

func TestSelectFetchesEveryTime(t *testing.T) {
	catalog := &fakeCatalog{detail: map[int]*model.Mission{42: mcMission(42, "3", "4")}}
	s := NewMissionService(catalog)

	for i := 0; i < 2; i++ {
		v, err := s.Select(context.Background(), "tok", 42)
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		if v.Mode != DetailView || v.Mission.ID != 42 {
			t.Fatalf("view = %+v", v)
		}
		if v.Result != nil || v.Draft != nil {
			t.Fatal("fresh detail view must not carry a result or draft")
		}
	}
	if len(catalog.gets) != 2 {
		t.Fatalf("detail fetched %d times, want 2", len(catalog.gets))
	}
}

func TestSelectFailureStaysOnList(t *testing.T) {
	catalog := &fakeCatalog{getErr: &util.APIError{Kind: util.ErrServer, Status: 404, Detail: "Not Found"}}
	s := NewMissionService(catalog)

	v, err := s.Select(context.Background(), "", 99)
	if err == nil || v.Mode != ListView {
		t.Fatalf("view = %+v err = %v", v, err)
	}
}

func TestSubmitMultipleChoice(t *testing.T) {
	catalog := &fakeCatalog{
		detail: map[int]*model.Mission{42: mcMission(42, "3", "4", "5")},
		result: &model.SubmissionResult{IsCorrect: true},
	}
	s := NewMissionService(catalog)

	v, err := s.Select(context.Background(), "tok", 42)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	v, err = s.Submit(context.Background(), "tok", v, model.OptionAnswer{Index: 0})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if v.Mode != DetailView || v.Result == nil || !v.Result.IsCorrect {
		t.Fatalf("view = %+v", v)
	}
	if len(catalog.submits) != 1 {
		t.Fatalf("submits = %d, want 1", len(catalog.submits))
	}
	body, _ := json.Marshal(catalog.submits[0])
	if string(body) != `{"selected_option":0}` {
		t.Fatalf("body = %s", body)
	}
}

func TestSubmitOutOfRangeIsLocal(t *testing.T) {
	catalog := &fakeCatalog{detail: map[int]*model.Mission{1: mcMission(1, "a", "b")}}
	s := NewMissionService(catalog)

	v, _ := s.Select(context.Background(), "", 1)
	_, err := s.Submit(context.Background(), "", v, model.OptionAnswer{Index: 5})
	if !errors.Is(err, util.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if len(catalog.submits) != 0 {
		t.Fatal("no request should be sent for an invalid option")
	}
}

func TestSubmitWrongVariant(t *testing.T) {
	catalog := &fakeCatalog{detail: map[int]*model.Mission{1: mcMission(1, "a")}}
	s := NewMissionService(catalog)

	v, _ := s.Select(context.Background(), "", 1)
	_, err := s.Submit(context.Background(), "", v, model.CodeAnswer{Code: "x"})
	if !errors.Is(err, util.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if len(catalog.submits) != 0 {
		t.Fatal("no request should be sent for a mismatched answer")
	}
}

func TestSubmitRequiresDetailView(t *testing.T) {
	s := NewMissionService(&fakeCatalog{})
	_, err := s.Submit(context.Background(), "", MissionView{Mode: ListView}, model.OptionAnswer{})
	if !errors.Is(err, util.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestSubmitUnknownType(t *testing.T) {
	catalog := &fakeCatalog{detail: map[int]*model.Mission{3: {
		ID: 3, Type: "essay", Payload: &model.UnknownPayload{Type: "essay"},
	}}}
	s := NewMissionService(catalog)

	v, _ := s.Select(context.Background(), "", 3)
	_, err := s.Submit(context.Background(), "", v, model.CodeAnswer{})
	if !errors.Is(err, util.ErrUnhandledVariant) {
		t.Fatalf("err = %v, want ErrUnhandledVariant", err)
	}
}

func TestSubmitFailureKeepsView(t *testing.T) {
	catalog := &fakeCatalog{
		detail:    map[int]*model.Mission{1: mcMission(1, "a")},
		submitErr: &util.APIError{Kind: util.ErrNetwork},
	}
	s := NewMissionService(catalog)

	v, _ := s.Select(context.Background(), "", 1)
	after, err := s.Submit(context.Background(), "", v, model.OptionAnswer{Index: 0})
	if !errors.Is(err, util.ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}
	if after.Mode != DetailView || after.Mission.ID != 1 || after.Result != nil {
		t.Fatalf("view = %+v", after)
	}
	if len(catalog.submits) != 1 {
		t.Fatalf("submits = %d, want exactly 1 (no retry)", len(catalog.submits))
	}
}

func TestBackDiscardsDraft(t *testing.T) {
	catalog := &fakeCatalog{missions: []model.MissionSummary{{ID: 1}}}
	s := NewMissionService(catalog)

	v, err := s.Back(context.Background(), "")
	if err != nil {
		t.Fatalf("back: %v", err)
	}
	if v.Mode != ListView || v.Draft != nil || v.Mission != nil {
		t.Fatalf("view = %+v", v)
	}
	if catalog.lists != 1 {
		t.Fatalf("list fetched %d times, want 1", catalog.lists)
	}
}

func TestParseAnswer(t *testing.T) {
	_, err := ParseAnswer(model.MultipleChoice, url.Values{})
	if !errors.Is(err, util.ErrValidation) || util.ErrorDetail(err) != "답안을 선택해주세요." {
		t.Fatalf("empty selection: err = %v", err)
	}

	_, err = ParseAnswer(model.MultipleChoice, url.Values{"selected_option": {"x"}})
	if !errors.Is(err, util.ErrValidation) {
		t.Fatalf("bad selection: err = %v", err)
	}

	a, err := ParseAnswer(model.MultipleChoice, url.Values{"selected_option": {"2"}})
	if err != nil || a != (model.OptionAnswer{Index: 2}) {
		t.Fatalf("answer = %v err = %v", a, err)
	}

	a, err = ParseAnswer(model.CodeSubmission, url.Values{"code": {"print(1)"}})
	if err != nil || a != (model.CodeAnswer{Code: "print(1)"}) {
		t.Fatalf("answer = %v err = %v", a, err)
	}

	// 空代码也允许提交
	a, err = ParseAnswer(model.CodeSubmission, url.Values{})
	if err != nil || a != (model.CodeAnswer{}) {
		t.Fatalf("empty code: answer = %v err = %v", a, err)
	}

	_, err = ParseAnswer("essay", url.Values{})
	if !errors.Is(err, util.ErrUnhandledVariant) {
		t.Fatalf("unknown type: err = %v", err)
	}
}

func TestSubmitAnswerForwardsToken(t *testing.T) {
	catalog := &fakeCatalog{result: &model.SubmissionResult{}}
	s := NewMissionService(catalog)

	if _, err := s.SubmitAnswer(context.Background(), "tok", 5, model.CodeSubmission, model.CodeAnswer{Code: "x"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(catalog.tokens) != 1 || catalog.tokens[0] != "tok" {
		t.Fatalf("tokens = %v", catalog.tokens)
	}

	if _, err := s.SubmitAnswer(context.Background(), "", 5, model.MultipleChoice, model.CodeAnswer{}); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("mismatched answer: err = %v", err)
	}
}
