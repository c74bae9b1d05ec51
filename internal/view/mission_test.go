package view

import (
	"bytes"
	"edu_portal/internal/model"
	"edu_portal/internal/service"
	"encoding/json"
	"strings"
	"testing"
)

func renderPage(t *testing.T, name string, page *Page) string {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, name, page); err != nil {
		t.Fatalf("render %s: %v", name, err)
	}
	return buf.String()
}

func detailPage(t *testing.T, v service.MissionView) string {
	t.Helper()
	d, err := NewMissionDetail(v)
	if err != nil {
		t.Fatalf("new mission detail: %v", err)
	}
	return renderPage(t, "mission_detail", &Page{Title: d.Question, Data: d})
}

func TestMultipleChoiceDetail(t *testing.T) {
	html := detailPage(t, service.MissionView{
		Mode: service.DetailView,
		Mission: &model.Mission{
			ID:       42,
			Question: "2+2?",
			Course:   "수학",
			Type:     model.MultipleChoice,
			Payload:  &model.MultipleChoicePayload{Options: []string{"3", "4", "5"}},
		},
	})

	if n := strings.Count(html, `type="radio"`); n != 3 {
		t.Fatalf("radio count = %d, want 3", n)
	}
	if n := strings.Count(html, `type="submit"`); n != 1 {
		t.Fatalf("submit buttons = %d, want 1", n)
	}
	if !strings.Contains(html, `action="/missions/42/submit"`) {
		t.Fatal("form action missing")
	}
	if strings.Contains(html, `checked`) {
		t.Fatal("no option should be preselected")
	}
	if strings.Contains(html, `id="result"`) {
		t.Fatal("result block should be absent before submission")
	}
}

func TestMultipleChoiceDraftIsChecked(t *testing.T) {
	d, err := NewMissionDetail(service.MissionView{
		Mode:    service.DetailView,
		Mission: &model.Mission{ID: 1, Type: model.MultipleChoice, Payload: &model.MultipleChoicePayload{Options: []string{"a", "b"}}},
		Draft:   model.OptionAnswer{Index: 1},
	})
	if err != nil {
		t.Fatalf("new mission detail: %v", err)
	}
	if d.Options[0].Checked || !d.Options[1].Checked {
		t.Fatalf("options = %+v", d.Options)
	}
}

func TestCodeSubmissionSeedsInitialCode(t *testing.T) {
	initial := "def solve():\n    pass"
	html := detailPage(t, service.MissionView{
		Mode: service.DetailView,
		Mission: &model.Mission{
			ID:      7,
			Type:    model.CodeSubmission,
			Payload: &model.CodeSubmissionPayload{ProblemDescription: "**두 수**를 더하세요", InitialCode: &initial},
		},
	})

	if !strings.Contains(html, `<textarea id="editor" name="code"`) {
		t.Fatal("code editor missing")
	}
	if !strings.Contains(html, "def solve():") {
		t.Fatal("initial code not seeded")
	}
	if !strings.Contains(html, "<strong>두 수</strong>") {
		t.Fatal("problem description should be rendered as markdown")
	}
	if strings.Contains(html, `type="radio"`) {
		t.Fatal("code mission must not render options")
	}
}

func TestCodeSubmissionDraftWins(t *testing.T) {
	initial := "initial"
	d, err := NewMissionDetail(service.MissionView{
		Mode:    service.DetailView,
		Mission: &model.Mission{ID: 7, Type: model.CodeSubmission, Payload: &model.CodeSubmissionPayload{InitialCode: &initial}},
		Draft:   model.CodeAnswer{Code: "mine"},
	})
	if err != nil {
		t.Fatalf("new mission detail: %v", err)
	}
	if d.Code != "mine" {
		t.Fatalf("code = %q, want draft", d.Code)
	}
}

func TestUnsupportedMissionType(t *testing.T) {
	html := detailPage(t, service.MissionView{
		Mode:    service.DetailView,
		Mission: &model.Mission{ID: 9, Type: "essay", Payload: &model.UnknownPayload{Type: "essay"}},
	})

	if !strings.Contains(html, "지원하지 않는 미션 유형입니다: essay") {
		t.Fatal("unsupported message missing")
	}
	if strings.Contains(html, "<form id=") {
		t.Fatal("no answer form expected for an unsupported type")
	}
}

func TestResultWithoutOutput(t *testing.T) {
	html := detailPage(t, service.MissionView{
		Mode:    service.DetailView,
		Mission: &model.Mission{ID: 1, Type: model.MultipleChoice, Payload: &model.MultipleChoicePayload{Options: []string{"a"}}},
		Result:  &model.SubmissionResult{IsCorrect: true},
	})

	if !strings.Contains(html, "정답입니다!") {
		t.Fatal("correct message missing")
	}
	if strings.Contains(html, "result-output") {
		t.Fatal("output area should be absent when the result has no output")
	}
}

func TestResultWithOutput(t *testing.T) {
	out := "Expected 3, got 4"
	v := NewResultView(&model.SubmissionResult{IsCorrect: false, Output: &out})
	if v.Correct || !v.HasOutput || v.Output != out || v.Message != "오답입니다. 다시 시도해보세요." {
		t.Fatalf("result view = %+v", v)
	}

	empty := ""
	if NewResultView(&model.SubmissionResult{Output: &empty}).HasOutput {
		t.Fatal("empty output should not be shown")
	}
}

func TestEmptyMissionList(t *testing.T) {
	html := renderPage(t, "missions", &Page{Data: NewMissionList(service.MissionView{Mode: service.ListView})})
	if !strings.Contains(html, "표시할 미션이 없습니다.") {
		t.Fatal("empty list message missing")
	}
}

func TestNavLabels(t *testing.T) {
	tests := []struct {
		nav  Nav
		want string
		href string
	}{
		{NavFor(&model.User{Username: "kim", Role: model.Student}, true), "kim의 프로필", "/profile"},
		{NavFor(&model.User{Username: "root", Role: model.Admin}, true), "관리자 대시보드", "/admin"},
		{NavFor(nil, true), "내 프로필", "/profile"},
	}
	for _, tt := range tests {
		if got := tt.nav.ProfileLabel(); got != tt.want {
			t.Fatalf("label = %q, want %q", got, tt.want)
		}
		if got := tt.nav.ProfileHref(); got != tt.href {
			t.Fatalf("href = %q, want %q", got, tt.href)
		}
	}

	if NavFor(nil, false).LoggedIn {
		t.Fatal("no token means logged out")
	}
}

func TestLoggedOutNavRender(t *testing.T) {
	html := renderPage(t, "missions", &Page{Nav: NavFor(nil, false), Data: MissionListView{}})
	if !strings.Contains(html, `id="loginLink"`) || strings.Contains(html, `id="logoutLink"`) {
		t.Fatal("logged-out nav expected")
	}
}

func TestMultipleChoiceWithoutPayloadRendersNoForm(t *testing.T) {
	var m model.Mission
	if err := json.Unmarshal([]byte(`{"id":7,"question":"Q","type":"multiple_choice"}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	html := detailPage(t, service.MissionView{Mode: service.DetailView, Mission: &m})
	if !strings.Contains(html, "지원하지 않는 미션 유형입니다: multiple_choice") {
		t.Fatal("unsupported message missing")
	}
	if strings.Contains(html, "<form id=") || strings.Contains(html, `type="submit"`) {
		t.Fatal("no answer form expected without a payload")
	}
}
