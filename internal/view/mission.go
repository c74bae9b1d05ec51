package view

import (
	"fmt"

	"edu_portal/internal/model"
	"edu_portal/internal/service"
)

type DetailKind string

const (
	KindMultipleChoice DetailKind = "multiple_choice"
	KindCodeSubmission DetailKind = "code_submission"
	KindUnsupported    DetailKind = "unsupported"
)

type OptionView struct {
	Index   int
	Label   string
	Checked bool
}

// ResultView 判题结果。没有输出或输出为空时 HasOutput 为 false，模板不渲染输出区域
type ResultView struct {
	Correct   bool
	Message   string
	Output    string
	HasOutput bool
}

func NewResultView(r *model.SubmissionResult) *ResultView {
	if r == nil {
		return nil
	}
	v := &ResultView{Correct: r.IsCorrect, Message: "오답입니다. 다시 시도해보세요."}
	if r.IsCorrect {
		v.Message = "정답입니다!"
	}
	if r.Output != nil && *r.Output != "" {
		v.Output = *r.Output
		v.HasOutput = true
	}
	return v
}

type MissionListView struct {
	Missions []model.MissionSummary
}

// MissionDetailView 详情页只含与题型对应的那组字段
type MissionDetailView struct {
	ID       int
	Question string
	Course   string
	Type     model.MissionType
	Kind     DetailKind

	Options []OptionView

	ProblemDescription string
	Code               string

	Result *ResultView
}

func NewMissionList(v service.MissionView) MissionListView {
	missions := v.Missions
	if missions == nil {
		missions = []model.MissionSummary{}
	}
	return MissionListView{Missions: missions}
}

// NewMissionDetail 按载荷类型选择表单。代码框优先显示刚提交的代码，其次是初始代码
func NewMissionDetail(v service.MissionView) (MissionDetailView, error) {
	m := v.Mission
	if m == nil {
		return MissionDetailView{}, fmt.Errorf("detail view without mission")
	}

	d := MissionDetailView{
		ID:       m.ID,
		Question: m.Question,
		Course:   m.Course,
		Type:     m.Type,
		Result:   NewResultView(v.Result),
	}

	switch p := m.Payload.(type) {
	case *model.MultipleChoicePayload:
		d.Kind = KindMultipleChoice
		selected := -1
		if a, ok := v.Draft.(model.OptionAnswer); ok {
			selected = a.Index
		}
		d.Options = make([]OptionView, len(p.Options))
		for i, label := range p.Options {
			d.Options[i] = OptionView{Index: i, Label: label, Checked: i == selected}
		}
	case *model.CodeSubmissionPayload:
		d.Kind = KindCodeSubmission
		d.ProblemDescription = p.ProblemDescription
		if a, ok := v.Draft.(model.CodeAnswer); ok {
			d.Code = a.Code
		} else if p.InitialCode != nil {
			d.Code = *p.InitialCode
		}
	case *model.UnknownPayload:
		d.Kind = KindUnsupported
	default:
		return MissionDetailView{}, fmt.Errorf("unexpected payload %T", m.Payload)
	}

	return d, nil
}
