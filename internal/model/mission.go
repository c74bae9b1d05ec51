package model

import (
	"encoding/json"
	"fmt"
)

type MissionType string

const (
	MultipleChoice MissionType = "multiple_choice"
	CodeSubmission MissionType = "code_submission"
)

type ExamType string

const (
	Midterm ExamType = "midterm"
	Final   ExamType = "final"
)

// MissionSummary 列表页使用的字段
type MissionSummary struct {
	ID       int         `json:"id"`
	Question string      `json:"question"`
	Course   string      `json:"course"`
	Type     MissionType `json:"type"`
	ExamType ExamType    `json:"exam_type"`
}

// Mission 完整的题目。Payload 的具体类型只由 Type 决定
type Mission struct {
	ID       int
	Course   string
	Question string
	Type     MissionType
	ExamType ExamType
	Payload  MissionPayload
}

// MissionPayload 是封闭的联合类型，只能是下面三种之一
type MissionPayload interface {
	missionPayload()
}

type MultipleChoicePayload struct {
	Options []string `json:"options"`
	// CorrectAnswer 前端从不使用
	CorrectAnswer string `json:"correct_answer,omitempty"`
}

type CodeSubmissionPayload struct {
	ProblemDescription string            `json:"problem_description"`
	InitialCode        *string           `json:"initial_code,omitempty"`
	TestCases          []json.RawMessage `json:"test_cases,omitempty"`
}

// UnknownPayload 无法识别的题型，或题型与载荷对不上
type UnknownPayload struct {
	Type MissionType
}

func (*MultipleChoicePayload) missionPayload() {}
func (*CodeSubmissionPayload) missionPayload() {}
func (*UnknownPayload) missionPayload()        {}

type missionWire struct {
	ID             int             `json:"id"`
	Course         string          `json:"course"`
	Question       string          `json:"question"`
	Type           MissionType     `json:"type"`
	ExamType       ExamType        `json:"exam_type"`
	MultipleChoice json.RawMessage `json:"multiple_choice,omitempty"`
	CodeSubmission json.RawMessage `json:"code_submission,omitempty"`
}

func (m *Mission) UnmarshalJSON(data []byte) error {
	var w missionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	m.ID = w.ID
	m.Course = w.Course
	m.Question = w.Question
	m.Type = w.Type
	m.ExamType = w.ExamType

	switch w.Type {
	case MultipleChoice:
		if !hasPayload(w.MultipleChoice) {
			m.Payload = &UnknownPayload{Type: w.Type}
			break
		}
		p := &MultipleChoicePayload{}
		if err := json.Unmarshal(w.MultipleChoice, p); err != nil {
			return fmt.Errorf("mission %d: multiple_choice payload: %w", w.ID, err)
		}
		if len(p.Options) == 0 {
			m.Payload = &UnknownPayload{Type: w.Type}
			break
		}
		m.Payload = p
	case CodeSubmission:
		if !hasPayload(w.CodeSubmission) {
			m.Payload = &UnknownPayload{Type: w.Type}
			break
		}
		p := &CodeSubmissionPayload{}
		if err := json.Unmarshal(w.CodeSubmission, p); err != nil {
			return fmt.Errorf("mission %d: code_submission payload: %w", w.ID, err)
		}
		m.Payload = p
	default:
		m.Payload = &UnknownPayload{Type: w.Type}
	}

	return nil
}

func (m Mission) MarshalJSON() ([]byte, error) {
	w := missionWire{
		ID:       m.ID,
		Course:   m.Course,
		Question: m.Question,
		Type:     m.Type,
		ExamType: m.ExamType,
	}

	var err error
	switch p := m.Payload.(type) {
	case *MultipleChoicePayload:
		w.MultipleChoice, err = json.Marshal(p)
	case *CodeSubmissionPayload:
		w.CodeSubmission, err = json.Marshal(p)
	}
	if err != nil {
		return nil, err
	}

	return json.Marshal(w)
}

// 载荷缺失或为 null 时题目无法作答，按无法识别处理
func hasPayload(raw json.RawMessage) bool {
	return len(raw) != 0 && string(raw) != "null"
}

// MissionCreate 管理员创建题目的请求体
type MissionCreate struct {
	Course         string                 `json:"course"`
	Question       string                 `json:"question"`
	Type           MissionType            `json:"type"`
	ExamType       ExamType               `json:"exam_type"`
	MultipleChoice *MultipleChoicePayload `json:"multiple_choice,omitempty"`
	CodeSubmission *CodeSubmissionPayload `json:"code_submission,omitempty"`
}
