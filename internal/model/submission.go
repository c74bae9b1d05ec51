package model

import "encoding/json"

// Answer 学习者的一次作答：选项下标或代码，二者不会同时存在
type Answer interface {
	answer()
	json.Marshaler
}

type OptionAnswer struct {
	Index int
}

type CodeAnswer struct {
	Code string
}

func (OptionAnswer) answer() {}
func (CodeAnswer) answer()   {}

func (a OptionAnswer) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		SelectedOption int `json:"selected_option"`
	}{a.Index})
}

func (a CodeAnswer) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code string `json:"code"`
	}{a.Code})
}

// SubmissionResult 判题结果，Output 可能缺失
type SubmissionResult struct {
	IsCorrect bool    `json:"is_correct"`
	Output    *string `json:"output,omitempty"`
}
