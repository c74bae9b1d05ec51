package util

import (
	"errors"
	"fmt"
)

// 错误分类：每个用户操作的失败都会落到其中一类
var (
	ErrNetwork          = errors.New("network error")
	ErrAuth             = errors.New("not authenticated")
	ErrServer           = errors.New("server error")
	ErrValidation       = errors.New("validation error")
	ErrUnhandledVariant = errors.New("unhandled variant")
)

// APIError 后端调用失败。Kind 为上面的某个哨兵错误
type APIError struct {
	Kind   error
	Status int
	Detail string
	Err    error
}

func (e *APIError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.Status, e.Detail)
	default:
		return fmt.Sprintf("%s (status %d)", e.Kind, e.Status)
	}
}

func (e *APIError) Is(target error) bool {
	return target == e.Kind
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// LocalError 未发出任何网络请求就被拒绝的操作
type LocalError struct {
	Kind    error
	Message string
}

func (e *LocalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *LocalError) Is(target error) bool {
	return target == e.Kind
}

func ValidationError(message string) error {
	return &LocalError{Kind: ErrValidation, Message: message}
}

func UnhandledVariant(variant string) error {
	return &LocalError{Kind: ErrUnhandledVariant, Message: variant}
}

// ErrorDetail 取出后端返回的 detail 或本地错误的提示文本
func ErrorDetail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	var localErr *LocalError
	if errors.As(err, &localErr) {
		return localErr.Message
	}
	return ""
}
