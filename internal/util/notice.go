package util

import (
	"errors"
	"fmt"
)

const (
	NoticeAuth    = "로그인이 필요합니다. 다시 로그인해주세요."
	NoticeNetwork = "서버에 연결할 수 없습니다. 네트워크 상태를 확인해주세요."
)

// Notice 把一次用户操作的错误转换成唯一一条可见提示
func Notice(action string, err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrAuth):
		return NoticeAuth
	case errors.Is(err, ErrNetwork):
		return NoticeNetwork
	case errors.Is(err, ErrValidation):
		return ErrorDetail(err)
	case errors.Is(err, ErrUnhandledVariant):
		return fmt.Sprintf("지원하지 않는 미션 유형입니다: %s", ErrorDetail(err))
	}

	if detail := ErrorDetail(err); detail != "" {
		return fmt.Sprintf("%s 오류: %s", action, detail)
	}
	return action
}
