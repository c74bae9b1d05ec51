package util

import (
	"strconv"
	"strings"
)

// ParseID 解析路径中的正整数 ID
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, ValidationError("잘못된 ID입니다.")
	}
	return id, nil
}

// SplitOptions 将逗号分隔的选项拆分并去掉空白
func SplitOptions(s string) []string {
	parts := strings.Split(s, ",")
	options := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			options = append(options, p)
		}
	}
	return options
}
