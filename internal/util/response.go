package util

import (
	"edu_portal/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一 JSON 响应结构（健康检查等运维接口）
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// StatusFor 错误对应的页面状态码
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrValidation), errors.Is(err, ErrUnhandledVariant):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func LogActionError(c *gin.Context, action string, err error) {
	logger.Log.Warn(action+" failed",
		zap.Error(err),
		zap.String("request_id", GetRequestID(c)),
		zap.String("path", c.Request.URL.Path),
	)
}
