package util

import (
	"edu_portal/internal/model"

	"github.com/gin-gonic/gin"
)

// GetCurrentUser 会话中间件解析出的当前用户，未登录时为 nil
func GetCurrentUser(c *gin.Context) *model.User {
	v, exists := c.Get(ContextKeyCurrentUser)
	if !exists {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

func GetToken(c *gin.Context) string {
	return c.GetString(ContextKeyToken)
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}
