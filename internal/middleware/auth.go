package middleware

import (
	"context"
	"edu_portal/internal/model"
	"edu_portal/internal/util"
	"edu_portal/pkg/logger"
	"edu_portal/pkg/session"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserResolver interface {
	CurrentUser(ctx context.Context, token string) (*model.User, error)
}

// Session 每次页面访问都根据会话中的令牌解析当前用户。令牌失效时清除令牌
func Session(store session.Store, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := store.Token(c.Request)
		if token == "" {
			c.Next()
			return
		}

		user, err := users.CurrentUser(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(util.ContextKeyToken, token)
			c.Set(util.ContextKeyCurrentUser, user)
		case errors.Is(err, util.ErrAuth):
			if err := store.Clear(c.Writer, c.Request); err != nil {
				logger.Log.Warn("clear session failed", zap.Error(err))
			}
			c.Set(util.ContextKeyNotice, util.NoticeAuth)
		default:
			// 后端暂时不可用，保留令牌，由具体操作报告错误
			logger.Log.Warn("resolve current user failed",
				zap.Error(err),
				zap.String("request_id", util.GetRequestID(c)),
			)
			c.Set(util.ContextKeyToken, token)
		}

		c.Next()
	}
}

// RequireLogin 未登录时跳转到登录页
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if util.GetToken(c) == "" {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RoleMiddleware 角色不符时交给 denied 渲染提示。管理员拥有所有权限
func RoleMiddleware(denied gin.HandlerFunc, roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetCurrentUser(c)
		if user == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		hasRole := user.IsAdmin()
		for _, role := range roles {
			if user.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			denied(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
