package controller

import (
	"context"
	"edu_portal/internal/util"
	"edu_portal/pkg/apiclient"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger 可选的会话存储依赖（Redis）
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	Backend  *apiclient.Client
	Sessions Pinger
}

func NewHealthController(backend *apiclient.Client, sessions Pinger) *HealthController {
	return &HealthController{Backend: backend, Sessions: sessions}
}

func (c *HealthController) HealthCheck(ctx *gin.Context) {
	components := gin.H{"backend": c.Backend.BaseURL()}

	if c.Sessions != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.Sessions.Ping(pingCtx); err != nil {
			components["session_store"] = "down"
			util.Error(ctx, http.StatusServiceUnavailable, "Session store unavailable")
			return
		}
		components["session_store"] = "up"
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}
