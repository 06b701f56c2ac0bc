package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"syncpad/internal/transport/http/response"
)

type HealthHandler struct {
	appName   string
	startedAt time.Time
}

func NewHealthHandler(appName string, startedAt time.Time) *HealthHandler {
	return &HealthHandler{appName: appName, startedAt: startedAt}
}

func (h *HealthHandler) Check(c *gin.Context) {
	response.OK(c, gin.H{
		"app":    h.appName,
		"status": "ok",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	})
}
