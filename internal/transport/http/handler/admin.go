package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"syncpad/internal/app"
	"syncpad/internal/cron"
	"syncpad/internal/transport/http/response"
)

type AdminHandler struct {
	scheduler      *cron.Scheduler
	cleanupService *app.CleanupService
}

func NewAdminHandler(scheduler *cron.Scheduler, cleanupService *app.CleanupService) *AdminHandler {
	return &AdminHandler{scheduler: scheduler, cleanupService: cleanupService}
}

func (h *AdminHandler) ListCronJobs(c *gin.Context) {
	response.OK(c, h.scheduler.List())
}

func (h *AdminHandler) RunCronJob(c *gin.Context) {
	name := c.Param("name")
	if err := h.scheduler.Run(c.Request.Context(), name); err != nil {
		response.Error(c, http.StatusNotFound, response.CodeBadRequest, err.Error())
		return
	}
	response.OK(c, gin.H{"triggered": name})
}

// RunCleanup executes the cleanup synchronously and returns its report,
// so a moderator sees the per-collection counts immediately.
func (h *AdminHandler) RunCleanup(c *gin.Context) {
	report := h.cleanupService.Run(c.Request.Context())
	response.OK(c, report)
}
