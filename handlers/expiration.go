package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docfolio/backend/internal/expiration"
	"github.com/docfolio/backend/internal/models"
	"github.com/docfolio/backend/pkg/middleware"
)

// ExpirationHandler exposes the sweep audit log and a manual sweep trigger.
type ExpirationHandler struct {
	logs    expiration.LogRepository
	sweeper *expiration.Sweeper
}

func NewExpirationHandler(logs expiration.LogRepository, sweeper *expiration.Sweeper) *ExpirationHandler {
	return &ExpirationHandler{logs: logs, sweeper: sweeper}
}

func (h *ExpirationHandler) Register(rg *gin.RouterGroup) {
	e := rg.Group("/expiration", middleware.RequireRoles(models.RoleSuperuser, models.RoleModerator, models.RoleCoordinator))
	e.GET("/logs/:userId", h.LogsByUser)
	e.POST("/sweep", h.RunSweep)
}

func (h *ExpirationHandler) LogsByUser(c *gin.Context) {
	logs, err := h.logs.FindByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// RunSweep triggers one sweep outside the weekly schedule.
func (h *ExpirationHandler) RunSweep(c *gin.Context) {
	if err := h.sweeper.Run(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}
