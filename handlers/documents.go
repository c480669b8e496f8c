package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/docfolio/backend/internal/document"
	"github.com/docfolio/backend/internal/models"
	"github.com/docfolio/backend/pkg/middleware"
)

type UpdateStateRequest struct {
	State            models.State `json:"state" binding:"required"`
	RejectionMessage string       `json:"rejectionMessage"`
}

type UpdateExpirationRequest struct {
	ExpeditionDate time.Time `json:"expeditionDate" binding:"required"`
}

// DocumentHandler exposes the review lifecycle of folder documents.
type DocumentHandler struct {
	svc *document.Service
}

func NewDocumentHandler(svc *document.Service) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

func (h *DocumentHandler) Register(rg *gin.RouterGroup) {
	d := rg.Group("/users/:id/documents")
	d.GET("", h.FindByUser)
	reviewers := d.Group("", middleware.RequireRoles(models.RoleSuperuser, models.RoleModerator, models.RoleCoordinator))
	reviewers.PATCH("/:name/state", h.UpdateState)
	reviewers.PATCH("/:name/expiration", h.UpdateExpiration)
}

func (h *DocumentHandler) FindByUser(c *gin.Context) {
	docs, err := h.svc.FindByUser(c.Request.Context(), c.Param("id"), middleware.Actor(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *DocumentHandler) UpdateState(c *gin.Context) {
	var req UpdateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc, err := h.svc.UpdateState(c.Request.Context(), c.Param("id"), c.Param("name"), req.State, req.RejectionMessage)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) UpdateExpiration(c *gin.Context) {
	var req UpdateExpirationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc, message, err := h.svc.UpdateExpirationDate(c.Request.Context(), c.Param("id"), c.Param("name"), req.ExpeditionDate)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc, "message": message})
}
