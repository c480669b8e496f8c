package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/docfolio/backend/internal/apperror"
	"github.com/docfolio/backend/internal/attachment"
	"github.com/docfolio/backend/internal/models"
	"github.com/docfolio/backend/pkg/metrics"
	"github.com/docfolio/backend/pkg/middleware"
)

type UpdateAttachmentStatusRequest struct {
	Status models.AttachmentStatus `json:"status" binding:"required"`
}

type ExpeditionDateRequest struct {
	ExpeditionDate time.Time `json:"expeditionDate" binding:"required"`
}

type NotifyRequest struct {
	Type   string `json:"type" binding:"required"`
	UserID string `json:"userId"`
}

// AttachmentHandler exposes uploads, replacement, status and expedition
// updates, downloads and storage listings.
type AttachmentHandler struct {
	svc *attachment.Service
}

func NewAttachmentHandler(svc *attachment.Service) *AttachmentHandler {
	return &AttachmentHandler{svc: svc}
}

func (h *AttachmentHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/attachments")
	a.POST("/upload/:documentNumber/:documentName", h.Upload)
	a.PUT("/replace/:documentNumber/:documentName", h.Replace)
	a.PATCH("/expedition/:documentNumber/:documentName/:filename", h.SetExpeditionDate)
	a.GET("/download/:filename", h.Download)
	a.GET("/user/:id", h.ListByUser)
	a.POST("/notify", h.Notify)

	reviewers := a.Group("", middleware.RequireRoles(models.RoleSuperuser, models.RoleModerator, models.RoleCoordinator))
	reviewers.PATCH("/status/:documentNumber/:filename", h.UpdateStatus)
	reviewers.GET("/storage", h.ListStorage)
}

func (h *AttachmentHandler) Upload(c *gin.Context) {
	up, err := readUpload(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	att, err := h.svc.Create(c.Request.Context(), c.Param("documentNumber"), c.Param("documentName"), *up)
	if err != nil {
		metrics.AttachmentUploads.WithLabelValues("error").Inc()
		abortWithError(c, err)
		return
	}
	metrics.AttachmentUploads.WithLabelValues("ok").Inc()
	c.JSON(http.StatusCreated, att)
}

func (h *AttachmentHandler) Replace(c *gin.Context) {
	up, err := readUpload(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	att, err := h.svc.Replace(c.Request.Context(), c.Param("documentNumber"), c.Param("documentName"), *up)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, att)
}

func (h *AttachmentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateAttachmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	att, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("documentNumber"), c.Param("filename"), req.Status)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, att)
}

func (h *AttachmentHandler) SetExpeditionDate(c *gin.Context) {
	var req ExpeditionDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc, message, err := h.svc.SetExpeditionDate(c.Request.Context(),
		c.Param("documentNumber"), c.Param("documentName"), c.Param("filename"), req.ExpeditionDate)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc, "message": message})
}

func (h *AttachmentHandler) Download(c *gin.Context) {
	rc, err := h.svc.Download(c.Request.Context(), c.Param("filename"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	defer rc.Close()
	c.Header("Content-Disposition", "attachment; filename="+c.Param("filename"))
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func (h *AttachmentHandler) ListStorage(c *gin.Context) {
	page, size := pageParams(c)
	items, total, err := h.svc.ListStorage(c.Request.Context(), page, size)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "page": page, "size": size})
}

func (h *AttachmentHandler) ListByUser(c *gin.Context) {
	items, err := h.svc.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *AttachmentHandler) Notify(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.Notify(c.Request.Context(), req.Type, middleware.Actor(c), req.UserID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

// readUpload pulls the multipart 'file' field into an attachment.Upload.
func readUpload(c *gin.Context) (*attachment.Upload, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, apperror.Validation("a PDF file is required under the 'file' field")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, apperror.Validation("could not open uploaded file: %v", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperror.Validation("could not read uploaded file: %v", err)
	}
	return &attachment.Upload{
		OriginalName: fh.Filename,
		ContentType:  fh.Header.Get("Content-Type"),
		Data:         data,
	}, nil
}
