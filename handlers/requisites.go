package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docfolio/backend/internal/apperror"
	"github.com/docfolio/backend/internal/models"
	"github.com/docfolio/backend/internal/requisite"
	"github.com/docfolio/backend/pkg/middleware"
)

// RequisiteHandler exposes the requisite catalog CRUD and Excel import.
type RequisiteHandler struct {
	svc *requisite.Service
}

func NewRequisiteHandler(svc *requisite.Service) *RequisiteHandler {
	return &RequisiteHandler{svc: svc}
}

func (h *RequisiteHandler) Register(rg *gin.RouterGroup) {
	r := rg.Group("/requisites")
	r.GET("", h.Find)
	writers := r.Group("", middleware.RequireRoles(models.RoleSuperuser, models.RoleModerator))
	writers.POST("", h.Create)
	writers.PATCH("/:id", h.Update)
	writers.POST("/import", h.ImportExcel)
}

func (h *RequisiteHandler) Create(c *gin.Context) {
	var in requisite.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

func (h *RequisiteHandler) Find(c *gin.Context) {
	page, size := pageParams(c)
	items, total, err := h.svc.Find(c.Request.Context(), page, size, c.Query("name"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "page": page, "size": size})
}

func (h *RequisiteHandler) Update(c *gin.Context) {
	var in requisite.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// ImportExcel bulk-loads requisites from an uploaded spreadsheet.
func (h *RequisiteHandler) ImportExcel(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, apperror.Validation("an Excel file is required under the 'file' field"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()
	added, err := h.svc.ImportExcel(c.Request.Context(), f)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"added": added})
}
