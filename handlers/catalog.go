package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docfolio/backend/internal/apperror"
	"github.com/docfolio/backend/internal/catalog"
	"github.com/docfolio/backend/internal/models"
	"github.com/docfolio/backend/pkg/middleware"
)

// CatalogHandler manages the assignment catalog entities users are
// created against: profiles, hiring types, groups and services.
type CatalogHandler struct {
	repo catalog.Repositories
}

func NewCatalogHandler(repo catalog.Repositories) *CatalogHandler {
	return &CatalogHandler{repo: repo}
}

func (h *CatalogHandler) Register(rg *gin.RouterGroup) {
	r := rg.Group("/catalog", middleware.RequireRoles(models.RoleSuperuser, models.RoleModerator))
	r.POST("/profiles", h.CreateProfile)
	r.GET("/profiles/:name", h.GetProfile)
	r.POST("/hirings", h.CreateHiring)
	r.GET("/hirings/:type", h.GetHiring)
	r.POST("/groups", h.CreateGroup)
	r.GET("/groups/:name", h.GetGroup)
	r.POST("/services", h.CreateService)
}

func (h *CatalogHandler) CreateProfile(c *gin.Context) {
	var p models.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if p.Name == "" {
		abortWithError(c, apperror.Validation("profile name is required"))
		return
	}
	existing, err := h.repo.ProfileByName(c.Request.Context(), p.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if existing != nil {
		abortWithError(c, apperror.Validation("a profile with that name already exists"))
		return
	}
	if err := h.repo.CreateProfile(c.Request.Context(), &p); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *CatalogHandler) GetProfile(c *gin.Context) {
	p, err := h.repo.ProfileByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if p == nil {
		abortWithError(c, apperror.NotFound("profile not found"))
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) CreateHiring(c *gin.Context) {
	var hi models.Hiring
	if err := c.ShouldBindJSON(&hi); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if hi.Type == "" {
		abortWithError(c, apperror.Validation("hiring type is required"))
		return
	}
	existing, err := h.repo.HiringByType(c.Request.Context(), hi.Type)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if existing != nil {
		abortWithError(c, apperror.Validation("a hiring type with that name already exists"))
		return
	}
	if err := h.repo.CreateHiring(c.Request.Context(), &hi); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, hi)
}

func (h *CatalogHandler) GetHiring(c *gin.Context) {
	hi, err := h.repo.HiringByType(c.Request.Context(), c.Param("type"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if hi == nil {
		abortWithError(c, apperror.NotFound("hiring type not found"))
		return
	}
	c.JSON(http.StatusOK, hi)
}

func (h *CatalogHandler) CreateGroup(c *gin.Context) {
	var g models.Group
	if err := c.ShouldBindJSON(&g); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if g.Name == "" {
		abortWithError(c, apperror.Validation("group name is required"))
		return
	}
	existing, err := h.repo.GroupByName(c.Request.Context(), g.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if existing != nil {
		abortWithError(c, apperror.Validation("a group with that name already exists"))
		return
	}
	if err := h.repo.CreateGroup(c.Request.Context(), &g); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (h *CatalogHandler) GetGroup(c *gin.Context) {
	g, err := h.repo.GroupByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if g == nil {
		abortWithError(c, apperror.NotFound("group not found"))
		return
	}
	c.JSON(http.StatusOK, g)
}

// CreateService checks the referenced group exists before inserting.
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var s models.Service
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if s.Name == "" || s.GroupName == "" {
		abortWithError(c, apperror.Validation("service name and groupName are required"))
		return
	}
	g, err := h.repo.GroupByName(c.Request.Context(), s.GroupName)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if g == nil {
		abortWithError(c, apperror.Validation("unknown group: %s", s.GroupName))
		return
	}
	if err := h.repo.CreateService(c.Request.Context(), &s); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}
