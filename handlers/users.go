package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docfolio/backend/internal/models"
	"github.com/docfolio/backend/internal/users"
	"github.com/docfolio/backend/pkg/middleware"
)

// UserHandler exposes user creation and search.
type UserHandler struct {
	svc *users.Service
}

func NewUserHandler(svc *users.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Register(rg *gin.RouterGroup) {
	u := rg.Group("/users")
	u.POST("", middleware.RequireRoles(models.RoleSuperuser, models.RoleModerator, models.RoleCoordinator), h.Create)
	u.GET("", middleware.RequireRoles(models.RoleSuperuser, models.RoleModerator, models.RoleCoordinator), h.Find)
	u.GET("/:id", h.GetByID)
	u.GET("/:id/roles", h.Roles)
}

func (h *UserHandler) Create(c *gin.Context) {
	var in users.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.svc.Create(c.Request.Context(), middleware.Actor(c), in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *UserHandler) Find(c *gin.Context) {
	page, size := pageParams(c)
	filter := users.Filter{
		ID:            c.Query("id"),
		FirstName:     c.Query("firstName"),
		SecondName:    c.Query("secondName"),
		Surname:       c.Query("surname"),
		SecondSurname: c.Query("secondSurname"),
		FullName:      c.Query("fullName"),
		Email:         c.Query("email"),
		IDNumber:      c.Query("idNumber"),
	}
	items, total, err := h.svc.Find(c.Request.Context(), page, size, filter)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "page": page, "size": size})
}

func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Roles(c *gin.Context) {
	roles, err := h.svc.Roles(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}
