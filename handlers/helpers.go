// Package handlers wires the HTTP surface: one handler struct per
// resource, registered onto gin router groups by main.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/docfolio/backend/internal/apperror"
)

// abortWithError maps a service error to its HTTP status.
func abortWithError(c *gin.Context, err error) {
	c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
}

// pageParams reads ?page= and ?size= with the service defaults.
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 0
	}
	size, sErr := strconv.Atoi(c.DefaultQuery("size", "10"))
	if sErr != nil {
		size = 0
	}
	return page, size
}

// RegisterHealthRoutes exposes liveness and readiness probes.
func RegisterHealthRoutes(r *gin.Engine, ready func() error) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if ready != nil {
			if err := ready(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
}
