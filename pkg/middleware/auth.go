package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/docfolio/backend/internal/models"
	"github.com/docfolio/backend/internal/sessions"
	"github.com/docfolio/backend/internal/tokens"
)

// ClaimsKey is the gin context key holding the verified *tokens.Claims.
const ClaimsKey = "claims"

// AuthMiddleware verifies the Bearer access token, rejects blacklisted
// tokens and stores the claims on the request context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		raw, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		blacklisted, err := sessions.IsAccessTokenBlacklisted(c.Request.Context(), raw)
		if err == nil && blacklisted {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token has been revoked"})
			return
		}

		claims, err := tokens.Parse(secret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRoles aborts with 403 unless the authenticated user holds at
// least one of the given roles. Must run after AuthMiddleware.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		if !models.HasAnyRole(claims.Roles, roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

// Claims returns the verified claims from the context, or nil.
func Claims(c *gin.Context) *tokens.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*tokens.Claims); ok {
			return claims
		}
	}
	return nil
}

// Actor builds the acting user from the request claims, or nil.
func Actor(c *gin.Context) *models.User {
	claims := Claims(c)
	if claims == nil {
		return nil
	}
	return &models.User{ID: claims.UserID, Email: claims.Email, Roles: claims.Roles}
}
