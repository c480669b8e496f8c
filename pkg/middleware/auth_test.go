package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/docfolio/backend/internal/models"
	"github.com/docfolio/backend/internal/sessions"
	"github.com/docfolio/backend/internal/tokens"
)

const mwSecret = "middleware-test-secret-32-bytes-xx"

func issueToken(t *testing.T, roles ...models.Role) string {
	t.Helper()
	u := &models.User{ID: "user-1", Email: "u@example.com", Roles: roles}
	tok, err := tokens.GenerateAccessToken(mwSecret, u, time.Minute)
	require.NoError(t, err)
	return tok
}

func protectedEngine(extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(mwSecret))
	r.Use(extra...)
	r.GET("/me", func(c *gin.Context) {
		claims := Claims(c)
		c.JSON(200, gin.H{"userId": claims.UserID})
	})
	return r
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r := protectedEngine()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, models.RoleCollaborator))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "user-1")
}

func TestAuthMiddleware_MissingOrMalformedHeader(t *testing.T) {
	r := protectedEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/me", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	require.Equal(t, http.StatusUnauthorized, w2.Code)

	req3 := httptest.NewRequest("GET", "/me", nil)
	req3.Header.Set("Authorization", "Bearer not.a.jwt")
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, req3)
	require.Equal(t, http.StatusUnauthorized, w3.Code)
}

func TestAuthMiddleware_BlacklistedTokenRejected(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	sessions.SetBlacklistClient(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	defer sessions.SetBlacklistClient(nil)

	tok := issueToken(t, models.RoleCollaborator)
	require.NoError(t, sessions.BlacklistAccessToken(t.Context(), tok, time.Minute))

	r := protectedEngine()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles(t *testing.T) {
	r := protectedEngine(RequireRoles(models.RoleSuperuser, models.RoleModerator))

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, models.RoleCollaborator))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)

	req2 := httptest.NewRequest("GET", "/me", nil)
	req2.Header.Set("Authorization", "Bearer "+issueToken(t, models.RoleModerator))
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)
	require.Equal(t, http.StatusOK, w2.Code)
}
