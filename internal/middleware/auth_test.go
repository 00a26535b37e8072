package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/config"
	"github.com/devsmahesh/e-commerce-backend-sub001/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	protected := router.Group("/api")
	protected.Use(AuthMiddleware(cfg))
	{
		protected.GET("/me", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"userId": c.GetString("userId")})
		})

		admin := protected.Group("/admin")
		admin.Use(RoleMiddleware("admin"))
		{
			admin.GET("/dashboard", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})
		}
	}
	return router
}

func do(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := testRouter(&config.Config{JWTSecret: "secret"})
	w := do(router, "/api/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := testRouter(&config.Config{JWTSecret: "secret"})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_BadToken(t *testing.T) {
	router := testRouter(&config.Config{JWTSecret: "secret"})
	w := do(router, "/api/me", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	router := testRouter(&config.Config{JWTSecret: "secret"})

	token, err := utils.GenerateToken("other-secret", "u1", "user", utils.AccessTokenTTL)
	require.NoError(t, err)

	w := do(router, "/api/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	router := testRouter(&config.Config{JWTSecret: "secret"})

	token, err := utils.GenerateToken("secret", "u1", "user", utils.AccessTokenTTL)
	require.NoError(t, err)

	w := do(router, "/api/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}

func TestRoleMiddleware_ForbidsNonAdmin(t *testing.T) {
	router := testRouter(&config.Config{JWTSecret: "secret"})

	token, err := utils.GenerateToken("secret", "u1", "user", utils.AccessTokenTTL)
	require.NoError(t, err)

	w := do(router, "/api/admin/dashboard", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoleMiddleware_AllowsAdmin(t *testing.T) {
	router := testRouter(&config.Config{JWTSecret: "secret"})

	token, err := utils.GenerateToken("secret", "u1", "admin", utils.AccessTokenTTL)
	require.NoError(t, err)

	w := do(router, "/api/admin/dashboard", token)
	assert.Equal(t, http.StatusOK, w.Code)
}
