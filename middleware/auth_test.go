package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/heavymachinery/backend/middleware"
	"github.com/heavymachinery/backend/services"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(tokens *services.TokenService, adminOnly bool) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{middleware.RequireAuth(tokens)}
	if adminOnly {
		handlers = append(handlers, middleware.RequireAdmin())
	}
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	token, err := tokens.Generate("user-1", "buyer", false)
	assert.NoError(t, err)

	r := setupRouter(tokens, false)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	r := setupRouter(services.NewTokenService("test-secret"), false)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	other := services.NewTokenService("other-secret")
	token, err := other.Generate("user-1", "buyer", false)
	assert.NoError(t, err)

	r := setupRouter(services.NewTokenService("test-secret"), false)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_RejectsNonAdmin(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	token, err := tokens.Generate("user-1", "buyer", false)
	assert.NoError(t, err)

	r := setupRouter(tokens, true)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	token, err := tokens.Generate("admin-1", "boss", true)
	assert.NoError(t, err)

	r := setupRouter(tokens, true)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
