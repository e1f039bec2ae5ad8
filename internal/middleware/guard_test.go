package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub-web/internal/models"
	"github.com/mentorhub/mentorhub-web/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func guardedRouter(sess *models.Session) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if sess != nil {
			c.Set(SessionContextKey, sess)
		}
		c.Next()
	})
	router.GET("/dashboard", RequireRole(models.RoleStudent), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.GET("/mentor", RequireRole(models.RoleMentor), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.GET("/authed", RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestRequireRole_UnauthenticatedRedirectsToLogin(t *testing.T) {
	router := guardedRouter(&models.Session{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/dashboard", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, models.PathLogin, w.Header().Get("Location"))
}

func TestRequireRole_WrongRoleRedirectsToOwnDashboard(t *testing.T) {
	router := guardedRouter(&models.Session{Token: "t", UserID: "u", Role: models.RoleMentor})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/dashboard", http.NoBody)
	router.ServeHTTP(w, req)

	// An authenticated mentor never bounces to login
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, models.PathMentorDashboard, w.Header().Get("Location"))
}

func TestRequireRole_MatchingRolePassesThrough(t *testing.T) {
	router := guardedRouter(&models.Session{Token: "t", UserID: "u", Role: models.RoleStudent})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/dashboard", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_JSONCallerGetsRedirectPayload(t *testing.T) {
	router := guardedRouter(&models.Session{Token: "t", UserID: "u", Role: models.RoleStudent})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/mentor", http.NoBody)
	req.Header.Set("Accept", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"redirect":"/dashboard"}`, w.Body.String())
}

func TestRequireRole_MissingSessionRedirectsToLogin(t *testing.T) {
	router := guardedRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/dashboard", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, models.PathLogin, w.Header().Get("Location"))
}

func TestRequireAuth_TokenOnlyIsEnough(t *testing.T) {
	router := guardedRouter(&models.Session{Token: "t"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/authed", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
