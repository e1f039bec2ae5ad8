package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub-web/internal/middleware"
	"github.com/mentorhub/mentorhub-web/internal/models"
	"github.com/mentorhub/mentorhub-web/pkg/logger"
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

// withSession injects a session the way the session middleware would.
func withSession(sess *models.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess != nil {
			c.Set(middleware.SessionContextKey, sess)
		}
		c.Next()
	}
}

func testStudentSession() *models.Session {
	return &models.Session{Token: "tok", UserID: "student-1", Name: "Ana", Role: models.RoleStudent}
}

func testMentorSession() *models.Session {
	return &models.Session{Token: "tok", UserID: "mentor-1", Name: "Bruno", Role: models.RoleMentor}
}

func jsonRequest(method, target, body string) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}
