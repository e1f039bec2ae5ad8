package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub-web/internal/models"
	"github.com/mentorhub/mentorhub-web/pkg/logger"
	"go.uber.org/zap"
)

// RequireRole guards a route subtree. Unauthenticated requests are
// redirected to the login page; authenticated requests with the wrong
// role are redirected to their own dashboard root, never to login.
func RequireRole(required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := GetSession(c)
		if err != nil || !sess.Authenticated() {
			redirect(c, models.PathLogin)
			return
		}

		if sess.Role != required {
			logger.Warn("Role mismatch on guarded route",
				zap.String("path", c.Request.URL.Path),
				zap.String("required", string(required)),
				zap.String("actual", string(sess.Role)),
			)
			redirect(c, sess.Role.DashboardPath())
			return
		}

		c.Next()
	}
}

// RequireAuth guards routes that need a session but no particular role.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := GetSession(c)
		if err != nil || !sess.Authenticated() {
			redirect(c, models.PathLogin)
			return
		}

		c.Next()
	}
}

// redirect aborts the request with a redirect for page loads and a JSON
// payload for API consumers that follow redirects themselves.
func redirect(c *gin.Context, location string) {
	if c.GetHeader("Accept") == "application/json" || c.GetHeader("X-Requested-With") != "" {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"redirect": location})
		return
	}
	c.Redirect(http.StatusFound, location)
	c.Abort()
}
