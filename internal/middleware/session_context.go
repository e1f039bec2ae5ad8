package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub-web/internal/models"
	"github.com/mentorhub/mentorhub-web/internal/session"
)

const (
	// SessionContextKey is the key used to store the session in context
	SessionContextKey = "user_session"
)

var (
	ErrSessionNotFound = errors.New("session not found in context")
	ErrInvalidSession  = errors.New("invalid session type")
)

// SessionContextMiddleware loads the session context for every request.
// It never aborts: unauthenticated requests carry an empty session and
// the route guard decides what happens to them.
func SessionContextMiddleware(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(SessionContextKey, store.Load(c))
		c.Next()
	}
}

// GetSession extracts the session from context.
func GetSession(c *gin.Context) (*models.Session, error) {
	val, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, ErrSessionNotFound
	}

	sess, ok := val.(*models.Session)
	if !ok {
		return nil, ErrInvalidSession
	}

	return sess, nil
}
