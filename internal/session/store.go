// Package session owns the process-wide current-user context. All reads
// and writes of the persistent session state go through the Store; no
// feature touches cookies directly.
package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub-web/internal/models"
	"github.com/mentorhub/mentorhub-web/pkg/jwt"
	"github.com/mentorhub/mentorhub-web/pkg/logger"
	"go.uber.org/zap"
)

const (
	// CookieName is the signed session cookie.
	CookieName = "mentorhub_session"

	// Legacy storage keys, kept for clients that still read them. The
	// role value is upper-cased on write and case-insensitive on read.
	LegacyTokenKey  = "token"
	LegacyRoleKey   = "userRole"
	LegacyUserIDKey = "userId"
)

// Store reads and writes the authenticated session context.
type Store struct {
	tokens       *jwt.TokenManager
	cookieDomain string
	cookieSecure bool
}

// NewStore creates a session store backed by signed cookies.
func NewStore(tokens *jwt.TokenManager, cookieDomain string, cookieSecure bool) *Store {
	return &Store{
		tokens:       tokens,
		cookieDomain: cookieDomain,
		cookieSecure: cookieSecure,
	}
}

// Load reads the session for the current request. The signed cookie is
// authoritative; the legacy plain cookies are a read-only fallback. A
// request with no usable session yields an unauthenticated zero session,
// never an error: the guard decides what to do with it.
func (s *Store) Load(c *gin.Context) *models.Session {
	if raw, err := c.Cookie(CookieName); err == nil && raw != "" {
		claims, err := s.tokens.ValidateToken(raw)
		if err == nil {
			return &models.Session{
				Token:  claims.APIToken,
				UserID: claims.UserID,
				Name:   claims.Name,
				Role:   models.ParseRole(claims.Role),
			}
		}
		logger.Warn("Discarding invalid session cookie", zap.Error(err))
		s.Clear(c)
	}

	return s.loadLegacy(c)
}

// loadLegacy rebuilds a session from the individual storage keys.
func (s *Store) loadLegacy(c *gin.Context) *models.Session {
	token, err := c.Cookie(LegacyTokenKey)
	if err != nil || token == "" {
		return &models.Session{}
	}

	roleRaw, _ := c.Cookie(LegacyRoleKey)  //nolint:errcheck
	userID, _ := c.Cookie(LegacyUserIDKey) //nolint:errcheck

	return &models.Session{
		Token:  token,
		UserID: userID,
		Role:   models.ParseRole(roleRaw),
	}
}

// Save persists the session: the signed cookie plus the legacy keys.
func (s *Store) Save(c *gin.Context, sess *models.Session) error {
	signed, err := s.tokens.GenerateToken(sess.Token, sess.UserID, sess.Name, string(sess.Role))
	if err != nil {
		return err
	}

	ttlSeconds := int(s.tokens.GetExpirationTime().Seconds())

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, signed, ttlSeconds, "/", s.cookieDomain, s.cookieSecure, true)
	c.SetCookie(LegacyTokenKey, sess.Token, ttlSeconds, "/", s.cookieDomain, s.cookieSecure, true)
	c.SetCookie(LegacyRoleKey, string(sess.Role), ttlSeconds, "/", s.cookieDomain, s.cookieSecure, false)
	c.SetCookie(LegacyUserIDKey, sess.UserID, ttlSeconds, "/", s.cookieDomain, s.cookieSecure, false)
	return nil
}

// Clear removes every session cookie.
func (s *Store) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	for _, name := range []string{CookieName, LegacyTokenKey, LegacyRoleKey, LegacyUserIDKey} {
		c.SetCookie(name, "", -1, "/", s.cookieDomain, s.cookieSecure, true)
	}
}
