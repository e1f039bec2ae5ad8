package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub-web/internal/middleware"
	"github.com/mentorhub/mentorhub-web/internal/models"
	"github.com/mentorhub/mentorhub-web/internal/services"
	"github.com/mentorhub/mentorhub-web/internal/session"
	apperrors "github.com/mentorhub/mentorhub-web/pkg/errors"
)

// AuthHandler handles login, registration and logout.
type AuthHandler struct {
	auth  *services.AuthService
	store *session.Store
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *services.AuthService, store *session.Store) *AuthHandler {
	return &AuthHandler{auth: auth, store: store}
}

// Login handles POST /login. On success the session cookies are set and
// the client is told where to land: the dashboard root for the role.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid credentials payload", err)
		return
	}

	sess, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrUnknownRole) {
			respondError(c, http.StatusForbidden, "Account role is not supported", err)
			return
		}
		if apperrors.Is(err, apperrors.ErrUnauthorized) {
			respondError(c, http.StatusUnauthorized, "Invalid email or password", err)
			return
		}
		respondServiceError(c, err)
		return
	}

	if err := h.store.Save(c, sess); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to establish session", err)
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Success:  true,
		Session:  sess,
		Redirect: sess.Role.DashboardPath(),
	})
}

// Register handles POST /registro and logs the new account straight in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid registration payload", err)
		return
	}

	sess, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrUnknownRole) {
			respondError(c, http.StatusBadRequest, "Unknown role", err)
			return
		}
		respondServiceError(c, err)
		return
	}

	if err := h.store.Save(c, sess); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to establish session", err)
		return
	}

	c.JSON(http.StatusCreated, models.LoginResponse{
		Success:  true,
		Session:  sess,
		Redirect: sess.Role.DashboardPath(),
	})
}

// Logout handles /logout for any method: the session is cleared
// unconditionally and the client lands on the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.store.Clear(c)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"redirect": models.PathLogin,
	})
}

// Session handles GET /api/session, the client's own session probe.
func (h *AuthHandler) Session(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil || !sess.Authenticated() {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session":  sess,
		"redirect": sess.Role.DashboardPath(),
	})
}
