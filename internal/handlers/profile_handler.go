package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub-web/internal/middleware"
	"github.com/mentorhub/mentorhub-web/internal/services"
)

// UploadAvatarRequest carries the base64 image payload.
type UploadAvatarRequest struct {
	Image       string `json:"image" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// ProfileHandler serves the viewer's own profile on every dashboard.
type ProfileHandler struct {
	profile *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profile *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profile: profile}
}

// Me handles GET <dashboard root>/perfil.
func (h *ProfileHandler) Me(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	profile, err := h.profile.Me(c.Request.Context(), sess)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UploadAvatar handles POST <dashboard root>/perfil/avatar.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	var req UploadAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Image and content type are required", err)
		return
	}

	url, err := h.profile.UploadAvatar(c.Request.Context(), sess, req.Image, req.ContentType)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"avatar":  url,
	})
}
