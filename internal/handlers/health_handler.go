package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports whether the app and its core backend are usable.
type HealthHandler struct {
	coreProbe func(ctx context.Context) error
}

// NewHealthHandler creates a new HealthHandler. The probe checks core
// backend reachability; nil skips the check.
func NewHealthHandler(coreProbe func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{coreProbe: coreProbe}
}

// Healthcheck handles GET /api/healthcheck.
func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	if h.coreProbe != nil {
		if err := h.coreProbe(c.Request.Context()); err != nil {
			attachError(c, err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"reason": "core backend unreachable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
