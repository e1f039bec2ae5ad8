package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub-web/internal/middleware"
	"github.com/mentorhub/mentorhub-web/internal/models"
	"github.com/mentorhub/mentorhub-web/internal/services"
)

// dayQueryLayout is the ?dia= calendar filter format.
const dayQueryLayout = "2006-01-02"

// ScheduleHandler handles the mentor scheduling endpoints.
type ScheduleHandler struct {
	schedule *services.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler
func NewScheduleHandler(schedule *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule}
}

// List handles GET /mentor/sessoes?dia=YYYY-MM-DD. It refetches the
// mentor's sessions and renders the list and calendar, optionally
// narrowed to one day.
func (h *ScheduleHandler) List(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	day, err := parseDayQuery(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid day filter, expected YYYY-MM-DD", err)
		return
	}

	resp, err := h.schedule.Load(c.Request.Context(), sess, day)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /mentor/sessoes/:id?motivo=end|refuse. Ending and
// refusing are the same removal with different confirmation messages.
func (h *ScheduleHandler) Delete(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	day, err := parseDayQuery(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid day filter, expected YYYY-MM-DD", err)
		return
	}

	reason := services.DeleteEnd
	if c.Query("motivo") == string(services.DeleteRefuse) {
		reason = services.DeleteRefuse
	}

	resp, message, err := h.schedule.Delete(c.Request.Context(), sess, c.Param("id"), reason, day)
	if err != nil {
		if errors.Is(err, services.ErrMentoringNotFound) {
			respondError(c, http.StatusNotFound, "Session not found", err)
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"schedule": resp,
	})
}

// UpdateLink handles PUT /mentor/sessoes/:id/link.
func (h *ScheduleHandler) UpdateLink(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	var req models.UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Link is required", err)
		return
	}

	day, err := parseDayQuery(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid day filter, expected YYYY-MM-DD", err)
		return
	}

	resp, err := h.schedule.UpdateLink(c.Request.Context(), sess, c.Param("id"), req.Link, day)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyLink):
			respondError(c, http.StatusBadRequest, "Link must not be empty", err)
		case errors.Is(err, services.ErrMentoringNotFound):
			respondError(c, http.StatusNotFound, "Session not found", err)
		case errors.Is(err, services.ErrScheduleNotLoaded):
			respondError(c, http.StatusConflict, "Schedule not loaded yet", err)
		default:
			respondServiceError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Start handles POST /mentor/sessoes/:id/iniciar.
func (h *ScheduleHandler) Start(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	result, err := h.schedule.Start(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingLink):
			respondError(c, http.StatusConflict, "Video session has no link, set one first", err)
		case errors.Is(err, services.ErrChatSessionActive):
			respondError(c, http.StatusConflict, "Another chat session is already active", err)
		case errors.Is(err, services.ErrMentoringNotFound):
			respondError(c, http.StatusNotFound, "Session not found", err)
		case errors.Is(err, services.ErrScheduleNotLoaded):
			respondError(c, http.StatusConflict, "Schedule not loaded yet", err)
		default:
			respondServiceError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// EndActive handles POST /mentor/sessoes/ativa/encerrar: the active chat
// session is ended and removed.
func (h *ScheduleHandler) EndActive(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	day, err := parseDayQuery(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid day filter, expected YYYY-MM-DD", err)
		return
	}

	resp, message, err := h.schedule.EndActive(c.Request.Context(), sess, day)
	if err != nil {
		if errors.Is(err, services.ErrNoActiveChatSession) {
			respondError(c, http.StatusConflict, "No chat session is active", err)
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"schedule": resp,
	})
}

// parseDayQuery reads the optional ?dia= filter. Absent means no filter.
func parseDayQuery(c *gin.Context) (*models.Day, error) {
	raw := c.Query("dia")
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dayQueryLayout, raw)
	if err != nil {
		return nil, err
	}
	day := models.DayOf(t)
	return &day, nil
}
