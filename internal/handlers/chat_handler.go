package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub-web/internal/middleware"
	"github.com/mentorhub/mentorhub-web/internal/models"
	"github.com/mentorhub/mentorhub-web/internal/services"
)

// ChatHandler handles the messaging endpoints shared by the student and
// mentor dashboards.
type ChatHandler struct {
	chat *services.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Counterparts handles GET /chat/conversas?q=. It returns the threads
// with history plus the roster entries the user could start a chat with,
// both narrowed by the search query.
func (h *ChatHandler) Counterparts(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	lists, err := h.chat.CounterpartLists(c.Request.Context(), sess, c.Query("q"))
	if err != nil {
		if errors.Is(err, services.ErrNoCounterpart) {
			respondError(c, http.StatusForbidden, "This account has no chat access", err)
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, lists)
}

// Conversation handles GET /chat/conversas/:counterpartId.
func (h *ChatHandler) Conversation(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	counterpartID := c.Param("counterpartId")
	conv, err := h.chat.Conversation(c.Request.Context(), sess, counterpartID)
	if err != nil {
		if errors.Is(err, services.ErrStaleSelection) {
			// The user already moved to another thread; nothing to render
			c.JSON(http.StatusOK, gin.H{"stale": true})
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, conv)
}

// Send handles POST /chat/mensagens.
func (h *ChatHandler) Send(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Recipient and content are required", err)
		return
	}

	recipient := models.Participant{
		ID:        req.RecipientID,
		Name:      req.RecipientName,
		AvatarURL: req.RecipientAvatar,
		Role:      services.OppositeRole(sess.Role),
	}

	result, err := h.chat.Send(c.Request.Context(), sess, recipient, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) {
			respondError(c, http.StatusBadRequest, "Message content must not be empty", err)
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
