package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/mentorhub/mentorhub-web/internal/cache"
	"github.com/mentorhub/mentorhub-web/internal/models"
	apperrors "github.com/mentorhub/mentorhub-web/pkg/errors"
	"github.com/mentorhub/mentorhub-web/pkg/logger"
	"github.com/mentorhub/mentorhub-web/pkg/metrics"
	"go.uber.org/zap"
)

var (
	ErrEmptyMessage   = errors.New("message content must not be empty")
	ErrNoCounterpart  = errors.New("no chat role for this user")
	ErrStaleSelection = apperrors.ErrStaleSelection
)

const (
	rosterStudents = "students"
	rosterMentors  = "mentors"
)

// ChatService drives the messaging feature for both roles: counterpart
// list reconciliation, the open conversation, and optimistic sends. View
// state is held per user and guarded by a single lock, mirroring the
// single-owner model of UI state.
type ChatService struct {
	messages    MessagingAPI
	rosters     RosterAPI
	rosterCache *cache.RosterCache

	mu    sync.Mutex
	views map[string]*conversationView
}

// conversationView is one user's open chat panel.
type conversationView struct {
	counterpartID string
	pending       []pendingMessage
	lists         *models.CounterpartLists // last reconciled snapshot
}

// pendingMessage is an optimistic entry. confirmedID is set once the
// backend accepts the send; the entry is only dropped when a refetch is
// seen to contain that id, so the message can neither duplicate nor
// transiently disappear.
type pendingMessage struct {
	counterpartID string
	msg           models.ChatMessage
	confirmedID   string
}

// NewChatService creates the chat service.
func NewChatService(messages MessagingAPI, rosters RosterAPI, rosterCache *cache.RosterCache) *ChatService {
	return &ChatService{
		messages:    messages,
		rosters:     rosters,
		rosterCache: rosterCache,
		views:       make(map[string]*conversationView),
	}
}

// CounterpartLists loads and reconciles the messaging landing page for
// the current user: threads with history plus the roster entries without
// any, both filtered by the live search query.
func (s *ChatService) CounterpartLists(ctx context.Context, sess *models.Session, query string) (*models.CounterpartLists, error) {
	if OppositeRole(sess.Role) == "" {
		return nil, ErrNoCounterpart
	}

	sent, err := s.messages.SentMessages(ctx, sess.Token, sess.UserID)
	if err != nil {
		return nil, err
	}
	received, err := s.messages.ReceivedMessages(ctx, sess.Token, sess.UserID)
	if err != nil {
		return nil, err
	}

	roster, err := s.fetchRoster(ctx, sess)
	if err != nil {
		return nil, err
	}

	lists := BuildCounterpartLists(sess.Role, sess.UserID, sent, received, roster)

	s.mu.Lock()
	s.view(sess.UserID).lists = &lists
	s.mu.Unlock()

	filtered := models.CounterpartLists{
		WithChats: FilterCounterparts(lists.WithChats, query),
		Available: FilterRoster(lists.Available, query),
	}
	return &filtered, nil
}

// Conversation opens the chat panel for one counterpart: the full history
// involving that counterpart, own messages labeled "You", plus any
// optimistic entries not yet visible in backend data. A response that
// arrives after the user has moved to another counterpart is discarded.
func (s *ChatService) Conversation(ctx context.Context, sess *models.Session, counterpartID string) (*models.ConversationResponse, error) {
	s.mu.Lock()
	view := s.view(sess.UserID)
	view.counterpartID = counterpartID
	s.mu.Unlock()

	sent, err := s.messages.SentMessages(ctx, sess.Token, sess.UserID)
	if err != nil {
		return nil, err
	}
	received, err := s.messages.ReceivedMessages(ctx, sess.Token, sess.UserID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The selection moved on while the fetch was in flight
	if view.counterpartID != counterpartID {
		return nil, ErrStaleSelection
	}

	all := make([]models.Message, 0, len(sent)+len(received))
	all = append(all, sent...)
	all = append(all, received...)

	rendered := make([]models.ChatMessage, 0, len(all))
	serverIDs := make(map[string]struct{}, len(all))
	for _, msg := range all {
		if !involves(msg, sess.UserID, counterpartID) {
			continue
		}
		serverIDs[msg.ID] = struct{}{}
		rendered = append(rendered, renderMessage(msg, sess.UserID))
	}

	// Keep optimistic entries until the backend data includes them
	remaining := view.pending[:0]
	for _, p := range view.pending {
		if p.confirmedID != "" {
			if _, ok := serverIDs[p.confirmedID]; ok {
				continue
			}
		}
		remaining = append(remaining, p)
		if p.counterpartID == counterpartID {
			rendered = append(rendered, p.msg)
		}
	}
	view.pending = remaining

	return &models.ConversationResponse{
		CounterpartID: counterpartID,
		Messages:      rendered,
	}, nil
}

// SendResult is the outcome of a successful send.
type SendResult struct {
	Message models.ChatMessage       `json:"message"`
	Lists   *models.CounterpartLists `json:"lists,omitempty"`
}

// Send delivers a message optimistically: the entry is rendered
// immediately and rolled back if the backend rejects it. A first message
// to a counterpart with no history promotes them to the head of the
// "with chats" snapshot.
func (s *ChatService) Send(ctx context.Context, sess *models.Session, recipient models.Participant, content string) (*SendResult, error) {
	if content == "" {
		return nil, ErrEmptyMessage
	}

	optimistic := models.ChatMessage{
		ID:       uuid.NewString(),
		UserName: models.OwnMessageLabel,
		Content:  content,
		Pending:  true,
	}

	s.mu.Lock()
	view := s.view(sess.UserID)
	view.pending = append(view.pending, pendingMessage{
		counterpartID: recipient.ID,
		msg:           optimistic,
	})
	s.mu.Unlock()

	created, err := s.messages.SendMessage(ctx, sess.Token, sess.UserID, recipient.ID, content)
	if err != nil {
		s.rollback(sess.UserID, optimistic.ID)
		metrics.ChatMessagesSent.WithLabelValues("error").Inc()
		metrics.ChatSendRollbacks.Inc()
		logger.Error("Message send failed, optimistic entry rolled back",
			zap.String("recipient_id", recipient.ID),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.ChatMessagesSent.WithLabelValues("success").Inc()

	s.mu.Lock()
	defer s.mu.Unlock()

	confirmed := optimistic
	confirmed.ID = created.ID
	confirmed.Pending = false

	for i := range view.pending {
		if view.pending[i].msg.ID == optimistic.ID {
			view.pending[i].confirmedID = created.ID
			view.pending[i].msg = confirmed
			break
		}
	}

	result := &SendResult{Message: confirmed}
	if view.lists != nil {
		promoted := PromoteCounterpart(*view.lists, recipient, *created)
		view.lists = &promoted
		result.Lists = &promoted
		view.counterpartID = recipient.ID
	}
	return result, nil
}

// fetchRoster loads the counterpart roster for the user's role through
// the TTL cache.
func (s *ChatService) fetchRoster(ctx context.Context, sess *models.Session) ([]models.Participant, error) {
	switch sess.Role {
	case models.RoleMentor:
		return s.rosterCache.Get(ctx, rosterStudents, sess.Token, s.rosters.Students)
	case models.RoleStudent:
		return s.rosterCache.Get(ctx, rosterMentors, sess.Token, s.rosters.AvailableMentors)
	default:
		return nil, ErrNoCounterpart
	}
}

// rollback removes an optimistic entry after a failed send.
func (s *ChatService) rollback(userID, messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := s.view(userID)
	remaining := view.pending[:0]
	for _, p := range view.pending {
		if p.msg.ID == messageID {
			continue
		}
		remaining = append(remaining, p)
	}
	view.pending = remaining
}

// view returns the user's conversation view, creating it on first use.
// Callers must hold s.mu.
func (s *ChatService) view(userID string) *conversationView {
	v, ok := s.views[userID]
	if !ok {
		v = &conversationView{}
		s.views[userID] = v
	}
	return v
}

// involves reports whether a message belongs to the conversation between
// the user and the counterpart, in either direction.
func involves(msg models.Message, userID, counterpartID string) bool {
	return (msg.Sender.ID == userID && msg.Recipient.ID == counterpartID) ||
		(msg.Sender.ID == counterpartID && msg.Recipient.ID == userID)
}

// renderMessage maps a backend message to its render model, labeling the
// user's own messages.
func renderMessage(msg models.Message, userID string) models.ChatMessage {
	rendered := models.ChatMessage{
		ID:        msg.ID,
		UserName:  msg.Sender.Name,
		AvatarURL: msg.Sender.AvatarURL,
		Content:   msg.Content,
	}
	if msg.Sender.ID == userID {
		rendered.UserName = models.OwnMessageLabel
	}
	return rendered
}
