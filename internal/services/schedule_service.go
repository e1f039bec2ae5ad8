package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/mentorhub/mentorhub-web/internal/models"
	"github.com/mentorhub/mentorhub-web/pkg/logger"
	"github.com/mentorhub/mentorhub-web/pkg/metrics"
	"go.uber.org/zap"
)

var (
	ErrScheduleNotLoaded   = errors.New("schedule not loaded")
	ErrMentoringNotFound   = errors.New("mentoring session not found")
	ErrEmptyLink           = errors.New("link must not be empty")
	ErrMissingLink         = errors.New("video session has no link")
	ErrChatSessionActive   = errors.New("another chat session is already active")
	ErrNoActiveChatSession = errors.New("no chat session is active")
	ErrWrongSessionType    = errors.New("operation does not apply to this session type")
)

// DeleteReason distinguishes the two UI flows that remove a session. Both
// land on the same backend delete; only the success message differs.
type DeleteReason string

const (
	DeleteEnd    DeleteReason = "end"
	DeleteRefuse DeleteReason = "refuse"
)

// StartResult tells the client what to do after starting a session: open
// the link for video calls, or mark the active chat session.
type StartResult struct {
	Link         string `json:"link,omitempty"`
	ActiveChatID string `json:"activeChatId,omitempty"`
	Message      string `json:"message"`
}

// ScheduleService drives the mentor scheduling page: the session list,
// the calendar heat-map, day filtering, and the delete/edit-link/start
// operations. Each mentor's committed list is the single source of truth;
// every aggregate is recomputed from it after a mutation.
type ScheduleService struct {
	api ScheduleAPI

	mu    sync.Mutex
	state map[string]*mentorSchedule
}

type mentorSchedule struct {
	sessions     []models.MentoringSession
	activeChatID string
}

// NewScheduleService creates the schedule service.
func NewScheduleService(api ScheduleAPI) *ScheduleService {
	return &ScheduleService{
		api:   api,
		state: make(map[string]*mentorSchedule),
	}
}

// Load fetches all sessions, keeps the ones owned by the current mentor
// and commits them as the mentor's working list.
func (s *ScheduleService) Load(ctx context.Context, sess *models.Session, day *models.Day) (*models.ScheduleResponse, error) {
	all, err := s.api.MentoringSessions(ctx, sess.Token)
	if err != nil {
		return nil, err
	}

	owned := make([]models.MentoringSession, 0, len(all))
	for _, ms := range all {
		if ms.Mentor.ID == sess.UserID {
			owned = append(owned, ms)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sched := s.schedule(sess.UserID)
	sched.sessions = owned

	logger.Info("Mentor schedule loaded",
		zap.String("mentor_id", sess.UserID),
		zap.Int("count", len(owned)),
	)

	return s.responseLocked(sched, day), nil
}

// View renders the current committed state without refetching, applying
// the selected-day filter.
func (s *ScheduleService) View(sess *models.Session, day *models.Day) (*models.ScheduleResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sched, ok := s.state[sess.UserID]
	if !ok {
		return nil, ErrScheduleNotLoaded
	}
	return s.responseLocked(sched, day), nil
}

// Delete removes a session. The end-session and refuse-session flows both
// delegate here; the calendar and the day filter are recomputed from the
// committed post-delete list.
func (s *ScheduleService) Delete(ctx context.Context, sess *models.Session, id string, reason DeleteReason, day *models.Day) (*models.ScheduleResponse, string, error) {
	s.mu.Lock()
	sched, ok := s.state[sess.UserID]
	if !ok || findSession(sched.sessions, id) < 0 {
		s.mu.Unlock()
		return nil, "", ErrMentoringNotFound
	}
	s.mu.Unlock()

	if err := s.api.DeleteMentoringSession(ctx, sess.Token, id); err != nil {
		metrics.SessionDeletes.WithLabelValues(string(reason), "error").Inc()
		return nil, "", err
	}
	metrics.SessionDeletes.WithLabelValues(string(reason), "success").Inc()

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := findSession(sched.sessions, id); idx >= 0 {
		sched.sessions = append(sched.sessions[:idx], sched.sessions[idx+1:]...)
	}
	if sched.activeChatID == id {
		sched.activeChatID = ""
	}

	message := "Session ended"
	if reason == DeleteRefuse {
		message = "Session refused"
	}

	logger.Info("Mentoring session deleted",
		zap.String("session_id", id),
		zap.String("reason", string(reason)),
	)

	return s.responseLocked(sched, day), message, nil
}

// UpdateLink replaces a session's meeting link. An empty or
// whitespace-only link is rejected before any network call. On success
// the server's representation replaces the session in place and the
// current day filter is re-applied by the returned view.
func (s *ScheduleService) UpdateLink(ctx context.Context, sess *models.Session, id, link string, day *models.Day) (*models.ScheduleResponse, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return nil, ErrEmptyLink
	}

	s.mu.Lock()
	sched, ok := s.state[sess.UserID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrScheduleNotLoaded
	}
	idx := findSession(sched.sessions, id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, ErrMentoringNotFound
	}
	current := sched.sessions[idx]
	s.mu.Unlock()

	updated, err := s.api.UpdateMentoringSession(ctx, sess.Token, id, models.UpdateSessionRequest{
		Title:    current.Title,
		Date:     current.Date,
		DateHour: current.DateHour,
		Type:     current.Type,
		Link:     link,
	})
	if err != nil {
		metrics.SessionLinkUpdates.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.SessionLinkUpdates.WithLabelValues("success").Inc()

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := findSession(sched.sessions, id); idx >= 0 {
		sched.sessions[idx] = *updated
	}

	return s.responseLocked(sched, day), nil
}

// Start begins a session. Video calls require a link and hand it back for
// the client to open; chat sessions are limited to one active at a time
// per mentor. The flag is client-held and advisory only: it does not
// protect against another tab or device.
func (s *ScheduleService) Start(ctx context.Context, sess *models.Session, id string) (*StartResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sched, ok := s.state[sess.UserID]
	if !ok {
		return nil, ErrScheduleNotLoaded
	}
	idx := findSession(sched.sessions, id)
	if idx < 0 {
		return nil, ErrMentoringNotFound
	}
	target := sched.sessions[idx]

	switch target.Type {
	case models.SessionVideoCall:
		if strings.TrimSpace(target.Link) == "" {
			metrics.SessionStarts.WithLabelValues(string(target.Type), "error").Inc()
			return nil, ErrMissingLink
		}
		metrics.SessionStarts.WithLabelValues(string(target.Type), "success").Inc()
		return &StartResult{Link: target.Link, Message: "Opening video call"}, nil

	case models.SessionChat:
		if sched.activeChatID != "" && sched.activeChatID != id {
			metrics.SessionStarts.WithLabelValues(string(target.Type), "rejected").Inc()
			return nil, ErrChatSessionActive
		}
		sched.activeChatID = id
		metrics.SessionStarts.WithLabelValues(string(target.Type), "success").Inc()
		return &StartResult{ActiveChatID: id, Message: "Chat session started"}, nil

	default:
		return nil, ErrWrongSessionType
	}
}

// EndActive ends the mentor's active chat session: the advisory flag is
// cleared and the session is deleted like any explicit end action.
func (s *ScheduleService) EndActive(ctx context.Context, sess *models.Session, day *models.Day) (*models.ScheduleResponse, string, error) {
	s.mu.Lock()
	sched, ok := s.state[sess.UserID]
	if !ok || sched.activeChatID == "" {
		s.mu.Unlock()
		return nil, "", ErrNoActiveChatSession
	}
	active := sched.activeChatID
	s.mu.Unlock()

	return s.Delete(ctx, sess, active, DeleteEnd, day)
}

// ActiveChatID exposes the advisory active-session flag for the schedule
// page payload.
func (s *ScheduleService) ActiveChatID(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sched, ok := s.state[userID]; ok {
		return sched.activeChatID
	}
	return ""
}

// responseLocked builds the page payload from the committed list. Callers
// must hold s.mu.
func (s *ScheduleService) responseLocked(sched *mentorSchedule, day *models.Day) *models.ScheduleResponse {
	return &models.ScheduleResponse{
		Sessions:    annotateDisplayDates(FilterByDay(sched.sessions, day)),
		Calendar:    BuildCalendar(sched.sessions),
		SelectedDay: day,
		ActiveID:    sched.activeChatID,
	}
}

// schedule returns the mentor's state, creating it on first use. Callers
// must hold s.mu.
func (s *ScheduleService) schedule(userID string) *mentorSchedule {
	sched, ok := s.state[userID]
	if !ok {
		sched = &mentorSchedule{}
		s.state[userID] = sched
	}
	return sched
}

func findSession(sessions []models.MentoringSession, id string) int {
	for i := range sessions {
		if sessions[i].ID == id {
			return i
		}
	}
	return -1
}
