package coreapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mentorhub/mentorhub-web/internal/models"
)

// MentoringSessions fetches all scheduled sessions visible to the caller.
// The backend returns everyone's sessions; ownership filtering happens in
// the schedule service.
func (c *Client) MentoringSessions(ctx context.Context, token string) ([]models.MentoringSession, error) {
	var sessions []models.MentoringSession
	if err := c.do(ctx, token, http.MethodGet, "/sessions", nil, &sessions, "mentoringSessions"); err != nil {
		return nil, err
	}
	return sessions, nil
}

// UpdateMentoringSession replaces a session wholesale, keyed by id, and
// returns the server's representation.
func (c *Client) UpdateMentoringSession(ctx context.Context, token, id string, req models.UpdateSessionRequest) (*models.MentoringSession, error) {
	var updated models.MentoringSession
	path := fmt.Sprintf("/sessions/%s", url.PathEscape(id))
	if err := c.do(ctx, token, http.MethodPut, path, req, &updated, "updateSession"); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteMentoringSession removes a session. Both the end-session and the
// refuse-session flows land here.
func (c *Client) DeleteMentoringSession(ctx context.Context, token, id string) error {
	path := fmt.Sprintf("/sessions/%s", url.PathEscape(id))
	return c.do(ctx, token, http.MethodDelete, path, nil, nil, "deleteSession")
}
