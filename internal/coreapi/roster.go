package coreapi

import (
	"context"
	"net/http"

	"github.com/mentorhub/mentorhub-web/internal/models"
)

// Students fetches the full student roster.
func (c *Client) Students(ctx context.Context, token string) ([]models.Participant, error) {
	var students []models.Participant
	if err := c.do(ctx, token, http.MethodGet, "/students", nil, &students, "students"); err != nil {
		return nil, err
	}
	return students, nil
}

// AvailableMentors fetches the mentors currently open for chat.
func (c *Client) AvailableMentors(ctx context.Context, token string) ([]models.Participant, error) {
	var mentors []models.Participant
	if err := c.do(ctx, token, http.MethodGet, "/mentors/available", nil, &mentors, "availableMentors"); err != nil {
		return nil, err
	}
	return mentors, nil
}
