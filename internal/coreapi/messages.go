package coreapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mentorhub/mentorhub-web/internal/models"
)

// SentMessages fetches every message the given user has sent.
func (c *Client) SentMessages(ctx context.Context, token, userID string) ([]models.Message, error) {
	var messages []models.Message
	path := fmt.Sprintf("/messages/sent?userId=%s", url.QueryEscape(userID))
	if err := c.do(ctx, token, http.MethodGet, path, nil, &messages, "sentMessages"); err != nil {
		return nil, err
	}
	return messages, nil
}

// ReceivedMessages fetches every message the given user has received.
func (c *Client) ReceivedMessages(ctx context.Context, token, userID string) ([]models.Message, error) {
	var messages []models.Message
	path := fmt.Sprintf("/messages/received?userId=%s", url.QueryEscape(userID))
	if err := c.do(ctx, token, http.MethodGet, path, nil, &messages, "receivedMessages"); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage posts a new message and returns the created entity.
func (c *Client) SendMessage(ctx context.Context, token, senderID, recipientID, content string) (*models.Message, error) {
	payload := map[string]string{
		"senderId":    senderID,
		"recipientId": recipientID,
		"content":     content,
	}

	var created models.Message
	if err := c.do(ctx, token, http.MethodPost, "/messages", payload, &created, "sendMessage"); err != nil {
		return nil, err
	}
	return &created, nil
}
