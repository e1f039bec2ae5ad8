package coreapi

import (
	"context"
	"net/http"

	"github.com/mentorhub/mentorhub-web/internal/models"
)

// Login authenticates against the core backend and returns the opaque
// credential plus the user identity and role.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	payload := map[string]string{"email": email, "password": password}

	var result models.AuthResult
	if err := c.do(ctx, "", http.MethodPost, "/auth/login", payload, &result, "login"); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a new account and logs it in.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	var result models.AuthResult
	if err := c.do(ctx, "", http.MethodPost, "/auth/register", req, &result, "register"); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me fetches the caller's own profile.
func (c *Client) Me(ctx context.Context, token string) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, token, http.MethodGet, "/users/me", nil, &profile, "me"); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateAvatar stores the caller's new avatar URL on the backend.
func (c *Client) UpdateAvatar(ctx context.Context, token, avatarURL string) error {
	payload := map[string]string{"avatar": avatarURL}
	return c.do(ctx, token, http.MethodPut, "/users/me/avatar", payload, nil, "updateAvatar")
}
