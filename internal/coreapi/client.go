// Package coreapi holds the typed client wrappers for the remote core
// backend. Every feature in the web tier fetches its data through this
// package; nothing here is persisted locally.
package coreapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mentorhub/mentorhub-web/pkg/circuitbreaker"
	apperrors "github.com/mentorhub/mentorhub-web/pkg/errors"
	"github.com/mentorhub/mentorhub-web/pkg/httpclient"
	"github.com/mentorhub/mentorhub-web/pkg/logger"
	"github.com/mentorhub/mentorhub-web/pkg/metrics"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Client talks to the core backend REST API. Calls carry the caller's
// opaque credential as a bearer token; the client holds no credentials of
// its own. There is deliberately no retry here: a failed call is terminal
// for that one user action.
type Client struct {
	http    httpclient.Client
	baseURL string
	breaker *gobreaker.CircuitBreaker
}

// NewClient creates a core API client with circuit breaker protection.
func NewClient(baseURL string, hc httpclient.Client) *Client {
	cb := circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("core-api"))

	logger.Info("Core API client initialized", zap.String("base_url", baseURL))

	return &Client{
		http:    hc,
		baseURL: baseURL,
		breaker: cb,
	}
}

// do performs one JSON request/response round trip against the backend.
// out may be nil for calls whose body is irrelevant.
func (c *Client) do(ctx context.Context, token, method, path string, body any, out any, operation string) error {
	start := time.Now()

	_, err := circuitbreaker.Execute(c.breaker, func() (struct{}, error) {
		return struct{}{}, c.roundTrip(ctx, token, method, path, body, out)
	})

	duration := metrics.MeasureDuration(start)
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.CoreAPIRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.CoreAPIRequestTotal.WithLabelValues(operation, status).Inc()
	logger.LogAPICall(operation, status, duration)

	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return apperrors.UpstreamError(operation, err)
		}
		return err
	}
	return nil
}

// Ping probes backend reachability for the healthcheck.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "", http.MethodGet, "/health", nil, nil, "ping")
}

func (c *Client) roundTrip(ctx context.Context, token, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.UpstreamError(method+" "+path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, apperrors.ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, apperrors.ErrNotFound)
	case resp.StatusCode >= 400:
		// Bounded read so a misbehaving backend can't blow up logs
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512)) //nolint:errcheck
		return apperrors.UpstreamError(
			fmt.Sprintf("%s %s", method, path),
			fmt.Errorf("status %d: %s", resp.StatusCode, string(snippet)),
		)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
