// Package api is the HTTP client for the Lovelace marketplace REST API.
// It covers the auth, game catalog and wishlist endpoints and maps failures
// onto a small error taxonomy (see errors.go).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds every API request unless the caller's context is
// stricter.
const DefaultTimeout = 30 * time.Second

// Client talks to the marketplace API at a fixed base URL.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New creates a Client for the API rooted at baseURL. A nil logger disables
// logging.
func New(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     logger,
	}
}

// do performs a JSON request against the API. A non-empty token is sent as a
// bearer credential. When out is non-nil the response body is decoded into it.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshalling request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("api request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &Error{
			Category: NetworkUnavailable,
			Message:  "could not reach the server",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{
			Category: NetworkUnavailable,
			Message:  "reading response",
			Err:      err,
		}
	}

	if resp.StatusCode >= 400 {
		return c.statusError(resp.StatusCode, data, token != "")
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// statusError builds a categorized error from a non-2xx response. The server
// sends structured bodies of the form {"message": "..."} on rejection.
func (c *Client) statusError(status int, body []byte, authed bool) *Error {
	var msg MessageResponse
	message := ""
	if json.Unmarshal(body, &msg) == nil {
		message = msg.Message
	}
	if message == "" {
		message = http.StatusText(status)
	}

	category := ServerRejected
	if authed && status == http.StatusUnauthorized {
		category = Unauthenticated
	}

	c.log.Debug("api request rejected", zap.Int("status", status), zap.String("message", message))
	return &Error{
		Category: category,
		Status:   status,
		Message:  message,
	}
}
