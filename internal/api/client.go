// ABOUTME: HTTP client for the Zelqora REST backend
// ABOUTME: Shared request plumbing, JSON error envelope handling

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GramosTV/zelqora-client/internal/cache"
	"github.com/GramosTV/zelqora-client/internal/models"
	"github.com/GramosTV/zelqora-client/internal/securemsg"
)

// Error is a backend rejection with the HTTP status and the
// backend-provided message, when one was present in the response body.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// errorEnvelope is the backend's error body shape. Some endpoints use
// "message", others "error".
type errorEnvelope struct {
	Message string `json:"message"`
	Err     string `json:"error"`
}

// Client talks to the Zelqora backend. The http.Client it is given
// normally carries the auth transport chain; the refresh coordinator uses
// a bare one.
type Client struct {
	baseURL    string
	httpClient *http.Client
	codec      *securemsg.Codec
	doctors    *cache.Cache[[]models.User]
}

// New creates an API client. codec may be nil for callers that never
// touch messaging (the refresh coordinator).
func New(baseURL string, httpClient *http.Client, codec *securemsg.Codec, directoryTTL time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if directoryTTL <= 0 {
		directoryTTL = 5 * time.Minute
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		codec:      codec,
		doctors:    cache.New[[]models.User](directoryTTL),
	}
}

// do issues a JSON request and decodes the response into out (when out is
// non-nil). Non-2xx responses become *Error with the backend message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.requestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// requestError converts context errors to user-friendly messages while
// keeping the underlying error in the chain for errors.Is callers.
func (c *Client) requestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled: %w", err)
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// decodeError parses the backend's error envelope into *Error.
func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		if envelope.Message != "" {
			apiErr.Message = envelope.Message
		} else if envelope.Err != "" {
			apiErr.Message = envelope.Err
		}
	}
	return apiErr
}
