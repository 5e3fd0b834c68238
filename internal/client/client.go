package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tripwise-backend/internal/models"
)

// ErrBackendUnreachable covers network failures, timeouts and non-2xx
// responses alike: for the chat loop they all mean "resend later".
var ErrBackendUnreachable = errors.New("could not reach backend")

// Client is a thin HTTP client for the assistant API, used by the
// terminal chat. It pins one session id for its lifetime.
type Client struct {
	baseURL    string
	sessionID  string
	httpClient *http.Client
}

func New(baseURL, sessionID string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		sessionID:  sessionID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ask sends one utterance and returns the assistant's turn.
func (c *Client) Ask(ctx context.Context, text string) (*models.AskResponse, error) {
	payload, err := json.Marshal(models.AskRequest{Text: text, SessionID: c.sessionID})
	if err != nil {
		return nil, fmt.Errorf("marshal ask request: %w", err)
	}

	var resp models.AskResponse
	if err := c.post(ctx, "/assistant/ask", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Summary fetches the session's accumulated context and history.
func (c *Client) Summary(ctx context.Context) (*models.SummaryResponse, error) {
	u := c.baseURL + "/assistant/summary?session_id=" + url.QueryEscape(c.sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build summary request: %w", err)
	}

	var resp models.SummaryResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Reset clears the session server-side.
func (c *Client) Reset(ctx context.Context) error {
	payload, err := json.Marshal(map[string]string{"session_id": c.sessionID})
	if err != nil {
		return fmt.Errorf("marshal reset request: %w", err)
	}
	var resp models.ResetResponse
	return c.post(ctx, "/assistant/reset", payload, &resp)
}

func (c *Client) post(ctx context.Context, path string, payload []byte, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, dest)
}

func (c *Client) do(req *http.Request, dest any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrBackendUnreachable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
