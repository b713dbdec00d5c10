// Package client is a Go client for the gallery HTTP API.
package client

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
)

// Post mirrors a published gallery entry.
type Post struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Prompt    string    `json:"prompt"`
	Photo     string    `json:"photo"`
	CreatedAt time.Time `json:"created_at"`
}

// APIError is a non-2xx reply from the API.
type APIError struct {
	StatusCode int
	Tag        string          // the "error" field
	Message    string          // the optional "message" hint
	Details    json.RawMessage // provider or local detail, verbatim
	Relayed    bool            // the status was mirrored from the provider
}

func (e *APIError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Tag)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// ProviderMessage extracts a human readable message from relayed provider details.
func (e *APIError) ProviderMessage() string {
	if !e.Relayed || len(e.Details) == 0 {
		return ""
	}
	var asString string
	if err := json.Unmarshal(e.Details, &asString); err == nil {
		return strings.TrimSpace(asString)
	}
	var asObject struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Details, &asObject); err == nil {
		return strings.TrimSpace(asObject.Message)
	}
	return ""
}

// UserMessage picks the most specific message available: provider detail,
// then the error tag, then the local error text, then fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.ProviderMessage(); msg != "" {
			return msg
		}
		if apiErr.Tag != "" {
			return apiErr.Tag
		}
		return fallback
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}

// Client talks to the gallery API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New builds a client for the API rooted at baseURL (e.g. http://localhost:8080).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/api/v1",
		httpClient: &http.Client{Timeout: 3 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate asks the API for an image and returns its data URI.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var out struct {
		Photo string `json:"photo"`
	}
	if err := c.do(ctx, http.MethodPost, "/generate", map[string]string{"prompt": prompt}, &out); err != nil {
		return "", err
	}
	if out.Photo == "" {
		return "", errors.New("api: response has no photo")
	}
	return out.Photo, nil
}

// CreatePost publishes a post.
func (c *Client) CreatePost(ctx context.Context, name, prompt, photo string) (*Post, error) {
	var out struct {
		Data Post `json:"data"`
	}
	body := map[string]string{"name": name, "prompt": prompt, "photo": photo}
	if err := c.do(ctx, http.MethodPost, "/posts", body, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// ListPosts fetches the whole gallery, newest first.
func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	var out struct {
		Data []Post `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// RandomPrompt fetches a surprise-me prompt different from current.
func (c *Client) RandomPrompt(ctx context.Context, current string) (string, error) {
	var out struct {
		Prompt string `json:"prompt"`
	}
	path := "/prompts/random?current=" + url.QueryEscape(current)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return "", err
	}
	return out.Prompt, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var body struct {
		Error   string          `json:"error"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
		Status  int             `json:"status"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		apiErr.Tag = strings.TrimSpace(string(raw))
		return apiErr
	}
	apiErr.Tag = body.Error
	apiErr.Message = body.Message
	apiErr.Details = body.Details
	apiErr.Relayed = body.Status != 0
	return apiErr
}
