// Package backboard implements the assistant driver over Backboard's HTTP API.
//
// Assistants and threads are created with JSON posts; messages use the
// form-encoded shape from Backboard's quickstart (content / stream / memory).
// Every call authenticates with a static X-API-Key header.
package backboard

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

	"github.com/Juliand6/therapy-assistant/pkg/assistant"
)

// DefaultBaseURL is the hosted Backboard API.
const DefaultBaseURL = "https://app.backboard.io/api"

// Config holds configuration for the Backboard client.
type Config struct {
	// BaseURL of the Backboard API. Defaults to DefaultBaseURL if empty.
	BaseURL string

	// APIKey is the static credential sent as X-API-Key.
	APIKey string
}

// Client talks to the Backboard API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Backboard client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type assistantResponse struct {
	AssistantID string `json:"assistant_id"`
}

type threadResponse struct {
	ThreadID string `json:"thread_id"`
}

type messageResponse struct {
	Content string `json:"content"`
}

// CreateAssistant registers the shared assistant identity.
func (c *Client) CreateAssistant(ctx context.Context, name, description string) (string, error) {
	body, err := c.postJSON(ctx, "/assistants", map[string]string{
		"name":        name,
		"description": description,
	})
	if err != nil {
		return "", err
	}

	var resp assistantResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decoding assistant response: %w", err)
	}
	if resp.AssistantID == "" {
		return "", fmt.Errorf("assistant response missing assistant_id: %s", string(body))
	}

	return resp.AssistantID, nil
}

// CreateThread opens a new thread under the assistant.
func (c *Client) CreateThread(ctx context.Context, assistantID string) (string, error) {
	body, err := c.postJSON(ctx, "/assistants/"+assistantID+"/threads", map[string]string{})
	if err != nil {
		return "", err
	}

	var resp threadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decoding thread response: %w", err)
	}
	if resp.ThreadID == "" {
		return "", fmt.Errorf("thread response missing thread_id: %s", string(body))
	}

	return resp.ThreadID, nil
}

// SendMessage posts content into the thread with automatic memory and no
// streaming, returning the reply content. Replies without a content field
// come back as the raw response body, matching what the service handed us.
func (c *Client) SendMessage(ctx context.Context, threadID, content string) (string, error) {
	form := url.Values{}
	form.Set("content", content)
	form.Set("stream", "false")
	form.Set("memory", "Auto")

	body, err := c.postForm(ctx, "/threads/"+threadID+"/messages", form)
	if err != nil {
		return "", err
	}

	var resp messageResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Content == "" {
		return string(body), nil
	}

	return resp.Content, nil
}

// Close releases client resources.
func (c *Client) Close() error {
	// HTTP client doesn't require explicit cleanup
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &assistant.StatusError{Status: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

var _ assistant.Driver = (*Client)(nil)
