// Package browseragent talks to the external autonomous browsing-agent
// service. A Run spans the whole session lifecycle: create a task under a
// fresh session, poll it to completion, tear the session down. Callers get
// one free-text report per invocation and no session state leaks between
// calls.
package browseragent

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

	"github.com/google/uuid"

	contractx "github.com/daltonw/bookline/pipeline/contract"
)

const maxResponseSizeBytes = 4 << 20

type Config struct {
	URL          string        `split_words:"true" required:"true"`
	APIKey       string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model        string        `split_words:"true" default:"claude-sonnet-4-5-20250929"`
	PollInterval time.Duration `split_words:"true" default:"5s"`
	HTTPTimeout  time.Duration `envconfig:"HTTP_TIMEOUT" split_words:"true" default:"30s"`
}

// Option customizes a Client.
type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

type Client struct {
	baseURL      string
	apiKey       string
	model        string
	pollInterval time.Duration
	httpClient   *http.Client
}

var _ contractx.Agent = (*Client)(nil)

func New(cfg Config, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, errors.New("browser agent url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid browser agent url: %w", err)
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("browser agent api key is required")
	}

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	httpTimeout := cfg.HTTPTimeout
	if httpTimeout <= 0 {
		httpTimeout = 30 * time.Second
	}

	c := &Client{
		baseURL:      baseURL,
		apiKey:       apiKey,
		model:        strings.TrimSpace(cfg.Model),
		pollInterval: pollInterval,
		httpClient:   &http.Client{Timeout: httpTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

type createTaskRequest struct {
	Task      string `json:"task"`
	SessionID string `json:"session_id"`
	LLM       string `json:"llm,omitempty"`
}

type taskResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Output string `json:"output"`
}

// Run submits the instructions as one agent task and blocks until the
// agent produces its final report. The report content is returned
// verbatim; interpreting it is the caller's concern. A capability-level
// failure (the service cannot produce any report) is the only error.
func (c *Client) Run(ctx context.Context, instructions string) (string, error) {
	if strings.TrimSpace(instructions) == "" {
		return "", fmt.Errorf("%w: empty instructions", contractx.ErrAgentRun)
	}

	sessionID := uuid.NewString()
	taskID, err := c.createTask(ctx, sessionID, instructions)
	if err != nil {
		return "", err
	}
	defer c.teardownSession(ctx, sessionID)

	for {
		task, err := c.getTask(ctx, taskID)
		if err != nil {
			return "", err
		}

		switch task.Status {
		case "finished":
			return task.Output, nil
		case "failed", "stopped":
			return "", fmt.Errorf("%w: task %s ended with status=%s", contractx.ErrAgentRun, taskID, task.Status)
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", contractx.ErrAgentRun, ctx.Err())
		case <-time.After(c.pollInterval):
		}
	}
}

func (c *Client) createTask(ctx context.Context, sessionID, instructions string) (string, error) {
	body := createTaskRequest{
		Task:      instructions,
		SessionID: sessionID,
		LLM:       c.model,
	}
	var resp taskResponse
	if err := c.do(ctx, http.MethodPost, "/tasks", body, &resp); err != nil {
		return "", fmt.Errorf("%w: create task: %v", contractx.ErrAgentRun, err)
	}
	if strings.TrimSpace(resp.ID) == "" {
		return "", fmt.Errorf("%w: create task returned no id", contractx.ErrAgentRun)
	}
	return resp.ID, nil
}

func (c *Client) getTask(ctx context.Context, taskID string) (*taskResponse, error) {
	var resp taskResponse
	if err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(taskID), nil, &resp); err != nil {
		return nil, fmt.Errorf("%w: poll task %s: %v", contractx.ErrAgentRun, taskID, err)
	}
	return &resp, nil
}

// teardownSession closes the remote browser session. Best effort: a
// session the service fails to close expires server-side, so the error is
// dropped. Uses a detached context so teardown still runs after cancel.
func (c *Client) teardownSession(ctx context.Context, sessionID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	_ = c.do(ctx, http.MethodDelete, "/sessions/"+url.PathEscape(sessionID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("http status=%d body=%s", resp.StatusCode, string(raw))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
