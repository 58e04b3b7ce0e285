// Package cartesia triggers outbound voice-agent calls through the
// Cartesia telephony API.
package cartesia

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

	contractx "github.com/daltonw/bookline/pipeline/contract"
)

const (
	defaultBaseURL       = "https://api.cartesia.ai"
	outboundCallPath     = "/twilio/call/outbound"
	apiVersion           = "2025-04-16"
	maxResponseSizeBytes = 1 << 20
)

type Config struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.cartesia.ai"`
	APIKey  string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	AgentID string        `envconfig:"AGENT_ID" split_words:"true" required:"true"`
	Timeout time.Duration `split_words:"true" default:"15s"`
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

type Client struct {
	baseURL    string
	apiKey     string
	agentID    string
	httpClient *http.Client
}

var _ contractx.CallTrigger = (*Client)(nil)

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid cartesia base url: %w", err)
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("cartesia api key is required")
	}
	agentID := strings.TrimSpace(cfg.AgentID)
	if agentID == "" {
		return nil, errors.New("cartesia agent id is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		agentID:    agentID,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

func MustNew(cfg Config, opts ...Option) *Client {
	client, err := NewClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

type outboundCallRequest struct {
	TargetNumbers []string `json:"target_numbers"`
	AgentID       string   `json:"agent_id"`
}

// Call starts one outbound call to phoneNumber. Any 2xx response is
// success; anything else fails with the response body surfaced. No
// retries.
func (c *Client) Call(ctx context.Context, phoneNumber string) error {
	phone := strings.TrimSpace(phoneNumber)
	if phone == "" {
		return errors.New("phone number is required")
	}

	payload, err := json.Marshal(outboundCallRequest{
		TargetNumbers: []string{phone},
		AgentID:       c.agentID,
	})
	if err != nil {
		return fmt.Errorf("marshal call request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+outboundCallPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build call request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Cartesia-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute call request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return fmt.Errorf("read call response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("cartesia call failed: status=%d body=%s", resp.StatusCode, string(raw))
	}
	return nil
}
