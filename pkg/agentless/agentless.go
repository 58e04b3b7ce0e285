// Package agentless implements the agent capability with a plain chat
// completion instead of a live browser. The model answers the task from
// its own knowledge, which is useless for real availability checks but
// lets task prompts and the surrounding pipeline be exercised end to end
// without browsing infrastructure.
package agentless

import (
	"context"
	"fmt"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	contractx "github.com/daltonw/bookline/pipeline/contract"
)

type Config struct {
	BaseURL     string        `envconfig:"BASE_URL" split_words:"true"`
	APIKey      string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model       string        `split_words:"true" required:"true"`
	MaxTokens   int64         `split_words:"true" default:"2000"`
	Temperature float64       `split_words:"true" default:"0.5"`
	Timeout     time.Duration `split_words:"true" default:"120s"`
}

type Agent struct {
	client      openaisdk.Client
	model       string
	maxTokens   int64
	temperature float64
}

var _ contractx.Agent = (*Agent)(nil)

func New(cfg Config) (*Agent, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("agentless api key is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, fmt.Errorf("agentless model is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if trimmed := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	return &Agent{
		client:      openaisdk.NewClient(opts...),
		model:       model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

func (a *Agent) Run(ctx context.Context, instructions string) (string, error) {
	if strings.TrimSpace(instructions) == "" {
		return "", fmt.Errorf("%w: empty instructions", contractx.ErrAgentRun)
	}

	completion, err := a.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(a.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(instructions),
		},
		MaxCompletionTokens: openaisdk.Int(a.maxTokens),
		Temperature:         openaisdk.Float(a.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", contractx.ErrAgentRun, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: completion has no choices", contractx.ErrAgentRun)
	}
	return completion.Choices[0].Message.Content, nil
}
