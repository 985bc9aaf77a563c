// Package ai adapts the OpenAI chat completions API to the completion port.
package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/gitfolio/gitfolio/configs"
	"github.com/gitfolio/gitfolio/internal/core/ports"
)

const defaultModel = "gpt-4o-mini"

// OpenAIClient implements ports.CompletionClient over chat completions.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a completion client. An empty API key is an error;
// callers that can run without generation should not construct a client and
// rely on fallbacks instead.
func NewOpenAIClient(cfg *configs.OpenAIConfig) (*OpenAIClient, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("openai: api key required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Complete issues a single non-streaming completion and returns the raw text
// of the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, system, prompt string, opts ports.CompletionOptions) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(prompt),
		},
	}
	if opts.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(opts.MaxTokens))
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(opts.Temperature)
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("openai: empty completion")
	}

	return completion.Choices[0].Message.Content, nil
}
