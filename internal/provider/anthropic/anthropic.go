// Package anthropic implements provider.Provider on the Claude Messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Cyclone1070/sqlagent/internal/provider/models"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider sends prompts to the Messages API.
type AnthropicProvider struct {
	client    anthropic.Client
	modelName string
	maxTokens int64
}

// New creates a provider. Extra request options are appended after the API
// key, so callers can point the client at another base URL.
func New(apiKey, modelName string, maxTokens int, opts ...option.RequestOption) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY: %w", models.ErrMissingAPIKey)
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &AnthropicProvider{
		client:    anthropic.NewClient(opts...),
		modelName: modelName,
		maxTokens: int64(maxTokens),
	}, nil
}

// Generate sends the history followed by the prompt and joins the text
// blocks of the reply.
func (p *AnthropicProvider) Generate(ctx context.Context, prompt string, history []models.Message) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.modelName),
		MaxTokens: p.maxTokens,
		Messages:  toMessages(prompt, history),
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", mapError(err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := sb.String()

	switch resp.StopReason {
	case anthropic.StopReasonRefusal:
		return "", &models.ProviderError{Code: models.ErrorCodeContentBlocked, Message: "model refused the request"}
	case anthropic.StopReasonMaxTokens:
		return text, &models.ProviderError{
			Code:    models.ErrorCodeContextLength,
			Message: "response truncated due to max tokens",
		}
	}
	if text == "" {
		return "", &models.ProviderError{Code: models.ErrorCodeEmptyResponse, Message: "no text in response"}
	}
	return text, nil
}

// GetModel returns the model requests are sent to.
func (p *AnthropicProvider) GetModel() string {
	return p.modelName
}

func toMessages(prompt string, history []models.Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, m := range history {
		if m.Content == "" {
			continue
		}
		if m.Role == models.RoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		} else {
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	return append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)))
}

func mapError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return models.FromStatus(apiErr.StatusCode, apiErr.Error(), err)
	}
	return &models.ProviderError{
		Code:       models.ErrorCodeNetwork,
		Message:    "network error",
		Underlying: err,
		Retryable:  true,
	}
}
