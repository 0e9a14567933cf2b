// Package openai implements provider.Provider for OpenAI and any
// OpenAI-compatible chat completions endpoint.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Cyclone1070/sqlagent/internal/provider/models"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider sends prompts to the chat completions API.
type OpenAIProvider struct {
	client    *openai.Client
	modelName string
	maxTokens int
}

// New creates a provider. An empty baseURL uses the public OpenAI endpoint.
func New(apiKey, baseURL, modelName string, maxTokens int) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY: %w", models.ErrMissingAPIKey)
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &OpenAIProvider{
		client:    openai.NewClientWithConfig(cfg),
		modelName: modelName,
		maxTokens: maxTokens,
	}, nil
}

// Generate sends the history followed by the prompt and returns the first
// choice's content.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, history []models.Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:     p.modelName,
		Messages:  toMessages(prompt, history),
		MaxTokens: p.maxTokens,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", mapError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &models.ProviderError{Code: models.ErrorCodeEmptyResponse, Message: "no choices in response"}
	}

	choice := resp.Choices[0]
	switch choice.FinishReason {
	case openai.FinishReasonContentFilter:
		return "", &models.ProviderError{Code: models.ErrorCodeContentBlocked, Message: "content blocked by content filter"}
	case openai.FinishReasonLength:
		return choice.Message.Content, &models.ProviderError{
			Code:    models.ErrorCodeContextLength,
			Message: "response truncated due to max tokens",
		}
	}
	if choice.Message.Content == "" {
		return "", &models.ProviderError{Code: models.ErrorCodeEmptyResponse, Message: "no text in response"}
	}
	return choice.Message.Content, nil
}

// GetModel returns the model requests are sent to.
func (p *OpenAIProvider) GetModel() string {
	return p.modelName
}

func toMessages(prompt string, history []models.Message) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	for _, m := range history {
		if m.Content == "" {
			continue
		}
		role := openai.ChatMessageRoleUser
		if m.Role == models.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})
}

func mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return models.FromStatus(apiErr.HTTPStatusCode, apiErr.Message, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return models.FromStatus(reqErr.HTTPStatusCode, statusText(reqErr), err)
	}
	return &models.ProviderError{
		Code:       models.ErrorCodeNetwork,
		Message:    "network error",
		Underlying: err,
		Retryable:  true,
	}
}

func statusText(reqErr *openai.RequestError) string {
	if reqErr.HTTPStatus != "" {
		return reqErr.HTTPStatus
	}
	return string(reqErr.Body)
}
