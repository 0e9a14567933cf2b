package gemini

import (
	"context"
	"fmt"

	"github.com/Cyclone1070/sqlagent/internal/provider/models"
	"google.golang.org/genai"
)

// GeminiProvider implements provider.Provider for Google Gemini.
type GeminiProvider struct {
	client          GeminiClient
	modelName       string
	maxOutputTokens int32
}

// New creates a new GeminiProvider with the specified client and model.
func New(client GeminiClient, modelName string, maxOutputTokens int) *GeminiProvider {
	return &GeminiProvider{
		client:          client,
		modelName:       modelName,
		maxOutputTokens: int32(maxOutputTokens),
	}
}

// NewFromAPIKey builds a provider backed by the real Gemini API.
func NewFromAPIKey(ctx context.Context, apiKey, modelName string, maxOutputTokens int) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY: %w", models.ErrMissingAPIKey)
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return New(NewSDKClient(genaiClient), modelName, maxOutputTokens), nil
}

// Generate sends the prompt (after any history) to the Gemini API and
// returns the text of the first candidate.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string, history []models.Message) (string, error) {
	contents := toGeminiContents(prompt, history)
	config := toGeminiConfig(p.maxOutputTokens)

	resp, err := p.client.GenerateContent(ctx, p.modelName, contents, config)
	if err != nil {
		return "", mapGeminiError(err)
	}

	return fromGeminiResponse(resp)
}

// GetModel returns the model requests are sent to.
func (p *GeminiProvider) GetModel() string {
	return p.modelName
}
