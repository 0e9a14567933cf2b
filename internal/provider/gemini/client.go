package gemini

import (
	"context"

	"google.golang.org/genai"
)

// GeminiClient is the slice of the genai SDK the provider needs.
type GeminiClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type sdkClient struct {
	models *genai.Models
}

// NewSDKClient adapts a genai client to GeminiClient.
func NewSDKClient(client *genai.Client) GeminiClient {
	return &sdkClient{models: client.Models}
}

func (c *sdkClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return c.models.GenerateContent(ctx, model, contents, config)
}
