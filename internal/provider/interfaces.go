package provider

import (
	"context"

	"github.com/Cyclone1070/sqlagent/internal/provider/models"
)

// Provider represents the interface to the Language Model.
// It sends a single text prompt and returns the text of the reply.
type Provider interface {
	Generate(ctx context.Context, prompt string, history []models.Message) (string, error)
	// GetModel returns the model identifier requests are sent to.
	GetModel() string
}
