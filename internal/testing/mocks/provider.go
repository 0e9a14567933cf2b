package mocks

import (
	"context"
	"sync"

	"github.com/Cyclone1070/sqlagent/internal/provider/models"
)

// GenerateCall records one Generate invocation.
type GenerateCall struct {
	Prompt  string
	History []models.Message
}

// MockProvider is a controllable provider.Provider. Replies are queued with
// WithTextResponse/WithError and served in order; once the queue is empty
// GenerateFunc is consulted, then a default "Done" reply.
type MockProvider struct {
	mu        sync.Mutex
	responses []mockResponse
	index     int
	calls     []GenerateCall
	modelName string

	GenerateFunc func(ctx context.Context, prompt string, history []models.Message) (string, error)
}

type mockResponse struct {
	text string
	err  error
}

// NewMockProvider creates a mock with an empty queue.
func NewMockProvider() *MockProvider {
	return &MockProvider{modelName: "mock-model"}
}

// WithTextResponse queues a reply.
func (m *MockProvider) WithTextResponse(text string) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, mockResponse{text: text})
	return m
}

// WithResponse queues a reply that carries both text and an error, as
// providers do when output is cut off.
func (m *MockProvider) WithResponse(text string, err error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, mockResponse{text: text, err: err})
	return m
}

// WithError queues a failure.
func (m *MockProvider) WithError(err error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, mockResponse{err: err})
	return m
}

// Generate implements provider.Provider.
func (m *MockProvider) Generate(ctx context.Context, prompt string, history []models.Message) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, GenerateCall{Prompt: prompt, History: history})
	if m.index < len(m.responses) {
		resp := m.responses[m.index]
		m.index++
		m.mu.Unlock()
		return resp.text, resp.err
	}
	fn := m.GenerateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt, history)
	}
	return "Done", nil
}

// GetModel implements provider.Provider.
func (m *MockProvider) GetModel() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modelName
}

// Calls returns a copy of every Generate invocation so far.
func (m *MockProvider) Calls() []GenerateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]GenerateCall, len(m.calls))
	copy(out, m.calls)
	return out
}
