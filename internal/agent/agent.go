// Package agent turns user prompts into model calls and routes SQL replies
// to the executor.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Cyclone1070/sqlagent/internal/provider"
	"github.com/Cyclone1070/sqlagent/internal/provider/models"
)

// Reply is the result of one Invoke.
type Reply struct {
	// Text is the executor's output for SQL replies, or the model's reply
	// unchanged for prose.
	Text string
	Kind Kind
}

// Agent holds a session transcript. Prompts are sent to the model one at
// a time; the transcript is recorded but not replayed.
type Agent struct {
	provider   provider.Provider
	executor   sqlExecutor
	transcript []models.Message
	mu         sync.Mutex
}

// New creates an agent with an empty transcript.
func New(p provider.Provider, executor sqlExecutor) *Agent {
	return &Agent{
		provider: p,
		executor: executor,
	}
}

// Invoke sends prompt to the model and acts on the reply. Write statements
// run with commit, SELECT statements run as reads, and anything else is
// returned as-is and recorded as the assistant's turn. A reply cut off at
// the output token limit is still used.
func (a *Agent) Invoke(ctx context.Context, prompt string) (Reply, error) {
	a.record(models.RoleUser, prompt)

	text, err := a.provider.Generate(ctx, prompt, nil)
	if err != nil {
		if !isTruncated(text, err) {
			slog.Debug("model request failed", "retryable", models.IsRetryable(err), "error", err)
			return Reply{}, fmt.Errorf("model request failed: %w", err)
		}
		slog.Warn("model reply truncated at output token limit", "model", a.provider.GetModel(), "chars", len(text))
	}

	candidate, kind := Classify(text)
	slog.Debug("classified model reply", "kind", kind, "model", a.provider.GetModel())

	switch kind {
	case KindWrite:
		return Reply{Text: a.executor.Execute(ctx, candidate, true), Kind: kind}, nil
	case KindRead:
		return Reply{Text: a.executor.Execute(ctx, candidate, false), Kind: kind}, nil
	}

	a.record(models.RoleAssistant, text)
	return Reply{Text: text, Kind: KindText}, nil
}

func (a *Agent) record(role models.Role, content string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.transcript = append(a.transcript, models.Message{Role: role, Content: content})
}

// isTruncated reports whether err only says the reply hit the token limit
// and some text came back.
func isTruncated(text string, err error) bool {
	var pe *models.ProviderError
	return text != "" && errors.As(err, &pe) && pe.Code == models.ErrorCodeContextLength
}

// Transcript returns a copy of the messages recorded so far.
func (a *Agent) Transcript() []models.Message {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]models.Message, len(a.transcript))
	copy(out, a.transcript)
	return out
}
