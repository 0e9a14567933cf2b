package ui

import (
	"context"

	"github.com/Cyclone1070/sqlagent/internal/agent"
)

// LineReader supplies one line of user input per call. It returns
// readline.ErrInterrupt on Ctrl+C and io.EOF when input ends.
// *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// Spinner is a running activity indicator.
type Spinner interface {
	Stop()
}

// SpinnerFactory starts a spinner with the given label.
type SpinnerFactory func(text string) Spinner

// invoker runs one prompt through the agent.
// This is a consumer-defined interface; agent.Agent satisfies it.
type invoker interface {
	Invoke(ctx context.Context, prompt string) (agent.Reply, error)
}
