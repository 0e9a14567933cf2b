package ui

import (
	"fmt"

	"github.com/chzyer/readline"
)

// NewReadlineReader creates a terminal line reader showing Prompt. An empty
// historyFile keeps history in memory only.
func NewReadlineReader(historyFile string) (*readline.Instance, error) {
	instance, err := readline.NewEx(&readline.Config{
		Prompt:          Prompt,
		HistoryFile:     historyFile,
		HistoryLimit:    1000,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}
	return instance, nil
}
