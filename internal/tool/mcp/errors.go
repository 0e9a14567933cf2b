package mcp

import (
	"errors"
	"fmt"
)

var ErrNotConnected = errors.New("mcp session is not connected")

// ToolCallError is returned when the server reports a failed tool call.
type ToolCallError struct {
	Tool    string
	Message string
}

func (e *ToolCallError) Error() string {
	return fmt.Sprintf("tool %s reported an error: %s", e.Tool, e.Message)
}
