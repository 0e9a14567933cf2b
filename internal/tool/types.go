package tool

import (
	"context"
	"encoding/json"
	"strings"
)

// Func is the uniform shape every tool is invoked through. name is the
// registered name the call was dispatched under.
type Func func(ctx context.Context, name string, input map[string]any) (any, error)

// Status reports the outcome of a dispatched call.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Entry is a registered tool.
type Entry struct {
	Name        string
	Func        Func
	Description string
	InputSchema json.RawMessage
}

// Spec describes a tool to a model: everything in Entry except the function.
type Spec struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema,omitempty"`
}

// ContentBlock is a single piece of text output.
type ContentBlock struct {
	Text string `json:"text"`
}

// Result is the outcome of Dispatch.
type Result struct {
	ToolUseID string         `json:"tool_use_id"`
	Content   []ContentBlock `json:"content"`
	Status    Status         `json:"status"`

	// Err is the error behind a StatusError result.
	Err error `json:"-"`
}

// Text joins all content blocks.
func (r Result) Text() string {
	var sb strings.Builder
	for _, c := range r.Content {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// Type represents JSON Schema types.
type Type string

const (
	TypeString  Type = "string"
	TypeBoolean Type = "boolean"
	TypeObject  Type = "object"
)

// Schema is a minimal JSON Schema used to describe local tool inputs.
// Discovered tools carry their schema as raw JSON instead.
type Schema struct {
	Type        Type               `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Raw marshals the schema for use as an Entry's InputSchema.
func (s *Schema) Raw() json.RawMessage {
	if s == nil {
		return nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil
	}
	return b
}
