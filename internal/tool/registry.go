// Package tool holds the registry of callable tools and the adapters that
// turn typed Go functions into registry entries.
package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Registry maps tool names to entries and remembers the order they were
// first registered in.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds or replaces a tool. A replaced tool keeps its position in
// Specs. Nothing is validated.
func (r *Registry) Register(name string, fn Func, description string, inputSchema json.RawMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; !exists {
		r.order = append(r.order, name)
	}
	r.entries[name] = &Entry{
		Name:        name,
		Func:        fn,
		Description: description,
		InputSchema: inputSchema,
	}
}

// Specs lists every registered tool in registration order.
func (r *Registry) Specs() []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]Spec, 0, len(r.order))
	for _, name := range r.order {
		e := r.entries[name]
		specs = append(specs, Spec{
			Name:        e.Name,
			Description: e.Description,
			InputSchema: e.InputSchema,
		})
	}
	return specs
}

// Get returns the entry registered under name.
func (r *Registry) Get(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Clear removes every tool.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]*Entry)
	r.order = nil
}

// Dispatch invokes the named tool once and packages the outcome. Failures
// never escape as Go errors: they come back as a StatusError result whose
// Err is ErrToolNotFound or an *ExecutionError.
func (r *Registry) Dispatch(ctx context.Context, toolUseID, name string, input map[string]any) Result {
	if toolUseID == "" {
		toolUseID = uuid.NewString()
	}

	entry, ok := r.Get(name)
	if !ok {
		return Result{
			ToolUseID: toolUseID,
			Content:   []ContentBlock{{Text: "Unknown tool: " + name}},
			Status:    StatusError,
			Err:       fmt.Errorf("%w: %s", ErrToolNotFound, name),
		}
	}

	out, err := invoke(ctx, entry, input)
	if err != nil {
		return Result{
			ToolUseID: toolUseID,
			Content:   []ContentBlock{{Text: fmt.Sprintf("Error executing tool: %v", err)}},
			Status:    StatusError,
			Err:       &ExecutionError{Tool: name, Cause: err},
		}
	}

	return Result{
		ToolUseID: toolUseID,
		Content:   []ContentBlock{{Text: fmt.Sprint(out)}},
		Status:    StatusSuccess,
	}
}

func invoke(ctx context.Context, entry Entry, input map[string]any) (out any, err error) {
	defer func() {
		if v := recover(); v != nil {
			slog.Warn("tool panicked", "tool", entry.Name, "panic", v)
			out, err = nil, &PanicError{Value: v}
		}
	}()
	return entry.Func(ctx, entry.Name, input)
}
