package mocks

import (
	"context"
	"sync"
)

// ExecuteCall records one Execute invocation.
type ExecuteCall struct {
	Query  string
	Commit bool
}

// MockExecutor records statements instead of running them.
type MockExecutor struct {
	mu    sync.Mutex
	calls []ExecuteCall

	ExecuteFunc func(ctx context.Context, query string, commit bool) string
}

// Execute returns ExecuteFunc's result, or a string describing the call.
func (m *MockExecutor) Execute(ctx context.Context, query string, commit bool) string {
	m.mu.Lock()
	m.calls = append(m.calls, ExecuteCall{Query: query, Commit: commit})
	fn := m.ExecuteFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, query, commit)
	}
	if commit {
		return "committed: " + query
	}
	return "read: " + query
}

// Calls returns a copy of the recorded calls.
func (m *MockExecutor) Calls() []ExecuteCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ExecuteCall, len(m.calls))
	copy(out, m.calls)
	return out
}
