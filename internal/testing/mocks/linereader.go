package mocks

import (
	"io"
	"sync"
)

// MockLineReader serves scripted lines, then an optional final error
// (io.EOF by default).
type MockLineReader struct {
	mu     sync.Mutex
	lines  []string
	reads  int
	closed bool

	// FinalErr is returned once the lines run out.
	FinalErr error
}

// NewMockLineReader creates a reader over lines.
func NewMockLineReader(lines ...string) *MockLineReader {
	return &MockLineReader{lines: lines}
}

// Readline returns the next scripted line.
func (m *MockLineReader) Readline() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads++
	if len(m.lines) == 0 {
		if m.FinalErr != nil {
			return "", m.FinalErr
		}
		return "", io.EOF
	}
	line := m.lines[0]
	m.lines = m.lines[1:]
	return line, nil
}

// Close marks the reader closed.
func (m *MockLineReader) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Reads reports how many times Readline was called.
func (m *MockLineReader) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// Closed reports whether Close was called.
func (m *MockLineReader) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
