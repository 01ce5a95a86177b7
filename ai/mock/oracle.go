package mock

import (
	"context"
	"sync"
)

// MockOracle is a test double for ai.Oracle.
// It allows custom behavior injection via a function field, can be scripted
// with a fixed sequence of responses, and records every prompt it receives.
// Safe for concurrent use.
type MockOracle struct {
	// CompleteFunc is called by Complete if set.
	// If nil, scripted responses are consumed in order; when the script is
	// exhausted (or empty), Complete returns an empty string.
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	mu        sync.Mutex
	responses []string
	prompts   []string
	callCount int
}

// NewMockOracle creates a mock oracle with no scripted responses.
// Note: Returns concrete type to allow test assertions.
func NewMockOracle() *MockOracle {
	return &MockOracle{}
}

// NewScriptedOracle creates a mock oracle that returns the given responses
// in order, one per call.
func NewScriptedOracle(responses ...string) *MockOracle {
	return &MockOracle{responses: responses}
}

// Complete returns the next scripted response, or delegates to CompleteFunc.
func (m *MockOracle) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.prompts = append(m.prompts, prompt)
	fn := m.CompleteFunc
	var next string
	if fn == nil && len(m.responses) > 0 {
		next = m.responses[0]
		m.responses = m.responses[1:]
	}
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt)
	}
	return next, nil
}

// CallCount returns the number of times Complete was called.
func (m *MockOracle) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Prompts returns a copy of every prompt received, in call order.
func (m *MockOracle) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// Reset clears the call history, scripted responses, and custom function.
func (m *MockOracle) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.prompts = nil
	m.responses = nil
	m.CompleteFunc = nil
}
