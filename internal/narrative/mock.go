package narrative

import (
	"context"
	"sync"
)

// MockProvider is a test double that returns canned responses and records
// the prompts it was given.
type MockProvider struct {
	Response string
	Err      error

	mu      sync.Mutex
	prompts []string
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Generate(_ context.Context, prompt string, _ Settings) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	return m.Response, m.Err
}

// Prompts returns every prompt received so far.
func (m *MockProvider) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}
