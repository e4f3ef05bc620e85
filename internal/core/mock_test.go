package core

import (
	"context"
	"sync"

	"github.com/inkwellhq/inkwell/internal/llm"
)

type MockLLM struct {
	mu            sync.Mutex
	Response      string
	ResponseQueue []string
	Err           error
	Calls         int
	LastPrompt    string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	m.LastPrompt = prompt
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	return m.Response, nil
}

func (m *MockLLM) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

type MockChat struct {
	Response   string
	Err        error
	LastSystem string
}

func (m *MockChat) Chat(ctx context.Context, history []llm.ChatMessage, message string, system string) (string, error) {
	m.LastSystem = system
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// MockImage blocks on Gate (when set) so tests can delete the target entity
// while the request is in flight.
type MockImage struct {
	Data []byte
	Err  error
	Gate chan struct{}
}

func (m *MockImage) GenerateImage(ctx context.Context, prompt string, aspectRatio string) ([]byte, error) {
	if m.Gate != nil {
		<-m.Gate
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Data, nil
}
