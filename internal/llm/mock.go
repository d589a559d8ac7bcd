package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one queued reply. Err takes precedence over Content.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockJSON queues v as the reply content. A value that cannot be marshalled
// becomes an ErrInvalidResponse.
func MockJSON(v any) MockResponse {
	b, err := json.Marshal(v)
	if err != nil {
		return MockResponse{Err: &ErrInvalidResponse{Err: err}}
	}
	return MockResponse{Content: b}
}

// MockProvider replays queued responses in order and records every
// request it sees. Content is checked against the request schema, so a
// canned reply that would fail a real provider fails here too. With the
// queue drained it reports ErrProviderUnavailable, which is what the
// "mock" provider setting gives an offline run.
type MockProvider struct {
	mu    sync.Mutex
	queue []MockResponse
	Calls []Request
}

// NewMockProvider creates a MockProvider that replies with responses in order.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

func (m *MockProvider) ModelID() string { return "mock" }

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	next, ok := m.record(req)
	switch {
	case !ok:
		return nil, &ErrProviderUnavailable{}
	case next.Err != nil:
		return nil, next.Err
	}
	if err := validateResponse(req.Schema, next.Content); err != nil {
		return nil, err
	}
	return &Response{Content: next.Content, Usage: next.Usage, Model: "mock", StopReason: StopEnd}, nil
}

func (m *MockProvider) record(req Request) (MockResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)
	if len(m.queue) == 0 {
		return MockResponse{}, false
	}
	next := m.queue[0]
	m.queue = m.queue[1:]
	return next, true
}

// CallCount returns the number of Generate calls made so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request.
func (m *MockProvider) LastCall() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n := len(m.Calls); n > 0 {
		return m.Calls[n-1], true
	}
	return Request{}, false
}
