package synth

import (
	"context"
	"sync"
)

// Mock implements Engine for testing.
// Behavior can be customized via function fields; by default every Speak
// completes immediately and is recorded.
type Mock struct {
	// SpeakFunc, if set, replaces the default Speak behavior.
	SpeakFunc func(ctx context.Context, text string, profile Profile) error

	// Unavailable makes the mock report no capability.
	Unavailable bool

	// Block, if non-nil, makes Speak wait until the channel is closed
	// (or ctx is cancelled) before completing.
	Block chan struct{}

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records one Speak invocation.
type MockCall struct {
	Text    string
	Profile Profile
}

// NewMock creates a mock engine that records calls and completes instantly.
func NewMock() *Mock {
	return &Mock{}
}

// Speak records the call, then runs SpeakFunc or the default behavior.
func (m *Mock) Speak(ctx context.Context, text string, profile Profile) error {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Text: text, Profile: profile})
	m.mu.Unlock()

	if m.SpeakFunc != nil {
		return m.SpeakFunc(ctx, text, profile)
	}
	if m.Block != nil {
		select {
		case <-m.Block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (m *Mock) Available() bool {
	return !m.Unavailable
}

func (m *Mock) Name() string {
	return "mock"
}

// Calls returns all recorded Speak invocations.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times Speak was invoked.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Texts returns the spoken texts in order.
func (m *Mock) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	for i, c := range m.calls {
		out[i] = c.Text
	}
	return out
}

// Reset clears recorded calls.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

var _ Engine = (*Mock)(nil)
