package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a manually driven clock for frame-timing tests
type MockTimeProvider struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockTimeProvider starts the clock at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now returns the mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// SetTime jumps the clock to t
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// AdvanceFrames simulates n display refreshes: each advances the clock by interval, then runs step
// Typical step is Loop.Step, so frame callbacks observe evenly spaced timestamps
func (m *MockTimeProvider) AdvanceFrames(n int, interval time.Duration, step func()) {
	for i := 0; i < n; i++ {
		m.Advance(interval)
		if step != nil {
			step()
		}
	}
}
