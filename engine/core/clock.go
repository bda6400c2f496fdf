package core

import (
	"sync"
	"time"
)

// TimeProvider is the single source of "now" for the engine and its widgets.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reads the monotonic wall clock.
type RealTimeProvider struct{}

func NewRealTimeProvider() *RealTimeProvider {
	return &RealTimeProvider{}
}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider provides a controllable time source for testing
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{
		currentTime: startTime,
	}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance advances the current time by the given duration
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

type Clock struct {
	provider  TimeProvider
	startTime time.Time
	elapsed   time.Duration
}

func NewClock(provider TimeProvider) *Clock {
	if provider == nil {
		provider = NewRealTimeProvider()
	}
	return &Clock{provider: provider}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if !c.startTime.IsZero() {
		c.elapsed = c.provider.Now().Sub(c.startTime)
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = c.provider.Now()
	c.elapsed = 0
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.startTime = time.Time{}
}

// Elapsed returns the elapsed time in seconds as of the last Update.
func (c *Clock) Elapsed() float64 {
	return c.elapsed.Seconds()
}

func (c *Clock) Provider() TimeProvider {
	return c.provider
}
