package engine

import (
	"sync"
	"time"

	"github.com/lixenwraith/gem-drift/parameter"
	"github.com/lixenwraith/gem-drift/vmath"
)

// TimeProvider supplies wall-clock readings to the frame clock
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider provides the real system time with monotonic clock readings
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// ManualTimeProvider is a controllable time source for headless runs and tests
type ManualTimeProvider struct {
	mu      sync.RWMutex
	current time.Time
}

// NewManualTimeProvider creates a manual provider starting at start
func NewManualTimeProvider(start time.Time) *ManualTimeProvider {
	return &ManualTimeProvider{current: start}
}

// Now returns the current manual time
func (m *ManualTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Advance moves the manual time forward by d
func (m *ManualTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}

// FrameClock measures per-frame deltas for the live loop
// Time spent suspended is never reported, so a resumed frame starts fresh
type FrameClock struct {
	provider  TimeProvider
	last      time.Time
	started   bool
	suspended bool
}

// NewFrameClock creates a frame clock on provider, monotonic when nil
func NewFrameClock(provider TimeProvider) *FrameClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &FrameClock{provider: provider}
}

// Tick returns seconds since the previous Tick, capped at MaxStep
// First tick and ticks while suspended return 0
func (c *FrameClock) Tick() float64 {
	now := c.provider.Now()
	if !c.started || c.suspended {
		c.last = now
		c.started = true
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	return sanitizeDelta(dt)
}

// Suspend stops delta accumulation, used while the host window is hidden
func (c *FrameClock) Suspend() {
	c.suspended = true
}

// Resume restarts delta measurement from the next tick
func (c *FrameClock) Resume() {
	c.suspended = false
	c.started = false
}

// Elapsed returns the provider time since the last tick
func (c *FrameClock) Elapsed() time.Duration {
	if !c.started {
		return 0
	}
	return c.provider.Now().Sub(c.last)
}

// sanitizeDelta clamps a frame delta to [0, MaxStep], mapping NaN, infinities and negatives to 0
func sanitizeDelta(dt float64) float64 {
	if !vmath.Finite(dt) || dt < 0 {
		return 0
	}
	if dt > parameter.MaxStep {
		return parameter.MaxStep
	}
	return dt
}
