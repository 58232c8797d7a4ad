package engine

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/gem-drift/parameter"
)

func TestFrameClock(t *testing.T) {
	provider := NewManualTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	clock := NewFrameClock(provider)

	if dt := clock.Tick(); dt != 0 {
		t.Errorf("First tick should be 0, got %v", dt)
	}

	provider.Advance(10 * time.Millisecond)
	if dt := clock.Tick(); math.Abs(dt-0.01) > 1e-9 {
		t.Errorf("Expected 0.01, got %v", dt)
	}

	provider.Advance(time.Second)
	if dt := clock.Tick(); dt != parameter.MaxStep {
		t.Errorf("Expected stalled frame capped at %v, got %v", parameter.MaxStep, dt)
	}

	clock.Suspend()
	provider.Advance(5 * time.Millisecond)
	if dt := clock.Tick(); dt != 0 {
		t.Errorf("Suspended tick should be 0, got %v", dt)
	}

	clock.Resume()
	provider.Advance(time.Minute)
	if dt := clock.Tick(); dt != 0 {
		t.Errorf("First tick after resume should be 0, got %v", dt)
	}
	provider.Advance(16 * time.Millisecond)
	if dt := clock.Tick(); math.Abs(dt-0.016) > 1e-9 {
		t.Errorf("Expected 0.016, got %v", dt)
	}
}

func TestSanitizeDelta(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{math.NaN(), 0},
		{-0.5, 0},
		{0.01, 0.01},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
		{1.0, parameter.MaxStep},
	}
	for _, tt := range tests {
		if got := sanitizeDelta(tt.in); got != tt.want {
			t.Errorf("sanitizeDelta(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()
	t1 := provider.Now()
	time.Sleep(5 * time.Millisecond)
	if t2 := provider.Now(); !t2.After(t1) {
		t.Errorf("Expected t2 after t1, got t1=%v t2=%v", t1, t2)
	}
}
