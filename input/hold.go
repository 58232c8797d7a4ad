package input

import "time"

// HoldTracker synthesizes key releases for terminals, which report presses
// and auto-repeats but never releases
// A key counts as held until timeout passes without a repeat
type HoldTracker struct {
	timeout time.Duration
	pressed map[Key]time.Duration
}

// NewHoldTracker creates a tracker with the given repeat timeout
func NewHoldTracker(timeout time.Duration) *HoldTracker {
	return &HoldTracker{
		timeout: timeout,
		pressed: make(map[Key]time.Duration),
	}
}

// Press records a press or repeat at time at
// Returns true on the first press so the caller emits exactly one KeyDown
func (h *HoldTracker) Press(k Key, at time.Duration) bool {
	_, held := h.pressed[k]
	h.pressed[k] = at
	return !held
}

// Expire returns keys whose last repeat is older than the timeout and forgets them
func (h *HoldTracker) Expire(at time.Duration) []Key {
	var released []Key
	for k, last := range h.pressed {
		if at-last >= h.timeout {
			released = append(released, k)
			delete(h.pressed, k)
		}
	}
	return released
}

// Reset forgets all presses
func (h *HoldTracker) Reset() {
	clear(h.pressed)
}
