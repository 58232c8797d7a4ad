package input

import (
	"time"

	"github.com/lixenwraith/gem-drift/parameter"
	"github.com/lixenwraith/gem-drift/vmath"
)

// PointerEvent is a pointer sample in canvas space
type PointerEvent struct {
	ID int
	X  float64
	Y  float64
	At time.Duration // Monotonic host timestamp, used for double-tap detection
}

// pointerState tracks the captured drag
type pointerState struct {
	active bool
	id     int
	target vmath.Vec2
}

// tapState remembers the previous tap for double-tap detection
type tapState struct {
	seen bool
	at   time.Duration
	pos  vmath.Vec2
}

// Machine is the input state machine
// Turns key and pointer events into Intents and keeps the state a
// MovementSource is built from
type Machine struct {
	device  DeviceMode // Always resolved, never DeviceAuto
	held    [4]bool    // Indexed by Key - KeyUp
	pointer pointerState
	lastTap tapState
}

// NewMachine creates an input machine for a resolved device mode
func NewMachine(device DeviceMode) *Machine {
	return &Machine{device: device.Resolve(nil)}
}

// Device returns the active device mode
func (m *Machine) Device() DeviceMode {
	return m.device
}

// SetDevice switches the active device mode and drops any in-flight drag
func (m *Machine) SetDevice(d DeviceMode) {
	m.device = d.Resolve(nil)
	m.pointer = pointerState{}
}

// KeyDown records a held direction or returns the intent for a discrete key
// Keys are accepted in every device mode
func (m *Machine) KeyDown(k Key) Intent {
	if k.IsDirection() {
		m.held[k-KeyUp] = true
		return Intent{}
	}
	return Intent{Type: IntentForKey(k)}
}

// KeyUp releases a held direction
func (m *Machine) KeyUp(k Key) {
	if k.IsDirection() {
		m.held[k-KeyUp] = false
	}
}

// Held reports whether a direction key is down
func (m *Machine) Held(k Key) bool {
	if !k.IsDirection() {
		return false
	}
	return m.held[k-KeyUp]
}

// ReleaseAll clears held directions and the drag
func (m *Machine) ReleaseAll() {
	m.held = [4]bool{}
	m.pointer = pointerState{}
}

// PointerDown turns a press into a tap intent
// Returns false when the device mode ignores pointer input
func (m *Machine) PointerDown(ev PointerEvent) (Intent, bool) {
	if m.device != DevicePointer {
		return Intent{}, false
	}

	pos := vmath.V2(ev.X, ev.Y)
	double := false
	if m.lastTap.seen {
		dt := ev.At - m.lastTap.at
		dist := pos.Sub(m.lastTap.pos).Len()
		double = dt >= 0 && dt < parameter.DoubleTapWindow && dist < parameter.DoubleTapRadius
	}
	m.lastTap = tapState{seen: true, at: ev.At, pos: pos}

	return Intent{Type: IntentTap, X: ev.X, Y: ev.Y, Double: double}, true
}

// Capture starts a drag with the pressed pointer as movement target
// Called by the state machine only when the press lands in playing mode
func (m *Machine) Capture(ev PointerEvent) {
	if m.device != DevicePointer {
		return
	}
	m.pointer = pointerState{active: true, id: ev.ID, target: vmath.V2(ev.X, ev.Y)}
}

// PointerMove updates the drag target for the captured pointer
func (m *Machine) PointerMove(ev PointerEvent) {
	if m.device != DevicePointer || !m.pointer.active || ev.ID != m.pointer.id {
		return
	}
	m.pointer.target = vmath.V2(ev.X, ev.Y)
}

// PointerUp ends the drag for the captured pointer
func (m *Machine) PointerUp(ev PointerEvent) {
	if m.device != DevicePointer || ev.ID != m.pointer.id {
		return
	}
	m.pointer = pointerState{}
}

// PointerCancel is a release the host did not deliver as an up
func (m *Machine) PointerCancel(ev PointerEvent) {
	m.PointerUp(ev)
}

// Dragging reports whether a pointer drag is steering movement
func (m *Machine) Dragging() bool {
	return m.pointer.active
}

// Movement returns the source that drives the avatar this tick
// Pointer drag takes over while active, otherwise held keys steer
func (m *Machine) Movement() MovementSource {
	if m.device == DevicePointer && m.pointer.active {
		return pointerSource{target: m.pointer.target}
	}
	return digitalSource{
		up:    m.held[KeyUp-KeyUp],
		down:  m.held[KeyDown-KeyUp],
		left:  m.held[KeyLeft-KeyUp],
		right: m.held[KeyRight-KeyUp],
	}
}
