package event

// EventType represents the type of game event
type EventType int

const (
	EventNone EventType = iota

	// === Pickup Event ===

	// EventGem signals a gem pickup
	// Trigger: Simulation step, player overlaps a gem
	// Consumer: AudioSystem (gem chime)
	EventGem

	// EventRare signals a rare orb pickup
	// Trigger: Simulation step, player overlaps a rare orb
	// Consumer: AudioSystem (rising sine)
	EventRare

	// === Combat Event ===

	// EventHit signals the player lost one health
	// Trigger: Simulation step enemy contact, forced-damage shortcut
	// Consumer: AudioSystem (square drop), Renderer (flash is read from state)
	EventHit

	// === Economy Event ===

	// EventEquip signals a speed item was consumed into a boost stack
	// Trigger: Equip intent in level_clear with items in the bag
	// Consumer: AudioSystem
	EventEquip

	// === Lifecycle Event ===

	// EventLevelStart signals a level was loaded and play began
	// Trigger: Begin, continue, restart
	EventLevelStart

	// EventLevelClear signals a non-final level goal was reached
	EventLevelClear

	// EventWin signals the final level goal was reached
	EventWin

	// EventLose signals health reached zero
	EventLose

	// EventPause signals playing -> paused
	EventPause

	// EventResume signals paused -> playing
	EventResume

	// === Settings Event ===

	// EventFullscreen signals the fullscreen flag flipped
	// Consumer: host viewport
	EventFullscreen

	// EventSettings signals audio, language or device settings changed
	// Consumer: AudioSystem (gain), Renderer (strings)
	EventSettings
)

var eventNames = [...]string{
	EventNone:       "none",
	EventGem:        "gem",
	EventRare:       "rare",
	EventHit:        "hit",
	EventEquip:      "equip",
	EventLevelStart: "level_start",
	EventLevelClear: "level_clear",
	EventWin:        "win",
	EventLose:       "lose",
	EventPause:      "pause",
	EventResume:     "resume",
	EventFullscreen: "fullscreen",
	EventSettings:   "settings",
}

// String returns the stable lowercase name
func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[t]
}

// IsSound reports whether the event carries a sound effect cue
func (t EventType) IsSound() bool {
	switch t {
	case EventGem, EventRare, EventHit, EventEquip:
		return true
	}
	return false
}

// GameEvent is a single emitted occurrence
type GameEvent struct {
	Type  EventType
	Level int   // Level index at emission
	Frame int64 // Simulation step counter at emission
}
