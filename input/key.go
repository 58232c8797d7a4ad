package input

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned when a key or action name has no binding
var ErrUnknownKey = errors.New("unknown key")

// Key is a normalized input token, independent of the device that produced it
type Key uint8

const (
	KeyNone Key = iota

	// Directions (held)
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Discrete actions
	KeyConfirm    // Enter: begin run, continue after clear
	KeyPause      // P, Space
	KeyEquip      // E
	KeyRestart    // R
	KeyFullscreen // F

	// Automation shortcuts, not advertised to players
	KeyDebugDamage // B
	KeyDebugClear  // N

	// Settings
	KeyToggleSFX     // Ctrl+S
	KeyToggleBGM     // Ctrl+G
	KeyCycleLanguage // L
	KeyCycleDevice   // Ctrl+D

	KeyQuit // Ctrl+C, Ctrl+Q, Esc

	keyCount
)

// actionNames are the canonical names used by keymap config and scripts
var actionNames = [keyCount]string{
	KeyNone:          "none",
	KeyUp:            "up",
	KeyDown:          "down",
	KeyLeft:          "left",
	KeyRight:         "right",
	KeyConfirm:       "confirm",
	KeyPause:         "pause",
	KeyEquip:         "equip",
	KeyRestart:       "restart",
	KeyFullscreen:    "fullscreen",
	KeyDebugDamage:   "debug_damage",
	KeyDebugClear:    "debug_clear",
	KeyToggleSFX:     "toggle_sfx",
	KeyToggleBGM:     "toggle_bgm",
	KeyCycleLanguage: "cycle_language",
	KeyCycleDevice:   "cycle_device",
	KeyQuit:          "quit",
}

// tokenAliases accepts browser-style key values so recorded sessions replay unchanged
var tokenAliases = map[string]Key{
	"arrowup":    KeyUp,
	"w":          KeyUp,
	"arrowdown":  KeyDown,
	"s":          KeyDown,
	"arrowleft":  KeyLeft,
	"a":          KeyLeft,
	"arrowright": KeyRight,
	"d":          KeyRight,
	"enter":      KeyConfirm,
	"return":     KeyConfirm,
	" ":          KeyPause,
	"space":      KeyPause,
	"p":          KeyPause,
	"e":          KeyEquip,
	"r":          KeyRestart,
	"f":          KeyFullscreen,
	"b":          KeyDebugDamage,
	"n":          KeyDebugClear,
	"l":          KeyCycleLanguage,
	"escape":     KeyQuit,
	"esc":        KeyQuit,
}

// String returns the canonical action name
func (k Key) String() string {
	if k >= keyCount {
		return fmt.Sprintf("key(%d)", uint8(k))
	}
	return actionNames[k]
}

// IsDirection reports whether the key is a held movement key
func (k Key) IsDirection() bool {
	return k >= KeyUp && k <= KeyRight
}

// ParseAction resolves a canonical action name
func ParseAction(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range actionNames {
		if n == name {
			return Key(k), nil
		}
	}
	return KeyNone, fmt.Errorf("%w: action %q", ErrUnknownKey, name)
}

// ParseKey resolves a key token: canonical action names first, then
// browser-style values ("ArrowLeft", "Enter", " ", "e")
func ParseKey(token string) (Key, error) {
	if k, err := ParseAction(token); err == nil {
		return k, nil
	}
	norm := token
	if norm != " " {
		norm = strings.ToLower(strings.TrimSpace(token))
	}
	if k, ok := tokenAliases[norm]; ok {
		return k, nil
	}
	return KeyNone, fmt.Errorf("%w: %q", ErrUnknownKey, token)
}
