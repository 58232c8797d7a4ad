package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps terminal keys to input tokens
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Enter, Esc)
	SpecialKeys map[tcell.Key]Key

	// Printable rune bindings, matched case-insensitively for letters
	Runes map[rune]Key
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Key{
			tcell.KeyUp:     KeyUp,
			tcell.KeyDown:   KeyDown,
			tcell.KeyLeft:   KeyLeft,
			tcell.KeyRight:  KeyRight,
			tcell.KeyEnter:  KeyConfirm,
			tcell.KeyCtrlS:  KeyToggleSFX,
			tcell.KeyCtrlG:  KeyToggleBGM,
			tcell.KeyCtrlD:  KeyCycleDevice,
			tcell.KeyCtrlC:  KeyQuit,
			tcell.KeyCtrlQ:  KeyQuit,
			tcell.KeyEscape: KeyQuit,
		},

		Runes: map[rune]Key{
			// Movement
			'w': KeyUp,
			's': KeyDown,
			'a': KeyLeft,
			'd': KeyRight,

			// Run control
			'p': KeyPause,
			' ': KeyPause,
			'e': KeyEquip,
			'r': KeyRestart,
			'f': KeyFullscreen,
			'l': KeyCycleLanguage,

			// Automation
			'b': KeyDebugDamage,
			'n': KeyDebugClear,
		},
	}
}

// Lookup resolves a terminal key event, KeyNone when unbound
func (kt *KeyTable) Lookup(ev *tcell.EventKey) Key {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if k, ok := kt.Runes[r]; ok {
			return k
		}
		if r >= 'A' && r <= 'Z' {
			return kt.Runes[r+('a'-'A')]
		}
		return KeyNone
	}
	return kt.SpecialKeys[ev.Key()]
}
