package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Names for special keys in keymap config
var specialKeyNames = map[string]tcell.Key{
	"up":     tcell.KeyUp,
	"down":   tcell.KeyDown,
	"left":   tcell.KeyLeft,
	"right":  tcell.KeyRight,
	"enter":  tcell.KeyEnter,
	"esc":    tcell.KeyEscape,
	"tab":    tcell.KeyTab,
	"ctrl+c": tcell.KeyCtrlC,
	"ctrl+d": tcell.KeyCtrlD,
	"ctrl+g": tcell.KeyCtrlG,
	"ctrl+q": tcell.KeyCtrlQ,
	"ctrl+s": tcell.KeyCtrlS,
}

// Rune aliases for keys that can't be written bare in config
var runeAliases = map[string]rune{
	"space": ' ',
}

// Apply overlays keymap bindings onto the table
// bindings maps action name -> key names, e.g. "equip" = ["e", "q"]
// Every listed key is rebound to the action; bindings for other actions are kept
// Returns error on unknown action or key names
func (kt *KeyTable) Apply(bindings map[string][]string) error {
	for action, keys := range bindings {
		k, err := ParseAction(action)
		if err != nil {
			return fmt.Errorf("keymap: %w", err)
		}
		for _, name := range keys {
			if err := kt.bind(name, k); err != nil {
				return fmt.Errorf("keymap action %q: %w", action, err)
			}
		}
	}
	return nil
}

func (kt *KeyTable) bind(name string, k Key) error {
	lower := strings.ToLower(strings.TrimSpace(name))
	if sk, ok := specialKeyNames[lower]; ok {
		kt.SpecialKeys[sk] = k
		return nil
	}
	if r, ok := runeAliases[lower]; ok {
		kt.Runes[r] = k
		return nil
	}
	if utf8.RuneCountInString(lower) == 1 {
		r, _ := utf8.DecodeRuneInString(lower)
		kt.Runes[r] = k
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownKey, name)
}
