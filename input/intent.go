package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// Run control
	IntentConfirm // Enter: begin from start/win/lose, continue from level_clear
	IntentPause   // Pause toggle key
	IntentEquip   // Equip a banked speed item
	IntentRestart // Full reset to level 0
	IntentTap     // Pointer tap, X/Y in canvas space, Double set on double tap

	// Host toggles
	IntentFullscreen
	IntentToggleSFX
	IntentToggleBGM
	IntentCycleLanguage
	IntentCycleDevice
	IntentQuit

	// Automation
	IntentDebugDamage
	IntentDebugClear
)

// Intent represents a parsed semantic action
// Pure data struct with no function pointers or engine dependencies
type Intent struct {
	Type   IntentType
	X, Y   float64 // Canvas position for IntentTap
	Double bool    // Second tap inside the double-tap window
}

// keyIntents maps discrete keys to their intent
var keyIntents = [keyCount]IntentType{
	KeyConfirm:       IntentConfirm,
	KeyPause:         IntentPause,
	KeyEquip:         IntentEquip,
	KeyRestart:       IntentRestart,
	KeyFullscreen:    IntentFullscreen,
	KeyDebugDamage:   IntentDebugDamage,
	KeyDebugClear:    IntentDebugClear,
	KeyToggleSFX:     IntentToggleSFX,
	KeyToggleBGM:     IntentToggleBGM,
	KeyCycleLanguage: IntentCycleLanguage,
	KeyCycleDevice:   IntentCycleDevice,
	KeyQuit:          IntentQuit,
}

// IntentForKey returns the discrete intent bound to a key, IntentNone for directions
func IntentForKey(k Key) IntentType {
	if k >= keyCount {
		return IntentNone
	}
	return keyIntents[k]
}
