package render

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/gem-drift/engine"
	"github.com/lixenwraith/gem-drift/input"
	"github.com/lixenwraith/gem-drift/locale"
)

// HUDLines builds the top overlay text
// The controls hint is only shown while playing
func HUDLines(snap engine.Snapshot, t *locale.Table) []string {
	h := t.HUD
	lv := snap.Level

	lines := []string{
		fmt.Sprintf("%s %d/%d: %s   %s %d/%d   %s %s",
			h.Level, lv.Current, lv.Total, t.LevelName(lv.Current-1),
			h.Score, lv.LevelScore, lv.Goal,
			h.Total, t.Number(snap.TotalScore)),
		fmt.Sprintf("%s %d/%d   %s %d   %s %.0f",
			h.Health, snap.Health, snap.MaxHealth,
			h.Items, snap.SpeedItems,
			h.Speed, snap.Player.Speed),
	}

	modeLabel, controls := h.ModeKeyboard, h.ControlsKeyboard
	if snap.DeviceMode == input.DevicePointer {
		modeLabel, controls = h.ModePointer, h.ControlsPointer
	}
	if snap.Mode == engine.ModePlaying {
		lines = append(lines, modeLabel+"   "+controls)
	} else {
		lines = append(lines, modeLabel)
	}
	return lines
}

// PanelText returns the centered panel for a mode, ok false while playing
func PanelText(snap engine.Snapshot, t *locale.Table) (title string, lines []string, ok bool) {
	p := t.Panels
	switch snap.Mode {
	case engine.ModeStart:
		if snap.DeviceMode == input.DevicePointer {
			return p.StartTitle, p.StartPointer, true
		}
		return p.StartTitle, p.StartKeyboard, true
	case engine.ModePaused:
		return p.PausedTitle, p.PausedLines, true
	case engine.ModeLevelClear:
		return p.ClearTitle, []string{
			locale.Fill(p.ClearLine1, map[string]any{
				"level": snap.Level.Current,
				"name":  t.LevelName(snap.Level.Current - 1),
			}),
			locale.Fill(p.ClearLine2, map[string]any{"items": snap.SpeedItems}),
			p.ClearLine3,
		}, true
	case engine.ModeWin:
		return p.WinTitle, p.WinLines, true
	case engine.ModeLose:
		return p.LoseTitle, p.LoseLines, true
	}
	return "", nil, false
}

// SettingsLine summarizes audio, language and device settings with the key hint
func SettingsLine(snap engine.Snapshot, t *locale.Table) string {
	u := t.UI
	onOff := func(b bool) string {
		if b {
			return u.On
		}
		return u.Off
	}
	device := u.DeviceAuto
	switch snap.DeviceOverride {
	case input.DeviceKeyboard:
		device = u.DeviceKeyboard
	case input.DevicePointer:
		device = u.DevicePointer
	}

	a := snap.Audio
	parts := []string{
		fmt.Sprintf("%s %s %d%%", u.SFXToggle, onOff(a.SFXEnabled), int(a.SFXVolume*100+0.5)),
		fmt.Sprintf("%s %s %d%%", u.BGMToggle, onOff(a.BGMEnabled), int(a.BGMVolume*100+0.5)),
		fmt.Sprintf("%s %s", u.Language, snap.Language),
		fmt.Sprintf("%s %s", u.Device, device),
	}
	return strings.Join(parts, " | ") + "   " + u.SettingsHint
}
