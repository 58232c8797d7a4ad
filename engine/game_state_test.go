package engine

import (
	"testing"

	"github.com/lixenwraith/gem-drift/event"
	"github.com/lixenwraith/gem-drift/input"
	"github.com/lixenwraith/gem-drift/level"
	"github.com/lixenwraith/gem-drift/parameter"
)

// newTestGame creates a keyboard game with a fixed seed
func newTestGame(t *testing.T, seed uint64) *Game {
	t.Helper()
	return New(Options{Seed: seed, Device: input.DeviceKeyboard})
}

// startRun begins a run and drains the start events
func startRun(t *testing.T, g *Game) {
	t.Helper()
	g.KeyDown(input.KeyConfirm)
	if g.Mode() != ModePlaying {
		t.Fatalf("Expected playing after confirm, got %s", g.Mode())
	}
	g.Events()
}

// eventTypes flattens drained events for comparison
func eventTypes(events []event.GameEvent) []event.EventType {
	out := make([]event.EventType, len(events))
	for i, ev := range events {
		out[i] = ev.Type
	}
	return out
}

func TestNewGameStartsOnPanel(t *testing.T) {
	g := newTestGame(t, 1)

	s := g.State()
	if s.Mode != ModeStart {
		t.Errorf("Expected start mode, got %s", s.Mode)
	}
	if s.Health != parameter.StartingHealth || s.MaxHealth != parameter.StartingHealth {
		t.Errorf("Expected health %d/%d, got %d/%d", parameter.StartingHealth, parameter.StartingHealth, s.Health, s.MaxHealth)
	}
	if s.Player.X != parameter.PlayerStartX || s.Player.Y != parameter.PlayerStartY {
		t.Errorf("Expected player at start, got (%v, %v)", s.Player.X, s.Player.Y)
	}
	if got := g.Settings().Language; got != "zh" {
		t.Errorf("Expected default language zh, got %q", got)
	}
	if !g.Settings().Audio.SFXEnabled || !g.Settings().Audio.BGMEnabled {
		t.Error("Expected both audio channels enabled by default")
	}

	g.Update(parameter.FixedStep)
	if g.Frame() != 0 {
		t.Errorf("Update outside playing should not step, frame=%d", g.Frame())
	}
}

func TestModeTextRoundTrip(t *testing.T) {
	for m := ModeStart; m <= ModeLose; m++ {
		b, err := m.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", m, err)
		}
		var back Mode
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", b, err)
		}
		if back != m {
			t.Errorf("Mode round trip: got %s, want %s", back, m)
		}
	}
	if _, err := ParseMode("sleeping"); err == nil {
		t.Error("Expected error for unknown mode")
	}
}

func TestConfirmLoadsLevelZero(t *testing.T) {
	g := newTestGame(t, 3)
	g.KeyDown(input.KeyConfirm)

	s := g.State()
	if s.Mode != ModePlaying {
		t.Fatalf("Expected playing, got %s", s.Mode)
	}
	def := level.Generate(0)
	if len(s.Enemies) != def.EnemyCount {
		t.Errorf("Expected %d enemies, got %d", def.EnemyCount, len(s.Enemies))
	}
	if len(s.Gems) == 0 || len(s.Gems) > parameter.GemMaxActive {
		t.Errorf("Expected 1..%d gems after load, got %d", parameter.GemMaxActive, len(s.Gems))
	}
	if len(s.RareOrbs) != 0 {
		t.Errorf("Level 0 has no rare orb, got %d", len(s.RareOrbs))
	}

	types := eventTypes(g.Events())
	if len(types) != 1 || types[0] != event.EventLevelStart {
		t.Errorf("Expected [level_start], got %v", types)
	}
	if !g.Settings().Audio.Started {
		t.Error("First key press should mark audio as started")
	}
}

func TestRestartResetsRun(t *testing.T) {
	g := newTestGame(t, 5)
	startRun(t, g)

	g.state.TotalScore = 99
	g.state.SpeedItems = 2
	g.state.SpeedBoostStacks = 3
	g.state.MaxHealth = 6
	g.state.Health = 4

	g.KeyDown(input.KeyRestart)
	s := g.State()
	if s.Mode != ModePlaying || s.LevelIndex != 0 {
		t.Fatalf("Expected playing level 0, got %s level %d", s.Mode, s.LevelIndex)
	}
	if s.TotalScore != 0 || s.SpeedItems != 0 || s.SpeedBoostStacks != 0 {
		t.Errorf("Run counters not reset: score=%d items=%d stacks=%d", s.TotalScore, s.SpeedItems, s.SpeedBoostStacks)
	}
	if s.Health != 3 || s.MaxHealth != 3 {
		t.Errorf("Expected health 3/3, got %d/%d", s.Health, s.MaxHealth)
	}
	if s.Player.Speed != parameter.PlayerBaseSpeed {
		t.Errorf("Expected base speed, got %v", s.Player.Speed)
	}
}

func TestRestartIgnoredOnStartPanel(t *testing.T) {
	g := newTestGame(t, 5)
	g.KeyDown(input.KeyRestart)
	if g.Mode() != ModeStart {
		t.Errorf("Restart on start panel should be ignored, got %s", g.Mode())
	}
}

func TestRestartFromLose(t *testing.T) {
	g := newTestGame(t, 5)
	startRun(t, g)
	for range parameter.StartingHealth {
		g.KeyDown(input.KeyDebugDamage)
	}
	if g.Mode() != ModeLose {
		t.Fatalf("Expected lose, got %s", g.Mode())
	}
	g.KeyDown(input.KeyRestart)
	if s := g.State(); s.Mode != ModePlaying || s.Health != parameter.StartingHealth {
		t.Errorf("Restart from lose should begin a fresh run, got %s health %d", s.Mode, s.Health)
	}
}
