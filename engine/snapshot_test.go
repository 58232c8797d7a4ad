package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/gem-drift/input"
	"github.com/lixenwraith/gem-drift/parameter"
)

// playScript drives the same input sequence on any game
func playScript(g *Game) {
	g.KeyDown(input.KeyDown)
	g.KeyDown(input.KeyRight)
	g.Advance(700 * time.Millisecond)
	g.KeyUp(input.KeyDown)
	g.Advance(300 * time.Millisecond)
	g.KeyUp(input.KeyRight)
	g.Advance(2 * time.Second)
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := newTestGame(t, 7)
	startRun(t, g)
	g.KeyDown(input.KeyRight)
	g.Advance(400 * time.Millisecond)
	g.KeyUp(input.KeyRight)
	g.Advance(100 * time.Millisecond)

	raw, err := json.Marshal(g.Snapshot())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded Snapshot
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	restored, err := Restore(decoded, Options{Seed: 999, Device: input.DeviceKeyboard})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	again, err := json.Marshal(restored.Snapshot())
	if err != nil {
		t.Fatalf("Marshal restored: %v", err)
	}
	if !bytes.Equal(raw, again) {
		t.Fatalf("Restored export differs:\n%s\n%s", raw, again)
	}

	playScript(g)
	playScript(restored)

	a, _ := json.Marshal(g.Snapshot())
	b, _ := json.Marshal(restored.Snapshot())
	if !bytes.Equal(a, b) {
		t.Errorf("Exports diverged after identical inputs:\n%s\n%s", a, b)
	}
}

func TestSnapshotFieldNames(t *testing.T) {
	g := newTestGame(t, 7)
	startRun(t, g)

	raw, err := json.Marshal(g.Snapshot())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{
		"coordSystem", "mode", "language", "deviceMode", "level", "player",
		"enemies", "gems", "rareOrbs", "totalScore", "health", "maxHealth",
		"rareBoosts", "speedItems", "speedBoostStacks", "audio", "timers", "flags",
	} {
		if _, ok := fields[key]; !ok {
			t.Errorf("Snapshot missing field %q", key)
		}
	}
	if string(fields["mode"]) != `"playing"` {
		t.Errorf("Expected mode \"playing\", got %s", fields["mode"])
	}
	if string(fields["rareOrbs"]) != "[]" {
		t.Errorf("Expected empty rareOrbs array, got %s", fields["rareOrbs"])
	}

	snap := g.Snapshot()
	if snap.Level.Current != 1 || snap.Level.Total != 8 || snap.Level.RewardPerGem != 10 {
		t.Errorf("Unexpected level block %+v", snap.Level)
	}
	if snap.Flags.CanRestart {
		t.Error("Expected canRestart false while playing")
	}
}

func TestSnapshotCanRestart(t *testing.T) {
	g := newTestGame(t, 7)
	if !g.Snapshot().Flags.CanRestart {
		t.Error("Expected canRestart on the start panel")
	}

	startRun(t, g)
	if g.Snapshot().Flags.CanRestart {
		t.Error("Expected canRestart false while playing")
	}

	g.KeyDown(input.KeyPause)
	if !g.Snapshot().Flags.CanRestart {
		t.Error("Expected canRestart while paused")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g := newTestGame(t, 7)
	startRun(t, g)

	snap := g.Snapshot()
	snap.Enemies[0].X = -1000
	if g.State().Enemies[0].X == -1000 {
		t.Error("Mutating a snapshot should not affect the game")
	}
}

func TestRestoreRejectsBadSnapshot(t *testing.T) {
	g := newTestGame(t, 7)
	startRun(t, g)

	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"level below range", func(s *Snapshot) { s.Level.Current = 0 }},
		{"level above range", func(s *Snapshot) { s.Level.Current = 9 }},
		{"rng not hex", func(s *Snapshot) { s.RNG = "zz" }},
		{"rng wrong length", func(s *Snapshot) { s.RNG = "0102" }},
		{"mode out of range", func(s *Snapshot) { s.Mode = Mode(42) }},
		{"player x NaN", func(s *Snapshot) { s.Player.X = math.NaN() }},
		{"enemy velocity infinite", func(s *Snapshot) { s.Enemies[0].VX = math.Inf(1) }},
		{"timer NaN", func(s *Snapshot) { s.Timers.InvulnerableFor = math.NaN() }},
		{"volume infinite", func(s *Snapshot) { s.Audio.BGMVolume = math.Inf(-1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := g.Snapshot()
			tt.mutate(&snap)
			if _, err := Restore(snap, Options{}); !errors.Is(err, ErrBadSnapshot) {
				t.Errorf("Expected ErrBadSnapshot, got %v", err)
			}
		})
	}
}

func TestRestoreClampsCounters(t *testing.T) {
	g := newTestGame(t, 7)
	startRun(t, g)

	snap := g.Snapshot()
	snap.MaxHealth = 40
	snap.Health = 50
	snap.SpeedBoostStacks = 9
	snap.Audio.SFXVolume = 7
	snap.Level.Goal = 0
	snap.Player.X = -500
	snap.Player.Y = 9000
	snap.Timers.Flash = -3

	r, err := Restore(snap, Options{})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	s := r.State()
	if s.MaxHealth != 10 || s.Health != 10 || s.SpeedBoostStacks != 6 {
		t.Errorf("Expected clamped counters, got health %d/%d stacks %d", s.Health, s.MaxHealth, s.SpeedBoostStacks)
	}
	if r.Settings().Audio.SFXVolume != 1 {
		t.Errorf("Expected volume clamped to 1, got %v", r.Settings().Audio.SFXVolume)
	}
	if s.Goal != 3 {
		t.Errorf("Expected goal 3 from the catalog, got %d", s.Goal)
	}
	if s.Player.X != parameter.PlayerRadius || s.Player.Y != parameter.PlayfieldHeight-parameter.PlayerRadius {
		t.Errorf("Expected player clamped inside the playfield, got (%v, %v)", s.Player.X, s.Player.Y)
	}
	if s.FlashTimer != 0 {
		t.Errorf("Expected flash clamped to 0, got %v", s.FlashTimer)
	}

	r.KeyDown(input.KeyRight)
	r.Update(parameter.FixedStep)
	if s := r.State(); s.Mode != ModePlaying || s.LevelScore != 0 {
		t.Errorf("Expected zero-goal snapshot to keep playing, got %s score %d", s.Mode, s.LevelScore)
	}
}
