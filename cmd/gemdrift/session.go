package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/gem-drift/audio"
	"github.com/lixenwraith/gem-drift/engine"
	"github.com/lixenwraith/gem-drift/event"
	"github.com/lixenwraith/gem-drift/input"
	"github.com/lixenwraith/gem-drift/locale"
	"github.com/lixenwraith/gem-drift/observe"
	"github.com/lixenwraith/gem-drift/render"
)

// session owns the interactive loop
// Everything touching the game runs on the loop goroutine; only event polling is separate
type session struct {
	screen   tcell.Screen
	game     *engine.Game
	renderer *render.Renderer
	bundle   *locale.Bundle
	keys     *input.KeyTable
	holds    *input.HoldTracker
	clock    *engine.FrameClock
	sounds   *audio.SoundManager
	hub      *observe.Hub // Nil when the observer is disabled

	publishEvery time.Duration
	frameEvery   time.Duration
	lastPublish  time.Duration

	started time.Time        // Host timestamps for holds and taps are relative to this
	buttons tcell.ButtonMask // Previous mouse button state
	log     *zap.Logger
}

// now is monotonic time since the session started
func (s *session) now() time.Duration {
	return time.Since(s.started)
}

// run polls terminal events and ticks frames until quit
func (s *session) run() {
	s.started = time.Now()
	s.sounds.Apply(s.game.Settings().Audio)

	eventChan := make(chan tcell.Event, 256)
	// Input polling uses raw goroutine as it interacts directly with terminal
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()
		for {
			ev := s.screen.PollEvent()
			// Nil after Fini
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	frameTicker := time.NewTicker(s.frameEvery)
	defer frameTicker.Stop()

	s.draw()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !s.handleEvent(ev) {
				return
			}
		case <-frameTicker.C:
			s.frame()
		}
	}
}

// handleEvent dispatches one terminal event, false means quit
func (s *session) handleEvent(ev tcell.Event) bool {
	now := s.now()
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k := s.keys.Lookup(ev)
		if k == input.KeyQuit {
			return false
		}
		if k == input.KeyNone {
			return true
		}
		if k.IsDirection() {
			// Terminals repeat held keys; only the first press is a KeyDown
			if s.holds.Press(k, now) {
				s.game.KeyDown(k)
			}
		} else {
			s.game.KeyDown(k)
		}
		s.drainEvents()

	case *tcell.EventMouse:
		s.handleMouse(ev, now)
		s.drainEvents()

	case *tcell.EventResize:
		s.screen.Sync()
		s.renderer.Resize()
		s.game.Redetect()
		s.drainEvents()
		s.draw()

	case *tcell.EventFocus:
		if !ev.Focused {
			// Losing focus drops every held input, the game keeps its mode
			s.holds.Reset()
			s.game.ReleaseKeys()
			s.clock.Suspend()
		} else {
			s.clock.Resume()
		}
	}
	return true
}

// handleMouse turns button transitions into pointer down, move and up
func (s *session) handleMouse(ev *tcell.EventMouse, now time.Duration) {
	col, row := ev.Position()
	pos := s.renderer.Viewport().ClampToCanvas(col, row)
	pe := input.PointerEvent{X: pos.X, Y: pos.Y, At: now}

	pressed := ev.Buttons()&tcell.Button1 != 0
	wasPressed := s.buttons&tcell.Button1 != 0
	s.buttons = ev.Buttons()

	switch {
	case pressed && !wasPressed:
		s.game.PointerDown(pe)
	case pressed && wasPressed:
		s.game.PointerMove(pe)
	case !pressed && wasPressed:
		s.game.PointerUp(pe)
	}
}

// frame advances the simulation by the measured delta and redraws
func (s *session) frame() {
	now := s.now()
	for _, k := range s.holds.Expire(now) {
		s.game.KeyUp(k)
	}

	s.game.Update(s.clock.Tick())
	s.drainEvents()
	s.draw()

	if s.hub != nil && now-s.lastPublish >= s.publishEvery {
		s.hub.Publish(s.game.Snapshot())
		s.lastPublish = now
	}
}

// drainEvents forwards audio settings and emitted events to the sound manager
// Settings are applied every time since the first key or tap starts audio without an event
func (s *session) drainEvents() {
	s.sounds.Apply(s.game.Settings().Audio)
	events := s.game.Events()
	if len(events) == 0 {
		return
	}
	s.sounds.HandleEvents(events)

	for _, ev := range events {
		switch ev.Type {
		case event.EventLevelStart, event.EventLevelClear, event.EventWin, event.EventLose:
			s.log.Info("game event",
				zap.Stringer("event", ev.Type),
				zap.Int("level", ev.Level),
				zap.Int64("frame", ev.Frame))
		}
	}
}

// draw renders the current snapshot in the current language
func (s *session) draw() {
	snap := s.game.Snapshot()
	s.renderer.Draw(snap, s.bundle.Table(snap.Language))
}
