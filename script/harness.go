// Package script drives a headless game from Lua for automated play-testing
package script

import (
	"errors"
	"fmt"
	"os"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/lixenwraith/gem-drift/engine"
	"github.com/lixenwraith/gem-drift/event"
	"github.com/lixenwraith/gem-drift/export"
	"github.com/lixenwraith/gem-drift/input"
)

// ErrExpectations is returned by Run when any expect() call failed
var ErrExpectations = errors.New("script expectations failed")

// APIVersion is exposed to scripts as API_VERSION
const APIVersion = 1

// Harness wraps a single gopher-lua VM bound to one game
// Single-goroutine access only; the game must not be driven elsewhere while a script runs
type Harness struct {
	vm   *lua.LState
	game *engine.Game
	log  *zap.Logger

	now      time.Duration // Virtual host clock for pointer timestamps
	pending  []event.GameEvent
	failures []string
}

// NewHarness creates a VM with the automation API bound to game
func NewHarness(game *engine.Game, log *zap.Logger) *Harness {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	h := &Harness{vm: vm, game: game, log: log}

	vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))
	for name, fn := range map[string]lua.LGFunction{
		"key_down":       h.luaKeyDown,
		"key_up":         h.luaKeyUp,
		"press":          h.luaPress,
		"advance":        h.luaAdvance,
		"wait":           h.luaWait,
		"tap":            h.luaTap,
		"pointer_down":   h.luaPointerDown,
		"pointer_move":   h.luaPointerMove,
		"pointer_up":     h.luaPointerUp,
		"pointer_cancel": h.luaPointerCancel,
		"device":         h.luaDevice,
		"language":       h.luaLanguage,
		"state":          h.luaState,
		"dump":           h.luaDump,
		"events":         h.luaEvents,
		"expect":         h.luaExpect,
		"log":            h.luaLog,
	} {
		vm.SetGlobal(name, vm.NewFunction(fn))
	}
	return h
}

// Close releases the VM
func (h *Harness) Close() {
	h.vm.Close()
}

// Game returns the driven game
func (h *Harness) Game() *engine.Game {
	return h.game
}

// Failures returns the messages of failed expectations so far
func (h *Harness) Failures() []string {
	return append([]string(nil), h.failures...)
}

// Run executes a script source
// Lua errors are returned as is; failed expectations yield ErrExpectations
func (h *Harness) Run(name, source string) error {
	fn, err := h.vm.LoadString(source)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	h.vm.Push(fn)
	if err := h.vm.PCall(0, lua.MultRet, nil); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	h.log.Debug("script finished",
		zap.String("script", name),
		zap.Int64("frame", h.game.Frame()),
		zap.Int("failures", len(h.failures)))
	if len(h.failures) > 0 {
		return fmt.Errorf("%w: %d failed in %s", ErrExpectations, len(h.failures), name)
	}
	return nil
}

// RunFile executes a script file
func (h *Harness) RunFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return h.Run(path, string(src))
}

// collect drains game events into the pending list
func (h *Harness) collect() {
	h.pending = append(h.pending, h.game.Events()...)
}

// checkKey resolves a key action name argument or raises a Lua error
func (h *Harness) checkKey(L *lua.LState, n int) input.Key {
	k, err := input.ParseAction(L.CheckString(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return k
}

// checkMs reads a non-negative millisecond argument
func checkMs(L *lua.LState, n int) time.Duration {
	ms := float64(L.CheckNumber(n))
	if ms < 0 {
		L.ArgError(n, "milliseconds must be non-negative")
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// checkPointer reads x, y and an optional pointer id
func (h *Harness) checkPointer(L *lua.LState) input.PointerEvent {
	return input.PointerEvent{
		ID: L.OptInt(3, 0),
		X:  float64(L.CheckNumber(1)),
		Y:  float64(L.CheckNumber(2)),
		At: h.now,
	}
}

func (h *Harness) luaKeyDown(L *lua.LState) int {
	h.game.KeyDown(h.checkKey(L, 1))
	h.collect()
	return 0
}

func (h *Harness) luaKeyUp(L *lua.LState) int {
	h.game.KeyUp(h.checkKey(L, 1))
	return 0
}

// press is a key down immediately followed by a key up
func (h *Harness) luaPress(L *lua.LState) int {
	k := h.checkKey(L, 1)
	h.game.KeyDown(k)
	h.game.KeyUp(k)
	h.collect()
	return 0
}

// advance simulates ms milliseconds in fixed steps, returns the new frame
func (h *Harness) luaAdvance(L *lua.LState) int {
	d := checkMs(L, 1)
	h.game.Advance(d)
	h.now += d
	h.collect()
	L.Push(lua.LNumber(h.game.Frame()))
	return 1
}

// wait moves the virtual host clock without simulating, for tap timing
func (h *Harness) luaWait(L *lua.LState) int {
	h.now += checkMs(L, 1)
	return 0
}

func (h *Harness) luaTap(L *lua.LState) int {
	ev := h.checkPointer(L)
	h.game.PointerDown(ev)
	h.game.PointerUp(ev)
	h.collect()
	return 0
}

func (h *Harness) luaPointerDown(L *lua.LState) int {
	h.game.PointerDown(h.checkPointer(L))
	h.collect()
	return 0
}

func (h *Harness) luaPointerMove(L *lua.LState) int {
	h.game.PointerMove(h.checkPointer(L))
	return 0
}

func (h *Harness) luaPointerUp(L *lua.LState) int {
	h.game.PointerUp(h.checkPointer(L))
	return 0
}

func (h *Harness) luaPointerCancel(L *lua.LState) int {
	h.game.PointerCancel(h.checkPointer(L))
	return 0
}

func (h *Harness) luaDevice(L *lua.LState) int {
	d, err := input.ParseDeviceMode(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
	}
	h.game.SetDeviceMode(d)
	h.collect()
	return 0
}

func (h *Harness) luaLanguage(L *lua.LState) int {
	h.game.SetLanguage(L.CheckString(1))
	h.collect()
	return 0
}

// state returns the snapshot as a table using the export field names
func (h *Harness) luaState(L *lua.LState) int {
	v, err := snapshotValue(L, h.game.Snapshot())
	if err != nil {
		L.RaiseError("state: %v", err)
	}
	L.Push(v)
	return 1
}

// dump returns the snapshot encoded as json, yaml or msgpack
func (h *Harness) luaDump(L *lua.LState) int {
	f, err := export.ParseFormat(L.OptString(1, "json"))
	if err != nil {
		L.ArgError(1, err.Error())
	}
	data, err := export.Encode(h.game.Snapshot(), f)
	if err != nil {
		L.RaiseError("dump: %v", err)
	}
	L.Push(lua.LString(data))
	return 1
}

// events returns and clears the names of events emitted since the last call
func (h *Harness) luaEvents(L *lua.LState) int {
	h.collect()
	t := L.NewTable()
	for _, ev := range h.pending {
		t.Append(lua.LString(ev.Type.String()))
	}
	h.pending = h.pending[:0]
	L.Push(t)
	return 1
}

// expect records a failure when cond is falsy and returns cond
func (h *Harness) luaExpect(L *lua.LState) int {
	ok := L.ToBool(1)
	if !ok {
		msg := L.OptString(2, "expectation failed")
		where := L.Where(1)
		h.failures = append(h.failures, where+msg)
		h.log.Warn("script expectation failed",
			zap.String("at", where),
			zap.String("message", msg),
			zap.Int64("frame", h.game.Frame()))
	}
	L.Push(lua.LBool(ok))
	return 1
}

func (h *Harness) luaLog(L *lua.LState) int {
	h.log.Info("script", zap.String("message", L.CheckString(1)))
	return 0
}
