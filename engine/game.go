package engine

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/gem-drift/event"
	"github.com/lixenwraith/gem-drift/input"
	"github.com/lixenwraith/gem-drift/level"
	"github.com/lixenwraith/gem-drift/parameter"
)

// DefaultLanguages is the language cycle order, first entry is the default
var DefaultLanguages = []string{"zh", "en"}

// Options configures a new Game
type Options struct {
	Seed      uint64         // Random source seed, same seed and inputs give the same run
	Catalog   level.Catalog  // Nil uses level.DefaultCatalog
	Device    input.DeviceMode
	Detector  input.Detector // Resolves DeviceAuto, nil falls back to keyboard
	Language  string         // Empty uses the first of Languages
	Languages []string       // Cycle order for IntentCycleLanguage, nil uses DefaultLanguages
	Audio     *AudioSettings // Nil uses DefaultAudioSettings
	Logger    *zap.Logger    // Nil disables logging
}

// Game is the single-threaded simulation and state machine
// All methods must be called from one goroutine; hosts serialize input,
// Update and rendering on their own loop
type Game struct {
	state    RunState
	settings Settings
	catalog  level.Catalog

	src *rand.PCG
	rng *rand.Rand

	input     *input.Machine
	detect    input.Detector
	languages []string

	events *event.EventQueue
	frame  int64

	log *zap.Logger
}

// New creates a game on the start panel
func New(opts Options) *Game {
	catalog := opts.Catalog
	if len(catalog) == 0 {
		catalog = level.DefaultCatalog()
	}
	languages := opts.Languages
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	lang := opts.Language
	if lang == "" {
		lang = languages[0]
	}
	audio := DefaultAudioSettings()
	if opts.Audio != nil {
		audio = clampAudio(*opts.Audio)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	src := rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)
	device := opts.Device.Resolve(opts.Detector)

	def, _ := catalog.At(0)
	g := &Game{
		state:   newRunState(def.Goal),
		catalog: catalog,
		settings: Settings{
			Audio:          audio,
			Language:       lang,
			DeviceOverride: opts.Device,
			Device:         device,
		},
		src:       src,
		rng:       rand.New(src),
		input:     input.NewMachine(device),
		detect:    opts.Detector,
		languages: languages,
		events:    event.NewEventQueue(),
		log:       logger,
	}
	g.log.Debug("game created",
		zap.Uint64("seed", opts.Seed),
		zap.Int("levels", catalog.Len()),
		zap.Stringer("device", device),
		zap.String("language", lang))
	return g
}

// State returns a copy of the run state
// Entity slices are cloned so callers cannot mutate the simulation
func (g *Game) State() RunState {
	s := g.state
	s.Enemies = append([]Enemy(nil), g.state.Enemies...)
	s.Gems = append([]Gem(nil), g.state.Gems...)
	s.RareOrbs = append([]RareOrb(nil), g.state.RareOrbs...)
	return s
}

// Mode returns the current game mode
func (g *Game) Mode() Mode {
	return g.state.Mode
}

// Settings returns the current settings
func (g *Game) Settings() Settings {
	return g.settings
}

// Catalog returns the level catalog in use
func (g *Game) Catalog() level.Catalog {
	return g.catalog
}

// Level returns the definition of the current level
func (g *Game) Level() level.Definition {
	def, _ := g.catalog.At(g.state.LevelIndex)
	return def
}

// Frame returns the number of simulation steps taken while playing
func (g *Game) Frame() int64 {
	return g.frame
}

// Dragging reports whether a pointer drag is steering the avatar
func (g *Game) Dragging() bool {
	return g.input.Dragging()
}

// Events drains the events emitted since the last call
func (g *Game) Events() []event.GameEvent {
	return g.events.Consume()
}

// Advance runs fixed 1/60 s steps covering d, at least one
func (g *Game) Advance(d time.Duration) {
	steps := advanceSteps(d)
	for range steps {
		g.Update(parameter.FixedStep)
	}
}

// advanceSteps is max(1, round(d / FixedStep)), negative durations count as zero
func advanceSteps(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	frame := parameter.FixedStepDuration
	n := int((d + frame/2) / frame)
	return max(1, n)
}

// emit queues an event stamped with the current level and frame
func (g *Game) emit(t event.EventType) {
	g.events.Push(event.GameEvent{Type: t, Level: g.state.LevelIndex, Frame: g.frame})
}

// setMode switches mode and logs the transition
func (g *Game) setMode(m Mode) {
	if g.state.Mode == m {
		return
	}
	g.log.Debug("mode transition",
		zap.Stringer("from", g.state.Mode),
		zap.Stringer("to", m),
		zap.Int("level", g.state.LevelIndex))
	g.state.Mode = m
}
