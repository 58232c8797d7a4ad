package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/gem-drift/audio"
	"github.com/lixenwraith/gem-drift/config"
	"github.com/lixenwraith/gem-drift/engine"
	"github.com/lixenwraith/gem-drift/input"
	"github.com/lixenwraith/gem-drift/locale"
	"github.com/lixenwraith/gem-drift/observe"
	"github.com/lixenwraith/gem-drift/parameter"
	"github.com/lixenwraith/gem-drift/render"
)

var (
	configFlag  = flag.String("config", "gemdrift.toml", "Path to TOML config, missing file uses defaults")
	seedFlag    = flag.Uint64("seed", 0, "Random seed, 0 uses config or clock")
	deviceFlag  = flag.String("device", "", "Device mode: auto, pointer, keyboard")
	langFlag    = flag.String("lang", "", "Language tag, e.g. en or zh")
	observeFlag = flag.String("observe", "", "Serve spectator websocket on this address")
	debugFlag   = flag.Bool("debug", false, "Write debug logs under the log dir")
)

func main() {
	var screen tcell.Screen

	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mGEM DRIFT CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	logger, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging setup failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	keys := input.DefaultKeyTable()
	if err := keys.Apply(cfg.Keys); err != nil {
		fmt.Fprintf(os.Stderr, "Key bindings: %v\n", err)
		os.Exit(1)
	}

	screen, err = tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()

	bundle := locale.MustLoad()
	lang := cfg.Game.Language
	if lang == "auto" {
		lang = os.Getenv("LANG")
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	audioSettings := cfg.EngineAudio()
	game := engine.New(engine.Options{
		Seed:      seed,
		Device:    cfg.DeviceMode(),
		Detector:  terminalDetector(screen),
		Language:  bundle.Match(lang),
		Languages: bundle.Languages(),
		Audio:     &audioSettings,
		Logger:    logger.Named("engine"),
	})
	if cfg.Game.Fullscreen {
		game.ToggleFullscreen()
	}
	logger.Info("game created",
		zap.Uint64("seed", seed),
		zap.String("language", game.Settings().Language),
		zap.Stringer("device", game.Settings().Device))

	// Audio failures are non-fatal, the game continues silent
	sounds := audio.NewSoundManager(cfg.Audio.SampleRate, logger.Named("audio"))
	if cfg.Audio.Enabled {
		if err := sounds.Initialize(); err != nil {
			logger.Warn("audio initialization failed, continuing without audio", zap.Error(err))
		}
	}
	defer sounds.Cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var hub *observe.Hub
	if cfg.Observer.Enabled {
		hub = observe.NewHub(observe.Config{
			WriteTimeout: cfg.Observer.WriteTimeout,
			Logger:       logger.Named("observe"),
		})
		go func() {
			if err := hub.ListenAndServe(ctx, cfg.Observer.BindAddress); err != nil {
				logger.Error("observer stopped", zap.Error(err))
			}
		}()
	}

	s := &session{
		screen:       screen,
		game:         game,
		renderer:     render.NewRenderer(screen),
		bundle:       bundle,
		keys:         keys,
		holds:        input.NewHoldTracker(cfg.Game.KeyHoldTimeout),
		clock:        engine.NewFrameClock(engine.NewMonotonicTimeProvider()),
		sounds:       sounds,
		hub:          hub,
		publishEvery: cfg.Observer.PublishEvery,
		frameEvery:   cfg.Game.FrameInterval,
		log:          logger,
	}
	s.run()
	logger.Info("game exited", zap.Int64("frames", game.Frame()))
}

// loadConfig applies file, environment and flags in that order
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	if *seedFlag != 0 {
		cfg.Game.Seed = *seedFlag
	}
	if *deviceFlag != "" {
		cfg.Game.Device = *deviceFlag
	}
	if *langFlag != "" {
		cfg.Game.Language = *langFlag
	}
	if *observeFlag != "" {
		cfg.Observer.Enabled = true
		cfg.Observer.BindAddress = *observeFlag
	}
	if *debugFlag {
		cfg.Logging.Debug = true
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// terminalDetector resolves auto device mode from the terminal width
// Narrow terminals are usually phone or split-pane sessions where the mouse is the main input
func terminalDetector(screen tcell.Screen) input.Detector {
	return func() input.DeviceMode {
		w, _ := screen.Size()
		if w > 0 && w < parameter.NarrowTerminalColumns {
			return input.DevicePointer
		}
		return input.DeviceKeyboard
	}
}
