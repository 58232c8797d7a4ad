// Command gemdrift-sim runs the game headless for automation and regression checks
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/gem-drift/engine"
	"github.com/lixenwraith/gem-drift/export"
	"github.com/lixenwraith/gem-drift/input"
	"github.com/lixenwraith/gem-drift/locale"
	"github.com/lixenwraith/gem-drift/render"
	"github.com/lixenwraith/gem-drift/script"
)

type options struct {
	scriptPath  string
	restorePath string
	outPath     string
	format      string
	seed        uint64
	device      string
	lang        string
	duration    time.Duration
	autostart   bool
	screen      bool
	logLevel    string
}

func main() {
	opts := parseFlags(os.Args[1:])

	logger, err := newLogger(opts.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging setup failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	code, err := run(opts, os.Stdout, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gemdrift-sim: %v\n", err)
	}
	os.Exit(code)
}

func parseFlags(args []string) options {
	var o options
	fs := flag.NewFlagSet("gemdrift-sim", flag.ExitOnError)
	fs.StringVar(&o.scriptPath, "script", "", "Lua script to run, empty fast-forwards instead")
	fs.StringVar(&o.restorePath, "restore", "", "Snapshot file to resume from")
	fs.StringVar(&o.outPath, "out", "", "Write the final snapshot here, format from extension; empty writes stdout")
	fs.StringVar(&o.format, "format", "", "Snapshot format: json, yaml, msgpack")
	fs.Uint64Var(&o.seed, "seed", 1, "Random seed")
	fs.StringVar(&o.device, "device", "keyboard", "Device mode: auto, pointer, keyboard")
	fs.StringVar(&o.lang, "lang", "en", "Language tag")
	fs.DurationVar(&o.duration, "duration", 0, "Fast-forward duration when no script is given")
	fs.BoolVar(&o.autostart, "autostart", true, "Begin the run before fast-forwarding")
	fs.BoolVar(&o.screen, "screen", false, "Print the rendered frame as text to stderr")
	fs.StringVar(&o.logLevel, "log-level", "warn", "Log level")
	fs.Parse(args)
	return o
}

// run executes one headless session and returns the process exit code
func run(o options, stdout io.Writer, log *zap.Logger) (int, error) {
	device, err := input.ParseDeviceMode(o.device)
	if err != nil {
		return 2, err
	}
	bundle := locale.MustLoad()
	gameOpts := engine.Options{
		Seed:      o.seed,
		Device:    device,
		Language:  bundle.Match(o.lang),
		Languages: bundle.Languages(),
		Logger:    log.Named("engine"),
	}

	game, err := newGame(o.restorePath, gameOpts)
	if err != nil {
		return 2, err
	}

	code := 0
	var runErr error
	if o.scriptPath != "" {
		h := script.NewHarness(game, log.Named("script"))
		defer h.Close()
		if err := h.RunFile(o.scriptPath); err != nil {
			code, runErr = 1, err
			for _, f := range h.Failures() {
				fmt.Fprintf(os.Stderr, "FAIL %s\n", f)
			}
			if !errors.Is(err, script.ErrExpectations) {
				return code, runErr
			}
		}
	} else {
		if o.autostart && game.Mode().AcceptsBegin() {
			game.KeyDown(input.KeyConfirm)
		}
		if o.duration > 0 {
			game.Advance(o.duration)
		}
	}

	log.Info("simulation finished",
		zap.Stringer("mode", game.Mode()),
		zap.Int64("frames", game.Frame()),
		zap.Int("events", len(game.Events())))

	if o.screen {
		printScreen(os.Stderr, game.Snapshot(), bundle)
	}

	if err := writeSnapshot(o, stdout, game.Snapshot()); err != nil {
		return 2, err
	}
	return code, runErr
}

// newGame creates a fresh game or resumes a snapshot file
func newGame(restorePath string, opts engine.Options) (*engine.Game, error) {
	if restorePath == "" {
		return engine.New(opts), nil
	}
	f, err := os.Open(restorePath)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	format, err := export.FormatForPath(restorePath)
	if err != nil {
		return nil, err
	}
	snap, err := export.Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return engine.Restore(snap, opts)
}

// writeSnapshot writes to -out, or stdout when no path is given
func writeSnapshot(o options, stdout io.Writer, snap engine.Snapshot) error {
	format, err := export.ParseFormat(o.format)
	if err != nil {
		return err
	}
	if o.outPath == "" {
		return export.Write(stdout, snap, format)
	}
	if o.format == "" {
		if format, err = export.FormatForPath(o.outPath); err != nil {
			return err
		}
	}
	f, err := os.Create(o.outPath)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := export.Write(f, snap, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// printScreen renders the snapshot on an off-screen terminal and prints its rows
func printScreen(w io.Writer, snap engine.Snapshot, bundle *locale.Bundle) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		fmt.Fprintf(w, "screen: %v\n", err)
		return
	}
	defer screen.Fini()
	screen.SetSize(120, 40)

	r := render.NewRenderer(screen)
	r.Draw(snap, bundle.Table(snap.Language))
	fmt.Fprintln(w, strings.Join(render.ScreenText(screen), "\n"))
}

// newLogger writes console logs to stderr, stdout carries the snapshot
func newLogger(levelName string) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		level = zapcore.WarnLevel
	}
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	zapCfg.EncoderConfig.ConsoleSeparator = "  "
	zapCfg.DisableCaller = true
	zapCfg.DisableStacktrace = true
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}
	return zapCfg.Build()
}
