package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/gem-drift/config"
)

const logFileName = "gemdrift.log"

// setupLogging builds the file logger for the interactive game
// Stdout belongs to the terminal UI, so logs only ever go to a file
// Debug off returns a no-op logger and creates nothing on disk
func setupLogging(cfg config.LoggingConfig) (*zap.Logger, error) {
	if !cfg.Debug {
		return zap.NewNop(), nil
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	logPath := filepath.Join(cfg.Dir, logFileName)
	if err := rotateLog(logPath, int64(cfg.MaxSizeMB)<<20); err != nil {
		return nil, err
	}

	return newLogger(cfg, logPath)
}

// rotateLog renames the log aside once it exceeds maxSize bytes
func rotateLog(logPath string, maxSize int64) error {
	info, err := os.Stat(logPath)
	if err != nil || info.Size() <= maxSize {
		return nil
	}
	ext := filepath.Ext(logPath)
	base := logPath[:len(logPath)-len(ext)]
	rotated := fmt.Sprintf("%s-%s%s", base, time.Now().Format("20060102-150405"), ext)
	if err := os.Rename(logPath, rotated); err != nil {
		return fmt.Errorf("rotate log: %w", err)
	}
	return nil
}

// newLogger builds a zap logger writing to path
func newLogger(cfg config.LoggingConfig, path string) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{path}
	zapCfg.ErrorOutputPaths = []string{path}

	return zapCfg.Build()
}
