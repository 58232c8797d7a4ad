package main

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/gem-drift/config"
)

func testLoggingConfig(t *testing.T, debug bool) config.LoggingConfig {
	t.Helper()
	cfg := config.Defaults().Logging
	cfg.Dir = filepath.Join(t.TempDir(), "logs")
	cfg.Debug = debug
	cfg.Level = "debug"
	return cfg
}

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	cfg := testLoggingConfig(t, false)

	logger, err := setupLogging(cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Expected no-op logger when debug=false")
	}

	if _, err := os.Stat(cfg.Dir); !os.IsNotExist(err) {
		t.Error("Expected no logs directory when debug=false")
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	cfg := testLoggingConfig(t, true)

	logger, err := setupLogging(cfg)
	if err != nil {
		t.Fatalf("Expected logger, got %v", err)
	}

	logger.Info("test log message")
	logger.Sync()

	logPath := filepath.Join(cfg.Dir, logFileName)
	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	cfg := testLoggingConfig(t, true)
	cfg.MaxSizeMB = 1
	maxLogSize := int64(cfg.MaxSizeMB) << 20

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		t.Fatalf("Failed to create logs directory: %v", err)
	}
	logPath := filepath.Join(cfg.Dir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0o644); err != nil {
		t.Fatalf("Failed to write large log file: %v", err)
	}

	logger, err := setupLogging(cfg)
	if err != nil {
		t.Fatalf("Expected logger, got %v", err)
	}
	logger.Sync()

	entries, err := os.ReadDir(cfg.Dir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}
	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != logFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
			break
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err == nil && info.Size() > maxLogSize {
		t.Errorf("Expected new log file to be smaller than %d bytes, got %d", maxLogSize, info.Size())
	}
}

func TestSetupLogging_JSONFormat(t *testing.T) {
	cfg := testLoggingConfig(t, true)
	cfg.Format = "json"

	logger, err := setupLogging(cfg)
	if err != nil {
		t.Fatalf("Expected logger, got %v", err)
	}
	logger.Info("structured")
	logger.Sync()

	data, err := os.ReadFile(filepath.Join(cfg.Dir, logFileName))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if len(data) == 0 || data[0] != '{' {
		t.Errorf("Expected JSON log line, got %q", data)
	}
}
