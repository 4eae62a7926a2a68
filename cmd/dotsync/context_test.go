package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoggerWritesUnderConfiguredLogDir(t *testing.T) {
	tmp := t.TempDir()
	logDir := filepath.Join(tmp, "logs")
	stateDir := filepath.Join(tmp, "state")

	cfgPath := filepath.Join(tmp, "config.toml")
	body := fmt.Sprintf("[paths]\nlog_dir = %q\nstate_dir = %q\n", logDir, stateDir)
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	flag := cfgPath
	ctx := newCommandContext(&flag)
	logger, err := ctx.newLogger()
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info("logger ready")

	data, err := os.ReadFile(filepath.Join(logDir, "dotsync.log"))
	if err != nil {
		t.Fatalf("expected log file under log_dir: %v", err)
	}
	if !strings.Contains(string(data), "logger ready") {
		t.Fatalf("log file missing entry, got %q", string(data))
	}
}
