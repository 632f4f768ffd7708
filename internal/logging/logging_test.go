package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Console: &buf})
	logger.Info("deck written", zap.String("path", "a_slides.tex"))
	logger.Debug("hidden")
	_ = logger.Sync()

	out := buf.String()
	if !strings.Contains(out, "deck written") || !strings.Contains(out, "a_slides.tex") {
		t.Fatalf("unexpected console output %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry logged at info level")
	}
}

func TestNew_FileSinkIsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "json2beamer.log")
	logger := New(Config{Console: &bytes.Buffer{}, File: path, Level: "debug"})
	logger.Debug("loaded", zap.Int("questions", 3))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("decode entry %q: %v", data, err)
	}
	if entry["msg"] != "loaded" || entry["level"] != "DEBUG" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":        zap.InfoLevel,
		"DEBUG":   zap.DebugLevel,
		" warn ":  zap.WarnLevel,
		"error":   zap.ErrorLevel,
		"verbose": zap.InfoLevel,
	}
	for name, want := range cases {
		if got := ParseLevel(name); got != want {
			t.Fatalf("%q: want %s, got %s", name, want, got)
		}
	}
}
