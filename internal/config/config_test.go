package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Display.Width != 800 || cfg.Display.Height != 600 {
		t.Fatalf("expected default 800x600, got %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Display.DefaultName != ":0" {
		t.Fatalf("expected default name :0, got %q", cfg.Display.DefaultName)
	}
	if cfg.Frame.CellWidth != 8 || cfg.Frame.CellHeight != 16 {
		t.Fatalf("expected 8x16 provisional cell, got %dx%d",
			cfg.Frame.CellWidth, cfg.Frame.CellHeight)
	}
	if cfg.Engine.Backend != "record" {
		t.Fatalf("expected record backend, got %q", cfg.Engine.Backend)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
engine:
  backend: tcell
logging:
  level: debug
`)
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Engine.Backend != "tcell" {
		t.Fatalf("expected tcell backend, got %q", cfg.Engine.Backend)
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.LogLevel())
	}
	// Untouched sections keep their defaults.
	if cfg.Display.Width != 800 {
		t.Fatalf("expected default width preserved, got %d", cfg.Display.Width)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"negative size", "display:\n  width: -1\n", "display size"},
		{"zero cell", "frame:\n  cell_width: 0\n  cell_height: 0\n", "cell size"},
		{"bad level", "logging:\n  level: loud\n", "log level"},
		{"not yaml", "{{{", "parse"},
	}
	for _, tt := range tests {
		path := writeConfig(t, tt.content)
		_, err := LoadFromPath(path)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.wantErr)
		}
	}
}

func TestPrintRoundTrips(t *testing.T) {
	out, err := Default().Print()
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(out, "backend: record") || !strings.Contains(out, "default_name") {
		t.Fatalf("unexpected print output:\n%s", out)
	}
}
