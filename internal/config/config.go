// Package config loads the daemon configuration from
// ~/.config/glyphbridge/config.yaml. A missing file yields the defaults; a
// malformed file is an error.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the effective daemon configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Display DisplayConfig `yaml:"display"`
	Frame   FrameConfig   `yaml:"frame"`
	Logging LoggingConfig `yaml:"logging"`

	// SocketPath overrides the runtime-dir IPC socket location.
	SocketPath string `yaml:"socket_path"`
}

// EngineConfig selects the display engine backend.
type EngineConfig struct {
	// Backend names a registered engine backend. Empty means "best
	// available by priority".
	Backend string `yaml:"backend"`
}

// DisplayConfig holds display-wide defaults used at connection open.
type DisplayConfig struct {
	DefaultName string `yaml:"default_name"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
}

// FrameConfig holds frame geometry defaults. The cell size is provisional:
// it sizes frames before real font metrics arrive.
type FrameConfig struct {
	CellWidth   int `yaml:"cell_width"`
	CellHeight  int `yaml:"cell_height"`
	DefaultCols int `yaml:"default_cols"`
	DefaultRows int `yaml:"default_rows"`
}

// LoggingConfig controls daemon logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{Backend: "record"},
		Display: DisplayConfig{
			DefaultName: ":0",
			Width:       800,
			Height:      600,
		},
		Frame: FrameConfig{
			CellWidth:   8,
			CellHeight:  16,
			DefaultCols: 80,
			DefaultRows: 36,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// DefaultConfigPath returns ~/.config/glyphbridge/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "glyphbridge", "config.yaml"), nil
}

// Load reads the configuration from the standard location.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the configuration from path, merging over the
// defaults. A missing file returns the defaults unchanged.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the daemon cannot run with.
func (c *Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d",
			c.Display.Width, c.Display.Height)
	}
	if c.Frame.CellWidth <= 0 || c.Frame.CellHeight <= 0 {
		return fmt.Errorf("cell size must be positive, got %dx%d",
			c.Frame.CellWidth, c.Frame.CellHeight)
	}
	if c.Frame.DefaultCols <= 0 || c.Frame.DefaultRows <= 0 {
		return fmt.Errorf("default grid must be positive, got %dx%d",
			c.Frame.DefaultCols, c.Frame.DefaultRows)
	}
	if c.Display.DefaultName == "" {
		return fmt.Errorf("display default_name must not be empty")
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}

// LogLevel converts the configured level to a slog level.
func (c *Config) LogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Print renders the effective configuration as YAML.
func (c *Config) Print() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(out), nil
}
