// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultEdge         = "top"
	DefaultAnimation    = 200 * time.Millisecond
	DefaultDismissAfter = time.Second
	DefaultSpinner      = "dot"
	DefaultTheme        = "default"
	DefaultSource       = "stdin"
)

// Validation errors.
var (
	ErrInvalidEdge     = errors.New("invalid edge")
	ErrInvalidSpinner  = errors.New("invalid spinner")
	ErrInvalidSource   = errors.New("invalid source")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrMissingFile     = errors.New("file source needs a file path")
)

// Spinner names accepted by BannerConfig.Spinner.
var Spinners = []string{"dot", "line", "minidot", "jump", "points", "pulse", "ellipsis"}

// Sources accepted by WatchConfig.Source.
var Sources = []string{"stdin", "file", "dbus"}

// Config represents the discreet configuration.
type Config struct {
	Banner BannerConfig `toml:"banner" yaml:"banner"`
	Theme  ThemeConfig  `toml:"theme" yaml:"theme"`
	Watch  WatchConfig  `toml:"watch" yaml:"watch"`
}

// BannerConfig holds the banner's look and timing.
type BannerConfig struct {
	Edge         string   `toml:"edge" yaml:"edge"`                   // top, bottom
	Animation    Duration `toml:"animation" yaml:"animation"`         // Slide duration
	DismissAfter Duration `toml:"dismiss_after" yaml:"dismiss_after"` // Used by show-and-dismiss
	Spinner      string   `toml:"spinner" yaml:"spinner"`
}

// ThemeConfig holds palette settings.
type ThemeConfig struct {
	Name           string `toml:"name" yaml:"name"`                       // Palette name without .toml extension
	HostBackground string `toml:"host_background" yaml:"host_background"` // Overrides the palette background if set
}

// WatchConfig holds feed settings for the watch command.
type WatchConfig struct {
	Source       string   `toml:"source" yaml:"source"` // stdin, file, dbus
	File         string   `toml:"file" yaml:"file"`
	DismissAfter Duration `toml:"dismiss_after" yaml:"dismiss_after"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Banner: BannerConfig{
			Edge:         DefaultEdge,
			Animation:    Duration(DefaultAnimation),
			DismissAfter: Duration(DefaultDismissAfter),
			Spinner:      DefaultSpinner,
		},
		Theme: ThemeConfig{
			Name: DefaultTheme,
		},
		Watch: WatchConfig{
			Source:       DefaultSource,
			DismissAfter: Duration(3 * time.Second),
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "discreet", "config.toml")
}

// isYAML reports whether path names a YAML file.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = toml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Banner.Edge != "top" && c.Banner.Edge != "bottom" {
		return fmt.Errorf("%w %q, must be top or bottom", ErrInvalidEdge, c.Banner.Edge)
	}
	if !slices.Contains(Spinners, c.Banner.Spinner) {
		return fmt.Errorf("%w %q, must be one of: %v", ErrInvalidSpinner, c.Banner.Spinner, Spinners)
	}
	if c.Banner.Animation < 0 {
		return fmt.Errorf("%w: animation must not be negative", ErrInvalidDuration)
	}
	if c.Banner.DismissAfter <= 0 {
		return fmt.Errorf("%w: dismiss_after must be positive", ErrInvalidDuration)
	}

	if !slices.Contains(Sources, c.Watch.Source) {
		return fmt.Errorf("%w %q, must be one of: %v", ErrInvalidSource, c.Watch.Source, Sources)
	}
	if c.Watch.Source == "file" && c.Watch.File == "" {
		return ErrMissingFile
	}
	if c.Watch.DismissAfter <= 0 {
		return fmt.Errorf("%w: watch dismiss_after must be positive", ErrInvalidDuration)
	}

	return nil
}

// WatchFile returns the watched file path with ~ expanded.
func (c *Config) WatchFile() string {
	return expandPath(c.Watch.File)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
