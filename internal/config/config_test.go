package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "top", cfg.Banner.Edge)
	assert.Equal(t, 200*time.Millisecond, cfg.Banner.Animation.Duration())
	assert.Equal(t, time.Second, cfg.Banner.DismissAfter.Duration())
	assert.Equal(t, "dot", cfg.Banner.Spinner)
	assert.Equal(t, "default", cfg.Theme.Name)
	assert.Empty(t, cfg.Theme.HostBackground)
	assert.Equal(t, "stdin", cfg.Watch.Source)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[banner]
edge = "bottom"
animation = "350ms"
dismiss_after = 2500
spinner = "line"

[theme]
name = "catppuccin"
host_background = "#000000"

[watch]
source = "file"
file = "/tmp/status"
dismiss_after = "5s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "bottom", cfg.Banner.Edge)
	assert.Equal(t, 350*time.Millisecond, cfg.Banner.Animation.Duration())
	assert.Equal(t, 2500*time.Millisecond, cfg.Banner.DismissAfter.Duration())
	assert.Equal(t, "line", cfg.Banner.Spinner)
	assert.Equal(t, "catppuccin", cfg.Theme.Name)
	assert.Equal(t, "#000000", cfg.Theme.HostBackground)
	assert.Equal(t, "file", cfg.Watch.Source)
	assert.Equal(t, "/tmp/status", cfg.Watch.File)
	assert.Equal(t, 5*time.Second, cfg.Watch.DismissAfter.Duration())
}

func TestLoadConfig_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
banner:
  edge: bottom
  animation: 100ms
  dismiss_after: 1500
theme:
  name: minimal
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "bottom", cfg.Banner.Edge)
	assert.Equal(t, 100*time.Millisecond, cfg.Banner.Animation.Duration())
	assert.Equal(t, 1500*time.Millisecond, cfg.Banner.DismissAfter.Duration())
	assert.Equal(t, "minimal", cfg.Theme.Name)
	assert.Equal(t, DefaultSpinner, cfg.Banner.Spinner)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[banner]
edge = "bottom"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Changed field
	assert.Equal(t, "bottom", cfg.Banner.Edge)

	// Unchanged fields should have defaults
	assert.Equal(t, DefaultAnimation, cfg.Banner.Animation.Duration())
	assert.Equal(t, DefaultTheme, cfg.Theme.Name)
	assert.Equal(t, DefaultSource, cfg.Watch.Source)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"edge", "[banner]\nedge = \"left\"\n", ErrInvalidEdge},
		{"spinner", "[banner]\nspinner = \"wheel\"\n", ErrInvalidSpinner},
		{"source", "[watch]\nsource = \"http\"\n", ErrInvalidSource},
		{"file without path", "[watch]\nsource = \"file\"\n", ErrMissingFile},
		{"zero dismiss", "[banner]\ndismiss_after = 0\n", ErrInvalidDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadConfig(path)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"200ms", 200 * time.Millisecond, false},
		{"1s", time.Second, false},
		{"1m30s", 90 * time.Second, false},
		{"250", 250 * time.Millisecond, false},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}
}

func TestConfig_Save(t *testing.T) {
	for _, name := range []string{"config.toml", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "subdir", name)

			cfg := DefaultConfig()
			cfg.Banner.Edge = "bottom"
			cfg.Banner.Animation = Duration(300 * time.Millisecond)
			cfg.Theme.Name = "minimal"

			require.NoError(t, cfg.Save(path))
			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/discreet/config.toml", ConfigPath())
}

func TestConfigPathDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Contains(t, ConfigPath(), filepath.Join("discreet", "config.toml"))
}

func TestWatchFile_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := DefaultConfig()
	cfg.Watch.File = "~/status.txt"
	assert.Equal(t, filepath.Join(home, "status.txt"), cfg.WatchFile())

	cfg.Watch.File = "/abs/status.txt"
	assert.Equal(t, "/abs/status.txt", cfg.WatchFile())
}

func TestWatcher_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[banner]\nedge = \"top\"\n"), 0644))

	initial, err := LoadConfig(path)
	require.NoError(t, err)

	w, err := NewWatcher(path, initial, nil)
	require.NoError(t, err)

	reloaded := make(chan *Config, 4)
	failed := make(chan error, 4)
	w.SetReloadCallback(func(cfg *Config) { reloaded <- cfg })
	w.SetErrorCallback(func(err error) { failed <- err })
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("[banner]\nedge = \"bottom\"\n"), 0644))
	select {
	case cfg := <-reloaded:
		assert.Equal(t, "bottom", cfg.Banner.Edge)
	case <-time.After(2 * time.Second):
		t.Fatal("no reload after write")
	}
	assert.Equal(t, "bottom", w.Current().Banner.Edge)

	require.NoError(t, os.WriteFile(path, []byte("[banner]\nedge = \"left\"\n"), 0644))
	select {
	case err := <-failed:
		assert.ErrorIs(t, err, ErrInvalidEdge)
	case <-time.After(2 * time.Second):
		t.Fatal("no error for invalid config")
	}
	assert.Equal(t, "bottom", w.Current().Banner.Edge, "last good config kept")
}
