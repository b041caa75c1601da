package theme

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the active palette when its file in the themes directory
// is written. A user file appearing under the name of a bundled palette
// takes over from it, as Load would resolve it.
type Watcher struct {
	logger *slog.Logger

	mu       sync.Mutex
	palette  *Palette
	onChange func(p Palette)
	watcher  *fsnotify.Watcher
	done     chan struct{}
	running  bool
}

// NewWatcher creates a watcher for palette. The palette is updated in place.
func NewWatcher(palette *Palette, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		logger:  logger,
		palette: palette,
	}
}

// SetChangeCallback sets the callback invoked with the reloaded palette.
func (w *Watcher) SetChangeCallback(callback func(p Palette)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = callback
}

// UpdatePalette switches to a different palette. Only palettes living in the
// watched directory are followed.
func (w *Watcher) UpdatePalette(palette *Palette) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.palette = palette
}

// Start watches the directory of the palette file, or the user themes
// directory for bundled palettes. Without such a directory there is nothing
// to watch and Start returns without running.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	dir := w.dir()
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); err != nil {
		w.logger.Debug("no themes directory, palette not watched", "dir", dir)
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	w.watcher = watcher
	w.done = make(chan struct{})
	w.running = true
	go w.watch(ctx, watcher, w.done)

	w.logger.Debug("palette watcher started", "dir", dir)
	return nil
}

func (w *Watcher) dir() string {
	if w.palette != nil && w.palette.Path != "" {
		return filepath.Dir(w.palette.Path)
	}
	dir, err := ThemesDir()
	if err != nil {
		return ""
	}
	return dir
}

func (w *Watcher) watch(ctx context.Context, watcher *fsnotify.Watcher, done <-chan struct{}) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.reload(event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("palette watcher error", "error", err)

		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// reload re-reads path if it is the active palette's file.
func (w *Watcher) reload(path string) {
	w.mu.Lock()
	if w.palette == nil || filepath.Base(path) != w.palette.Name+".toml" {
		w.mu.Unlock()
		return
	}
	name := w.palette.Name
	w.mu.Unlock()

	// Truncation shows up as its own write; wait for the content.
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		return
	}

	fresh, err := NewPalette(name, path)
	if err != nil {
		w.logger.Warn("failed to reload palette", "path", path, "error", err)
		return
	}

	w.mu.Lock()
	if w.palette == nil || w.palette.Name != name {
		w.mu.Unlock()
		return
	}
	changed := w.palette.Path != path || fresh.colours() != w.palette.colours()
	*w.palette = fresh
	callback := w.onChange
	w.mu.Unlock()

	if !changed {
		return
	}
	w.logger.Info("palette file changed, reloading", "path", path)
	if callback != nil {
		callback(fresh)
	}
}

// Stop stops watching.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	w.running = false
	close(w.done)
	w.watcher.Close()
	w.logger.Debug("palette watcher stopped")
}

// IsRunning returns whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
