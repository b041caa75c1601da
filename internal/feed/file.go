package feed

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileSource publishes the last non-empty line of a status file whenever the
// file is written.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{path: path, logger: logger}
}

// Name returns the source identifier.
func (s *FileSource) Name() string {
	return "file"
}

// Run publishes the current content, if any, then every change until ctx is
// done.
func (s *FileSource) Run(ctx context.Context, out chan<- Update) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return &SourceError{Source: "file", Message: "failed to create watcher", Err: err}
	}
	defer watcher.Close()

	// Watch the directory containing the file (more reliable for editors
	// that replace the file on save)
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return &SourceError{Source: "file", Message: "failed to watch " + s.path, Err: err}
	}
	s.logger.Debug("file source started", "path", s.path)

	if err := s.publish(ctx, out); err != nil {
		return nil
	}

	filename := filepath.Base(s.path)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if err := s.publish(ctx, out); err != nil {
					return nil
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("file source watcher error", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}

// publish sends the file's last line. Missing or blank files are skipped.
func (s *FileSource) publish(ctx context.Context, out chan<- Update) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to read status file", "path", s.path, "error", err)
		}
		return nil
	}

	u, ok := ParseLine(lastLine(data))
	if !ok {
		return nil
	}
	s.logger.Debug("status file changed", "text", u.Text)
	return send(ctx, out, u)
}

func lastLine(data []byte) string {
	lines := bytes.Split(data, []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		if len(bytes.TrimSpace(lines[i])) > 0 {
			return string(lines[i])
		}
	}
	return ""
}
