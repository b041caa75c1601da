// Package feed provides live update sources for a banner: text lines from a
// reader, a watched status file, or desktop notifications seen on D-Bus.
package feed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ErrUnknownSource is returned by New for names it does not recognise.
var ErrUnknownSource = errors.New("unknown source")

// ErrMissingFile is returned by New when the file source has no path.
var ErrMissingFile = errors.New("file source needs a file path")

// Update is one change to show on the banner.
type Update struct {
	Text string
	// Activity is nil when the update leaves the spinner as it is.
	Activity *bool
	Time     time.Time
}

// Source produces updates until its context is cancelled or its input ends.
type Source interface {
	// Name returns the source identifier (e.g., "stdin", "file").
	Name() string

	// Run publishes updates to out. It blocks until ctx is done or the
	// source is exhausted, and never closes out.
	Run(ctx context.Context, out chan<- Update) error
}

// Options configures the source built by New.
type Options struct {
	Reader io.Reader // stdin source; defaults to os.Stdin
	File   string    // file source
	Logger *slog.Logger
}

// New creates the named source.
func New(name string, opts Options) (Source, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch name {
	case "stdin", "":
		r := opts.Reader
		if r == nil {
			r = os.Stdin
		}
		return NewLineSource("stdin", r), nil
	case "file":
		if opts.File == "" {
			return nil, &SourceError{Source: name, Message: "cannot create source", Err: ErrMissingFile}
		}
		return NewFileSource(opts.File, logger), nil
	case "dbus":
		return NewDBusSource(logger), nil
	default:
		return nil, &SourceError{Source: name, Message: "cannot create source", Err: ErrUnknownSource}
	}
}

// SourceError represents a source-related error.
type SourceError struct {
	Source  string
	Message string
	Err     error
}

func (e *SourceError) Error() string {
	msg := e.Source + ": " + e.Message
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Line prefixes that set the activity spinner.
const (
	busyPrefix = "~ "
	idlePrefix = "= "
)

// ParseLine turns one line of text into an update. A "~ " prefix turns the
// spinner on and "= " turns it off. Blank lines yield no update.
func ParseLine(line string) (Update, bool) {
	line = strings.TrimLeft(strings.TrimRight(line, "\r\n"), " \t")

	var activity *bool
	switch {
	case strings.HasPrefix(line, busyPrefix):
		activity = ptr(true)
		line = line[len(busyPrefix):]
	case strings.HasPrefix(line, idlePrefix):
		activity = ptr(false)
		line = line[len(idlePrefix):]
	}

	line = strings.TrimSpace(line)
	if line == "" && activity == nil {
		return Update{}, false
	}
	return Update{Text: line, Activity: activity, Time: time.Now()}, true
}

// send delivers u unless ctx is done first.
func send(ctx context.Context, out chan<- Update, u Update) error {
	select {
	case out <- u:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func ptr[T any](v T) *T { return &v }
