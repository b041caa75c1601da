package feed

import (
	"bufio"
	"context"
	"errors"
	"io"
)

// LineSource publishes one update per line of a reader.
type LineSource struct {
	name   string
	reader io.Reader
}

// NewLineSource creates a LineSource reading r.
func NewLineSource(name string, r io.Reader) *LineSource {
	return &LineSource{name: name, reader: r}
}

// Name returns the source identifier.
func (s *LineSource) Name() string {
	return s.name
}

// Run reads lines until the reader is exhausted. A cancelled context stops
// delivery; a read already blocked is not interrupted.
func (s *LineSource) Run(ctx context.Context, out chan<- Update) error {
	scanner := bufio.NewScanner(s.reader)
	const maxSize = 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		u, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		if err := send(ctx, out, u); err != nil {
			return nil
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.ErrClosedPipe) {
		return &SourceError{Source: s.name, Message: "failed to read input", Err: err}
	}
	return nil
}
