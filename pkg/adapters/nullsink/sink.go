// Package nullsink provides a frame sink that discards everything.
package nullsink

import (
	"image"

	"github.com/user/harview/pkg/ports"
)

// Sink is a no-op implementation of ports.FrameSink.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

func (s *Sink) Begin(width, height int, fps float64) error { return nil }

func (s *Sink) WriteFrame(index int, img image.Image) error { return nil }

func (s *Sink) Close() error { return nil }

var _ ports.FrameSink = (*Sink)(nil)
