package ports

import (
	"image"
)

// FrameSink receives annotated frames, for recording or debugging.
type FrameSink interface {
	// Enabled returns true if the sink stores anything.
	Enabled() bool

	// Begin prepares the sink for frames of the given size and rate.
	Begin(width, height int, fps float64) error

	// WriteFrame stores one annotated frame.
	WriteFrame(index int, img image.Image) error

	// Close flushes pending output and releases resources.
	Close() error
}
