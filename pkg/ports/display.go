package ports

import (
	"image"
	"time"
)

// NoKey is returned by Display.PollKey when no key was pressed.
const NoKey = -1

// Display is an on-screen surface showing annotated frames.
type Display interface {
	// Show presents img. The surface is created on first use.
	Show(img image.Image) error

	// PollKey waits at most wait for a keypress and returns its code, or NoKey.
	PollKey(wait time.Duration) int

	// Close destroys the surface and any window resources.
	Close() error
}
