// Package headless provides a display that shows nothing, for batch runs
// and recording without a screen.
package headless

import (
	"image"
	"sync"
	"time"

	"github.com/user/harview/pkg/ports"
)

// Display counts frames and never reports a key.
type Display struct {
	mu     sync.Mutex
	shown  int
	last   image.Image
	closed bool
}

// New creates a headless display.
func New() *Display {
	return &Display{}
}

// Show records img as the latest frame.
func (d *Display) Show(img image.Image) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shown++
	d.last = img
	return nil
}

// PollKey returns NoKey without waiting.
func (d *Display) PollKey(wait time.Duration) int {
	return ports.NoKey
}

// Close marks the display closed.
func (d *Display) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Shown returns the number of frames shown.
func (d *Display) Shown() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shown
}

// Last returns the most recent frame, or nil.
func (d *Display) Last() image.Image {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

var _ ports.Display = (*Display)(nil)
