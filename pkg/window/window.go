// Package window implements the fixed-capacity sliding window of recent frames.
package window

import (
	"errors"

	"github.com/bmharper/ringbuffer"
)

// ErrCapacity is returned when a window is created with a capacity below one.
var ErrCapacity = errors.New("window: capacity must be at least 1")

// Window holds the most recent items up to a fixed capacity, oldest first.
// Pushing into a full window evicts the oldest item.
type Window[T any] struct {
	ring     ringbuffer.RingP[T]
	capacity int
}

// New creates an empty window that holds at most capacity items.
func New[T any](capacity int) (*Window[T], error) {
	if capacity < 1 {
		return nil, ErrCapacity
	}
	return &Window[T]{
		ring:     ringbuffer.NewRingP[T](ringSize(capacity)),
		capacity: capacity,
	}, nil
}

// ringSize returns the smallest power of two above capacity. A RingP of
// size n holds n-1 items.
func ringSize(capacity int) int {
	n := 2
	for n <= capacity {
		n <<= 1
	}
	return n
}

// Push appends item, evicting the oldest item when the window is full.
func (w *Window[T]) Push(item T) {
	if w.ring.Len() == w.capacity {
		w.ring.Next()
	}
	w.ring.Add(item)
}

// Len returns the number of items held, never more than Cap.
func (w *Window[T]) Len() int {
	return w.ring.Len()
}

// Cap returns the fixed capacity.
func (w *Window[T]) Cap() int {
	return w.capacity
}

// Ready reports whether the window holds exactly Cap items.
func (w *Window[T]) Ready() bool {
	return w.ring.Len() == w.capacity
}

// Snapshot returns the held items, oldest first. The window is not modified.
func (w *Window[T]) Snapshot() []T {
	out := make([]T, w.ring.Len())
	for i := range out {
		out[i] = w.ring.Peek(i)
	}
	return out
}
