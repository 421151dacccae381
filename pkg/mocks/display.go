package mocks

import (
	"image"
	"sync"
	"time"

	"github.com/user/harview/pkg/ports"
)

// Display is a mock implementation of ports.Display.
type Display struct {
	mu sync.Mutex

	// Keys are returned by PollKey in order; NoKey once exhausted.
	Keys     []int
	ShowFunc func(img image.Image) error

	Shown  []image.Image
	Polls  int
	Closed bool
}

func (m *Display) Show(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Shown = append(m.Shown, img)
	if m.ShowFunc != nil {
		return m.ShowFunc(img)
	}
	return nil
}

func (m *Display) PollKey(wait time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Polls++
	if len(m.Keys) == 0 {
		return ports.NoKey
	}
	k := m.Keys[0]
	m.Keys = m.Keys[1:]
	return k
}

func (m *Display) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// ShownCount returns the number of Show calls.
func (m *Display) ShownCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Shown)
}

var _ ports.Display = (*Display)(nil)
