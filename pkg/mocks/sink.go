package mocks

import (
	"image"
	"sync"

	"github.com/user/harview/pkg/ports"
)

// FrameSink is a mock implementation of ports.FrameSink.
type FrameSink struct {
	mu sync.RWMutex

	enabled bool

	BeginErr error
	WriteErr error

	BeginCalled bool
	Width       int
	Height      int
	FPS         float64
	Frames      map[int]image.Image
	Closed      bool
}

// NewFrameSink creates a new mock FrameSink.
func NewFrameSink(enabled bool) *FrameSink {
	return &FrameSink{
		enabled: enabled,
		Frames:  make(map[int]image.Image),
	}
}

func (m *FrameSink) Enabled() bool {
	return m.enabled
}

func (m *FrameSink) Begin(width, height int, fps float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BeginCalled = true
	m.Width, m.Height, m.FPS = width, height, fps
	return m.BeginErr
}

func (m *FrameSink) WriteFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Frames[index] = img
	return nil
}

func (m *FrameSink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

var _ ports.FrameSink = (*FrameSink)(nil)

// FrameCount returns the number of frames written.
func (m *FrameSink) FrameCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Frames)
}
