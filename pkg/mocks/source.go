package mocks

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/user/harview/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource that yields
// a fixed number of synthetic frames.
type FrameSource struct {
	mu sync.Mutex

	Frames     int
	Width      int
	Height     int
	NextFunc   func(ctx context.Context, index int) (ports.Frame, error)
	SourceInfo ports.SourceInfo

	served int
	Closed bool
}

// NewFrameSource creates a source that yields n frames of size w×h.
func NewFrameSource(n, w, h int) *FrameSource {
	return &FrameSource{Frames: n, Width: w, Height: h, SourceInfo: ports.SourceInfo{Camera: -1, Width: w, Height: h, FPS: 25}}
}

func (m *FrameSource) Next(ctx context.Context) (ports.Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.NextFunc != nil {
		f, err := m.NextFunc(ctx, m.served)
		m.served++
		return f, err
	}
	if m.served >= m.Frames {
		return ports.Frame{}, io.EOF
	}

	img := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	shade := uint8(m.served * 10)
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = shade, shade, shade, 255
	}
	f := ports.Frame{Image: img, Index: m.served, TimestampMs: m.served * 40}
	m.served++
	return f, nil
}

func (m *FrameSource) Info() ports.SourceInfo {
	return m.SourceInfo
}

func (m *FrameSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// Served returns how many frames were requested.
func (m *FrameSource) Served() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.served
}

var _ ports.FrameSource = (*FrameSource)(nil)

// SourceOpener is a mock implementation of ports.SourceOpener.
type SourceOpener struct {
	Source   *FrameSource
	OpenFunc func(ctx context.Context, path string) (ports.FrameSource, error)

	OpenedPaths []string
}

func (m *SourceOpener) Open(ctx context.Context, path string) (ports.FrameSource, error) {
	m.OpenedPaths = append(m.OpenedPaths, path)
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, path)
	}
	if m.Source == nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrSourceOpen, path)
	}
	return m.Source, nil
}

var _ ports.SourceOpener = (*SourceOpener)(nil)

// Prober is a mock implementation of ports.Prober.
type Prober struct {
	Info  ports.MediaInfo
	Err   error
	Calls int
}

func (m *Prober) Probe(path string) (ports.MediaInfo, error) {
	m.Calls++
	return m.Info, m.Err
}

var _ ports.Prober = (*Prober)(nil)

// Solid returns a w×h image filled with c.
func Solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	r, g, b, a := c.RGBA()
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)
	}
	return img
}
