// Package filesink writes annotated frames as a numbered PNG sequence.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/harview/pkg/ports"
)

// Sink saves each annotated frame under baseDir.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
	written  int
}

// New creates a new Sink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// Begin creates the output directory.
func (s *Sink) Begin(width, height int, fps float64) error {
	if err := s.fs.MkdirAll(s.baseDir); err != nil {
		return fmt.Errorf("create frame directory: %w", err)
	}
	return nil
}

// WriteFrame saves img as frame-NNNNN.png.
func (s *Sink) WriteFrame(index int, img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", index, err)
	}
	if err := s.fs.WriteFile(FramePath(s.baseDir, index), data); err != nil {
		return err
	}
	s.written++
	return nil
}

// Written returns the number of frames saved.
func (s *Sink) Written() int {
	return s.written
}

// Close does nothing; every frame is written synchronously.
func (s *Sink) Close() error {
	return nil
}

// FramePath returns where frame index is stored.
func FramePath(baseDir string, index int) string {
	return filepath.Join(baseDir, fmt.Sprintf("frame-%05d.png", index))
}

var _ ports.FrameSink = (*Sink)(nil)
