// Package gocvsource reads frames from files and cameras through OpenCV.
package gocvsource

import (
	"context"
	"fmt"
	"io"
	"os"

	"gocv.io/x/gocv"

	"github.com/user/harview/pkg/ports"
)

// Opener opens files with VideoCaptureFile and cameras with VideoCaptureDevice.
type Opener struct{}

// New creates a new Opener.
func New() *Opener {
	return &Opener{}
}

// Open opens path, or a camera when path is empty or a camera index.
func (o *Opener) Open(ctx context.Context, path string) (ports.FrameSource, error) {
	var (
		capture *gocv.VideoCapture
		err     error
		info    = ports.SourceInfo{Path: path, Camera: -1}
	)

	if index, camera := ports.CameraIndex(path); camera {
		info.Path = ""
		info.Camera = index
		capture, err = gocv.VideoCaptureDevice(index)
	} else {
		if _, statErr := os.Stat(path); statErr != nil {
			return nil, fmt.Errorf("%w: %s", ports.ErrSourceOpen, statErr)
		}
		capture, err = gocv.VideoCaptureFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrSourceOpen, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("%w: %s", ports.ErrSourceOpen, describe(info))
	}

	info.Width = int(capture.Get(gocv.VideoCaptureFrameWidth))
	info.Height = int(capture.Get(gocv.VideoCaptureFrameHeight))
	info.FPS = capture.Get(gocv.VideoCaptureFPS)

	return &Source{capture: capture, mat: gocv.NewMat(), info: info}, nil
}

func describe(info ports.SourceInfo) string {
	if info.Camera >= 0 {
		return fmt.Sprintf("camera %d", info.Camera)
	}
	return info.Path
}

var _ ports.SourceOpener = (*Opener)(nil)

// Source is an opened capture handle.
type Source struct {
	capture *gocv.VideoCapture
	mat     gocv.Mat
	info    ports.SourceInfo
	index   int
	done    bool
}

// Next grabs and decodes one frame. Any read failure ends the stream.
func (s *Source) Next(ctx context.Context) (ports.Frame, error) {
	if s.done {
		return ports.Frame{}, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return ports.Frame{}, err
	}

	if ok := s.capture.Read(&s.mat); !ok || s.mat.Empty() {
		s.done = true
		return ports.Frame{}, io.EOF
	}

	img, err := s.mat.ToImage()
	if err != nil {
		s.done = true
		return ports.Frame{}, io.EOF
	}

	f := ports.Frame{Image: img, Index: s.index}
	if s.info.FPS > 0 {
		f.TimestampMs = int(float64(s.index) * 1000 / s.info.FPS)
	}
	s.index++
	return f, nil
}

// Info returns the source description.
func (s *Source) Info() ports.SourceInfo {
	return s.info
}

// Close releases the capture handle.
func (s *Source) Close() error {
	s.done = true
	s.mat.Close()
	return s.capture.Close()
}

var _ ports.FrameSource = (*Source)(nil)
