package ports

import (
	"context"
	"errors"
	"image"
	"strconv"
	"strings"
)

// ErrSourceOpen is returned when a video file or camera cannot be opened.
var ErrSourceOpen = errors.New("ports: cannot open video source")

// Frame is a single decoded video frame.
type Frame struct {
	Image       image.Image
	Index       int // 0-based position in the stream
	TimestampMs int // Presentation time, 0 when the source has no clock
}

// SourceInfo describes an opened video source.
type SourceInfo struct {
	Path   string  // Empty for cameras
	Camera int     // Camera index, -1 for files
	Width  int     // Native frame width, 0 if unknown
	Height int     // Native frame height, 0 if unknown
	FPS    float64 // 0 if unknown
}

// FrameSource yields frames from a file or camera until the stream ends.
type FrameSource interface {
	// Next returns the next frame, or io.EOF when the stream is exhausted.
	// Read failures are reported as io.EOF; sources never retry.
	Next(ctx context.Context) (Frame, error)

	// Info returns information about the opened source.
	Info() SourceInfo

	// Close releases the underlying device or file handle.
	Close() error
}

// SourceOpener opens frame sources.
type SourceOpener interface {
	// Open opens the video at path. An empty path selects the default camera.
	// Failures wrap ErrSourceOpen.
	Open(ctx context.Context, path string) (FrameSource, error)
}

// MediaInfo is container metadata read before a file is opened for decoding.
type MediaInfo struct {
	Container  string
	Codec      string
	Width      int
	Height     int
	FrameCount int
	DurationMs int
}

// Prober reads container metadata without decoding frames.
type Prober interface {
	// Probe returns metadata for path. Unsupported containers return an error.
	Probe(path string) (MediaInfo, error)
}

// CameraIndex reports whether path selects a camera rather than a file.
// An empty path is camera 0; a decimal integer is that camera index.
func CameraIndex(path string) (int, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return 0, true
	}
	n, err := strconv.Atoi(path)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
