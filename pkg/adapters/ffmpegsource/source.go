// Package ffmpegsource decodes video files by streaming raw RGB frames
// from an ffmpeg child process.
package ffmpegsource

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/user/harview/pkg/adapters/ffmpeg"
	"github.com/user/harview/pkg/ports"
)

// Opener opens files through ffmpeg, scaled to Width×Height.
type Opener struct {
	Width  int
	Height int
	// FPS is reported in SourceInfo; ffmpeg does not tell us over the pipe.
	FPS float64
}

// New creates an opener producing frames of the given size.
func New(width, height int, fps float64) *Opener {
	return &Opener{Width: width, Height: height, FPS: fps}
}

// Args returns the ffmpeg arguments for decoding path into rgb24 frames on stdout.
func Args(path string, width, height int) []string {
	return []string{
		"-v", "error",
		"-nostdin",
		"-i", path,
		"-an",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"pipe:1",
	}
}

// Open starts ffmpeg for path. Cameras are not supported.
func (o *Opener) Open(ctx context.Context, path string) (ports.FrameSource, error) {
	if _, camera := ports.CameraIndex(path); camera {
		return nil, fmt.Errorf("%w: ffmpeg backend cannot capture camera %q", ports.ErrSourceOpen, path)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid frame size %dx%d", ports.ErrSourceOpen, o.Width, o.Height)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrSourceOpen, err)
	}

	ffmpegPath, err := ffmpeg.Find()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrSourceOpen, err)
	}

	s := &Source{
		info:  ports.SourceInfo{Path: path, Camera: -1, Width: o.Width, Height: o.Height, FPS: o.FPS},
		frame: make([]byte, o.Width*o.Height*3),
	}
	s.cmd = exec.CommandContext(ctx, ffmpegPath, Args(path, o.Width, o.Height)...)
	s.cmd.Stderr = &s.stderr

	stdout, err := s.cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdout pipe: %s", ports.ErrSourceOpen, err)
	}
	s.stdout = stdout

	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: start ffmpeg: %s", ports.ErrSourceOpen, err)
	}
	return s, nil
}

var _ ports.SourceOpener = (*Opener)(nil)

// Source reads fixed-size rgb24 frames from ffmpeg's stdout.
type Source struct {
	info ports.SourceInfo

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr stderrBuffer
	frame  []byte
	index  int
	done   bool
}

// Next reads one frame. A short read or a closed pipe ends the stream.
func (s *Source) Next(ctx context.Context) (ports.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return ports.Frame{}, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return ports.Frame{}, err
	}

	if _, err := io.ReadFull(s.stdout, s.frame); err != nil {
		s.done = true
		return ports.Frame{}, io.EOF
	}

	img := rgbToRGBA(s.frame, s.info.Width, s.info.Height)
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

// Close stops ffmpeg if it is still running.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.done = true
	if s.cmd == nil || s.cmd.Process == nil {
		return nil
	}
	s.stdout.Close()
	s.cmd.Process.Kill()
	s.cmd.Wait()
	s.cmd = nil
	return nil
}

// Stderr returns what ffmpeg reported so far. Safe to call while ffmpeg runs.
func (s *Source) Stderr() string {
	return s.stderr.String()
}

// stderrBuffer is written by exec's copy goroutine and read by Stderr.
type stderrBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *stderrBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *stderrBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func rgbToRGBA(rgb []byte, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, j := 0, 0; i+2 < len(rgb); i, j = i+3, j+4 {
		img.Pix[j] = rgb[i]
		img.Pix[j+1] = rgb[i+1]
		img.Pix[j+2] = rgb[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

var _ ports.FrameSource = (*Source)(nil)
