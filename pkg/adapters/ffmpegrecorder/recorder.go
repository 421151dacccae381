// Package ffmpegrecorder records annotated frames to an H.264 MP4 file
// through an ffmpeg child process.
package ffmpegrecorder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"strconv"
	"sync"

	"github.com/user/harview/pkg/adapters/ffmpeg"
	"github.com/user/harview/pkg/ports"
)

var (
	// ErrNotStarted is returned when frames are written before Begin.
	ErrNotStarted = errors.New("ffmpegrecorder: recorder not started")

	// ErrFrameSize is returned for frames that differ from the size given to Begin.
	ErrFrameSize = errors.New("ffmpegrecorder: frame size mismatch")
)

// DefaultFPS is used when the source does not report a frame rate.
const DefaultFPS = 25.0

// Options controls encoding.
type Options struct {
	// CRF is the x264 constant rate factor, 0-51. Zero selects 23.
	CRF    int
	Preset string
}

// Recorder implements ports.FrameSink by piping RGBA frames into ffmpeg.
type Recorder struct {
	path string
	opts Options

	mu     sync.Mutex
	width  int
	height int
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	rgba   *image.RGBA
	frames int
}

// New creates a recorder writing to path.
func New(path string, opts Options) *Recorder {
	return &Recorder{path: path, opts: opts}
}

// Args returns the ffmpeg arguments for encoding w×h RGBA frames from stdin into path.
func Args(path string, width, height int, fps float64, opts Options) []string {
	if fps <= 0 {
		fps = DefaultFPS
	}
	crf := opts.CRF
	if crf <= 0 || crf > 51 {
		crf = 23
	}
	preset := opts.Preset
	if preset == "" {
		preset = "fast"
	}

	return []string{
		"-y",
		"-v", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", fmt.Sprintf("%.2f", fps),
		"-i", "pipe:0",
		"-c:v", "libx264",
		"-preset", preset,
		"-crf", strconv.Itoa(crf),
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		path,
	}
}

// Enabled returns true.
func (r *Recorder) Enabled() bool {
	return true
}

// Begin starts ffmpeg.
func (r *Recorder) Begin(width, height int, fps float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd != nil {
		return errors.New("ffmpegrecorder: already started")
	}

	ffmpegPath, err := ffmpeg.Find()
	if err != nil {
		return err
	}

	r.width = width
	r.height = height
	r.frames = 0
	r.rgba = image.NewRGBA(image.Rect(0, 0, width, height))

	cmd := exec.Command(ffmpegPath, Args(r.path, width, height, fps, r.opts)...)
	cmd.Stderr = &r.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	r.cmd = cmd
	r.stdin = stdin
	return nil
}

// WriteFrame sends one frame to ffmpeg.
func (r *Recorder) WriteFrame(index int, img image.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stdin == nil {
		return ErrNotStarted
	}
	b := img.Bounds()
	if b.Dx() != r.width || b.Dy() != r.height {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrFrameSize, b.Dx(), b.Dy(), r.width, r.height)
	}

	draw.Draw(r.rgba, r.rgba.Bounds(), img, b.Min, draw.Src)
	if _, err := r.stdin.Write(r.rgba.Pix); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	r.frames++
	return nil
}

// Frames returns the number of frames written.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Close finishes the file. Closing a recorder that never started is a no-op.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd == nil {
		return nil
	}

	r.stdin.Close()
	r.stdin = nil
	err := r.cmd.Wait()
	r.cmd = nil
	if err != nil {
		return fmt.Errorf("ffmpeg encoding failed: %w\nstderr: %s", err, r.stderr.String())
	}
	return nil
}

var _ ports.FrameSink = (*Recorder)(nil)
