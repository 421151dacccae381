// Package orchestrator runs the display loop: frames in, labelled frames out.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/user/harview/pkg/language"
	"github.com/user/harview/pkg/pipeline"
	"github.com/user/harview/pkg/ports"
	"github.com/user/harview/pkg/window"
)

// Config contains all configuration for a session.
type Config struct {
	// Input
	VideoPath string // Empty or a camera index selects a camera

	// Window
	WindowSize  int
	FrameWidth  int
	FrameHeight int

	// Overlay
	Language language.Language
	FontPath string // Font for Language; empty selects the built-in face
	FontSize float64
	Theme    pipeline.OverlayTheme

	// Controls
	QuitKey   int
	PollWait  time.Duration
	MaxFrames int // Stop after this many frames; 0 reads until the end
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		WindowSize:  16,
		FrameWidth:  550,
		FrameHeight: 400,

		Language: language.Default,
		FontSize: 32,
		Theme:    pipeline.DefaultOverlayTheme(),

		QuitKey:  'q',
		PollWait: time.Millisecond,
	}
}

// State is a phase of the display loop.
type State int

const (
	StateInitializing State = iota
	StateStreaming
	StateDraining
	StateQuittingByUser
	StateExhausted
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateStreaming:
		return "streaming"
	case StateDraining:
		return "draining"
	case StateQuittingByUser:
		return "quitting"
	case StateExhausted:
		return "exhausted"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ExitReason explains why a session ended.
type ExitReason int

const (
	ExitNone ExitReason = iota
	ExitExhausted
	ExitQuit
	ExitCanceled
	ExitError
)

func (r ExitReason) String() string {
	switch r {
	case ExitExhausted:
		return "end of stream"
	case ExitQuit:
		return "quit by user"
	case ExitCanceled:
		return "canceled"
	case ExitError:
		return "error"
	default:
		return "none"
	}
}

// Stages bundles the per-window processing steps.
type Stages struct {
	Classify  pipeline.Stage[pipeline.ClassifyInput, pipeline.Prediction]
	Translate pipeline.Stage[pipeline.TranslateInput, pipeline.TranslateResult]
	Overlay   pipeline.Stage[pipeline.OverlayInput, pipeline.OverlayResult]
}

// Orchestrator owns the source, display and sink for one session at a time.
type Orchestrator struct {
	opener   ports.SourceOpener
	prober   ports.Prober
	stages   Stages
	renderer ports.Renderer
	display  ports.Display
	sink     ports.FrameSink
	logger   ports.Logger

	observe func(State)
}

// New creates a new Orchestrator. prober may be nil.
func New(
	opener ports.SourceOpener,
	prober ports.Prober,
	stages Stages,
	renderer ports.Renderer,
	display ports.Display,
	sink ports.FrameSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		opener:   opener,
		prober:   prober,
		stages:   stages,
		renderer: renderer,
		display:  display,
		sink:     sink,
		logger:   logger,
	}
}

// OnState registers a callback invoked on every state transition.
func (o *Orchestrator) OnState(fn func(State)) {
	o.observe = fn
}

func (o *Orchestrator) enter(s State) {
	o.logger.Debug("Loop state: %s", s)
	if o.observe != nil {
		o.observe(s)
	}
}

// Run executes one session. The display and sink are closed on every
// return path, the source too once it has been opened.
func (o *Orchestrator) Run(ctx context.Context, config Config) (result RunResult, err error) {
	started := time.Now()
	result = RunResult{
		VideoPath:   config.VideoPath,
		Language:    config.Language,
		StartedAt:   started,
		LabelCounts: make(map[string]int),
	}

	o.enter(StateInitializing)
	defer func() {
		if err := o.sink.Close(); err != nil {
			o.logger.Warn("Failed to close recording: %s", err)
		}
		if err := o.display.Close(); err != nil {
			o.logger.Warn("Failed to close display: %s", err)
		}
		result.Duration = time.Since(started)
		o.enter(StateClosed)
	}()

	win, err := window.New[image.Image](config.WindowSize)
	if err != nil {
		result.Exit = ExitError
		return result, fmt.Errorf("create window: %w", err)
	}

	o.probe(config.VideoPath, &result)

	src, err := o.opener.Open(ctx, config.VideoPath)
	if err != nil {
		o.logger.Error("Failed to open video %s: %s", describePath(config.VideoPath), err)
		result.Exit = ExitError
		return result, fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	result.Source = src.Info()
	o.logger.Info("Opened %s (%dx%d, %.1f fps)", describePath(config.VideoPath), result.Source.Width, result.Source.Height, result.Source.FPS)

	font, err := o.renderer.LoadFont(config.FontPath, config.FontSize)
	if err != nil {
		o.logger.Error("Failed to load font %s: %s", config.FontPath, err)
		result.Exit = ExitError
		return result, fmt.Errorf("load font: %w", err)
	}
	fallback, err := o.renderer.LoadFont("", config.FontSize)
	if err != nil {
		result.Exit = ExitError
		return result, fmt.Errorf("load built-in font: %w", err)
	}

	recording := o.sink.Enabled()
	if recording {
		if err := o.sink.Begin(config.FrameWidth, config.FrameHeight, result.Source.FPS); err != nil {
			o.logger.Warn("Recording disabled: %s", err)
			recording = false
		}
	}

	o.enter(StateStreaming)
	for {
		if ctx.Err() != nil {
			o.enter(StateDraining)
			result.Exit = ExitCanceled
			return result, nil
		}

		frame, err := src.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				o.enter(StateDraining)
				result.Exit = ExitCanceled
				return result, nil
			}
			if !errors.Is(err, io.EOF) {
				o.logger.Debug("Read failed, treating as end of stream: %s", err)
			}
			o.enter(StateExhausted)
			result.Exit = ExitExhausted
			o.logger.Info("Video finished after %d frames", result.FramesRead)
			return result, nil
		}
		result.FramesRead++

		current := o.renderer.ResizeImage(frame.Image, config.FrameWidth, config.FrameHeight)
		win.Push(current)

		if win.Ready() {
			shown, err := o.annotate(ctx, config, win.Snapshot(), current, font, fallback, &result)
			if err != nil {
				o.enter(StateDraining)
				result.Exit = ExitError
				return result, err
			}

			if err := o.display.Show(shown); err != nil {
				o.logger.Error("Failed to display frame %d: %s", frame.Index, err)
				o.enter(StateDraining)
				result.Exit = ExitError
				return result, fmt.Errorf("display: %w", err)
			}
			result.FramesDisplayed++

			if recording {
				if err := o.sink.WriteFrame(frame.Index, shown); err != nil {
					o.logger.Warn("Recording stopped: %s", err)
					recording = false
				} else {
					result.FramesRecorded++
				}
			}
		}

		if key := o.display.PollKey(config.PollWait); key != ports.NoKey && key == config.QuitKey {
			o.enter(StateQuittingByUser)
			result.Exit = ExitQuit
			o.logger.Info("Stopped by user after %d frames", result.FramesRead)
			return result, nil
		}

		if config.MaxFrames > 0 && result.FramesRead >= config.MaxFrames {
			o.enter(StateExhausted)
			result.Exit = ExitExhausted
			return result, nil
		}
	}
}

// annotate classifies the window and draws the localized label on current.
func (o *Orchestrator) annotate(
	ctx context.Context,
	config Config,
	frames []image.Image,
	current image.Image,
	font, fallback ports.Font,
	result *RunResult,
) (image.Image, error) {
	prediction, err := o.stages.Classify.Execute(ctx, pipeline.ClassifyInput{Frames: frames})
	if err != nil {
		o.logger.Error("Failed to classify frames: %s", err)
		return nil, fmt.Errorf("classify stage: %w", err)
	}
	result.Inferences++
	result.LabelCounts[prediction.Label]++
	result.LastPrediction = prediction

	translated, err := o.stages.Translate.Execute(ctx, pipeline.TranslateInput{
		Label:    prediction.Label,
		Language: config.Language,
	})
	if err != nil {
		o.logger.Warn("Translation failed: %s", err)
		translated = pipeline.TranslateResult{Text: prediction.Label, Fallback: true}
	}
	if translated.Fallback {
		result.TranslationFallbacks++
	}

	overlay, err := o.stages.Overlay.Execute(ctx, pipeline.OverlayInput{
		Frame:    current,
		Text:     translated.Text,
		Original: prediction.Label,
		Font:     font,
		Fallback: fallback,
		Theme:    config.Theme,
	})
	if err != nil {
		o.logger.Error("Failed to draw label: %s", err)
		return nil, fmt.Errorf("overlay stage: %w", err)
	}
	if overlay.Fallback {
		result.OverlayFallbacks++
	}
	result.LastText = overlay.Text

	return overlay.Image, nil
}

func (o *Orchestrator) probe(path string, result *RunResult) {
	if o.prober == nil {
		return
	}
	if _, camera := ports.CameraIndex(path); camera {
		return
	}
	info, err := o.prober.Probe(path)
	if err != nil {
		o.logger.Debug("Probe skipped: %s", err)
		return
	}
	result.Media = &info
	o.logger.Info("Container %s, codec %s, %dx%d, %d frames", info.Container, info.Codec, info.Width, info.Height, info.FrameCount)
}

func describePath(path string) string {
	if index, camera := ports.CameraIndex(path); camera {
		return fmt.Sprintf("camera %d", index)
	}
	return path
}

// RunResult contains the results of a session for summary generation.
type RunResult struct {
	VideoPath string
	Language  language.Language
	Source    ports.SourceInfo
	Media     *ports.MediaInfo // nil when the container was not probed

	FramesRead      int
	Inferences      int
	FramesDisplayed int
	FramesRecorded  int

	TranslationFallbacks int
	OverlayFallbacks     int

	LastPrediction pipeline.Prediction
	LastText       string // Text drawn on the last displayed frame
	LabelCounts    map[string]int

	Exit      ExitReason
	StartedAt time.Time
	Duration  time.Duration
}
