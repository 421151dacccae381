package orchestrator

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/user/harview/pkg/language"
	"github.com/user/harview/pkg/mocks"
	"github.com/user/harview/pkg/pipeline"
	"github.com/user/harview/pkg/ports"
	"github.com/user/harview/pkg/stages/classify"
	"github.com/user/harview/pkg/stages/overlay"
	"github.com/user/harview/pkg/stages/translate"
	"github.com/user/harview/pkg/tensor"
	"github.com/user/harview/pkg/vocabulary"
)

type fixture struct {
	source     *mocks.FrameSource
	opener     *mocks.SourceOpener
	prober     *mocks.Prober
	net        *mocks.Inferencer
	translator *mocks.Translator
	renderer   *mocks.Renderer
	display    *mocks.Display
	sink       *mocks.FrameSink
	logger     *mocks.Logger
}

func newFixture(t *testing.T, frames int) *fixture {
	t.Helper()
	source := mocks.NewFrameSource(frames, 64, 48)
	return &fixture{
		source:     source,
		opener:     &mocks.SourceOpener{Source: source},
		prober:     &mocks.Prober{Info: ports.MediaInfo{Container: "mp4", Codec: "h264", Width: 64, Height: 48, FrameCount: frames}},
		net:        &mocks.Inferencer{Scores: []float32{0.1, 0.7, 0.2}},
		translator: &mocks.Translator{},
		renderer:   &mocks.Renderer{},
		display:    &mocks.Display{},
		sink:       mocks.NewFrameSink(true),
		logger:     mocks.NewLogger(),
	}
}

func (f *fixture) orchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	vocab, err := vocabulary.New([]string{"abseiling", "yoga", "surfing water"})
	if err != nil {
		t.Fatal(err)
	}
	stages := Stages{
		Classify:  classify.NewStage(f.net, vocab, tensor.DefaultBlobParams(), f.logger),
		Translate: translate.NewStage(f.translator, time.Second, f.logger),
		Overlay:   overlay.NewStage(f.renderer, f.logger),
	}
	return New(f.opener, f.prober, stages, f.renderer, f.display, f.sink, f.logger)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.VideoPath = "clip.mp4"
	return cfg
}

func TestOrchestrator_Run(t *testing.T) {
	f := newFixture(t, 20)
	o := f.orchestrator(t)

	result, err := o.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.FramesRead != 20 {
		t.Errorf("expected 20 frames read, got %d", result.FramesRead)
	}
	// Windows complete at frames 16..20.
	if f.net.CallCount() != 5 || result.Inferences != 5 {
		t.Errorf("expected 5 classifier calls, got %d (result %d)", f.net.CallCount(), result.Inferences)
	}
	if f.display.ShownCount() != 5 || result.FramesDisplayed != 5 {
		t.Errorf("expected 5 displayed frames, got %d (result %d)", f.display.ShownCount(), result.FramesDisplayed)
	}
	for i, c := range f.renderer.Canvases {
		if len(c.Texts) != 1 || c.Texts[0].Text == "" {
			t.Errorf("frame %d: expected non-empty overlay text, got %+v", i, c.Texts)
		}
	}

	if result.Exit != ExitExhausted {
		t.Errorf("expected exhausted, got %s", result.Exit)
	}
	if result.LastPrediction.Label != "yoga" || result.LabelCounts["yoga"] != 5 {
		t.Errorf("unexpected prediction %+v counts %v", result.LastPrediction, result.LabelCounts)
	}
	if result.LastText != "yoga" {
		t.Errorf("English overlay should show the label, got %q", result.LastText)
	}
	if f.translator.CallCount() != 0 {
		t.Errorf("English must not call the translator, got %d calls", f.translator.CallCount())
	}

	if f.prober.Calls != 1 || result.Media == nil || result.Media.Codec != "h264" {
		t.Errorf("expected probe result, got %+v", result.Media)
	}
	if len(f.net.Calls) == 0 {
		t.Fatal("classifier never ran")
	}
	if f.net.Calls[0].Shape[2] != 16 {
		t.Errorf("expected 16 frames per batch, got shape %v", f.net.Calls[0].Shape)
	}

	if !f.source.Closed || !f.display.Closed || !f.sink.Closed {
		t.Errorf("resources not released: source=%v display=%v sink=%v", f.source.Closed, f.display.Closed, f.sink.Closed)
	}
	if f.sink.FrameCount() != 5 || f.sink.Width != 550 || f.sink.Height != 400 {
		t.Errorf("unexpected recording: %d frames at %dx%d", f.sink.FrameCount(), f.sink.Width, f.sink.Height)
	}
	for _, idx := range []int{15, 16, 17, 18, 19} {
		if _, ok := f.sink.Frames[idx]; !ok {
			t.Errorf("frame %d not recorded", idx)
		}
	}
}

func TestOrchestrator_Run_ShortVideoShowsNothing(t *testing.T) {
	f := newFixture(t, 15)
	o := f.orchestrator(t)

	result, err := o.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.net.CallCount() != 0 || f.display.ShownCount() != 0 {
		t.Errorf("window never filled: expected no inference or display, got %d/%d", f.net.CallCount(), f.display.ShownCount())
	}
	if f.display.Polls != 15 {
		t.Errorf("expected a key poll per frame, got %d", f.display.Polls)
	}
	if result.Exit != ExitExhausted {
		t.Errorf("expected exhausted, got %s", result.Exit)
	}
}

func TestOrchestrator_Run_MissingVideo(t *testing.T) {
	f := newFixture(t, 20)
	f.opener.Source = nil
	f.prober.Err = errors.New("open file: no such file")
	o := f.orchestrator(t)

	result, err := o.Run(context.Background(), testConfig())
	if !errors.Is(err, ports.ErrSourceOpen) {
		t.Fatalf("expected ErrSourceOpen, got %v", err)
	}
	if len(f.logger.Entries(ports.LevelError)) == 0 {
		t.Error("expected an error to be logged")
	}
	if f.net.CallCount() != 0 || f.display.ShownCount() != 0 {
		t.Errorf("expected no classifier calls and no display, got %d/%d", f.net.CallCount(), f.display.ShownCount())
	}
	if result.Exit != ExitError {
		t.Errorf("expected error exit, got %s", result.Exit)
	}
	if !f.display.Closed {
		t.Error("display must be released on failure")
	}
}

func TestOrchestrator_Run_MissingFont(t *testing.T) {
	f := newFixture(t, 20)
	f.renderer.LoadFontFunc = func(path string, size float64) (ports.Font, error) {
		if path != "" {
			return nil, ports.ErrFontNotFound
		}
		return &mocks.Font{FontName: "builtin"}, nil
	}
	o := f.orchestrator(t)

	cfg := testConfig()
	cfg.FontPath = "fonts/Tunga.ttf"

	_, err := o.Run(context.Background(), cfg)
	if !errors.Is(err, ports.ErrFontNotFound) {
		t.Fatalf("expected ErrFontNotFound, got %v", err)
	}
	if f.source.Served() != 0 {
		t.Errorf("no frame should be read before fonts load, read %d", f.source.Served())
	}
	if !f.source.Closed {
		t.Error("source must be released on failure")
	}
}

func TestOrchestrator_Run_QuitKey(t *testing.T) {
	f := newFixture(t, 100)
	keys := make([]int, 17)
	for i := range keys {
		keys[i] = ports.NoKey
	}
	f.display.Keys = append(keys, 'q')
	o := f.orchestrator(t)

	var states []State
	o.OnState(func(s State) { states = append(states, s) })

	result, err := o.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Exit != ExitQuit {
		t.Errorf("expected quit, got %s", result.Exit)
	}
	if result.FramesRead != 18 {
		t.Errorf("expected to stop after 18 frames, got %d", result.FramesRead)
	}
	if result.FramesDisplayed != 3 {
		t.Errorf("expected 3 displayed frames, got %d", result.FramesDisplayed)
	}

	want := []State{StateInitializing, StateStreaming, StateQuittingByUser, StateClosed}
	if len(states) != len(want) {
		t.Fatalf("states = %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("state %d = %s, want %s", i, states[i], want[i])
		}
	}
	if !f.source.Closed {
		t.Error("source must be released on quit")
	}
}

func TestOrchestrator_Run_Canceled(t *testing.T) {
	f := newFixture(t, 1000)
	ctx, cancel := context.WithCancel(context.Background())
	f.display.ShowFunc = func(img image.Image) error {
		cancel()
		return nil
	}
	o := f.orchestrator(t)

	result, err := o.Run(ctx, testConfig())
	if err != nil {
		t.Fatalf("cancellation is not an error: %v", err)
	}
	if result.Exit != ExitCanceled {
		t.Errorf("expected canceled, got %s", result.Exit)
	}
	if result.FramesDisplayed != 1 {
		t.Errorf("expected 1 displayed frame, got %d", result.FramesDisplayed)
	}
	if !f.source.Closed || !f.display.Closed {
		t.Error("resources must be released on cancel")
	}
}

func TestOrchestrator_Run_KannadaFallbacks(t *testing.T) {
	f := newFixture(t, 17)
	f.translator.TranslateFunc = func(ctx context.Context, text, target string) (string, error) {
		return "", errors.New("offline")
	}
	o := f.orchestrator(t)

	cfg := testConfig()
	cfg.Language = language.Kannada

	result, err := o.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("translation failure must not stop the loop: %v", err)
	}
	if result.FramesDisplayed != 2 || result.TranslationFallbacks != 2 {
		t.Errorf("expected 2 displayed frames with fallbacks, got %d/%d", result.FramesDisplayed, result.TranslationFallbacks)
	}
	if result.LastText != "yoga" {
		t.Errorf("expected the English label, got %q", result.LastText)
	}
	if len(f.logger.Entries(ports.LevelWarn)) < 2 {
		t.Error("expected translation failures to be logged")
	}
}

func TestOrchestrator_Run_UnencodableTranslation(t *testing.T) {
	f := newFixture(t, 16)
	f.translator.TranslateFunc = func(ctx context.Context, text, target string) (string, error) {
		return "ಯೋಗ", nil
	}
	f.renderer.LoadFontFunc = func(path string, size float64) (ports.Font, error) {
		if path == "" {
			return &mocks.Font{FontName: "builtin"}, nil
		}
		return &mocks.Font{FontName: path, Uncovered: "ಯೋಗ"}, nil
	}
	o := f.orchestrator(t)

	cfg := testConfig()
	cfg.Language = language.Kannada
	cfg.FontPath = "latin.ttf"

	result, err := o.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OverlayFallbacks != 1 || result.LastText != "yoga" {
		t.Errorf("expected overlay fallback to the original label, got %d %q", result.OverlayFallbacks, result.LastText)
	}
	if f.display.ShownCount() != 1 {
		t.Errorf("frame must still be displayed, got %d", f.display.ShownCount())
	}
}

func TestOrchestrator_Run_ClassifyErrorIsFatal(t *testing.T) {
	f := newFixture(t, 40)
	f.net.Scores = []float32{1, 2} // vocabulary has three labels
	o := f.orchestrator(t)

	result, err := o.Run(context.Background(), testConfig())
	if !errors.Is(err, classify.ErrScoreCount) {
		t.Fatalf("expected ErrScoreCount, got %v", err)
	}
	if result.Exit != ExitError || result.FramesRead != 16 {
		t.Errorf("expected error exit at frame 16, got %s after %d", result.Exit, result.FramesRead)
	}
	if !f.source.Closed || !f.display.Closed || !f.sink.Closed {
		t.Error("resources must be released on a fatal error")
	}
}

func TestOrchestrator_Run_SinkBeginFailure(t *testing.T) {
	f := newFixture(t, 16)
	f.sink.BeginErr = errors.New("ffmpeg not found")
	o := f.orchestrator(t)

	result, err := o.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("recording failure must not stop the session: %v", err)
	}
	if result.FramesDisplayed != 1 || result.FramesRecorded != 0 {
		t.Errorf("unexpected counts displayed=%d recorded=%d", result.FramesDisplayed, result.FramesRecorded)
	}
}

func TestOrchestrator_Run_CameraSkipsProbe(t *testing.T) {
	f := newFixture(t, 3)
	o := f.orchestrator(t)

	cfg := testConfig()
	cfg.VideoPath = ""

	if _, err := o.Run(context.Background(), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.prober.Calls != 0 {
		t.Errorf("camera input must not be probed")
	}
	if f.opener.OpenedPaths[0] != "" {
		t.Errorf("expected camera path, got %q", f.opener.OpenedPaths[0])
	}
}

func TestOrchestrator_Run_MaxFrames(t *testing.T) {
	f := newFixture(t, 100)
	o := f.orchestrator(t)

	cfg := testConfig()
	cfg.MaxFrames = 20

	result, err := o.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if result.FramesRead != 20 || result.Inferences != 5 {
		t.Errorf("expected 20 frames and 5 inferences, got %d/%d", result.FramesRead, result.Inferences)
	}
}

func TestOrchestrator_Run_InvalidWindow(t *testing.T) {
	f := newFixture(t, 5)
	o := f.orchestrator(t)

	cfg := testConfig()
	cfg.WindowSize = 0

	if _, err := o.Run(context.Background(), cfg); err == nil {
		t.Fatal("expected error for zero window size")
	}
	if len(f.opener.OpenedPaths) != 0 {
		t.Error("source must not be opened with an invalid window")
	}
}

func TestStageFuncOverride(t *testing.T) {
	f := newFixture(t, 16)
	o := f.orchestrator(t)
	o.stages.Translate = pipeline.StageFunc[pipeline.TranslateInput, pipeline.TranslateResult](
		func(ctx context.Context, in pipeline.TranslateInput) (pipeline.TranslateResult, error) {
			return pipeline.TranslateResult{}, errors.New("broken stage")
		},
	)

	result, err := o.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("translate errors are masked: %v", err)
	}
	if result.TranslationFallbacks != 1 || result.LastText != "yoga" {
		t.Errorf("expected masked fallback, got %d %q", result.TranslationFallbacks, result.LastText)
	}
}
