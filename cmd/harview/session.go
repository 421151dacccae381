package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/ideamans/go-l10n"

	"github.com/user/harview/pkg/adapters/cloudtranslate"
	"github.com/user/harview/pkg/adapters/ffmpeg"
	"github.com/user/harview/pkg/adapters/ffmpegrecorder"
	"github.com/user/harview/pkg/adapters/ffmpegsource"
	"github.com/user/harview/pkg/adapters/filesink"
	"github.com/user/harview/pkg/adapters/ggrenderer"
	"github.com/user/harview/pkg/adapters/gocvdisplay"
	"github.com/user/harview/pkg/adapters/gocvnet"
	"github.com/user/harview/pkg/adapters/gocvsource"
	"github.com/user/harview/pkg/adapters/headless"
	"github.com/user/harview/pkg/adapters/multisink"
	"github.com/user/harview/pkg/adapters/osfilesystem"
	"github.com/user/harview/pkg/adapters/probe"
	"github.com/user/harview/pkg/adapters/webtranslate"
	"github.com/user/harview/pkg/config"
	"github.com/user/harview/pkg/gui"
	"github.com/user/harview/pkg/language"
	"github.com/user/harview/pkg/orchestrator"
	"github.com/user/harview/pkg/ports"
	"github.com/user/harview/pkg/stages/classify"
	"github.com/user/harview/pkg/stages/overlay"
	"github.com/user/harview/pkg/stages/translate"
	"github.com/user/harview/pkg/summarizer"
	"github.com/user/harview/pkg/translator"
	"github.com/user/harview/pkg/vocabulary"
)

// session holds the handles that outlive a single run: the model, the
// vocabulary and the translation backend.
type session struct {
	cfg      config.Config
	log      ports.Logger
	fs       *osfilesystem.FileSystem
	renderer *ggrenderer.Renderer
	prober   *probe.Prober

	net        *gocvnet.Net
	classify   *classify.Stage
	translate  *translate.Stage
	overlay    *overlay.Stage
	cache      *translator.Cache
	closeTrans func()
}

func openSession(ctx context.Context, cfg config.Config, log ports.Logger) (*session, error) {
	log.Info("Starting session")

	if cfg.FFmpegPath != "" {
		ffmpeg.SetPath(cfg.FFmpegPath)
	}

	s := &session{
		cfg:      cfg,
		log:      log,
		fs:       osfilesystem.New(),
		renderer: ggrenderer.New(),
		prober:   probe.New(),
	}

	if err := checkAssets(s.fs, cfg, log); err != nil {
		return nil, err
	}

	vocab, err := vocabulary.Load(s.fs, cfg.Labels)
	if err != nil {
		return nil, err
	}
	log.Info("Loaded %d labels from %s", vocab.Len(), cfg.Labels)

	s.net, err = gocvnet.Load(cfg.Model, gocvnet.Options{CUDA: cfg.CUDA})
	if err != nil {
		return nil, err
	}
	log.Info("Loaded model %s", cfg.Model)

	backend, closeTrans, err := newTranslator(ctx, cfg)
	if err != nil {
		s.net.Close()
		return nil, err
	}
	s.closeTrans = closeTrans
	if c, ok := backend.(*translator.Cache); ok {
		s.cache = c
	}
	log.Info("Translating with %s backend", cfg.Translation.Backend)

	s.classify = classify.NewStage(s.net, vocab, cfg.BlobParams(), log)
	s.translate = translate.NewStage(backend, cfg.TranslationTimeout(), log)
	s.overlay = overlay.NewStage(s.renderer, log)

	return s, nil
}

// errMissingAsset marks a model or label file that is not on disk.
var errMissingAsset = errors.New("required file not found")

// checkAssets fails when the model or the labels are missing. Missing fonts
// only warn, since a session in another language never loads them.
func checkAssets(fs ports.FileSystem, cfg config.Config, log ports.Logger) error {
	var errs []error
	for _, path := range []string{cfg.Model, cfg.Labels} {
		ok, err := fs.Exists(path)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("check %s: %w", path, err))
		case !ok:
			errs = append(errs, fmt.Errorf("%w: %s", errMissingAsset, path))
		}
	}

	codes := make([]string, 0, len(cfg.Fonts))
	for code := range cfg.Fonts {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		path := cfg.Fonts[code]
		if path == "" {
			continue
		}
		if ok, err := fs.Exists(path); err == nil && !ok {
			log.Warn("Font for %s not found at %s", code, path)
		}
	}
	return errors.Join(errs...)
}

// Close releases the model and the translation backend.
func (s *session) Close() error {
	if s.cache != nil {
		hits, misses := s.cache.Stats()
		s.log.Debug("Translation cache: %d hits, %d misses", hits, misses)
	}
	s.closeTrans()
	if err := s.net.Close(); err != nil {
		s.log.Warn("Failed to close model: %s", err)
		return err
	}
	return nil
}

// Run plays video once with labels in lang. Sessions must not run concurrently.
func (s *session) Run(ctx context.Context, video string, lang language.Language) (orchestrator.RunResult, error) {
	cfg := s.cfg
	cfg.Video = video
	cfg.Language = lang.Code()

	orch := orchestrator.New(
		s.opener(video),
		s.prober,
		orchestrator.Stages{
			Classify:  s.classify,
			Translate: s.translate,
			Overlay:   s.overlay,
		},
		s.renderer,
		s.display(),
		s.sink(),
		s.log,
	)
	orch.OnState(func(st orchestrator.State) {
		s.log.Debug("Loop state: %s", st)
	})

	result, err := orch.Run(ctx, cfg.ToOrchestratorConfig())
	s.log.Info("Session ended: %s", result.Exit)

	if cfg.Summary != "" {
		s.writeSummary(cfg, result)
	}
	return result, err
}

func (s *session) opener(video string) ports.SourceOpener {
	if s.cfg.Source != config.SourceFFmpeg {
		return gocvsource.New()
	}
	fps := float64(ffmpegrecorder.DefaultFPS)
	if info, err := s.prober.Probe(video); err == nil && info.DurationMs > 0 && info.FrameCount > 0 {
		fps = float64(info.FrameCount) * 1000 / float64(info.DurationMs)
	}
	return ffmpegsource.New(s.cfg.Window.FrameWidth, s.cfg.Window.FrameHeight, fps)
}

func (s *session) display() ports.Display {
	if s.cfg.Headless {
		return headless.New()
	}
	return gocvdisplay.New(l10n.T(gui.Title))
}

func (s *session) sink() ports.FrameSink {
	var sinks []ports.FrameSink
	if s.cfg.Record != "" {
		s.log.Info("Recording to %s", s.cfg.Record)
		sinks = append(sinks, ffmpegrecorder.New(s.cfg.Record, ffmpegrecorder.Options{}))
	}
	if s.cfg.FramesDir != "" {
		sinks = append(sinks, filesink.New(s.cfg.FramesDir, s.fs, s.renderer))
	}
	return multisink.New(sinks...)
}

func (s *session) writeSummary(cfg config.Config, result orchestrator.RunResult) {
	settings := summarizer.Settings{
		WindowSize:  cfg.Window.Size,
		FrameWidth:  cfg.Window.FrameWidth,
		FrameHeight: cfg.Window.FrameHeight,
		Translation: cfg.Translation.Backend,
		Source:      cfg.Source,
		Record:      cfg.Record,
	}
	if cfg.Record != "" {
		if info, err := os.Stat(cfg.Record); err == nil {
			settings.RecordBytes = info.Size()
		}
	}

	summary := summarizer.NewBuilder().
		WithResult(result).
		WithSettings(settings).
		Build()

	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	)
	if err := summarizer.NewWriter(formatter, s.fs).Write(cfg.Summary, summary); err != nil {
		s.log.Warn("Failed to write summary: %s", err)
		return
	}
	s.log.Info("Summary saved to %s", cfg.Summary)
}

// newTranslator builds the configured backend, wrapped in a cache when enabled.
// The returned func releases the backend.
func newTranslator(ctx context.Context, cfg config.Config) (ports.Translator, func(), error) {
	var backend ports.Translator
	closeFn := func() {}

	switch cfg.Translation.Backend {
	case config.BackendNone:
		return translator.None{}, closeFn, nil
	case config.BackendCloud:
		client, err := cloudtranslate.New(ctx, cfg.Translation.APIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("cloud translation: %w", err)
		}
		backend = client
		closeFn = func() { client.Close() }
	default:
		backend = webtranslate.New()
	}

	if cfg.Translation.Cache {
		backend = translator.NewCache(backend)
	}
	return backend, closeFn, nil
}
