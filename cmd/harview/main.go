// Package main provides the CLI entry point for harview.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/harview/pkg/adapters/logger"
	"github.com/user/harview/pkg/adapters/osfilesystem"
	"github.com/user/harview/pkg/config"
	"github.com/user/harview/pkg/gui"
	"github.com/user/harview/pkg/language"
	"github.com/user/harview/pkg/pipeline"
	"github.com/user/harview/pkg/ports"
	"github.com/user/harview/pkg/stages/translate"
	"github.com/user/harview/pkg/vocabulary"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:           "harview",
		Usage:          l10n.T("Recognize human activities in videos and show the labels in your language"),
		Version:        version,
		DefaultCommand: "gui",
		Commands: []*cli.Command{
			{
				Name:   "gui",
				Usage:  l10n.T("Choose a video and language in a window, then start recognition"),
				Flags:  sessionFlags(),
				Action: guiAction,
			},
			{
				Name:   "run",
				Usage:  l10n.T("Run recognition on a video file or camera"),
				Flags:  sessionFlags(),
				Action: runAction,
			},
			{
				Name:   "labels",
				Usage:  l10n.T("Print the activity labels the model predicts"),
				Flags:  labelsFlags(),
				Action: labelsAction,
			},
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, l10n.F("harview version %s", version))
					return nil
				},
			},
		},
	}
}

// Flag categories, translated when the flags are built.
const (
	catInput       = "Input"
	catModel       = "Model"
	catOverlay     = "Overlay"
	catTranslation = "Translation"
	catOutput      = "Output"
	catLogging     = "Logging"
)

func sessionFlags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file"), EnvVars: []string{"HARVIEW_CONFIG"}},

		&cli.StringFlag{Name: "video", Aliases: []string{"i"}, Category: l10n.T(catInput), Usage: l10n.T("Video file, or a camera index (default: camera 0)")},
		&cli.StringFlag{Name: "source", Category: l10n.T(catInput), Usage: l10n.T("Decoding backend (opencv, ffmpeg)")},
		&cli.IntFlag{Name: "max-frames", Category: l10n.T(catInput), Usage: l10n.T("Stop after this many frames (0 = until the end)")},
		&cli.IntFlag{Name: "window", Category: l10n.T(catInput), Usage: l10n.T("Frames per prediction (default: 16)")},

		&cli.StringFlag{Name: "model", Category: l10n.T(catModel), Usage: l10n.T("ONNX action recognition model")},
		&cli.StringFlag{Name: "labels", Category: l10n.T(catModel), Usage: l10n.T("Label file, one label per line")},
		&cli.BoolFlag{Name: "cuda", Category: l10n.T(catModel), Usage: l10n.T("Run the model on CUDA")},

		&cli.StringFlag{Name: "lang", Aliases: []string{"l"}, Category: l10n.T(catOverlay), Usage: l10n.T("Display language (en, kn)")},
		&cli.StringFlag{Name: "font", Category: l10n.T(catOverlay), Usage: l10n.T("Font file for the display language")},
		&cli.Float64Flag{Name: "font-size", Category: l10n.T(catOverlay), Usage: l10n.T("Font size in points (default: 32)")},

		&cli.StringFlag{Name: "translate", Category: l10n.T(catTranslation), Usage: l10n.T("Translation backend (web, cloud, none)")},
		&cli.DurationFlag{Name: "translate-timeout", Category: l10n.T(catTranslation), Usage: l10n.T("Time limit for one translation (default: 3s)")},
		&cli.BoolFlag{Name: "no-cache", Category: l10n.T(catTranslation), Usage: l10n.T("Translate every prediction again")},

		&cli.StringFlag{Name: "record", Aliases: []string{"o"}, Category: l10n.T(catOutput), Usage: l10n.T("Save the annotated video as MP4")},
		&cli.StringFlag{Name: "frames-dir", Category: l10n.T(catOutput), Usage: l10n.T("Save annotated frames as PNG files")},
		&cli.StringFlag{Name: "summary", Category: l10n.T(catOutput), Usage: l10n.T("Write a Markdown session summary")},
		&cli.BoolFlag{Name: "headless", Category: l10n.T(catOutput), Usage: l10n.T("Do not open a display window")},
		&cli.StringFlag{Name: "ffmpeg", Category: l10n.T(catOutput), Usage: l10n.T("Path to ffmpeg (falls back to FFMPEG_PATH, then PATH)")},
	}
	return append(flags, loggingFlags()...)
}

func labelsFlags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file"), EnvVars: []string{"HARVIEW_CONFIG"}},
		&cli.StringFlag{Name: "labels", Category: l10n.T(catModel), Usage: l10n.T("Label file, one label per line")},
		&cli.StringFlag{Name: "lang", Aliases: []string{"l"}, Category: l10n.T(catOverlay), Usage: l10n.T("Display language (en, kn)")},
		&cli.StringFlag{Name: "translate", Category: l10n.T(catTranslation), Usage: l10n.T("Translation backend (web, cloud, none)")},
		&cli.DurationFlag{Name: "translate-timeout", Category: l10n.T(catTranslation), Usage: l10n.T("Time limit for one translation (default: 3s)")},
	}
	return append(flags, loggingFlags()...)
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "log-level", Category: l10n.T(catLogging), Usage: l10n.T("Log level (debug, info, warn, error)")},
		&cli.StringFlag{Name: "log-format", Category: l10n.T(catLogging), Usage: l10n.T("Log format (console, tint)")},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Category: l10n.T(catLogging), Usage: l10n.T("Suppress all log output")},
	}
}

// loadConfig reads the configuration file, applies set flags and the
// environment, and validates the result.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if c.IsSet("video") {
		cfg.Video = c.String("video")
	}
	if c.IsSet("source") {
		cfg.Source = c.String("source")
	}
	if c.IsSet("max-frames") {
		cfg.MaxFrames = c.Int("max-frames")
	}
	if c.IsSet("window") {
		cfg.Window.Size = c.Int("window")
	}
	if c.IsSet("model") {
		cfg.Model = c.String("model")
	}
	if c.IsSet("labels") {
		cfg.Labels = c.String("labels")
	}
	if c.IsSet("cuda") {
		cfg.CUDA = c.Bool("cuda")
	}
	if c.IsSet("lang") {
		cfg.Language = c.String("lang")
	}
	if c.IsSet("font") {
		if cfg.Fonts == nil {
			cfg.Fonts = make(map[string]string)
		}
		cfg.Fonts[cfg.Lang().Code()] = c.String("font")
	}
	if c.IsSet("font-size") {
		cfg.FontSize = c.Float64("font-size")
	}
	if c.IsSet("translate") {
		cfg.Translation.Backend = c.String("translate")
	}
	if c.IsSet("translate-timeout") {
		cfg.Translation.TimeoutMs = int(c.Duration("translate-timeout").Milliseconds())
	}
	if c.IsSet("no-cache") {
		cfg.Translation.Cache = !c.Bool("no-cache")
	}
	if c.IsSet("record") {
		cfg.Record = c.String("record")
	}
	if c.IsSet("frames-dir") {
		cfg.FramesDir = c.String("frames-dir")
	}
	if c.IsSet("summary") {
		cfg.Summary = c.String("summary")
	}
	if c.IsSet("headless") {
		cfg.Headless = c.Bool("headless")
	}
	if c.IsSet("ffmpeg") {
		cfg.FFmpegPath = c.String("ffmpeg")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config, quiet bool) ports.Logger {
	if quiet {
		return logger.NewNoop()
	}
	level := ports.ParseLogLevel(cfg.LogLevel)
	if cfg.LogFormat == "tint" {
		return logger.NewTint(level)
	}
	return logger.NewConsole(level)
}

// signalContext cancels on SIGINT or SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

func runAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(cfg, c.Bool("quiet"))

	ctx, cancel := signalContext(log)
	defer cancel()

	s, err := openSession(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.Run(ctx, cfg.Video, cfg.Lang())
	return err
}

func guiAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(cfg, c.Bool("quiet"))

	ctx, cancel := signalContext(log)
	defer cancel()

	s, err := openSession(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	a := fyneapp.New()
	ui := gui.New(a, func(ctx context.Context, video string, lang language.Language) error {
		_, err := s.Run(ctx, video, lang)
		return err
	}, log)
	if cfg.Video != "" {
		ui.SetVideo(cfg.Video)
	}

	go func() {
		<-ctx.Done()
		ui.Stop()
		fyne.Do(a.Quit)
	}()

	ui.ShowAndRun()
	return nil
}

func labelsAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(cfg, c.Bool("quiet"))

	vocab, err := vocabulary.Load(osfilesystem.New(), cfg.Labels)
	if err != nil {
		return err
	}

	lang := cfg.Lang()
	if !lang.NeedsTranslation() {
		for i, label := range vocab.Labels() {
			fmt.Fprintf(c.App.Writer, "%3d  %s\n", i, label)
		}
		return nil
	}

	ctx, cancel := signalContext(log)
	defer cancel()

	backend, closeBackend, err := newTranslator(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	stage := translate.NewStage(backend, cfg.TranslationTimeout(), log)
	for i, label := range vocab.Labels() {
		res, err := stage.Execute(ctx, pipeline.TranslateInput{Label: label, Language: lang})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "%3d  %s\t%s\n", i, label, res.Text)
	}
	return nil
}
