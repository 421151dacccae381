// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/harview/pkg/language"
	"github.com/user/harview/pkg/orchestrator"
	"github.com/user/harview/pkg/pipeline"
	"github.com/user/harview/pkg/tensor"
)

// Environment variables read by ApplyEnv.
const (
	EnvTranslateAPIKey = "HARVIEW_TRANSLATE_API_KEY"
	EnvFFmpegPath      = "FFMPEG_PATH"
)

// ErrInvalid is wrapped by every Validate error.
var ErrInvalid = errors.New("config: invalid")

// Source backends.
const (
	SourceOpenCV = "opencv"
	SourceFFmpeg = "ffmpeg"
)

// Translation backends.
const (
	BackendWeb   = "web"
	BackendCloud = "cloud"
	BackendNone  = "none"
)

// Config represents the full configuration for harview.
type Config struct {
	// Input
	Video  string `yaml:"video"`  // File path, camera index, or empty for camera 0
	Source string `yaml:"source"` // opencv | ffmpeg

	// Model
	Model  string `yaml:"model"`
	Labels string `yaml:"labels"`
	CUDA   bool   `yaml:"cuda"`

	// Window and preprocessing
	Window WindowConfig `yaml:"window"`

	// Overlay
	Language string            `yaml:"language"`
	Fonts    map[string]string `yaml:"fonts"` // Language code to font path
	FontSize float64           `yaml:"font_size"`
	Overlay  OverlayConfig     `yaml:"overlay"`

	// Translation
	Translation TranslationConfig `yaml:"translation"`

	// Session
	QuitKey   string `yaml:"quit_key"`
	MaxFrames int    `yaml:"max_frames"`
	Headless  bool   `yaml:"headless"`

	// Output
	Record    string `yaml:"record"`     // MP4 path for the annotated video
	FramesDir string `yaml:"frames_dir"` // Directory for a PNG frame dump
	Summary   string `yaml:"summary"`    // Markdown summary path

	// Tooling
	LogLevel   string `yaml:"log_level"`
	LogFormat  string `yaml:"log_format"` // console | tint
	FFmpegPath string `yaml:"ffmpeg_path"`
}

// WindowConfig configures the sliding window and the network input.
type WindowConfig struct {
	Size        int        `yaml:"size"`
	FrameWidth  int        `yaml:"frame_width"`
	FrameHeight int        `yaml:"frame_height"`
	InputSize   int        `yaml:"input_size"`
	Mean        [3]float64 `yaml:"mean"` // R, G, B
}

// OverlayConfig configures the label box.
type OverlayConfig struct {
	BoxWidth        int    `yaml:"box_width"`
	BoxHeight       int    `yaml:"box_height"`
	TextX           int    `yaml:"text_x"`
	TextY           int    `yaml:"text_y"`
	BackgroundColor string `yaml:"background_color"`
	TextColor       string `yaml:"text_color"`
}

// TranslationConfig selects and tunes the translation backend.
type TranslationConfig struct {
	Backend   string `yaml:"backend"` // web | cloud | none
	TimeoutMs int    `yaml:"timeout_ms"`
	APIKey    string `yaml:"api_key"`
	Cache     bool   `yaml:"cache"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	blob := tensor.DefaultBlobParams()
	return Config{
		Source: SourceOpenCV,

		Model:  "models/resnet-34_kinetics.onnx",
		Labels: "models/action_recognition_kinetics.txt",

		Window: WindowConfig{
			Size:        16,
			FrameWidth:  550,
			FrameHeight: 400,
			InputSize:   blob.Size,
			Mean:        blob.Mean,
		},

		Language: language.Default.Code(),
		Fonts: map[string]string{
			language.English.Code(): language.English.Profile().DefaultFont,
			language.Kannada.Code(): language.Kannada.Profile().DefaultFont,
		},
		FontSize: 32,
		Overlay: OverlayConfig{
			BoxWidth:        300,
			BoxHeight:       40,
			TextX:           10,
			TextY:           5,
			BackgroundColor: "#ffffff",
			TextColor:       "#000000",
		},

		Translation: TranslationConfig{
			Backend:   BackendWeb,
			TimeoutMs: 3000,
			Cache:     true,
		},

		QuitKey: "q",

		LogLevel:  "info",
		LogFormat: "console",
	}
}

// LoadFromFile loads configuration from a YAML file on top of Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv fills settings that may come from the environment.
// Values already set in the file win.
func (c *Config) ApplyEnv() {
	if c.Translation.APIKey == "" {
		c.Translation.APIKey = os.Getenv(EnvTranslateAPIKey)
	}
	if c.FFmpegPath == "" {
		c.FFmpegPath = os.Getenv(EnvFFmpegPath)
	}
}

// Validate checks the configuration and reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Window.Size < 1 {
		add("window.size must be at least 1, got %d", c.Window.Size)
	}
	if c.Window.FrameWidth < 1 || c.Window.FrameHeight < 1 {
		add("window frame size must be positive, got %dx%d", c.Window.FrameWidth, c.Window.FrameHeight)
	}
	if c.Window.InputSize < 1 {
		add("window.input_size must be positive, got %d", c.Window.InputSize)
	}
	if _, err := language.Parse(c.Language); err != nil {
		add("%s", err)
	}
	if c.FontSize <= 0 {
		add("font_size must be positive, got %v", c.FontSize)
	}
	switch c.Source {
	case SourceOpenCV, SourceFFmpeg:
	default:
		add("source must be %s or %s, got %q", SourceOpenCV, SourceFFmpeg, c.Source)
	}
	switch c.Translation.Backend {
	case BackendWeb, BackendNone:
	case BackendCloud:
		if c.Translation.APIKey == "" {
			add("translation backend %s needs an API key (%s)", BackendCloud, EnvTranslateAPIKey)
		}
	default:
		add("translation.backend must be web, cloud or none, got %q", c.Translation.Backend)
	}
	if c.Translation.TimeoutMs < 0 {
		add("translation.timeout_ms must not be negative")
	}
	if r := []rune(c.QuitKey); len(r) != 1 {
		add("quit_key must be a single character, got %q", c.QuitKey)
	} else if r[0] > 0x7f {
		// Key codes from the display are reduced to one byte.
		add("quit_key must be an ASCII character, got %q", c.QuitKey)
	}
	if c.MaxFrames < 0 {
		add("max_frames must not be negative")
	}
	for _, hex := range []string{c.Overlay.BackgroundColor, c.Overlay.TextColor} {
		if _, err := ParseColor(hex); err != nil {
			add("%s", err)
		}
	}

	return errors.Join(errs...)
}

// Lang returns the configured display language, or the default when invalid.
func (c Config) Lang() language.Language {
	l, err := language.Parse(c.Language)
	if err != nil {
		return language.Default
	}
	return l
}

// FontFor returns the font path for l. Languages missing from Fonts use
// the language's default font.
func (c Config) FontFor(l language.Language) string {
	if path, ok := c.Fonts[l.Code()]; ok {
		return path
	}
	return l.Profile().DefaultFont
}

// TranslationTimeout returns the per-call translation bound.
func (c Config) TranslationTimeout() time.Duration {
	return time.Duration(c.Translation.TimeoutMs) * time.Millisecond
}

// BlobParams returns the network preprocessing parameters.
func (c Config) BlobParams() tensor.BlobParams {
	p := tensor.DefaultBlobParams()
	p.Size = c.Window.InputSize
	p.Mean = c.Window.Mean
	return p
}

// ParseColor parses "#rrggbb", "rrggbb" or "#rgb".
func ParseColor(hex string) (color.Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.Black, fmt.Errorf("invalid color %q", hex)
	}

	var rgb [3]uint8
	for i := range rgb {
		hi, ok1 := hexValue(s[2*i])
		lo, ok2 := hexValue(s[2*i+1])
		if !ok1 || !ok2 {
			return color.Black, fmt.Errorf("invalid color %q", hex)
		}
		rgb[i] = hi<<4 | lo
	}

	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
}

func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	lang := c.Lang()

	bg, _ := ParseColor(c.Overlay.BackgroundColor)
	fg, _ := ParseColor(c.Overlay.TextColor)

	quit := 'q'
	if r := []rune(c.QuitKey); len(r) == 1 {
		quit = r[0]
	}

	oc := orchestrator.DefaultConfig()
	oc.VideoPath = c.Video
	oc.WindowSize = c.Window.Size
	oc.FrameWidth = c.Window.FrameWidth
	oc.FrameHeight = c.Window.FrameHeight
	oc.Language = lang
	oc.FontPath = c.FontFor(lang)
	oc.FontSize = c.FontSize
	oc.Theme = pipeline.OverlayTheme{
		Box:             pipeline.Dimension{Width: c.Overlay.BoxWidth, Height: c.Overlay.BoxHeight},
		TextOffset:      pipeline.Point{X: c.Overlay.TextX, Y: c.Overlay.TextY},
		BackgroundColor: bg,
		TextColor:       fg,
	}
	oc.QuitKey = int(quit)
	oc.MaxFrames = c.MaxFrames
	return oc
}
