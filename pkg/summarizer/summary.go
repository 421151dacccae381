// Package summarizer provides summary generation for recognition sessions.
package summarizer

import (
	"sort"
	"time"

	"github.com/user/harview/pkg/orchestrator"
)

// Summary contains all data collected during a session.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Input information
	Input InputInfo

	// Frame counters
	Frames FrameInfo

	// Predictions and how they were shown
	Labels LabelInfo

	// Session settings
	Settings Settings

	// How the session ended
	Exit       string
	DurationMs int
}

// InputInfo describes the video that was processed.
type InputInfo struct {
	Path      string // Empty for cameras
	Camera    int    // -1 for files
	Width     int
	Height    int
	FPS       float64
	Container string // Empty when not probed
	Codec     string
}

// FrameInfo contains per-session frame counters.
type FrameInfo struct {
	Read       int
	Inferences int
	Displayed  int
	Recorded   int
}

// LabelCount is one row of the label histogram.
type LabelCount struct {
	Label string
	Count int
}

// LabelInfo contains prediction results.
type LabelInfo struct {
	Last                 string
	LastScore            float32
	LastText             string
	Counts               []LabelCount // Most frequent first
	TranslationFallbacks int
	OverlayFallbacks     int
}

// Settings contains the session configuration.
type Settings struct {
	Language    string
	WindowSize  int
	FrameWidth  int
	FrameHeight int
	Translation string // Backend name
	Source      string // Backend name
	Record      string // Recording path, empty when disabled
	RecordBytes int64  // Size of the recording, 0 if unknown
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithResult copies everything a finished session reports.
func (b *Builder) WithResult(r orchestrator.RunResult) *Builder {
	s := b.summary

	s.Input = InputInfo{
		Path:   r.Source.Path,
		Camera: r.Source.Camera,
		Width:  r.Source.Width,
		Height: r.Source.Height,
		FPS:    r.Source.FPS,
	}
	if s.Input.Path == "" && s.Input.Camera < 0 {
		s.Input.Path = r.VideoPath
	}
	if r.Media != nil {
		s.Input.Container = r.Media.Container
		s.Input.Codec = r.Media.Codec
	}

	s.Frames = FrameInfo{
		Read:       r.FramesRead,
		Inferences: r.Inferences,
		Displayed:  r.FramesDisplayed,
		Recorded:   r.FramesRecorded,
	}

	s.Labels = LabelInfo{
		Last:                 r.LastPrediction.Label,
		LastScore:            r.LastPrediction.Score,
		LastText:             r.LastText,
		Counts:               sortCounts(r.LabelCounts),
		TranslationFallbacks: r.TranslationFallbacks,
		OverlayFallbacks:     r.OverlayFallbacks,
	}

	s.Settings.Language = r.Language.String()
	s.Exit = r.Exit.String()
	s.DurationMs = int(r.Duration.Milliseconds())
	return b
}

// WithSettings sets session settings. Language is kept from WithResult when empty.
func (b *Builder) WithSettings(settings Settings) *Builder {
	if settings.Language == "" {
		settings.Language = b.summary.Settings.Language
	}
	b.summary.Settings = settings
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}

// sortCounts orders by count, then label, so output is stable.
func sortCounts(counts map[string]int) []LabelCount {
	out := make([]LabelCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, LabelCount{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}
