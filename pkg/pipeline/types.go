package pipeline

import (
	"image"
	"image/color"

	"github.com/user/harview/pkg/language"
	"github.com/user/harview/pkg/ports"
)

// =============================================================================
// Common Types
// =============================================================================

// Dimension represents width and height.
type Dimension struct {
	Width  int
	Height int
}

// Point is a pixel position.
type Point struct {
	X int
	Y int
}

// =============================================================================
// Classify Stage Types
// =============================================================================

// ClassifyInput is one full window of frames, oldest first.
type ClassifyInput struct {
	Frames []image.Image
}

// Prediction is the highest-scoring label for a window.
type Prediction struct {
	Label string
	Index int
	Score float32
}

// =============================================================================
// Translate Stage Types
// =============================================================================

// TranslateInput asks for a label in a display language.
type TranslateInput struct {
	Label    string
	Language language.Language
}

// TranslateResult is the label to display.
type TranslateResult struct {
	Text     string // Localized label, or the original label
	Fallback bool   // Translation was attempted and failed
}

// =============================================================================
// Overlay Stage Types
// =============================================================================

// OverlayInput describes one annotation of the current frame.
type OverlayInput struct {
	Frame    image.Image
	Text     string     // Localized label
	Original string     // Untranslated label, drawn if Text cannot be
	Font     ports.Font // Font for the display language
	Fallback ports.Font // Built-in face, drawn with as a last resort
	Theme    OverlayTheme
}

// OverlayTheme defines the label box.
type OverlayTheme struct {
	Box             Dimension // Minimum box size; widened to fit the text
	TextOffset      Point     // Text position inside the box
	BackgroundColor color.Color
	TextColor       color.Color
}

// DefaultOverlayTheme returns a white 300×40 box with black text at (10, 5).
func DefaultOverlayTheme() OverlayTheme {
	return OverlayTheme{
		Box:             Dimension{Width: 300, Height: 40},
		TextOffset:      Point{X: 10, Y: 5},
		BackgroundColor: color.White,
		TextColor:       color.Black,
	}
}

// OverlayResult is the annotated frame.
type OverlayResult struct {
	Image image.Image
	Text  string // Text actually drawn
	// Fallback is set when Text differs from the requested text because
	// the font could not encode it.
	Fallback bool
}
