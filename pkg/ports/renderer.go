package ports

import (
	"errors"
	"image"
	"image/color"
)

// ErrUnencodable is returned when text contains characters the font cannot draw.
var ErrUnencodable = errors.New("ports: text not encodable in font")

// ErrFontNotFound is returned when a font file does not exist.
var ErrFontNotFound = errors.New("ports: font not found")

// Renderer abstracts image processing operations.
type Renderer interface {
	// LoadFont loads a TrueType font at the given point size.
	// An empty path loads the built-in default face.
	LoadFont(path string, size float64) (Font, error)

	// NewCanvas returns a canvas initialised with a copy of img.
	NewCanvas(img image.Image) Canvas

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage resizes an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Font is a loaded font face.
type Font interface {
	// Name identifies the font, usually its file path.
	Name() string

	// Missing returns the runes of text that have no glyph in the font.
	Missing(text string) []rune
}

// Canvas provides drawing operations on a single frame.
type Canvas interface {
	// DrawRect draws a filled rectangle.
	DrawRect(x, y, w, h int, c color.Color)

	// DrawText draws text with its top-left corner at x, y.
	// Returns ErrUnencodable without drawing if the font lacks glyphs for text.
	DrawText(text string, x, y int, style TextStyle) error

	// MeasureText returns the width and height of the text.
	MeasureText(text string, style TextStyle) (width, height float64)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	Font  Font
	Color color.Color
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
)
