// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"unicode"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	xdraw "golang.org/x/image/draw"

	"github.com/user/harview/pkg/ports"
)

// BuiltinFontName is the name reported by the font loaded from an empty path.
const BuiltinFontName = "Go Regular"

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// LoadFont parses a TrueType file. An empty path loads Go Regular.
func (r *Renderer) LoadFont(path string, size float64) (ports.Font, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %v", size)
	}

	name := path
	data := goregular.TTF
	if path == "" {
		name = BuiltinFontName
	} else {
		b, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ports.ErrFontNotFound, path)
		}
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", path, err)
		}
		data = b
	}

	parsed, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", name, err)
	}

	return &Font{
		name: name,
		font: parsed,
		face: truetype.NewFace(parsed, &truetype.Options{Size: size}),
	}, nil
}

// NewCanvas returns a canvas over a copy of img.
func (r *Renderer) NewCanvas(img image.Image) ports.Canvas {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Canvas{dc: gg.NewContextForRGBA(dst)}
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image to the specified dimensions.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

var _ ports.Renderer = (*Renderer)(nil)

// Font is a parsed TrueType font with a face at a fixed size.
type Font struct {
	name string
	font *truetype.Font
	face font.Face
}

// Name returns the file path, or BuiltinFontName.
func (f *Font) Name() string { return f.name }

// Missing returns the runes of text without a glyph. Whitespace and
// control characters are never reported.
func (f *Font) Missing(text string) []rune {
	var missing []rune
	for _, r := range text {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			continue
		}
		if f.font.Index(r) == 0 {
			missing = append(missing, r)
		}
	}
	return missing
}

var _ ports.Font = (*Font)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc *gg.Context
}

// DrawRect draws a filled rectangle.
func (c *Canvas) DrawRect(x, y, w, h int, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Fill()
}

// DrawText draws text with its top-left corner at x, y.
func (c *Canvas) DrawText(text string, x, y int, style ports.TextStyle) error {
	f, err := c.apply(style)
	if err != nil {
		return err
	}
	if missing := f.Missing(text); len(missing) > 0 {
		return fmt.Errorf("%w: %q in %s", ports.ErrUnencodable, string(missing), f.name)
	}

	col := style.Color
	if col == nil {
		col = color.Black
	}
	c.dc.SetColor(col)
	c.dc.DrawStringAnchored(text, float64(x), float64(y), 0, 1)
	return nil
}

// MeasureText returns the width and height of the text.
func (c *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	if _, err := c.apply(style); err != nil {
		return 0, 0
	}
	return c.dc.MeasureString(text)
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

func (c *Canvas) apply(style ports.TextStyle) (*Font, error) {
	f, ok := style.Font.(*Font)
	if !ok || f == nil {
		return nil, fmt.Errorf("ggrenderer: font %T not loaded by this renderer", style.Font)
	}
	c.dc.SetFontFace(f.face)
	return f, nil
}

var _ ports.Canvas = (*Canvas)(nil)
