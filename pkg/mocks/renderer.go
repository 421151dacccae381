package mocks

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/user/harview/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	LoadFontFunc    func(path string, size float64) (ports.Font, error)
	EncodeImageFunc func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc func(img image.Image, width, height int) image.Image

	// Canvases records every canvas handed out, in order.
	Canvases []*Canvas
}

func (m *Renderer) LoadFont(path string, size float64) (ports.Font, error) {
	if m.LoadFontFunc != nil {
		return m.LoadFontFunc(path, size)
	}
	return &Font{FontName: path}, nil
}

func (m *Renderer) NewCanvas(img image.Image) ports.Canvas {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	c := &Canvas{img: dst}
	m.Canvases = append(m.Canvases, c)
	return c
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Renderer = (*Renderer)(nil)

// Font is a mock implementation of ports.Font.
// Runes listed in Uncovered are reported as missing.
type Font struct {
	FontName  string
	Uncovered string
}

func (f *Font) Name() string { return f.FontName }

func (f *Font) Missing(text string) []rune {
	var missing []rune
	for _, r := range text {
		if strings.ContainsRune(f.Uncovered, r) {
			missing = append(missing, r)
		}
	}
	return missing
}

var _ ports.Font = (*Font)(nil)

// Canvas is a mock implementation of ports.Canvas that records drawn text.
type Canvas struct {
	img   *image.RGBA
	Texts []DrawnText
	Rects int
}

// DrawnText records a successful DrawText call.
type DrawnText struct {
	Text string
	Font string
}

func (m *Canvas) DrawRect(x, y, w, h int, c color.Color) {
	m.Rects++
}

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) error {
	if style.Font != nil && len(style.Font.Missing(text)) > 0 {
		return ports.ErrUnencodable
	}
	name := ""
	if style.Font != nil {
		name = style.Font.Name()
	}
	m.Texts = append(m.Texts, DrawnText{Text: text, Font: name})
	return nil
}

func (m *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	return float64(len([]rune(text)) * 10), 20
}

func (m *Canvas) ToImage() image.Image {
	return m.img
}

var _ ports.Canvas = (*Canvas)(nil)
