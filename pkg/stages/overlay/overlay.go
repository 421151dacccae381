// Package overlay implements the label overlay stage.
package overlay

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/user/harview/pkg/pipeline"
	"github.com/user/harview/pkg/ports"
)

// ErrNoFrame is returned when there is nothing to draw on.
var ErrNoFrame = errors.New("overlay: no frame")

// Stage draws the label box in the top-left corner of a frame.
type Stage struct {
	renderer ports.Renderer
	logger   ports.Logger
}

// NewStage creates a new overlay stage.
func NewStage(renderer ports.Renderer, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		logger:   logger.WithComponent("overlay"),
	}
}

// Execute returns a copy of the frame with the label drawn on it.
// The input frame is never modified.
//
// When the font cannot encode the text, the original label is drawn
// instead; if that fails too the built-in face is used.
func (s *Stage) Execute(ctx context.Context, input pipeline.OverlayInput) (pipeline.OverlayResult, error) {
	if input.Frame == nil {
		return pipeline.OverlayResult{}, ErrNoFrame
	}

	img, err := s.draw(input.Frame, input.Text, input.Font, input.Theme)
	if err == nil {
		return pipeline.OverlayResult{Image: img, Text: input.Text}, nil
	}
	if !errors.Is(err, ports.ErrUnencodable) {
		return pipeline.OverlayResult{}, err
	}

	s.logger.Warn("Cannot draw %q with %s: %s", input.Text, fontName(input.Font), err)

	if input.Original != "" && input.Original != input.Text {
		img, err = s.draw(input.Frame, input.Original, input.Font, input.Theme)
		if err == nil {
			return pipeline.OverlayResult{Image: img, Text: input.Original, Fallback: true}, nil
		}
		if !errors.Is(err, ports.ErrUnencodable) {
			return pipeline.OverlayResult{}, err
		}
	}

	if input.Fallback == nil {
		return pipeline.OverlayResult{}, fmt.Errorf("draw label: %w", err)
	}

	text := input.Original
	if text == "" {
		text = input.Text
	}
	s.logger.Debug("Drawing %q with built-in face", text)
	img, err = s.draw(input.Frame, text, input.Fallback, input.Theme)
	if err != nil {
		return pipeline.OverlayResult{}, fmt.Errorf("draw label with fallback face: %w", err)
	}
	return pipeline.OverlayResult{Image: img, Text: text, Fallback: true}, nil
}

// draw renders the box and text on a fresh canvas. The box grows to fit
// the text when the minimum size is too small.
func (s *Stage) draw(frame image.Image, text string, font ports.Font, theme pipeline.OverlayTheme) (image.Image, error) {
	style := ports.TextStyle{Font: font, Color: theme.TextColor}
	if font != nil {
		if missing := font.Missing(text); len(missing) > 0 {
			return nil, fmt.Errorf("%w: %q", ports.ErrUnencodable, string(missing))
		}
	}

	canvas := s.renderer.NewCanvas(frame)
	tw, th := canvas.MeasureText(text, style)

	w := max(theme.Box.Width, theme.TextOffset.X*2+int(math.Ceil(tw)))
	h := max(theme.Box.Height, theme.TextOffset.Y*2+int(math.Ceil(th)))
	canvas.DrawRect(0, 0, w, h, theme.BackgroundColor)

	if err := canvas.DrawText(text, theme.TextOffset.X, theme.TextOffset.Y, style); err != nil {
		return nil, err
	}
	return canvas.ToImage(), nil
}

func fontName(f ports.Font) string {
	if f == nil {
		return "default face"
	}
	return f.Name()
}
