// Package tensor builds network input batches from video frames.
//
// Batches follow the layout used by 3D-convolution action recognition models:
// [batch, channel, time, height, width] with one clip per batch.
package tensor

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

var (
	// ErrNoFrames is returned when a clip has no frames.
	ErrNoFrames = errors.New("tensor: no frames")

	// ErrBadSize is returned when the requested spatial size is not positive.
	ErrBadSize = errors.New("tensor: size must be positive")
)

// Tensor is a dense float32 tensor in row-major order.
type Tensor struct {
	Shape []int
	Data  []float32
}

// Len returns the number of elements implied by Shape.
func (t Tensor) Len() int {
	if len(t.Shape) == 0 {
		return 0
	}
	n := 1
	for _, d := range t.Shape {
		n *= d
	}
	return n
}

// At returns the element at the given indices.
func (t Tensor) At(idx ...int) float32 {
	off := 0
	for i, v := range idx {
		off = off*t.Shape[i] + v
	}
	return t.Data[off]
}

// BlobParams controls how frames are turned into network input.
// The semantics match OpenCV's blobFromImages with swapRB enabled.
type BlobParams struct {
	Size  int        // Square spatial size fed to the network
	Mean  [3]float64 // Subtracted from the R, G and B channels
	Scale float64    // Applied after mean subtraction
	Crop  bool       // Resize the short side to Size and centre-crop; otherwise stretch
}

// DefaultBlobParams returns the preprocessing used by the Kinetics ResNet-34 model.
func DefaultBlobParams() BlobParams {
	return BlobParams{
		Size:  112,
		Mean:  [3]float64{114.7748, 107.7354, 99.4750},
		Scale: 1.0,
		Crop:  true,
	}
}

// FromClip builds a [1, 3, T, Size, Size] tensor from T frames, oldest first.
func FromClip(frames []image.Image, p BlobParams) (Tensor, error) {
	if len(frames) == 0 {
		return Tensor{}, ErrNoFrames
	}
	if p.Size <= 0 {
		return Tensor{}, ErrBadSize
	}

	t := len(frames)
	s := p.Size
	plane := s * s
	out := Tensor{
		Shape: []int{1, 3, t, s, s},
		Data:  make([]float32, 3*t*plane),
	}

	for ti, frame := range frames {
		if frame == nil || frame.Bounds().Empty() {
			return Tensor{}, fmt.Errorf("tensor: frame %d is empty", ti)
		}
		patch := fit(frame, s, p.Crop)
		for y := 0; y < s; y++ {
			row := patch.Pix[y*patch.Stride:]
			for x := 0; x < s; x++ {
				px := row[x*4:]
				for c := 0; c < 3; c++ {
					v := (float64(px[c]) - p.Mean[c]) * p.Scale
					out.Data[(c*t+ti)*plane+y*s+x] = float32(v)
				}
			}
		}
	}

	return out, nil
}

// fit returns an s×s RGBA patch of img.
func fit(img image.Image, s int, crop bool) *image.RGBA {
	b := img.Bounds()
	if !crop {
		dst := image.NewRGBA(image.Rect(0, 0, s, s))
		draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		return dst
	}

	factor := math.Max(float64(s)/float64(b.Dx()), float64(s)/float64(b.Dy()))
	rw := int(math.Round(float64(b.Dx()) * factor))
	rh := int(math.Round(float64(b.Dy()) * factor))
	if rw < s {
		rw = s
	}
	if rh < s {
		rh = s
	}

	resized := image.NewRGBA(image.Rect(0, 0, rw, rh))
	draw.BiLinear.Scale(resized, resized.Bounds(), img, b, draw.Src, nil)

	x0 := (rw - s) / 2
	y0 := (rh - s) / 2
	return resized.SubImage(image.Rect(x0, y0, x0+s, y0+s)).(*image.RGBA)
}
