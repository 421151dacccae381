package tensor

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestFromClip_Shape(t *testing.T) {
	frames := make([]image.Image, 16)
	for i := range frames {
		frames[i] = solid(550, 400, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	}

	batch, err := FromClip(frames, DefaultBlobParams())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3, 16, 112, 112}, batch.Shape)
	assert.Equal(t, 3*16*112*112, batch.Len())
	assert.Len(t, batch.Data, batch.Len())
}

func TestFromClip_MeanSubtraction(t *testing.T) {
	p := DefaultBlobParams()
	frames := []image.Image{solid(64, 48, color.RGBA{R: 200, G: 100, B: 50, A: 255})}

	batch, err := FromClip(frames, p)
	require.NoError(t, err)

	assert.InDelta(t, 200-p.Mean[0], batch.At(0, 0, 0, 10, 10), 1.0)
	assert.InDelta(t, 100-p.Mean[1], batch.At(0, 1, 0, 10, 10), 1.0)
	assert.InDelta(t, 50-p.Mean[2], batch.At(0, 2, 0, 10, 10), 1.0)
}

func TestFromClip_TemporalAxisFollowsFrameOrder(t *testing.T) {
	p := BlobParams{Size: 8, Scale: 1, Crop: true}
	var frames []image.Image
	for i := 0; i < 4; i++ {
		frames = append(frames, solid(16, 12, color.RGBA{R: uint8(i * 40), A: 255}))
	}

	batch, err := FromClip(frames, p)
	require.NoError(t, err)
	require.Equal(t, []int{1, 3, 4, 8, 8}, batch.Shape)

	for i := 0; i < 4; i++ {
		assert.InDelta(t, float64(i*40), batch.At(0, 0, i, 3, 3), 1.0, "frame %d", i)
		assert.InDelta(t, 0, batch.At(0, 1, i, 3, 3), 1.0, "frame %d", i)
	}
}

func TestFromClip_CentreCrop(t *testing.T) {
	// Left third red, middle green, right third blue; the crop must only see green.
	img := image.NewRGBA(image.Rect(0, 0, 30, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 30; x++ {
			c := color.RGBA{G: 255, A: 255}
			if x < 10 {
				c = color.RGBA{R: 255, A: 255}
			} else if x >= 20 {
				c = color.RGBA{B: 255, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}

	batch, err := FromClip([]image.Image{img}, BlobParams{Size: 10, Scale: 1, Crop: true})
	require.NoError(t, err)

	assert.InDelta(t, 255, batch.At(0, 1, 0, 5, 5), 1.0)
	assert.InDelta(t, 0, batch.At(0, 0, 0, 5, 5), 1.0)
	assert.InDelta(t, 0, batch.At(0, 2, 0, 5, 5), 1.0)
}

func TestFromClip_Deterministic(t *testing.T) {
	frames := make([]image.Image, 16)
	for i := range frames {
		frames[i] = solid(550, 400, color.RGBA{R: 90, G: 120, B: 150, A: 255})
	}

	a, err := FromClip(frames, DefaultBlobParams())
	require.NoError(t, err)
	b, err := FromClip(frames, DefaultBlobParams())
	require.NoError(t, err)

	assert.Equal(t, a.Data, b.Data)
}

func TestFromClip_Errors(t *testing.T) {
	_, err := FromClip(nil, DefaultBlobParams())
	assert.ErrorIs(t, err, ErrNoFrames)

	_, err = FromClip([]image.Image{solid(4, 4, color.RGBA{})}, BlobParams{Size: 0})
	assert.ErrorIs(t, err, ErrBadSize)

	_, err = FromClip([]image.Image{image.NewRGBA(image.Rectangle{})}, DefaultBlobParams())
	assert.Error(t, err)
}
