package termview

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToNRGBA(t *testing.T) {
	t.Run("packed NRGBA is returned as-is", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
		assert.Same(t, img, ToNRGBA(img))
	})

	t.Run("sub image is re-anchored", func(t *testing.T) {
		img := createGradient(10, 10)
		sub := img.SubImage(image.Rect(2, 3, 6, 8)).(*image.NRGBA)

		out := ToNRGBA(sub)
		assert.Equal(t, image.Rect(0, 0, 4, 5), out.Bounds())
		assert.Equal(t, 16, out.Stride)
		assert.Equal(t, img.NRGBAAt(2, 3), out.NRGBAAt(0, 0))
	})

	t.Run("premultiplied RGBA is converted", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 1, 1))
		img.SetRGBA(0, 0, color.RGBA{R: 100, A: 200})

		out := ToNRGBA(img)
		c := out.NRGBAAt(0, 0)
		assert.Equal(t, uint8(200), c.A)
		assert.InDelta(t, 127, int(c.R), 1)
	})

	t.Run("gray", func(t *testing.T) {
		img := image.NewGray(image.Rect(0, 0, 2, 1))
		img.SetGray(1, 0, color.Gray{Y: 77})

		out := ToNRGBA(img)
		assert.Equal(t, color.NRGBA{77, 77, 77, 255}, out.NRGBAAt(1, 0))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, ToNRGBA(nil))
	})
}
