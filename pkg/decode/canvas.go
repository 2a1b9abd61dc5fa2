package decode

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// stackVertically places pages top to bottom, left aligned, on a canvas as
// wide as the widest page
func stackVertically(pages []image.Image) *image.NRGBA {
	width, height := 0, 0
	for _, p := range pages {
		b := p.Bounds()
		width = max(width, b.Dx())
		height += b.Dy()
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	y := 0
	for _, p := range pages {
		b := p.Bounds()
		xdraw.Copy(canvas, image.Pt(0, y), p, b, xdraw.Src, nil)
		y += b.Dy()
	}
	return canvas
}
