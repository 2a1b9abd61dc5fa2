package termview

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// ToNRGBA converts img into a tightly packed, origin-anchored, straight-alpha
// RGBA buffer. Images already in that form are returned as-is.
func ToNRGBA(img image.Image) *image.NRGBA {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(dst, image.Point{}, img, b, xdraw.Src, nil)
	return dst
}
