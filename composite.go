package termview

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor parses a 6 digit hex color with an optional single leading '#'.
// The result is always fully opaque.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("%w: invalid color format: %q", ErrMalformedSelection, s)
	}
	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: invalid color format: %q", ErrMalformedSelection, s)
		}
		rgb[i] = uint8(v)
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
}

// Composite blends img over an opaque background of color bg.
//
// The blend is out = (src*a + bg*(255-a)) / 255 with truncating integer
// division; fully opaque and fully transparent pixels are copied verbatim.
func Composite(img *image.NRGBA, bg color.NRGBA) *image.NRGBA {
	if img == nil {
		return nil
	}
	img = ToNRGBA(img)
	bg.A = 255
	dst := image.NewNRGBA(img.Bounds())

	br, bgG, bb := uint32(bg.R), uint32(bg.G), uint32(bg.B)
	src, out := img.Pix, dst.Pix
	for i := 0; i+3 < len(src); i += 4 {
		a := uint32(src[i+3])
		switch a {
		case 255:
			copy(out[i:i+4], src[i:i+4])
		case 0:
			out[i], out[i+1], out[i+2], out[i+3] = bg.R, bg.G, bg.B, 255
		default:
			inv := 255 - a
			out[i] = uint8((uint32(src[i])*a + br*inv) / 255)
			out[i+1] = uint8((uint32(src[i+1])*a + bgG*inv) / 255)
			out[i+2] = uint8((uint32(src[i+2])*a + bb*inv) / 255)
			out[i+3] = 255
		}
	}
	return dst
}
