package termview

import (
	"fmt"
	"image"
	"strings"

	"github.com/nfnt/resize"
)

// Filter selects the interpolation used when resizing
type Filter int

const (
	FilterBilinear Filter = iota
	FilterNearest
	FilterBicubic
	FilterMitchell
	FilterLanczos2
	FilterLanczos3
)

var filterNames = map[Filter]string{
	FilterBilinear: "bilinear",
	FilterNearest:  "nearest",
	FilterBicubic:  "bicubic",
	FilterMitchell: "mitchell",
	FilterLanczos2: "lanczos2",
	FilterLanczos3: "lanczos3",
}

func (f Filter) String() string {
	if name, ok := filterNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// ParseFilter returns the filter with the given name
func ParseFilter(name string) (Filter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "triangle" {
		return FilterBilinear, nil
	}
	for f, n := range filterNames {
		if n == name {
			return f, nil
		}
	}
	return FilterBilinear, fmt.Errorf("unknown resize filter: %q", name)
}

func (f Filter) interpolation() resize.InterpolationFunction {
	switch f {
	case FilterNearest:
		return resize.NearestNeighbor
	case FilterBicubic:
		return resize.Bicubic
	case FilterMitchell:
		return resize.MitchellNetravali
	case FilterLanczos2:
		return resize.Lanczos2
	case FilterLanczos3:
		return resize.Lanczos3
	default:
		return resize.Bilinear
	}
}

// Resize scales img to exactly size. The image is returned unchanged when it
// already has that size or when either target axis is zero.
func Resize(img *image.NRGBA, size image.Point, f Filter) *image.NRGBA {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	if size.X <= 0 || size.Y <= 0 || (b.Dx() == size.X && b.Dy() == size.Y) {
		return img
	}
	return ToNRGBA(resize.Resize(uint(size.X), uint(size.Y), img, f.interpolation()))
}
