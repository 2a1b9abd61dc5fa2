package termview

import (
	"fmt"
	"image"
	"math"
)

// SizeRequest describes how the user wants the image sized.
// Width and Height are in pixels; zero means unset.
type SizeRequest struct {
	Width      int
	Height     int
	FillWidth  bool
	FillHeight bool
	AutoResize bool
	NoResize   bool
}

// Validate rejects requests that set more than one sizing option
func (r SizeRequest) Validate() error {
	if r.Width < 0 || r.Height < 0 {
		return fmt.Errorf("%w: width and height must not be negative", ErrMalformedSelection)
	}
	set := 0
	for _, on := range []bool{r.Width > 0, r.Height > 0, r.FillWidth, r.FillHeight, r.AutoResize, r.NoResize} {
		if on {
			set++
		}
	}
	if set > 1 {
		return fmt.Errorf("%w: width, height, fill-width, fill-height, resize and no-resize are mutually exclusive", ErrMalformedSelection)
	}
	return nil
}

// Plan computes the render size for an image of size src.
//
// Unless NoResize or a fill flag is set, an image larger than the terminal in
// any known axis is auto-fitted along the axis it is more extreme in. An
// explicit width or height always wins and keeps the aspect ratio.
func Plan(src image.Point, req SizeRequest, term Geometry) image.Point {
	if src.X <= 0 || src.Y <= 0 {
		return src
	}
	srcW, srcH := float64(src.X), float64(src.Y)

	fillWidth, fillHeight := req.FillWidth, req.FillHeight
	autoResize := req.AutoResize

	if !req.NoResize && !fillWidth && !fillHeight &&
		((term.Width > 0 && src.X > term.Width) || (term.Height > 0 && src.Y > term.Height)) {
		autoResize = true
	}

	if autoResize {
		if srcW/srcH > srcH/srcW {
			fillWidth = true
		} else {
			fillHeight = true
		}
	}

	var width, height float64
	switch {
	case req.Width > 0 && req.Height == 0:
		width = float64(req.Width)
		height = srcH * (width / srcW)
	case req.Height > 0 && req.Width == 0:
		height = float64(req.Height)
		width = srcW * (height / srcH)
	case fillWidth:
		width = float64(term.Width)
		height = srcH * (width / srcW)
	case fillHeight:
		height = float64(term.Height)
		width = srcW * (height / srcH)
	default:
		width, height = srcW, srcH
	}

	return image.Pt(max(1, int(math.Round(width))), max(1, int(math.Round(height))))
}
