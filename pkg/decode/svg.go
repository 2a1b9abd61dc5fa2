//go:build !nosvg

package decode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

func init() {
	register(Decoder{Name: "svg", Kind: SVG, Match: isSVG, Decode: decodeSVG})
}

func isSVG(in *Input) bool {
	return in.Ext == "svg" ||
		bytes.HasPrefix(in.Data, []byte("<svg")) ||
		bytes.HasPrefix(in.Data, []byte("<?xml"))
}

// decodeSVG rasterizes the document at its viewBox size
func decodeSVG(_ context.Context, in *Input) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(in.Data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}

	w, h := int(math.Ceil(icon.ViewBox.W)), int(math.Ceil(icon.ViewBox.H))
	if w <= 0 || h <= 0 {
		return nil, errors.New("failed to create pixmap: svg has no size")
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	return img, nil
}
