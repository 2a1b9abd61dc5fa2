package termview

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/makeworld-the-better-one/dither/v2"
	"github.com/mattn/go-sixel"
	"github.com/soniakeys/quant/median"
)

const clearScreen = "\x1b[H\x1b[2J"

// SixelEncoder implements the Encoder interface for the Sixel protocol
type SixelEncoder struct {
	// Palette size, clamped to 2-256. Zero keeps the go-sixel default.
	Colors int
	// Quantize with median cut and Floyd-Steinberg before encoding
	Dither      bool
	Passthrough bool
}

// Protocol returns the protocol type
func (e *SixelEncoder) Protocol() Protocol {
	return Sixel
}

// Encode writes img as a sixel DCS sequence followed by a newline
func (e *SixelEncoder) Encode(w io.Writer, img *image.NRGBA) error {
	if img == nil {
		return fmt.Errorf("%w: image cannot be nil", ErrEncoding)
	}

	var src image.Image = img
	if e.Dither {
		src = e.quantize(img)
	}

	var buf bytes.Buffer
	enc := sixel.NewEncoder(&buf)
	if colors := e.paletteSize(); colors > 0 {
		enc.Colors = colors
	}
	if err := enc.Encode(src); err != nil {
		return fmt.Errorf("%w: failed to encode sixel: %w", ErrEncoding, err)
	}
	if buf.Len() == 0 {
		return fmt.Errorf("%w: sixel encoding produced empty output", ErrEncoding)
	}

	out := buf.String()
	if e.Passthrough {
		out = wrapTmuxPassthrough(out)
	}
	if _, err := io.WriteString(w, out+"\n"); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return nil
}

// Clear wipes the screen; sixel has no notion of image objects
func (e *SixelEncoder) Clear(w io.Writer) error {
	if _, err := io.WriteString(w, clearScreen); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return nil
}

func (e *SixelEncoder) paletteSize() int {
	switch {
	case e.Colors <= 0:
		return 0
	case e.Colors < 2:
		return 2
	case e.Colors > 256:
		return 256
	default:
		return e.Colors
	}
}

// quantize applies a median cut palette with Floyd-Steinberg error diffusion
func (e *SixelEncoder) quantize(img *image.NRGBA) image.Image {
	size := e.paletteSize()
	if size == 0 {
		size = 256
	}
	palette := median.Quantizer(size).Palette(img).ColorPalette()
	if len(palette) == 0 {
		return img
	}

	ditherer := dither.NewDitherer(palette)
	ditherer.Matrix = dither.FloydSteinberg
	if out := ditherer.Dither(img); out != nil {
		return out
	}
	return img
}
