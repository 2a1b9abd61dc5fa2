package termview

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/charmbracelet/x/mosaic"
)

// HalfblocksEncoder implements the Encoder interface using Unicode half blocks.
// It works in any true color terminal and is the last resort.
type HalfblocksEncoder struct {
	// Terminal columns; the rendering never gets wider than this
	Columns int
}

// Protocol returns the protocol type
func (e *HalfblocksEncoder) Protocol() Protocol {
	return Halfblocks
}

// Encode writes img as ANSI colored half block characters
func (e *HalfblocksEncoder) Encode(w io.Writer, img *image.NRGBA) error {
	if img == nil {
		return fmt.Errorf("%w: image cannot be nil", ErrEncoding)
	}

	width := img.Bounds().Dx()
	if e.Columns > 0 && width > e.Columns {
		width = e.Columns
	}

	out := mosaic.New().Width(width).Render(img)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return nil
}

// Clear wipes the screen
func (e *HalfblocksEncoder) Clear(w io.Writer) error {
	if _, err := io.WriteString(w, clearScreen); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return nil
}
