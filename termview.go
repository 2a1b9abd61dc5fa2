package termview

import (
	"errors"
	"image"
	"io"
)

const (
	CHUNK_SIZE        = 4096               // base64 characters per Kitty frame
	BASE64_CHUNK_SIZE = 3 * CHUNK_SIZE / 4 // raw payload bytes that fill one frame
)

var (
	// ErrMalformedSelection is returned for bad page ranges, colors and size requests.
	ErrMalformedSelection = errors.New("malformed selection")
	// ErrEncoding wraps every failure while writing or compressing a transmission.
	ErrEncoding = errors.New("encoding failure")
)

// Encoder is the interface that all terminal protocol encoders must satisfy
type Encoder interface {
	// Encode writes the transmission for img to w
	Encode(w io.Writer, img *image.NRGBA) error

	// Clear writes the command that removes displayed images
	Clear(w io.Writer) error

	// Protocol returns the protocol type
	Protocol() Protocol
}

// EncoderOptions contains the knobs shared by all encoders
type EncoderOptions struct {
	// Kitty transmission mode (png, zlib or raw)
	Mode TransmissionMode
	// Wrap output for tmux passthrough
	Passthrough bool
	// Terminal columns, used by the halfblocks encoder
	Columns int
	// Sixel palette size (2-256, 0 means encoder default)
	SixelColors int
	// Apply median-cut palette and Floyd-Steinberg dithering before sixel encoding
	SixelDither bool
}
