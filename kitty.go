package termview

import (
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"
)

// TransmissionMode selects how Kitty pixel data is sent
type TransmissionMode int

const (
	// ModePNG sends a PNG file (f=100)
	ModePNG TransmissionMode = iota
	// ModeZlib sends zlib-compressed RGBA (f=32, o=z)
	ModeZlib
	// ModeRaw sends uncompressed RGBA (f=32)
	ModeRaw
)

var modeNames = []string{"png", "zlib", "raw"}

func (m TransmissionMode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("TransmissionMode(%d)", int(m))
}

// ParseMode returns the transmission mode with the given name
func ParseMode(name string) (TransmissionMode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ModePNG, nil
	}
	for i, n := range modeNames {
		if n == name {
			return TransmissionMode(i), nil
		}
	}
	return ModePNG, fmt.Errorf("unknown transmission mode: %q", name)
}

const kittyClear = "\x1b_Ga=d\x1b\\"

var pngEncoder = &png.Encoder{CompressionLevel: png.DefaultCompression}

// KittyEncoder implements the Encoder interface for the Kitty graphics protocol
type KittyEncoder struct {
	Mode        TransmissionMode
	Passthrough bool
}

// Protocol returns the protocol type
func (e *KittyEncoder) Protocol() Protocol {
	return Kitty
}

// Encode streams img as a chunked transmit-and-display command followed by a newline
func (e *KittyEncoder) Encode(w io.Writer, img *image.NRGBA) error {
	if img == nil {
		return fmt.Errorf("%w: image cannot be nil", ErrEncoding)
	}
	img = ToNRGBA(img)

	cw := newChunkWriter(w, e.header(img), CHUNK_SIZE, e.Passthrough)
	b64 := base64.NewEncoder(base64.StdEncoding, cw)

	if err := e.writePayload(b64, img); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	if err := b64.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	if err := cw.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return nil
}

// Clear deletes all visible images
func (e *KittyEncoder) Clear(w io.Writer) error {
	seq := kittyClear
	if e.Passthrough {
		seq = wrapTmuxPassthrough(seq)
	}
	if _, err := io.WriteString(w, seq); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return nil
}

// header returns the control keys carried by the first frame
func (e *KittyEncoder) header(img *image.NRGBA) string {
	if e.Mode == ModePNG {
		return "a=T,f=100,"
	}
	b := img.Bounds()
	h := fmt.Sprintf("a=T,f=32,s=%d,v=%d,", b.Dx(), b.Dy())
	if e.Mode == ModeZlib {
		h += "o=z,"
	}
	return h
}

func (e *KittyEncoder) writePayload(w io.Writer, img *image.NRGBA) error {
	switch e.Mode {
	case ModePNG:
		return pngEncoder.Encode(w, img)
	case ModeZlib:
		zw := zlib.NewWriter(w)
		if _, err := zw.Write(img.Pix); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	case ModeRaw:
		_, err := w.Write(img.Pix)
		return err
	default:
		return fmt.Errorf("unknown transmission mode: %s", e.Mode)
	}
}

// EncodePNG writes img as a plain PNG file, without any terminal framing
func EncodePNG(w io.Writer, img *image.NRGBA) error {
	if img == nil {
		return fmt.Errorf("%w: image cannot be nil", ErrEncoding)
	}
	if err := pngEncoder.Encode(w, ToNRGBA(img)); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return nil
}
