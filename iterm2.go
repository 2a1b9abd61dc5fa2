package termview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"slices"
	"strings"
)

const ITERM2_CHUNK_SIZE = 0x40000 // 256KB chunk size for iTerm2 multipart images

// ITerm2Encoder implements the Encoder interface for iTerm2 inline images (OSC 1337)
type ITerm2Encoder struct {
	Passthrough bool
}

// Protocol returns the protocol type
func (e *ITerm2Encoder) Protocol() Protocol {
	return ITerm2
}

// Encode writes img as an inline PNG file transfer followed by a newline
func (e *ITerm2Encoder) Encode(w io.Writer, img *image.NRGBA) error {
	if img == nil {
		return fmt.Errorf("%w: image cannot be nil", ErrEncoding)
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return err
	}
	data := buf.Bytes()
	b := img.Bounds()

	params := strings.Join([]string{
		"inline=1",
		fmt.Sprintf("size=%d", len(data)),
		fmt.Sprintf("width=%dpx", b.Dx()),
		fmt.Sprintf("height=%dpx", b.Dy()),
		"preserveAspectRatio=1",
	}, ";")

	var seqs []string
	if len(data) > ITERM2_CHUNK_SIZE {
		seqs = append(seqs, fmt.Sprintf("\x1b]1337;MultipartFile=%s\x07", params))
		for chunk := range slices.Chunk(data, ITERM2_CHUNK_SIZE) {
			seqs = append(seqs, fmt.Sprintf("\x1b]1337;FilePart=%s\x07", base64.StdEncoding.EncodeToString(chunk)))
		}
		seqs = append(seqs, "\x1b]1337;FileEnd\x07")
	} else {
		seqs = append(seqs, fmt.Sprintf("\x1b]1337;File=%s:%s\x07", params, base64.StdEncoding.EncodeToString(data)))
	}

	for _, seq := range seqs {
		if e.Passthrough {
			seq = wrapTmuxPassthrough(seq)
		}
		if _, err := io.WriteString(w, seq); err != nil {
			return fmt.Errorf("%w: %w", ErrEncoding, err)
		}
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return nil
}

// Clear wipes the screen and scrollback; iTerm2 cannot delete single images
func (e *ITerm2Encoder) Clear(w io.Writer) error {
	if _, err := io.WriteString(w, "\x1b[2J\x1b[3J\x1b[H"); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return nil
}
