//go:build !novideo

package decode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"slices"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

var videoExts = []string{"mp4", "m4v", "mov", "mkv", "webm", "avi"}

func init() {
	register(Decoder{Name: "video", Kind: Video, Match: isVideo, Decode: decodeVideo})
}

func isVideo(in *Input) bool {
	if slices.Contains(videoExts, in.Ext) {
		return true
	}
	data := in.Data
	switch {
	case len(data) >= 12 && string(data[4:8]) == "ftyp":
		// ISO base media (mp4, mov)
		return true
	case bytes.HasPrefix(data, []byte{0x1a, 0x45, 0xdf, 0xa3}):
		// EBML (mkv, webm)
		return true
	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "AVI ":
		return true
	}
	return false
}

// decodeVideo grabs a single frame with ffmpeg. The first selected page is
// the zero-based frame number.
func decodeVideo(ctx context.Context, in *Input) (image.Image, error) {
	frame := 0
	if in.Pages.IsSet() {
		frame = in.Pages[0]
	}

	source := "pipe:0"
	if in.Path != "" {
		source = in.Path
	}

	var out bytes.Buffer
	cmd := ffmpeg.Input(source).
		Output("pipe:1", ffmpeg.KwArgs{
			"vf":      fmt.Sprintf("select=eq(n\\,%d)", frame),
			"vframes": 1,
			"format":  "image2",
			"vcodec":  "png",
		}).
		WithOutput(&out).
		WithErrorOutput(io.Discard)
	if in.Path == "" {
		cmd = cmd.WithInput(bytes.NewReader(in.Data))
	}
	cmd.Context = ctx

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to extract frame %d: %w", frame, err)
	}
	if out.Len() == 0 {
		return nil, errors.New("no frames extracted")
	}

	img, err := png.Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("decode frame %d failed: %w", frame, err)
	}
	return img, nil
}
