package decode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/apex/log"
	"github.com/blacktop/go-termview"
)

// maxIndirection bounds how many times input text is re-read as a file path
const maxIndirection = 1

var (
	// ErrTextInput is returned when the caller forces text input; text is shown by the caller
	ErrTextInput = errors.New("text input not implemented")
	// ErrUnsupported is returned when the requested format was not compiled in
	ErrUnsupported = errors.New("format not supported in this build")
	// ErrUndecodable is returned when no decoder claimed the input and raw decoding failed
	ErrUndecodable = errors.New("unrecognised input")
)

// Input is one item to decode. Data must not be modified by decoders.
type Input struct {
	Data []byte
	// Lower-case file extension without the dot, may be empty
	Ext string
	// Source path when the input came from a file
	Path string
	Kind Kind
	// Pages, sheets, slides or (for video) the frame to render
	Pages termview.PageSelection
	// Preferred output width in pixels for paginated formats
	TargetWidth int
}

// Decoder is one entry of the capability table
type Decoder struct {
	Name   string
	Kind   Kind
	Match  func(*Input) bool
	Decode func(context.Context, *Input) (image.Image, error)
}

// DecodeError is returned when no decoder could interpret the input
type DecodeError struct {
	Attempted []string
	Err       error
}

func (e *DecodeError) Error() string {
	if len(e.Attempted) == 0 {
		return fmt.Sprintf("failed to decode input: %v", e.Err)
	}
	return fmt.Sprintf("failed to decode input (tried %s): %v", strings.Join(e.Attempted, ", "), e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// registry is filled by init() in the build-tagged decoder files and kept in
// priority order: svg, pdf, office, html, video
var registry []Decoder

func register(d Decoder) {
	registry = append(registry, d)
	slices.SortStableFunc(registry, func(a, b Decoder) int {
		return int(a.Kind) - int(b.Kind)
	})
}

// Capabilities lists the decoders compiled into this binary, in the order they are tried
func Capabilities() []string {
	names := make([]string, 0, len(registry)+1)
	for _, d := range registry {
		names = append(names, d.Name)
	}
	return append(names, "raster")
}

// Dispatcher picks a decoder for each input
type Dispatcher struct {
	Decoders []Decoder
	Log      log.Interface
}

// New returns a Dispatcher using every compiled-in decoder
func New(logger log.Interface) *Dispatcher {
	if logger == nil {
		logger = log.Log
	}
	return &Dispatcher{
		Decoders: slices.Clone(registry),
		Log:      logger,
	}
}

func (d *Dispatcher) logger() log.Interface {
	if d.Log == nil {
		return log.Log
	}
	return d.Log
}

func (d *Dispatcher) decoder(kind Kind) (Decoder, bool) {
	for _, dec := range d.Decoders {
		if dec.Kind == kind {
			return dec, true
		}
	}
	return Decoder{}, false
}

// Load decodes in into an image
func (d *Dispatcher) Load(ctx context.Context, in *Input) (image.Image, error) {
	return d.load(ctx, in, 0)
}

// LoadFile reads path and decodes it. URLs and HTML files are handed to the
// HTML decoder by reference so that relative resources resolve.
func (d *Dispatcher) LoadFile(ctx context.Context, path string, in Input) (image.Image, error) {
	return d.loadFile(ctx, path, in, 0)
}

func (d *Dispatcher) loadFile(ctx context.Context, path string, in Input, depth int) (image.Image, error) {
	in.Path = path
	in.Ext = Ext(path)

	if in.Kind == Auto || in.Kind == HTML {
		if dec, ok := d.decoder(HTML); ok && (IsURL(path) || in.Ext == "html" || in.Ext == "htm" || in.Kind == HTML) {
			d.logger().WithField("path", path).Debug("rendering html by reference")
			in.Data = []byte(path)
			img, err := dec.Decode(ctx, &in)
			if err != nil {
				return nil, &DecodeError{Attempted: []string{dec.Name}, Err: err}
			}
			return img, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	in.Data = data

	return d.load(ctx, &in, depth)
}

func (d *Dispatcher) load(ctx context.Context, in *Input, depth int) (image.Image, error) {
	switch in.Kind {
	case Text:
		return nil, &DecodeError{Err: ErrTextInput}
	case Image:
		img, err := decodeRaster(in.Data)
		if err != nil {
			return nil, &DecodeError{Attempted: []string{"raster"}, Err: err}
		}
		return img, nil
	case Auto:
	default:
		dec, ok := d.decoder(in.Kind)
		if !ok {
			return nil, &DecodeError{Attempted: []string{in.Kind.String()}, Err: fmt.Errorf("%w: %s", ErrUnsupported, in.Kind)}
		}
		img, err := dec.Decode(ctx, in)
		if err != nil {
			return nil, &DecodeError{Attempted: []string{dec.Name}, Err: err}
		}
		return img, nil
	}

	for _, dec := range d.Decoders {
		if dec.Match == nil || !dec.Match(in) {
			continue
		}
		d.logger().WithFields(log.Fields{
			"decoder": dec.Name,
			"ext":     in.Ext,
			"bytes":   len(in.Data),
		}).Debug("decoder matched")
		img, err := dec.Decode(ctx, in)
		if err != nil {
			return nil, &DecodeError{Attempted: []string{dec.Name}, Err: err}
		}
		return img, nil
	}

	img, err := decodeRaster(in.Data)
	if err == nil {
		return img, nil
	}

	if depth < maxIndirection {
		if path, ok := indirectPath(in.Data); ok {
			d.logger().WithField("path", path).Debug("input names a file, following it")
			next := *in
			next.Path, next.Ext, next.Data = "", "", nil
			return d.loadFile(ctx, path, next, depth+1)
		}
	}

	return nil, &DecodeError{Attempted: []string{"raster"}, Err: fmt.Errorf("%w: %w", ErrUndecodable, err)}
}

// indirectPath returns the input as a path when it is short UTF-8 text naming a regular file
func indirectPath(data []byte) (string, bool) {
	if len(data) == 0 || len(data) > 4096 || !utf8.Valid(data) {
		return "", false
	}
	path := string(bytes.TrimSpace(data))
	if path == "" || strings.ContainsAny(path, "\n\x00") {
		return "", false
	}
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// Ext returns the lower-case extension of path without the dot
func Ext(path string) string {
	if IsURL(path) {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// IsURL reports whether s looks like a URL the HTML decoder can navigate to
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "file://")
}
