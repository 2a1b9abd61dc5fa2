package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"unicode/utf8"

	"github.com/apex/log"
	"github.com/blacktop/go-termview"
	"github.com/blacktop/go-termview/pkg/decode"
)

// Outcome is the result of processing one item
type Outcome int

const (
	Success Outcome = iota
	// DecodeFailure means no decoder understood the item; the next item still runs
	DecodeFailure
	// RenderFailure means sizing or encoding failed; the next item still runs
	RenderFailure
	// Fatal stops the run
	Fatal
)

var outcomeNames = []string{"success", "decode failure", "render failure", "fatal"}

func (o Outcome) String() string {
	if o >= 0 && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

var (
	// ErrMultipleOutput is returned when a single output file is asked for several inputs
	ErrMultipleOutput = errors.New("cannot specify multiple files with --output")
	// ErrMultiplePages is returned when a page selection is asked for several inputs
	ErrMultiplePages = errors.New("cannot specify multiple files with --pages")
	// ErrNoInput is returned when there are no files and nothing on stdin
	ErrNoInput = errors.New("no input files provided and no data piped to stdin")
)

// Items is what one invocation works on: either piped data or a list of files
type Items struct {
	Stdin io.Reader
	Files []string
}

// Pipeline turns inputs into terminal output, one item at a time
type Pipeline struct {
	Dispatcher *decode.Dispatcher
	Encoder    termview.Encoder
	// Computed once per run and never changed
	Geometry   termview.Geometry
	Request    termview.SizeRequest
	Background *color.NRGBA
	Filter     termview.Filter
	// FileOutput writes a bare PNG instead of terminal escapes
	FileOutput bool
	PrintName  bool
	// Kind and Pages applied to every item
	Kind     decode.Kind
	Pages    termview.PageSelection
	Fallback TextViewer
	Log      log.Interface
}

func (p *Pipeline) logger() log.Interface {
	if p.Log == nil {
		return log.Log
	}
	return p.Log
}

// Validate checks the settings that would make the whole run pointless
func (p *Pipeline) Validate(items Items) error {
	if err := p.Request.Validate(); err != nil {
		return err
	}
	if items.Stdin == nil && len(items.Files) > 1 {
		if p.FileOutput {
			return ErrMultipleOutput
		}
		if p.Pages.IsSet() {
			return ErrMultiplePages
		}
	}
	if items.Stdin == nil && len(items.Files) == 0 {
		return ErrNoInput
	}
	return nil
}

// Render sizes, flattens and encodes a decoded image
func (p *Pipeline) Render(w io.Writer, src image.Image) error {
	img := termview.ToNRGBA(src)
	if img == nil {
		return fmt.Errorf("%w: nothing to render", termview.ErrEncoding)
	}

	size := termview.Plan(img.Bounds().Size(), p.Request, p.Geometry)
	p.logger().WithFields(log.Fields{
		"source":   img.Bounds().Size(),
		"planned":  size,
		"geometry": fmt.Sprintf("%dx%d", p.Geometry.Width, p.Geometry.Height),
	}).Debug("planned render size")

	if size.X != 0 && size.Y != 0 {
		img = termview.Resize(img, size, p.Filter)
	}
	if p.Background != nil {
		img = termview.Composite(img, *p.Background)
	}

	if p.FileOutput {
		return termview.EncodePNG(w, img)
	}
	if p.Encoder == nil {
		return fmt.Errorf("%w: no encoder configured", termview.ErrEncoding)
	}
	return p.Encoder.Encode(w, img)
}

// Clear writes the encoder's clear command
func (p *Pipeline) Clear(w io.Writer) error {
	if p.Encoder == nil {
		return fmt.Errorf("%w: no encoder configured", termview.ErrEncoding)
	}
	return p.Encoder.Clear(w)
}

func (p *Pipeline) input() decode.Input {
	width := p.Request.Width
	if width == 0 {
		width = p.Geometry.Width
	}
	return decode.Input{
		Kind:        p.Kind,
		Pages:       p.Pages,
		TargetWidth: width,
	}
}

// ProcessData decodes and renders piped data
func (p *Pipeline) ProcessData(ctx context.Context, w, errw io.Writer, data []byte) Outcome {
	in := p.input()
	in.Data = data

	img, err := p.Dispatcher.Load(ctx, &in)
	if err != nil {
		return p.decodeFailed(w, errw, "stdin", data, err)
	}
	if p.PrintName {
		fmt.Fprintln(errw, "stdin")
	}
	if err := p.Render(w, img); err != nil {
		fmt.Fprintf(errw, "Error rendering stdin: %v\n", err)
		return RenderFailure
	}
	return Success
}

// ProcessFile decodes and renders one file (or URL)
func (p *Pipeline) ProcessFile(ctx context.Context, w, errw io.Writer, path string) Outcome {
	if p.PrintName {
		fmt.Fprintln(errw, path)
	}

	img, err := p.Dispatcher.LoadFile(ctx, path, p.input())
	if err != nil {
		var data []byte
		if !decode.IsURL(path) {
			data, _ = os.ReadFile(path)
		}
		return p.decodeFailed(w, errw, path, data, err)
	}
	if err := p.Render(w, img); err != nil {
		fmt.Fprintf(errw, "Error rendering %s: %v\n", path, err)
		return RenderFailure
	}
	return Success
}

// decodeFailed shows text with the fallback viewer when nothing claimed it.
// Failures of a decoder that did claim the input are reported as is.
func (p *Pipeline) decodeFailed(w, errw io.Writer, name string, data []byte, err error) Outcome {
	showText := errors.Is(err, decode.ErrUndecodable) || errors.Is(err, decode.ErrTextInput)
	if showText && !p.FileOutput && p.Fallback != nil && len(data) > 0 && utf8.Valid(data) {
		p.logger().WithError(err).WithField("name", name).Debug("showing as text")
		if ferr := p.Fallback.Show(w, name, data); ferr != nil {
			fmt.Fprintf(errw, "Error loading %s: %v (Fallback failed: %v)\n", name, err, ferr)
			return DecodeFailure
		}
		return Success
	}
	fmt.Fprintf(errw, "Error loading %s: %v\n", name, err)
	return DecodeFailure
}

// Run processes every item in order and returns the process exit code
func (p *Pipeline) Run(ctx context.Context, w, errw io.Writer, items Items) int {
	if err := p.Validate(items); err != nil {
		fmt.Fprintf(errw, "Error: %v\n", err)
		return 1
	}

	if items.Stdin != nil {
		data, err := io.ReadAll(items.Stdin)
		if err != nil {
			fmt.Fprintf(errw, "Error reading stdin: %v\n", err)
			return 1
		}
		if p.ProcessData(ctx, w, errw, data) != Success {
			return 1
		}
		return 0
	}

	code := 0
	for _, path := range items.Files {
		outcome := p.ProcessFile(ctx, w, errw, path)
		p.logger().WithFields(log.Fields{"path": path, "outcome": outcome.String()}).Debug("item done")
		if outcome != Success {
			code = 1
		}
	}
	return code
}
