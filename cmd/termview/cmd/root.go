/*
Copyright © 2025 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/apex/log"
	clihander "github.com/apex/log/handlers/cli"
	"github.com/blacktop/go-termview"
	"github.com/blacktop/go-termview/pkg/config"
	"github.com/blacktop/go-termview/pkg/decode"
	"github.com/blacktop/go-termview/pkg/pipeline"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// options mirrors the command line flags
type options struct {
	width      int
	height     int
	fullWidth  bool
	fullHeight bool
	resize     bool
	noResize   bool
	background bool
	color      string
	mode       string
	output     string
	overwrite  bool
	input      string
	pages      string
	printName  bool
	tty        bool
	clear      bool
	protocol   string
	filter     string
	configPath string
	verbose    bool
}

var opts options

func init() {
	log.SetHandler(clihander.Default)

	flags := rootCmd.Flags()
	flags.IntVarP(&opts.width, "width", "w", 0, "Specify image width")
	flags.IntVarP(&opts.height, "height", "H", 0, "Specify image height")
	flags.BoolVarP(&opts.fullWidth, "fullwidth", "f", false, "Resize image to fill terminal width")
	flags.BoolVarP(&opts.fullHeight, "fullheight", "F", false, "Resize image to fill terminal height")
	flags.BoolVarP(&opts.resize, "resize", "r", false, "Resize image to fill terminal")
	flags.BoolVarP(&opts.noResize, "noresize", "n", false, "Disable automatic resizing")
	flags.BoolVarP(&opts.background, "background", "b", false, "Add background if image is transparent")
	flags.StringVarP(&opts.color, "color", "C", "FFFFFF", "Background color as hex string")
	flags.StringVarP(&opts.mode, "mode", "m", "png", "Transmission mode (png, zlib, raw)")
	flags.StringVarP(&opts.output, "output", "o", "", "Write a PNG to this file instead of the terminal")
	flags.BoolVarP(&opts.overwrite, "overwrite", "x", false, "Overwrite the output file if it exists")
	flags.StringVarP(&opts.input, "input", "i", "auto", "Input type (auto, image, text, svg, pdf, office, html, video)")
	flags.StringVarP(&opts.pages, "pages", "P", "", "Pages, sheets or slides to render, e.g. 1-3,34")
	flags.BoolVarP(&opts.printName, "printname", "p", false, "Print the name of each input to stderr")
	flags.BoolVarP(&opts.tty, "tty", "t", false, "Ignore stdin even when data is piped")
	flags.StringVar(&opts.protocol, "protocol", "auto", "Graphics protocol (auto, kitty, sixel, iterm2, halfblocks)")
	flags.StringVar(&opts.filter, "filter", "bilinear", "Resize filter (nearest, bilinear, bicubic, mitchell, lanczos2, lanczos3)")

	rootCmd.MarkFlagsMutuallyExclusive("width", "height", "fullwidth", "fullheight", "resize", "noresize")
	rootCmd.MarkFlagsMutuallyExclusive("output", "mode")
	rootCmd.MarkFlagsMutuallyExclusive("input", "pages")

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "V", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&opts.clear, "clear", "c", false, "Clear displayed images (does not print anything else)")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default $TERMVIEW_CONFIG or ~/.config/termview/config.yaml)")
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "termview [FILES...]",
	Short:         "Display images, documents and web pages in your terminal",
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("color") && !opts.background {
			return errors.New("--color requires --background")
		}
		if cmd.Flags().Changed("overwrite") && opts.output == "" {
			return errors.New("--overwrite requires --output")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		if opts.verbose {
			log.SetLevel(log.DebugLevel)
		}

		conf, err := config.Load(opts.configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		applyConfig(cmd, &opts, conf)

		if code := run(cmd.Context(), cmd, args, &opts, conf); code != 0 {
			os.Exit(code)
		}
	},
}

// applyConfig fills every flag the user did not set from the config file
func applyConfig(cmd *cobra.Command, o *options, conf *config.Config) {
	changed := cmd.Flags().Changed
	if !changed("mode") && conf.Mode != "" {
		o.mode = conf.Mode
	}
	if !changed("protocol") && conf.Protocol != "" {
		o.protocol = conf.Protocol
	}
	if !changed("filter") && conf.Filter != "" {
		o.filter = conf.Filter
	}
	if !changed("input") && conf.Input != "" {
		o.input = conf.Input
	}
	if !changed("background") && conf.Background {
		o.background = true
	}
	if !changed("color") && conf.Color != "" {
		o.color = conf.Color
	}
}

func (o *options) sizeRequest() termview.SizeRequest {
	return termview.SizeRequest{
		Width:      o.width,
		Height:     o.height,
		FillWidth:  o.fullWidth,
		FillHeight: o.fullHeight,
		AutoResize: o.resize,
		NoResize:   o.noResize,
	}
}

// buildPipeline turns the flags into a configured pipeline
func buildPipeline(o *options, conf *config.Config, geom termview.Geometry, ws termview.Winsize) (*pipeline.Pipeline, error) {
	mode, err := termview.ParseMode(o.mode)
	if err != nil {
		return nil, err
	}
	protocol, err := termview.ParseProtocol(o.protocol)
	if err != nil {
		return nil, err
	}
	filter, err := termview.ParseFilter(o.filter)
	if err != nil {
		return nil, err
	}
	kind, err := decode.ParseKind(o.input)
	if err != nil {
		return nil, err
	}
	pages, err := termview.ParsePages(o.pages)
	if err != nil {
		return nil, err
	}

	var background *color.NRGBA
	if o.background {
		c, err := termview.ParseColor(o.color)
		if err != nil {
			return nil, err
		}
		background = &c
	}

	passthrough := conf.Passthrough()
	if passthrough && termview.InTmux() {
		termview.EnableTmuxPassthrough()
	}

	enc, err := termview.NewEncoder(protocol, termview.EncoderOptions{
		Mode:        mode,
		Passthrough: passthrough,
		Columns:     ws.Cols,
		SixelColors: conf.Sixel.Colors,
		SixelDither: conf.Sixel.Dither,
	})
	if err != nil {
		return nil, err
	}

	var fallback pipeline.TextViewer = &pipeline.HighlightViewer{Columns: ws.Cols, Style: conf.TextStyle}
	if conf.TextStyle == config.PlainText {
		fallback = pipeline.PlainViewer{}
	}

	return &pipeline.Pipeline{
		Dispatcher: decode.New(log.Log),
		Encoder:    enc,
		Geometry:   geom,
		Request:    o.sizeRequest(),
		Background: background,
		Filter:     filter,
		FileOutput: o.output != "",
		PrintName:  o.printName,
		Kind:       kind,
		Pages:      pages,
		Fallback:   fallback,
		Log:        log.Log,
	}, nil
}

// stdinHasData reports whether something is piped to stdin
func stdinHasData() bool {
	fd := os.Stdin.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

func run(ctx context.Context, cmd *cobra.Command, args []string, o *options, conf *config.Config) int {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if ctx == nil {
		ctx = context.Background()
	}

	geom, ws := termview.ProbeGeometry(termview.ProbeOptions{QueryTerminal: conf.QueryTerminal})
	log.WithFields(log.Fields{
		"width":  geom.Width,
		"height": geom.Height,
		"cols":   ws.Cols,
		"rows":   ws.Rows,
	}).Debug("terminal geometry")

	p, err := buildPipeline(o, conf, geom, ws)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if o.clear {
		if err := p.Clear(stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	items := pipeline.Items{Files: args}
	if !o.tty && stdinHasData() {
		items.Stdin = os.Stdin
	}
	if err := p.Validate(items); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	var w io.Writer = stdout
	var out *outputFile
	if o.output != "" {
		out, err = createOutput(o.output, o.overwrite)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer out.Abort()
		w = out
	}

	code := p.Run(ctx, w, stderr, items)

	if out != nil && code == 0 {
		if err := out.Commit(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	return code
}

// outputFile is a temp file next to the destination, renamed into place on Commit
type outputFile struct {
	*os.File
	dest      string
	committed bool
}

func createOutput(path string, overwrite bool) (*outputFile, error) {
	dest, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid output path: %w", err)
	}
	parent := filepath.Dir(dest)
	if fi, err := os.Stat(parent); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("output directory does not exist: %s", parent)
	}
	if _, err := os.Stat(dest); err == nil && !overwrite {
		return nil, fmt.Errorf("output file already exists: %s (use --overwrite)", path)
	}
	f, err := os.CreateTemp(parent, ".termview-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file in %s: %w", parent, err)
	}
	return &outputFile{File: f, dest: dest}, nil
}

// Commit closes the temp file and moves it over the destination
func (o *outputFile) Commit() error {
	if err := o.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", o.dest, err)
	}
	if err := os.Chmod(o.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", o.dest, err)
	}
	if err := os.Rename(o.Name(), o.dest); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	o.committed = true
	return nil
}

// Abort removes the temp file unless it was committed
func (o *outputFile) Abort() {
	if o.committed {
		return
	}
	o.Close()
	os.Remove(o.Name())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
