package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"
	"github.com/blacktop/go-termview"
	"github.com/blacktop/go-termview/pkg/config"
	"github.com/blacktop/go-termview/pkg/decode"
	"github.com/spf13/cobra"
)

var probeQuery bool

func init() {
	probeCmd.Flags().BoolVarP(&probeQuery, "query", "q", false, "Query the terminal with CSI sequences when the kernel does not know the pixel size")
	rootCmd.AddCommand(probeCmd)
}

// probeCmd prints what termview knows about the current terminal
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Show terminal geometry, graphics support and compiled-in decoders",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if opts.verbose {
			log.SetLevel(log.DebugLevel)
		}

		conf, err := config.Load(opts.configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		caps := termview.DetectTerminalCapabilities(termview.ProbeOptions{
			QueryTerminal: probeQuery || conf.QueryTerminal,
		})
		printCapabilities(cmd.OutOrStdout(), caps, decode.Capabilities())
	},
}

func printCapabilities(w io.Writer, caps *termview.TerminalCapabilities, decoders []string) {
	fmt.Fprintln(w, "Terminal Environment:")
	fmt.Fprintf(w, "  TERM: %s\n", caps.TermName)
	fmt.Fprintf(w, "  TERM_PROGRAM: %s\n", caps.TermProgram)
	fmt.Fprintf(w, "  In tmux: %v\n", caps.IsTmux)
	fmt.Fprintf(w, "  True Color: %v\n", caps.TrueColor)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Size Information:")
	ws := caps.Winsize
	if ws.Cols > 0 && ws.Rows > 0 {
		fmt.Fprintf(w, "  Window Size: %dx%d characters\n", ws.Cols, ws.Rows)
	} else {
		fmt.Fprintln(w, "  Window Size: Not detected")
	}
	if ws.PixelWidth > 0 && ws.PixelHeight > 0 {
		fmt.Fprintf(w, "  Window Pixels: %dx%d\n", ws.PixelWidth, ws.PixelHeight)
	} else {
		fmt.Fprintln(w, "  Window Pixels: Not detected (using estimates)")
	}
	if caps.FontWidth > 0 && caps.FontHeight > 0 {
		fmt.Fprintf(w, "  Font Size: %dx%d pixels\n", caps.FontWidth, caps.FontHeight)
	}
	fmt.Fprintf(w, "  Drawing Area: %dx%d pixels\n", caps.Geometry.Width, caps.Geometry.Height)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Graphics Protocol Support:")
	fmt.Fprintf(w, "  Kitty Graphics: %v\n", caps.KittyGraphics)
	fmt.Fprintf(w, "  Sixel Graphics: %v\n", caps.SixelGraphics)
	fmt.Fprintf(w, "  iTerm2 Graphics: %v\n", caps.ITerm2Graphics)
	fmt.Fprintf(w, "  Auto-detected: %s\n", caps.Detected)
	supported := make([]string, 0, 4)
	for _, p := range caps.Protocols() {
		supported = append(supported, p.String())
	}
	fmt.Fprintf(w, "  Supported: %s\n", strings.Join(supported, ", "))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Decoders: %s\n", strings.Join(decoders, ", "))
}
