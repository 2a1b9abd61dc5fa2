package termview

import (
	"os"
	"strings"

	"github.com/blacktop/go-termview/pkg/csi"
)

// TerminalCapabilities represents the detected capabilities of the terminal
type TerminalCapabilities struct {
	// Graphics Protocol Support
	KittyGraphics  bool
	SixelGraphics  bool
	ITerm2Graphics bool
	Detected       Protocol

	// Font and Size Information
	FontWidth  int
	FontHeight int
	Winsize    Winsize
	Geometry   Geometry

	// Environment Information
	IsTmux      bool
	TrueColor   bool
	TermName    string
	TermProgram string
}

// DetectTerminalCapabilities collects everything termview knows about the
// current terminal. Nothing here fails; unknowns stay zero.
func DetectTerminalCapabilities(opts ProbeOptions) *TerminalCapabilities {
	caps := &TerminalCapabilities{
		KittyGraphics:  KittySupported(),
		SixelGraphics:  SixelSupported(),
		ITerm2Graphics: ITerm2Supported(),
		Detected:       DetectProtocol(),
		IsTmux:         InTmux(),
		TermName:       os.Getenv("TERM"),
		TermProgram:    os.Getenv("TERM_PROGRAM"),
	}

	colorTerm := strings.ToLower(os.Getenv("COLORTERM"))
	caps.TrueColor = colorTerm == "truecolor" || colorTerm == "24bit" || caps.KittyGraphics || caps.ITerm2Graphics

	caps.Geometry, caps.Winsize = ProbeGeometry(opts)

	if w, h, ok := csi.FontSize(caps.Winsize.PixelWidth, caps.Winsize.PixelHeight, caps.Winsize.Cols, caps.Winsize.Rows); ok {
		caps.FontWidth, caps.FontHeight = w, h
	} else if opts.QueryTerminal && csi.QuerySupported() {
		if w, h, ok := csi.QueryCharacterCellSizeInPixels(); ok {
			caps.FontWidth, caps.FontHeight = w, h
		}
	}

	return caps
}

// Protocols lists the protocols the environment advertises, best first.
// Halfblocks is always last.
func (c *TerminalCapabilities) Protocols() []Protocol {
	var out []Protocol
	if c.KittyGraphics {
		out = append(out, Kitty)
	}
	if c.ITerm2Graphics {
		out = append(out, ITerm2)
	}
	if c.SixelGraphics {
		out = append(out, Sixel)
	}
	return append(out, Halfblocks)
}
