package termview

import (
	"os"
	"strconv"

	"github.com/blacktop/go-termview/pkg/csi"
)

const (
	// Estimated cell size in pixels when the terminal only reports cells
	EstimatedCellWidth  = 10
	EstimatedCellHeight = 20

	// Geometry used when nothing at all is known about the terminal
	FallbackWidth  = 800
	FallbackHeight = 400

	// Rows kept free below the image for the next prompt and a blank line
	reservedRows = 2
)

// Winsize is what the terminal reported about itself; zero means unknown
type Winsize struct {
	Cols        int
	Rows        int
	PixelWidth  int
	PixelHeight int
}

// Geometry is the usable drawing surface in pixels
type Geometry struct {
	Width  int
	Height int
}

// ProbeOptions controls how hard ProbeGeometry tries
type ProbeOptions struct {
	// QueryTerminal allows a CSI 14t round-trip when the kernel does not know the pixel size
	QueryTerminal bool
}

// Terminal sources, replaced in tests
var (
	readWinsize   = probeWinsize
	queryTextArea = func() (int, int, bool) {
		if !csi.QuerySupported() {
			return 0, 0, false
		}
		return csi.QueryTextAreaSizeInPixels()
	}
)

// ProbeGeometry asks the controlling terminal for its size and resolves it
// into a drawing surface. It never fails; unknown values fall through to
// estimates and finally to FallbackWidth x FallbackHeight.
func ProbeGeometry(opts ProbeOptions) (Geometry, Winsize) {
	ws := readWinsize()

	if (ws.PixelWidth == 0 || ws.PixelHeight == 0) && opts.QueryTerminal {
		if w, h, ok := queryTextArea(); ok {
			if ws.PixelWidth == 0 {
				ws.PixelWidth = w
			}
			if ws.PixelHeight == 0 {
				ws.PixelHeight = h
			}
		}
	}

	if ws.Cols == 0 {
		ws.Cols = envInt("COLUMNS")
	}
	if ws.Rows == 0 {
		ws.Rows = envInt("LINES")
	}

	return ResolveGeometry(ws), ws
}

// ResolveGeometry turns a (possibly partial) Winsize into a Geometry
func ResolveGeometry(ws Winsize) Geometry {
	g := Geometry{Width: FallbackWidth, Height: FallbackHeight}

	switch {
	case ws.PixelWidth > 0:
		g.Width = ws.PixelWidth
	case ws.Cols > 0:
		g.Width = ws.Cols * EstimatedCellWidth
	}

	switch {
	case ws.PixelHeight > 0:
		g.Height = ws.PixelHeight
		if ws.Cols > 0 && ws.Rows > reservedRows {
			g.Height = g.Height * (ws.Rows - reservedRows) / ws.Rows
		}
	case ws.Rows > reservedRows:
		g.Height = (ws.Rows - reservedRows) * EstimatedCellHeight
	case ws.Rows > 0:
		g.Height = ws.Rows * EstimatedCellHeight
	}

	return g
}

func envInt(key string) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
