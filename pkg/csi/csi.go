/*
Package csi provides CSI (Control Sequence Introducer) query functions for terminal geometry
*/
package csi

import (
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

// QueryTimeout is the default timeout for CSI queries
const QueryTimeout = 100 * time.Millisecond

// QueryTextAreaSizeInPixels queries text area size in pixels using CSI 14t
// returns: width and height in pixels, or 0,0,false if query fails
func QueryTextAreaSizeInPixels() (width, height int, ok bool) {
	return query("\x1b[14t", ParseTextAreaResponse)
}

// QueryCharacterCellSizeInPixels queries character cell size in pixels using CSI 16t
// returns: width and height in pixels per character, or 0,0,false if query fails
func QueryCharacterCellSizeInPixels() (width, height int, ok bool) {
	return query("\x1b[16t", ParseCellSizeResponse)
}

// FontSize divides a pixel area by its cell grid.
// Font sizes outside 4-50 pixels are treated as bogus.
func FontSize(pixelWidth, pixelHeight, cols, rows int) (fontWidth, fontHeight int, ok bool) {
	if pixelWidth <= 0 || pixelHeight <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0, false
	}

	fontWidth = pixelWidth / cols
	fontHeight = pixelHeight / rows

	if fontWidth < 4 || fontWidth > 50 || fontHeight < 4 || fontHeight > 50 {
		return 0, 0, false
	}

	return fontWidth, fontHeight, true
}

// QuerySupported checks if a terminal likely supports CSI queries
// This is a heuristic based on terminal type and environment
func QuerySupported() bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}
	switch os.Getenv("TERM_PROGRAM") {
	case "Apple_Terminal":
		// Apple Terminal often has CSI queries disabled for security
		return false
	case "vscode":
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}

// ParseTextAreaResponse parses CSI 4 ; height ; width t
func ParseTextAreaResponse(response string) (width, height int, ok bool) {
	return parseSizeReport(response, "[4;")
}

// ParseCellSizeResponse parses CSI 6 ; height ; width t
func ParseCellSizeResponse(response string) (width, height int, ok bool) {
	return parseSizeReport(response, "[6;")
}

func parseSizeReport(response, prefix string) (width, height int, ok bool) {
	start := strings.Index(response, prefix)
	if start == -1 {
		return 0, 0, false
	}
	remaining := response[start+len(prefix):]

	end := strings.IndexByte(remaining, 't')
	if end == -1 {
		return 0, 0, false
	}

	parts := strings.Split(remaining[:end], ";")
	if len(parts) < 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h <= 0 {
		return 0, 0, false
	}
	w, err := strconv.Atoi(parts[1])
	if err != nil || w <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// query writes q to the controlling terminal in raw mode and parses the reply
func query(q string, parse func(string) (int, int, bool)) (width, height int, ok bool) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return 0, 0, false
	}
	defer tty.Close()

	oldState, err := term.MakeRaw(int(tty.Fd()))
	if err != nil {
		return 0, 0, false
	}
	defer term.Restore(int(tty.Fd()), oldState)

	if _, err := tty.WriteString(wrapTmuxPassthrough(q)); err != nil {
		return 0, 0, false
	}

	responseChan := make(chan [3]int, 1)
	go func() {
		buf := make([]byte, 64)
		n, err := tty.Read(buf)
		if err == nil && n > 0 {
			if w, h, ok := parse(string(buf[:n])); ok {
				responseChan <- [3]int{w, h, 1}
				return
			}
		}
		responseChan <- [3]int{0, 0, 0}
	}()

	select {
	case result := <-responseChan:
		return result[0], result[1], result[2] == 1
	case <-time.After(QueryTimeout):
		return 0, 0, false
	}
}

// inTmux checks if running inside tmux
func inTmux() bool {
	return os.Getenv("TMUX") != "" || os.Getenv("TERM_PROGRAM") == "tmux"
}

// wrapTmuxPassthrough wraps an escape sequence for tmux passthrough if needed
func wrapTmuxPassthrough(output string) string {
	if inTmux() {
		if !strings.HasPrefix(output, "\x1b") {
			return output
		}
		// tmux passthrough format: \ePtmux;{escaped_sequence}\e\\
		// All \e (ESC) characters in the sequence must be doubled
		return "\x1bPtmux;" + strings.ReplaceAll(output, "\x1b", "\x1b\x1b") + "\x1b\\"
	}
	return output
}
