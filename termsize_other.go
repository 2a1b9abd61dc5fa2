//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package termview

import (
	"os"

	"golang.org/x/term"
)

// probeWinsize only knows the cell grid on platforms without TIOCGWINSZ
func probeWinsize() Winsize {
	for _, f := range []*os.File{os.Stdout, os.Stdin, os.Stderr} {
		if cols, rows, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return Winsize{Cols: cols, Rows: rows}
		}
	}
	return Winsize{}
}
