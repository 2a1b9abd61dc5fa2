//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package termview

import (
	"os"

	"golang.org/x/sys/unix"
)

// probeWinsize reads TIOCGWINSZ from the standard streams, then /dev/tty
func probeWinsize() Winsize {
	for _, f := range []*os.File{os.Stdout, os.Stdin, os.Stderr} {
		if ws, ok := ioctlWinsize(int(f.Fd())); ok {
			return ws
		}
	}

	tty, err := os.Open("/dev/tty")
	if err != nil {
		return Winsize{}
	}
	defer tty.Close()

	ws, _ := ioctlWinsize(int(tty.Fd()))
	return ws
}

func ioctlWinsize(fd int) (Winsize, bool) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || (ws.Col == 0 && ws.Xpixel == 0) {
		return Winsize{}, false
	}
	return Winsize{
		Cols:        int(ws.Col),
		Rows:        int(ws.Row),
		PixelWidth:  int(ws.Xpixel),
		PixelHeight: int(ws.Ypixel),
	}, true
}
