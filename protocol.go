package termview

import (
	"fmt"
	"os"
	"strings"
)

// Protocol identifies a terminal graphics protocol
type Protocol int

const (
	Auto Protocol = iota
	Kitty
	Sixel
	ITerm2
	Halfblocks
)

var protocolNames = []string{"auto", "kitty", "sixel", "iterm2", "halfblocks"}

func (p Protocol) String() string {
	if p >= 0 && int(p) < len(protocolNames) {
		return protocolNames[p]
	}
	return fmt.Sprintf("Protocol(%d)", int(p))
}

// ParseProtocol returns the protocol with the given name
func ParseProtocol(name string) (Protocol, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Auto, nil
	}
	for i, n := range protocolNames {
		if n == name {
			return Protocol(i), nil
		}
	}
	return Auto, fmt.Errorf("unsupported protocol: %q", name)
}

// DetectProtocol picks a protocol from environment variables only.
// Kitty is the default when nothing is recognised.
func DetectProtocol() Protocol {
	switch {
	case KittySupported():
		return Kitty
	case ITerm2Supported():
		return ITerm2
	case SixelSupported():
		return Sixel
	default:
		return Kitty
	}
}

// KittySupported checks if the current terminal advertises the Kitty graphics protocol
func KittySupported() bool {
	termProgram := os.Getenv("TERM_PROGRAM")
	switch {
	case os.Getenv("KITTY_WINDOW_ID") != "":
		return true
	case strings.Contains(strings.ToLower(os.Getenv("TERM")), "kitty"):
		return true
	case termProgram == "ghostty" || os.Getenv("GHOSTTY_RESOURCES_DIR") != "":
		return true
	case termProgram == "WezTerm" || os.Getenv("WEZTERM_PANE") != "":
		return true
	case termProgram == "rio":
		return true
	case strings.Contains(os.Getenv("TERMINFO"), "Ghostty"): // tmux
		return true
	default:
		return false
	}
}

// ITerm2Supported checks if iTerm2 inline images are supported in the current environment
func ITerm2Supported() bool {
	termProgram := os.Getenv("TERM_PROGRAM")
	switch {
	case termProgram == "iTerm.app":
		return true
	case termProgram == "vscode" && os.Getenv("TERM_PROGRAM_VERSION") != "":
		return true
	case termProgram == "mintty" || os.Getenv("TERM") == "mintty":
		return true
	case termProgram == "WarpTerminal":
		return true
	case strings.Contains(strings.ToLower(os.Getenv("LC_TERMINAL")), "iterm"):
		return true
	case os.Getenv("ITERM_SESSION_ID") != "":
		return true
	default:
		return false
	}
}

// SixelSupported checks if Sixel is likely supported in the current environment
func SixelSupported() bool {
	termEnv := os.Getenv("TERM")
	switch {
	case strings.Contains(termEnv, "sixel"):
		return true
	case strings.Contains(termEnv, "mlterm"):
		return true
	case strings.Contains(termEnv, "foot"):
		return true
	case strings.Contains(termEnv, "yaft"):
		return true
	case strings.Contains(termEnv, "xterm") && os.Getenv("XTERM_VERSION") != "":
		// xterm needs to be started with -ti 340 flag
		return true
	case strings.Contains(os.Getenv("TERM_PROGRAM"), "mlterm"):
		return true
	default:
		return false
	}
}
