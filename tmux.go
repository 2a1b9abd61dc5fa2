package termview

import (
	"os"
	"os/exec"
	"strings"
	"sync"
)

var (
	tmuxPassthroughEnabled bool
	tmuxPassthroughOnce    sync.Once
)

// InTmux checks if running inside tmux or screen
func InTmux() bool {
	return os.Getenv("TMUX") != "" ||
		os.Getenv("TERM_PROGRAM") == "tmux" ||
		os.Getenv("TERM_PROGRAM") == "screen"
}

// EnableTmuxPassthrough turns on allow-passthrough for the current pane.
// Graphics escapes are swallowed by tmux without it.
func EnableTmuxPassthrough() bool {
	tmuxPassthroughOnce.Do(func() {
		// -p flag sets the option for the current pane only
		cmd := exec.Command("tmux", "set", "-p", "allow-passthrough", "on")
		if err := cmd.Run(); err == nil {
			tmuxPassthroughEnabled = true
		}
	})
	return tmuxPassthroughEnabled
}

// wrapTmuxPassthrough wraps a single escape sequence for tmux passthrough
func wrapTmuxPassthrough(seq string) string {
	if !strings.HasPrefix(seq, "\x1b") {
		return seq
	}
	// tmux passthrough format: \ePtmux;{escaped_sequence}\e\\
	// All \e (ESC) characters in the sequence must be doubled
	return "\x1bPtmux;" + strings.ReplaceAll(seq, "\x1b", "\x1b\x1b") + "\x1b\\"
}
