package termview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var terminalEnvVars = []string{
	"TERM", "TERM_PROGRAM", "TERM_PROGRAM_VERSION", "TERMINFO", "LC_TERMINAL",
	"KITTY_WINDOW_ID", "GHOSTTY_RESOURCES_DIR", "WEZTERM_PANE", "ITERM_SESSION_ID",
	"XTERM_VERSION", "TMUX", "COLORTERM",
}

// clearTerminalEnv blanks every variable the detectors look at
func clearTerminalEnv(t *testing.T) {
	t.Helper()
	for _, key := range terminalEnvVars {
		t.Setenv(key, "")
	}
}

func TestDetectProtocol(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected Protocol
	}{
		{
			name:     "Kitty terminal via TERM",
			envVars:  map[string]string{"TERM": "xterm-kitty"},
			expected: Kitty,
		},
		{
			name:     "Kitty terminal via KITTY_WINDOW_ID",
			envVars:  map[string]string{"KITTY_WINDOW_ID": "1"},
			expected: Kitty,
		},
		{
			name:     "Ghostty",
			envVars:  map[string]string{"TERM_PROGRAM": "ghostty"},
			expected: Kitty,
		},
		{
			name:     "WezTerm speaks kitty",
			envVars:  map[string]string{"TERM_PROGRAM": "WezTerm"},
			expected: Kitty,
		},
		{
			name:     "iTerm2 terminal",
			envVars:  map[string]string{"TERM_PROGRAM": "iTerm.app"},
			expected: ITerm2,
		},
		{
			name:     "Mintty terminal",
			envVars:  map[string]string{"TERM_PROGRAM": "mintty"},
			expected: ITerm2,
		},
		{
			name:     "foot speaks sixel",
			envVars:  map[string]string{"TERM": "foot"},
			expected: Sixel,
		},
		{
			name:     "xterm with version",
			envVars:  map[string]string{"TERM": "xterm-256color", "XTERM_VERSION": "XTerm(390)"},
			expected: Sixel,
		},
		{
			name:     "Unknown terminal defaults to kitty",
			envVars:  map[string]string{"TERM": "xterm-256color"},
			expected: Kitty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTerminalEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.expected, DetectProtocol())
		})
	}
}

func TestParseProtocol(t *testing.T) {
	tests := []struct {
		input   string
		want    Protocol
		wantErr bool
	}{
		{input: "", want: Auto},
		{input: "auto", want: Auto},
		{input: "Kitty", want: Kitty},
		{input: "sixel", want: Sixel},
		{input: "iterm2", want: ITerm2},
		{input: "halfblocks", want: Halfblocks},
		{input: "braille", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseProtocol(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}

func TestProtocolString(t *testing.T) {
	assert.Equal(t, "kitty", Kitty.String())
	assert.Equal(t, "Protocol(42)", Protocol(42).String())
}

func TestInTmux(t *testing.T) {
	clearTerminalEnv(t)
	assert.False(t, InTmux())

	t.Setenv("TMUX", "/tmp/tmux-1000/default,1234,0")
	assert.True(t, InTmux())
}

func TestWrapTmuxPassthrough(t *testing.T) {
	assert.Equal(t, "\x1bPtmux;\x1b\x1b_Ga=d\x1b\x1b\\\x1b\\", wrapTmuxPassthrough("\x1b_Ga=d\x1b\\"))
	assert.Equal(t, "plain", wrapTmuxPassthrough("plain"))
}

func TestCapabilitiesProtocols(t *testing.T) {
	caps := &TerminalCapabilities{KittyGraphics: true, SixelGraphics: true}
	assert.Equal(t, []Protocol{Kitty, Sixel, Halfblocks}, caps.Protocols())

	assert.Equal(t, []Protocol{Halfblocks}, (&TerminalCapabilities{}).Protocols())
}

func TestDetectTerminalCapabilities(t *testing.T) {
	clearTerminalEnv(t)
	t.Setenv("TERM_PROGRAM", "iTerm.app")
	t.Setenv("COLORTERM", "truecolor")

	caps := DetectTerminalCapabilities(ProbeOptions{})
	require.NotNil(t, caps)
	assert.True(t, caps.ITerm2Graphics)
	assert.False(t, caps.KittyGraphics)
	assert.Equal(t, ITerm2, caps.Detected)
	assert.True(t, caps.TrueColor)
	assert.Positive(t, caps.Geometry.Width)
	assert.Positive(t, caps.Geometry.Height)
}
