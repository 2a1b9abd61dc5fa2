package csi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTextAreaResponse(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		wantW  int
		wantH  int
		wantOK bool
	}{
		{name: "standard", in: "\x1b[4;600;800t", wantW: 800, wantH: 600, wantOK: true},
		{name: "trailing semicolon", in: "\x1b[4;480;640;t", wantW: 640, wantH: 480, wantOK: true},
		{name: "leading noise", in: "garbage\x1b[4;10;20t", wantW: 20, wantH: 10, wantOK: true},
		{name: "cell size reply", in: "\x1b[6;16;8t", wantOK: false},
		{name: "missing terminator", in: "\x1b[4;600;800", wantOK: false},
		{name: "zero height", in: "\x1b[4;0;800t", wantOK: false},
		{name: "non numeric", in: "\x1b[4;abc;800t", wantOK: false},
		{name: "empty", in: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, ok := ParseTextAreaResponse(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantW, w)
				assert.Equal(t, tt.wantH, h)
			}
		})
	}
}

func TestParseCellSizeResponse(t *testing.T) {
	w, h, ok := ParseCellSizeResponse("\x1b[6;16;8t")
	assert.True(t, ok)
	assert.Equal(t, 8, w)
	assert.Equal(t, 16, h)

	_, _, ok = ParseCellSizeResponse("\x1b[4;16;8t")
	assert.False(t, ok)
}

func TestFontSize(t *testing.T) {
	w, h, ok := FontSize(800, 480, 100, 30)
	assert.True(t, ok)
	assert.Equal(t, 8, w)
	assert.Equal(t, 16, h)

	_, _, ok = FontSize(800, 480, 0, 30)
	assert.False(t, ok, "zero columns")

	_, _, ok = FontSize(10000, 480, 100, 30)
	assert.False(t, ok, "100px wide cells are bogus")
}

func TestWrapTmuxPassthrough(t *testing.T) {
	t.Setenv("TERM_PROGRAM", "")
	t.Setenv("TMUX", "")
	assert.Equal(t, "\x1b[14t", wrapTmuxPassthrough("\x1b[14t"))

	t.Setenv("TMUX", "/tmp/tmux-1000/default,1,0")
	assert.Equal(t, "\x1bPtmux;\x1b\x1b[14t\x1b\\", wrapTmuxPassthrough("\x1b[14t"))
	assert.Equal(t, "plain", wrapTmuxPassthrough("plain"))
}
