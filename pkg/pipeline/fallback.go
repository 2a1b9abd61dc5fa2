package pipeline

import (
	"bytes"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// TextViewer displays input that could not be decoded as an image
type TextViewer interface {
	Show(w io.Writer, name string, data []byte) error
}

// HighlightViewer prints text syntax highlighted for a 256 color terminal
type HighlightViewer struct {
	// Wrap width in columns, 0 disables wrapping
	Columns int
	// chroma style name, monokai when empty
	Style string
}

// Show highlights data, picking a lexer by file name and then by content
func (v *HighlightViewer) Show(w io.Writer, name string, data []byte) error {
	text := string(data)

	var lexer chroma.Lexer
	if name != "" {
		lexer = lexers.Match(name)
	}
	if lexer == nil {
		lexer = lexers.Analyse(text)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	styleName := v.Style
	if styleName == "" {
		styleName = "monokai"
	}
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return fmt.Errorf("failed to tokenise %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return fmt.Errorf("failed to highlight %s: %w", name, err)
	}

	out := buf.String()
	if v.Columns > 0 {
		out = wrap.String(wordwrap.String(out, v.Columns), v.Columns)
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out += "\n"
	}
	_, err = io.WriteString(w, out)
	return err
}

// PlainViewer copies text through unchanged
type PlainViewer struct{}

func (PlainViewer) Show(w io.Writer, _ string, data []byte) error {
	_, err := w.Write(data)
	return err
}
