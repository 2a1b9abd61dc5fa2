//go:build !nooffice && !nohtml

package decode

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"image"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/blacktop/go-termview"
	"github.com/xuri/excelize/v2"
)

const (
	officeHeader = "<html><body style='background:white; color:black; font-family: sans-serif;'>"
	officeFooter = "</body></html>"
)

var officeExts = []string{"xlsx", "docx", "pptx"}

func init() {
	register(Decoder{Name: "office", Kind: Office, Match: isOffice, Decode: decodeOffice})
}

func isOffice(in *Input) bool {
	return slices.Contains(officeExts, in.Ext)
}

// decodeOffice converts a workbook, document or presentation to HTML and
// renders that with the HTML decoder
func decodeOffice(ctx context.Context, in *Input) (image.Image, error) {
	markup, err := officeHTML(in)
	if err != nil {
		return nil, err
	}
	return decodeHTML(ctx, &Input{Data: markup, Kind: HTML})
}

func officeHTML(in *Input) ([]byte, error) {
	format := in.Ext
	if !slices.Contains(officeExts, format) {
		format = sniffOffice(in.Data)
	}

	var sb strings.Builder
	sb.WriteString(officeHeader)

	var err error
	switch format {
	case "xlsx":
		err = writeWorkbook(&sb, in.Data, in.Pages)
	case "pptx":
		err = writeSlides(&sb, in.Data, in.Pages)
	case "docx":
		err = writeDocument(&sb, in.Data)
	default:
		err = errors.New("unrecognised office document")
	}
	if err != nil {
		return nil, err
	}

	sb.WriteString(officeFooter)
	return []byte(sb.String()), nil
}

// sniffOffice guesses the format from the zip layout
func sniffOffice(data []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	for _, f := range zr.File {
		switch f.Name {
		case "xl/workbook.xml":
			return "xlsx"
		case "word/document.xml":
			return "docx"
		case "ppt/presentation.xml":
			return "pptx"
		}
	}
	return ""
}

// writeWorkbook renders the selected sheets (the first one by default) as tables
func writeWorkbook(sb *strings.Builder, data []byte, pages termview.PageSelection) error {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("cannot open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	var selected []string
	if pages.IsSet() {
		for _, i := range pages {
			if i < len(sheets) {
				selected = append(selected, sheets[i])
			}
		}
	} else if len(sheets) > 0 {
		selected = sheets[:1]
	}

	for _, name := range selected {
		if err := writeSheet(sb, f, name); err != nil {
			return err
		}
	}
	return nil
}

func writeSheet(sb *strings.Builder, f *excelize.File, name string) error {
	rows, err := f.GetRows(name)
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", name, err)
	}
	fmt.Fprintf(sb, "<h1>%s</h1><table border='1' style='border-collapse: collapse;'>", html.EscapeString(name))
	for _, row := range rows {
		sb.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(sb, "<td style='padding: 4px;'>%s</td>", html.EscapeString(cell))
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</table><br/>")
	return nil
}

// writeSlides renders the text of the selected slides (all by default), one box per slide
func writeSlides(sb *strings.Builder, data []byte, pages termview.PageSelection) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("cannot open pptx: %w", err)
	}

	slides := make(map[int]*zip.File)
	var numbers []int
	for _, f := range zr.File {
		num, ok := slideNumber(f.Name)
		if !ok {
			continue
		}
		slides[num] = f
		numbers = append(numbers, num)
	}
	slices.Sort(numbers)

	targets := numbers
	if pages.IsSet() {
		targets = make([]int, 0, len(pages))
		for _, p := range pages {
			targets = append(targets, p+1)
		}
	}

	for _, num := range targets {
		f, ok := slides[num]
		if !ok {
			continue
		}
		text, err := xmlText(f, "")
		if err != nil {
			return fmt.Errorf("failed to read slide %d: %w", num, err)
		}
		fmt.Fprintf(sb, "<div style='border: 1px solid black; padding: 20px; margin: 20px; min-height: 400px;'><h2>Slide %d</h2><p>%s</p></div>", num, text)
	}
	return nil
}

// slideNumber extracts N from ppt/slides/slideN.xml
func slideNumber(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "ppt/slides/slide")
	if !ok {
		return 0, false
	}
	rest, ok = strings.CutSuffix(rest, ".xml")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// writeDocument renders the body text of word/document.xml, one block per paragraph
func writeDocument(sb *strings.Builder, data []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("cannot open docx: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		text, err := xmlText(f, "<br/><br/>")
		if err != nil {
			return fmt.Errorf("failed to read document: %w", err)
		}
		sb.WriteString("<div style='padding: 40px; max-width: 800px;'>")
		sb.WriteString(text)
		sb.WriteString("</div>")
	}
	return nil
}

// xmlText collects the escaped character data of an OOXML part. paraBreak is
// written after every closing <p> element.
func xmlText(f *zip.File, paraBreak string) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var sb strings.Builder
	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			if s := strings.TrimSpace(string(t)); s != "" {
				sb.WriteString(html.EscapeString(s))
				sb.WriteByte(' ')
			}
		case xml.EndElement:
			if t.Name.Local == "p" && paraBreak != "" {
				sb.WriteString(paraBreak)
			}
		}
	}
	return sb.String(), nil
}
