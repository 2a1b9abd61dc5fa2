//go:build !nopdf

package decode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

func init() {
	register(Decoder{Name: "pdf", Kind: PDF, Match: isPDF, Decode: decodePDF})
}

func isPDF(in *Input) bool {
	return in.Ext == "pdf" || bytes.HasPrefix(in.Data, []byte("%PDF"))
}

// decodePDF renders the selected pages (all when unset) at the target width
// and stacks them vertically
func decodePDF(_ context.Context, in *Input) (image.Image, error) {
	doc, err := fitz.NewFromMemory(in.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer doc.Close()

	n := doc.NumPage()
	pages := in.Pages
	if !pages.IsSet() {
		pages = make([]int, n)
		for i := range pages {
			pages[i] = i
		}
	}
	for _, p := range pages {
		if p >= n {
			return nil, fmt.Errorf("page index out of range (must be <= %d)", n)
		}
	}
	if len(pages) == 0 {
		return nil, errors.New("no pages found in pdf")
	}

	rendered := make([]image.Image, 0, len(pages))
	for _, p := range pages {
		dpi := 72.0
		if in.TargetWidth > 0 {
			bound, err := doc.Bound(p)
			if err != nil {
				return nil, fmt.Errorf("failed to get page %d: %w", p, err)
			}
			if bound.Dx() > 0 {
				dpi = 72 * float64(in.TargetWidth) / float64(bound.Dx())
			}
		}
		img, err := doc.ImageDPI(p, dpi)
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", p, err)
		}
		rendered = append(rendered, img)
	}

	return stackVertically(rendered), nil
}
