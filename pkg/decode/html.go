//go:build !nohtml

package decode

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/chromedp/chromedp"
)

func init() {
	register(Decoder{Name: "html", Kind: HTML, Match: isHTML, Decode: decodeHTML})
}

func isHTML(in *Input) bool {
	return in.Ext == "html" || in.Ext == "htm" ||
		bytes.HasPrefix(in.Data, []byte("<html")) ||
		bytes.HasPrefix(in.Data, []byte("<!DOCTYPE html")) ||
		IsURL(string(in.Data))
}

// decodeHTML takes a full page screenshot with headless Chrome
func decodeHTML(ctx context.Context, in *Input) (image.Image, error) {
	target := htmlTarget(in.Data)

	shot, err := screenshot(ctx, target)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("failed to decode screenshot: %w", err)
	}
	return img, nil
}

// htmlTarget turns a URL, a file path or markup into something Chrome can navigate to
func htmlTarget(data []byte) string {
	s := strings.TrimSpace(string(data))
	if IsURL(s) {
		return s
	}
	if s != "" && !strings.ContainsAny(s, "<\n") {
		if abs, err := filepath.Abs(s); err == nil {
			if fi, err := os.Stat(abs); err == nil && !fi.IsDir() {
				return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
			}
		}
	}
	return "data:text/html;base64," + base64.StdEncoding.EncodeToString(data)
}

func chromiumDir() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to find cache dir: %w", err)
	}
	dir := filepath.Join(cache, "termview", "chromium")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create chromium profile dir: %w", err)
	}
	return dir, nil
}

func screenshot(ctx context.Context, target string) ([]byte, error) {
	profile, err := chromiumDir()
	if err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.UserDataDir(profile))
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	var buf []byte
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.FullScreenshot(&buf, 100),
	); err != nil {
		return nil, fmt.Errorf("failed to render html: %w", err)
	}
	return buf, nil
}
