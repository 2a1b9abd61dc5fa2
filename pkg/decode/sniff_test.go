//go:build !nosvg && !nopdf && !nohtml && !nooffice && !novideo

package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPredicates(t *testing.T) {
	tests := []struct {
		name  string
		in    Input
		match func(*Input) bool
		want  bool
	}{
		{name: "svg by ext", in: Input{Ext: "svg"}, match: isSVG, want: true},
		{name: "svg by tag", in: Input{Data: []byte("<svg xmlns=''/>")}, match: isSVG, want: true},
		{name: "svg by xml prolog", in: Input{Data: []byte("<?xml version='1.0'?>")}, match: isSVG, want: true},
		{name: "png is not svg", in: Input{Data: []byte("\x89PNG")}, match: isSVG, want: false},
		{name: "pdf by ext", in: Input{Ext: "pdf"}, match: isPDF, want: true},
		{name: "pdf by magic", in: Input{Data: []byte("%PDF-1.4")}, match: isPDF, want: true},
		{name: "office xlsx", in: Input{Ext: "xlsx"}, match: isOffice, want: true},
		{name: "office docx", in: Input{Ext: "docx"}, match: isOffice, want: true},
		{name: "zip is not office", in: Input{Ext: "zip"}, match: isOffice, want: false},
		{name: "html by ext", in: Input{Ext: "htm"}, match: isHTML, want: true},
		{name: "html by doctype", in: Input{Data: []byte("<!DOCTYPE html><html>")}, match: isHTML, want: true},
		{name: "html by url", in: Input{Data: []byte("https://example.com")}, match: isHTML, want: true},
		{name: "plain text is not html", in: Input{Data: []byte("hello")}, match: isHTML, want: false},
		{name: "video by ext", in: Input{Ext: "mkv"}, match: isVideo, want: true},
		{name: "mp4 by ftyp box", in: Input{Data: []byte("\x00\x00\x00\x18ftypmp42")}, match: isVideo, want: true},
		{name: "webm by ebml", in: Input{Data: []byte{0x1a, 0x45, 0xdf, 0xa3, 0x01}}, match: isVideo, want: true},
		{name: "avi by riff", in: Input{Data: []byte("RIFF\x00\x00\x00\x00AVI LIST")}, match: isVideo, want: true},
		{name: "wav is not video", in: Input{Data: []byte("RIFF\x00\x00\x00\x00WAVEfmt ")}, match: isVideo, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.match(&tt.in))
		})
	}
}

func TestRegistryOrder(t *testing.T) {
	assert.Equal(t, []string{"svg", "pdf", "office", "html", "video", "raster"}, Capabilities())
}
