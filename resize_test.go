package termview

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResize(t *testing.T) {
	tests := []struct {
		name   string
		source image.Point
		target image.Point
		want   image.Point
	}{
		{name: "Downscale square image", source: image.Pt(100, 100), target: image.Pt(50, 50), want: image.Pt(50, 50)},
		{name: "Upscale small image", source: image.Pt(10, 10), target: image.Pt(20, 20), want: image.Pt(20, 20)},
		{name: "Rectangular to square", source: image.Pt(100, 50), target: image.Pt(60, 60), want: image.Pt(60, 60)},
		{name: "Same size is a no-op", source: image.Pt(30, 20), target: image.Pt(30, 20), want: image.Pt(30, 20)},
		{name: "Zero target axis is a no-op", source: image.Pt(30, 20), target: image.Pt(0, 10), want: image.Pt(30, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := createGradient(tt.source.X, tt.source.Y)
			out := Resize(src, tt.target, FilterBilinear)
			require.NotNil(t, out)
			assert.Equal(t, tt.want, out.Bounds().Size())
			assert.Equal(t, image.Point{}, out.Bounds().Min)
		})
	}
}

func TestResizeFilters(t *testing.T) {
	src := createGradient(64, 48)
	for f := range filterNames {
		t.Run(f.String(), func(t *testing.T) {
			out := Resize(src, image.Pt(32, 24), f)
			assert.Equal(t, image.Pt(32, 24), out.Bounds().Size())
		})
	}
}

func TestResizeSameSizeReturnsInput(t *testing.T) {
	src := createGradient(8, 8)
	assert.Same(t, src, Resize(src, image.Pt(8, 8), FilterLanczos3))
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		input   string
		want    Filter
		wantErr bool
	}{
		{input: "", want: FilterBilinear},
		{input: "triangle", want: FilterBilinear},
		{input: "Lanczos3", want: FilterLanczos3},
		{input: "nearest", want: FilterNearest},
		{input: "mitchell", want: FilterMitchell},
		{input: "gaussian", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFilter(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
