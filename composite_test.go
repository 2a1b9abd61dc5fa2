package termview

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.NRGBA
		wantErr bool
	}{
		{input: "FFFFFF", want: color.NRGBA{255, 255, 255, 255}},
		{input: "#FFFFFF", want: color.NRGBA{255, 255, 255, 255}},
		{input: "#1e1e2e", want: color.NRGBA{0x1e, 0x1e, 0x2e, 255}},
		{input: "000000", want: color.NRGBA{0, 0, 0, 255}},
		{input: "FFF", wantErr: true},
		{input: "ZZZZZZ", wantErr: true},
		{input: "", wantErr: true},
		{input: "#FFFFFFF", wantErr: true},
		{input: "##FFFFFF", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedSelection)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComposite(t *testing.T) {
	white := color.NRGBA{255, 255, 255, 255}
	black := color.NRGBA{0, 0, 0, 255}

	tests := []struct {
		name string
		src  color.NRGBA
		bg   color.NRGBA
		want color.NRGBA
	}{
		{name: "half red on white", src: color.NRGBA{255, 0, 0, 128}, bg: white, want: color.NRGBA{255, 127, 127, 255}},
		{name: "half red on black", src: color.NRGBA{255, 0, 0, 128}, bg: black, want: color.NRGBA{128, 0, 0, 255}},
		{name: "opaque copied verbatim", src: color.NRGBA{12, 34, 56, 255}, bg: white, want: color.NRGBA{12, 34, 56, 255}},
		{name: "transparent becomes background", src: color.NRGBA{12, 34, 56, 0}, bg: color.NRGBA{1, 2, 3, 255}, want: color.NRGBA{1, 2, 3, 255}},
		{name: "truncating blend", src: color.NRGBA{100, 100, 100, 1}, bg: black, want: color.NRGBA{0, 0, 0, 255}},
		{name: "background alpha ignored", src: color.NRGBA{0, 0, 0, 0}, bg: color.NRGBA{9, 9, 9, 0}, want: color.NRGBA{9, 9, 9, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
			for i := 0; i < len(img.Pix); i += 4 {
				img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = tt.src.R, tt.src.G, tt.src.B, tt.src.A
			}

			out := Composite(img, tt.bg)
			require.NotNil(t, out)
			assert.Equal(t, img.Bounds(), out.Bounds())
			for y := 0; y < 2; y++ {
				for x := 0; x < 2; x++ {
					assert.Equal(t, tt.want, out.NRGBAAt(x, y))
				}
			}
		})
	}
}

func TestCompositeDoesNotMutateSource(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{10, 20, 30, 40})

	Composite(img, color.NRGBA{255, 255, 255, 255})
	assert.Equal(t, color.NRGBA{10, 20, 30, 40}, img.NRGBAAt(0, 0))
}

func TestCompositeNil(t *testing.T) {
	assert.Nil(t, Composite(nil, color.NRGBA{}))
}
