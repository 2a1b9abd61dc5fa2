package termview

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlan(t *testing.T) {
	term := Geometry{Width: 800, Height: 400}

	tests := []struct {
		name string
		src  image.Point
		req  SizeRequest
		term Geometry
		want image.Point
	}{
		{
			name: "fits terminal, unchanged",
			src:  image.Pt(200, 100),
			term: term,
			want: image.Pt(200, 100),
		},
		{
			name: "no-resize keeps oversized source",
			src:  image.Pt(4000, 3000),
			req:  SizeRequest{NoResize: true},
			term: term,
			want: image.Pt(4000, 3000),
		},
		{
			name: "explicit width keeps aspect",
			src:  image.Pt(300, 200),
			req:  SizeRequest{Width: 150},
			term: term,
			want: image.Pt(150, 100),
		},
		{
			name: "explicit height keeps aspect",
			src:  image.Pt(300, 200),
			req:  SizeRequest{Height: 50},
			term: term,
			want: image.Pt(75, 50),
		},
		{
			name: "explicit width rounds to nearest",
			src:  image.Pt(3, 2),
			req:  SizeRequest{Width: 100},
			term: term,
			want: image.Pt(100, 67),
		},
		{
			name: "explicit width wins over auto-fit",
			src:  image.Pt(4000, 2000),
			req:  SizeRequest{Width: 1000},
			term: term,
			want: image.Pt(1000, 500),
		},
		{
			name: "fill width",
			src:  image.Pt(100, 50),
			req:  SizeRequest{FillWidth: true},
			term: term,
			want: image.Pt(800, 400),
		},
		{
			name: "fill height",
			src:  image.Pt(100, 50),
			req:  SizeRequest{FillHeight: true},
			term: term,
			want: image.Pt(800, 400),
		},
		{
			name: "auto-fit wide image fills width",
			src:  image.Pt(1600, 400),
			term: term,
			want: image.Pt(800, 200),
		},
		{
			name: "auto-fit tall image fills height",
			src:  image.Pt(400, 1600),
			term: term,
			want: image.Pt(100, 400),
		},
		{
			name: "auto-fit square image fills height",
			src:  image.Pt(1000, 1000),
			term: term,
			want: image.Pt(400, 400),
		},
		{
			name: "explicit auto-resize on small image",
			src:  image.Pt(100, 50),
			req:  SizeRequest{AutoResize: true},
			term: term,
			want: image.Pt(800, 400),
		},
		{
			name: "unknown terminal axis does not trigger auto-fit",
			src:  image.Pt(1000, 100),
			term: Geometry{Width: 0, Height: 400},
			want: image.Pt(1000, 100),
		},
		{
			name: "zero width source returned unchanged",
			src:  image.Pt(0, 10),
			req:  SizeRequest{Width: 100},
			term: term,
			want: image.Pt(0, 10),
		},
		{
			name: "extreme aspect never collapses to zero",
			src:  image.Pt(10000, 1),
			term: term,
			want: image.Pt(800, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Plan(tt.src, tt.req, tt.term))
		})
	}
}

func TestPlanNoResizeIsIdentity(t *testing.T) {
	for _, src := range []image.Point{{1, 1}, {17, 3}, {800, 400}, {4096, 2160}, {3, 9000}} {
		got := Plan(src, SizeRequest{NoResize: true}, Geometry{Width: 100, Height: 100})
		assert.Equal(t, src, got)
	}
}

func TestSizeRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     SizeRequest
		wantErr bool
	}{
		{name: "empty", req: SizeRequest{}},
		{name: "width only", req: SizeRequest{Width: 10}},
		{name: "fill width only", req: SizeRequest{FillWidth: true}},
		{name: "negative width", req: SizeRequest{Width: -1}, wantErr: true},
		{name: "width and fill height", req: SizeRequest{Width: 10, FillHeight: true}, wantErr: true},
		{name: "resize and no-resize", req: SizeRequest{AutoResize: true, NoResize: true}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedSelection)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
