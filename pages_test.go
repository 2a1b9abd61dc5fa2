package termview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePages(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PageSelection
		wantErr bool
	}{
		{name: "range and single", input: "1-3,34", want: PageSelection{0, 1, 2, 33}},
		{name: "empty is unset", input: "", want: nil},
		{name: "blank is unset", input: "  , ,", want: nil},
		{name: "single page", input: "5", want: PageSelection{4}},
		{name: "sorted and deduplicated", input: "9,2-4,3,9", want: PageSelection{1, 2, 3, 8}},
		{name: "whitespace around tokens", input: " 1 , 2 - 3 ", want: PageSelection{0, 1, 2}},
		{name: "reversed range", input: "3-2", wantErr: true},
		{name: "degenerate range", input: "2-2", wantErr: true},
		{name: "zero page", input: "0", wantErr: true},
		{name: "zero range start", input: "0-3", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "out of range", input: "70000", wantErr: true},
		{name: "open range", input: "3-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePages(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedSelection)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != nil, got.IsSet())
		})
	}
}
