package termview

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// PageSelection is a sorted, deduplicated set of zero-based page indices.
// A nil selection means the decoder picks its default pages.
type PageSelection []int

// IsSet reports whether any page was selected
func (p PageSelection) IsSet() bool {
	return len(p) > 0
}

// ParsePages parses a comma separated list of 1-indexed pages and inclusive
// ranges such as "1-3,34" into a zero-based selection. Blank input yields nil.
func ParsePages(s string) (PageSelection, error) {
	var pages PageSelection
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if first, last, ok := strings.Cut(token, "-"); ok {
			start, err := parsePageNumber(first)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid page range %q: %v", ErrMalformedSelection, token, err)
			}
			end, err := parsePageNumber(last)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid page range %q: %v", ErrMalformedSelection, token, err)
			}
			if end <= start {
				return nil, fmt.Errorf("%w: page range %q must start >= 1 and end > start", ErrMalformedSelection, token)
			}
			for i := start; i <= end; i++ {
				pages = append(pages, i-1)
			}
			continue
		}
		index, err := parsePageNumber(token)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid page index %q: %v", ErrMalformedSelection, token, err)
		}
		pages = append(pages, index-1)
	}
	if len(pages) == 0 {
		return nil, nil
	}
	slices.Sort(pages)
	return slices.Compact(pages), nil
}

func parsePageNumber(s string) (int, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("page numbers start at 1")
	}
	return int(n), nil
}
