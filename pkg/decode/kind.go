package decode

import (
	"fmt"
	"strings"
)

// Kind forces the input to be interpreted as a specific format
type Kind int

const (
	Auto Kind = iota
	Image
	Text
	SVG
	PDF
	Office
	HTML
	Video
)

var kindNames = []string{"auto", "image", "text", "svg", "pdf", "office", "html", "video"}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the input kind with the given name
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Auto, nil
	}
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return Auto, fmt.Errorf("unknown input type: %q", name)
}
