package termview

import "fmt"

// NewEncoder returns an encoder for the specified protocol.
// Auto resolves through DetectProtocol.
func NewEncoder(protocol Protocol, opts EncoderOptions) (Encoder, error) {
	switch protocol {
	case Auto:
		return NewEncoder(DetectProtocol(), opts)
	case Kitty:
		return &KittyEncoder{Mode: opts.Mode, Passthrough: opts.Passthrough}, nil
	case Sixel:
		return &SixelEncoder{Colors: opts.SixelColors, Dither: opts.SixelDither, Passthrough: opts.Passthrough}, nil
	case ITerm2:
		return &ITerm2Encoder{Passthrough: opts.Passthrough}, nil
	case Halfblocks:
		return &HalfblocksEncoder{Columns: opts.Columns}, nil
	default:
		return nil, fmt.Errorf("unsupported protocol: %s", protocol)
	}
}
