package termview

import "io"

// chunkWriter splits a base64 stream into Kitty graphics frames:
//
//	ESC _ G <header?> m=<0|1> ; <chunk> ESC \
//
// The header goes on the first frame only. One full chunk is held back until
// more data arrives (m=1) or Close is called (m=0), so frames are produced
// lazily and in order without materialising the whole payload.
type chunkWriter struct {
	w           io.Writer
	header      string
	size        int
	passthrough bool

	buf    []byte
	frame  []byte
	frames int
}

func newChunkWriter(w io.Writer, header string, size int, passthrough bool) *chunkWriter {
	return &chunkWriter{
		w:           w,
		header:      header,
		size:        size,
		passthrough: passthrough,
		buf:         make([]byte, 0, size),
	}
}

func (c *chunkWriter) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		if len(c.buf) == c.size {
			if err := c.emit(true); err != nil {
				return written, err
			}
		}
		n := min(c.size-len(c.buf), len(p))
		c.buf = append(c.buf, p[:n]...)
		p = p[n:]
		written += n
	}
	return written, nil
}

// Close emits the final frame with m=0. An empty stream produces no frames.
func (c *chunkWriter) Close() error {
	if len(c.buf) == 0 {
		return nil
	}
	return c.emit(false)
}

func (c *chunkWriter) emit(more bool) error {
	f := append(c.frame[:0], "\x1b_G"...)
	if c.frames == 0 {
		f = append(f, c.header...)
	}
	f = append(f, "m="...)
	if more {
		f = append(f, '1')
	} else {
		f = append(f, '0')
	}
	f = append(f, ';')
	f = append(f, c.buf...)
	f = append(f, "\x1b\\"...)
	c.frame = f

	var err error
	if c.passthrough {
		_, err = io.WriteString(c.w, wrapTmuxPassthrough(string(f)))
	} else {
		_, err = c.w.Write(f)
	}
	if err != nil {
		return err
	}
	c.frames++
	c.buf = c.buf[:0]
	return nil
}
