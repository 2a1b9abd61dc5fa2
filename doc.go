/*
Package termview renders documents and images inline in terminal emulators.

The package holds the terminal facing half of the termview pipeline:

  - probing the terminal for its size in cells and pixels
  - planning the output dimensions from the user's size request
  - flattening transparency onto a background color
  - encoding the final raster for Kitty, Sixel, iTerm2 or Unicode halfblocks

Decoding of the various input formats lives in pkg/decode and the
end-to-end flow in pkg/pipeline.

Basic Usage:

	img := termview.ToNRGBA(src)

	geom, _ := termview.ProbeGeometry(termview.ProbeOptions{})
	size := termview.Plan(img.Bounds().Size(), termview.SizeRequest{AutoResize: true}, geom)
	img = termview.Resize(img, size, termview.FilterBilinear)

	enc := &termview.KittyEncoder{Mode: termview.ModePNG}
	if err := enc.Encode(os.Stdout, img); err != nil {
	    log.Fatal(err)
	}

Kitty Transmission:

Kitty output is split into frames of CHUNK_SIZE base64 characters. Only the
first frame carries the control header and every frame but the last has m=1.
The payload is streamed, so large images never sit in memory twice:

	enc := &termview.KittyEncoder{Mode: termview.ModeZlib}
	enc.Encode(w, img) // a=T,f=32,s=W,v=H,o=z,m=1;...

Tmux Support:

	if termview.InTmux() {
	    termview.EnableTmuxPassthrough()
	    enc.Passthrough = true
	}
*/
package termview
