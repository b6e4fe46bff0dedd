// Package qoi implements a single-pass encoder for a QOI-style tagged
// opcode stream, extended with a lossy run mode that merges runs of
// near-identical pixels. There is deliberately no pixel decoder here;
// the format is write-only from this package's point of view.
package qoi

import (
	"fmt"
	"image"
	"image/color"
	"io"
)

// Options configures an encoding session.
type Options struct {
	// Lossiness is the per-channel drift tolerated on r/g/b when folding
	// pixels into runs. 0 is lossless. Alpha is always matched exactly.
	Lossiness int
}

func (o *Options) lossiness() int {
	if o == nil {
		return 0
	}
	return o.Lossiness
}

// Encode writes img to w as an encoded stream. The image is read through
// the NRGBA color model; opaque sources advertise three channels in the
// header, everything else four.
func Encode(w io.Writer, img image.Image, opts *Options) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("qoi: invalid image dimensions %dx%d", width, height)
	}
	if opts.lossiness() < 0 {
		return fmt.Errorf("qoi: negative lossiness %d", opts.Lossiness)
	}

	channels := uint8(4)
	if op, ok := img.(interface{ Opaque() bool }); ok && op.Opaque() {
		channels = 3
	}

	e := newEncoder(w, opts.lossiness())
	e.sw.writeHeader(uint32(width), uint32(height), channels)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			e.writePixel(Pixel{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
	e.flushRun()
	e.sw.writeFooter()
	return e.sw.err
}

// EncodeRaw writes a flat interleaved pixel buffer to w. channels must be
// 1..4; narrower sources are widened per channel position:
//
//	r = ch0; g = ch1 if present else ch0; b = ch2 if present else ch0;
//	a = ch3 if present else 255.
//
// The header's channel byte records the source count as-is.
func EncodeRaw(w io.Writer, pix []byte, width, height, channels int, opts *Options) error {
	if channels < 1 || channels > 4 {
		return fmt.Errorf("qoi: unsupported channel count %d", channels)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("qoi: invalid image dimensions %dx%d", width, height)
	}
	if opts.lossiness() < 0 {
		return fmt.Errorf("qoi: negative lossiness %d", opts.Lossiness)
	}
	n := width * height
	if len(pix) < n*channels {
		return fmt.Errorf("qoi: pixel buffer too small: need %d bytes, got %d", n*channels, len(pix))
	}

	e := newEncoder(w, opts.lossiness())
	e.sw.writeHeader(uint32(width), uint32(height), uint8(channels))
	for i := 0; i < n; i++ {
		e.writePixel(widen(pix[i*channels:(i+1)*channels]))
	}
	e.flushRun()
	e.sw.writeFooter()
	return e.sw.err
}

// widen maps a 1..4 channel sample onto the 4-channel pixel model.
func widen(s []byte) Pixel {
	px := Pixel{R: s[0], G: s[0], B: s[0], A: 255}
	if len(s) > 1 {
		px.G = s[1]
	}
	if len(s) > 2 {
		px.B = s[2]
	}
	if len(s) > 3 {
		px.A = s[3]
	}
	return px
}
