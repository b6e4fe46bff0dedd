// Package imgio decodes conventional image files into the flat
// interleaved buffers the qoi encoder consumes.
package imgio

import (
	"fmt"
	"image"
	"image/color"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Raw is a decoded image flattened to interleaved 8-bit channels.
type Raw struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int
}

// Load decodes the image at path. PNG, JPEG and GIF are registered.
func Load(path string) (*Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return FromImage(img), nil
}

// FromImage flattens img. Grayscale sources keep one channel, fully
// opaque sources drop alpha to three, everything else carries four.
func FromImage(img image.Image) *Raw {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if src, ok := img.(*image.Gray); ok {
		raw := &Raw{Pix: make([]byte, w*h), Width: w, Height: h, Channels: 1}
		for y := 0; y < h; y++ {
			copy(raw.Pix[y*w:(y+1)*w], src.Pix[y*src.Stride:y*src.Stride+w])
		}
		return raw
	}

	channels := 4
	if op, ok := img.(interface{ Opaque() bool }); ok && op.Opaque() {
		channels = 3
	}
	raw := &Raw{Pix: make([]byte, w*h*channels), Width: w, Height: h, Channels: channels}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			raw.Pix[i] = c.R
			raw.Pix[i+1] = c.G
			raw.Pix[i+2] = c.B
			if channels == 4 {
				raw.Pix[i+3] = c.A
			}
			i += channels
		}
	}
	return raw
}
