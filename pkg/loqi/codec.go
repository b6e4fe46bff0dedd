// Package loqi orchestrates image-to-qoi conversions: codec selection,
// sink handling and the error contract around them.
package loqi

import (
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/jpfielding/loqi.go/pkg/imgio"
	"github.com/jpfielding/loqi.go/pkg/qoi"
)

// Codec selects the on-disk representation of an encoded image.
type Codec interface {
	// Encode writes the encoded form of raw to w.
	Encode(w io.Writer, raw *imgio.Raw, lossiness int) error
	// Name returns the codec identifier (e.g. "qoi").
	Name() string
	// Ext returns the conventional file extension.
	Ext() string
}

// QOI returns the plain stream codec.
func QOI() Codec { return qoiCodec{} }

// QOIZstd returns the stream post-compressed with zstd.
func QOIZstd() Codec { return zstdCodec{} }

type qoiCodec struct{}

func (qoiCodec) Encode(w io.Writer, raw *imgio.Raw, lossiness int) error {
	return qoi.EncodeRaw(w, raw.Pix, raw.Width, raw.Height, raw.Channels,
		&qoi.Options{Lossiness: lossiness})
}

func (qoiCodec) Name() string { return "qoi" }
func (qoiCodec) Ext() string  { return ".qoi" }

type zstdCodec struct{}

func (zstdCodec) Encode(w io.Writer, raw *imgio.Raw, lossiness int) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if err := qoi.EncodeRaw(zw, raw.Pix, raw.Width, raw.Height, raw.Channels,
		&qoi.Options{Lossiness: lossiness}); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func (zstdCodec) Name() string { return "qoi+zstd" }
func (zstdCodec) Ext() string  { return ".qoi.zst" }
