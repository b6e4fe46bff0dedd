package qoi

import (
	"encoding/binary"
	"io"
)

const (
	// Magic identifies an encoded stream.
	Magic = "qoif"
	// HeaderSize is the fixed byte length of the stream header.
	HeaderSize = 14
	footerSize = 8
)

// footer marks end-of-stream: seven zero bytes then a single one.
var footer = [footerSize]byte{0, 0, 0, 0, 0, 0, 0, 1}

// streamWriter latches the first sink error so opcode emission can stay
// straight-line; callers check err once after the footer.
type streamWriter struct {
	w   io.Writer
	err error
}

func (sw *streamWriter) write(p []byte) {
	if sw.err != nil {
		return
	}
	_, sw.err = sw.w.Write(p)
}

func (sw *streamWriter) writeByte(b byte) {
	sw.write([]byte{b})
}

// writeHeader emits the 14-byte header. The channels byte is a literal
// passthrough of the source's channel count and does not affect the
// opcode stream, which always carries four channels internally. The
// colorspace byte is always zero.
func (sw *streamWriter) writeHeader(width, height uint32, channels uint8) {
	var hdr [HeaderSize]byte
	copy(hdr[0:4], Magic)
	binary.BigEndian.PutUint32(hdr[4:8], width)
	binary.BigEndian.PutUint32(hdr[8:12], height)
	hdr[12] = channels
	hdr[13] = 0
	sw.write(hdr[:])
}

func (sw *streamWriter) writeFooter() {
	sw.write(footer[:])
}
