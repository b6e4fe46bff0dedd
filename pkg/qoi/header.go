package qoi

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Header is the parsed fixed-size stream header.
type Header struct {
	Width      uint32
	Height     uint32
	Channels   uint8
	Colorspace uint8
}

// ParseHeader reads and validates the 14-byte header from r. It does not
// decode pixel data.
func ParseHeader(r io.Reader) (Header, error) {
	var raw [HeaderSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return Header{}, fmt.Errorf("qoi: short header: %w", err)
	}
	if string(raw[0:4]) != Magic {
		return Header{}, fmt.Errorf("qoi: bad magic %q", raw[0:4])
	}
	return Header{
		Width:      binary.BigEndian.Uint32(raw[4:8]),
		Height:     binary.BigEndian.Uint32(raw[8:12]),
		Channels:   raw[12],
		Colorspace: raw[13],
	}, nil
}
