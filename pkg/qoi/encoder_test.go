package qoi

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeOps runs EncodeRaw and strips the fixed header/footer so tests
// can assert on the opcode stream alone.
func encodeOps(t *testing.T, pix []byte, width, height, channels, lossiness int) []byte {
	t.Helper()
	var buf bytes.Buffer
	err := EncodeRaw(&buf, pix, width, height, channels, &Options{Lossiness: lossiness})
	require.NoError(t, err)
	data := buf.Bytes()
	require.GreaterOrEqual(t, len(data), HeaderSize+footerSize)
	require.Equal(t, footer[:], data[len(data)-footerSize:])
	return data[HeaderSize : len(data)-footerSize]
}

func repeatPixel(r, g, b uint8, n int) []byte {
	pix := make([]byte, 0, n*3)
	for i := 0; i < n; i++ {
		pix = append(pix, r, g, b)
	}
	return pix
}

func TestOpRulePriority(t *testing.T) {
	tests := []struct {
		name string
		c    opCandidate
		want string
	}{
		{"index wins over everything", opCandidate{indexHit: true, dr: 1, dg: 1, db: 1}, "index"},
		{"diff when deltas tiny", opCandidate{dr: 1, dg: -2, db: 0}, "diff"},
		{"luma when diff out of range", opCandidate{dr: 12, dg: 10, db: 5}, "luma"},
		{"rgb when alpha unchanged", opCandidate{dr: 100, dg: 0, db: 0}, "rgb"},
		{"rgba when alpha changed", opCandidate{dr: 1, dg: 1, db: 1, da: 5}, "rgba"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchOp(tt.c).name)
		})
	}
}

func TestDiffOpPacking(t *testing.T) {
	sw := &streamWriter{w: &bytes.Buffer{}}
	c := opCandidate{dr: -2, dg: 0, db: 1}
	rule := matchOp(c)
	require.Equal(t, "diff", rule.name)
	rule.emit(sw, c)
	require.NoError(t, sw.err)
	// tag 01, then (dr+2)=0, (dg+2)=2, (db+2)=3 packed MSB-first
	assert.Equal(t, []byte{0x40 | 0<<4 | 2<<2 | 3}, sw.w.(*bytes.Buffer).Bytes())
}

func TestRunFraming100(t *testing.T) {
	// One anchor pixel, then a run of exactly 100 identical pixels.
	pix := repeatPixel(10, 20, 30, 101)
	ops := encodeOps(t, pix, 101, 1, 3, 0)

	// Literal RGB for the anchor, then 62 and 38 as two run opcodes.
	assert.Equal(t, []byte{opRGB, 10, 20, 30, 0xFD, 0xDD}, ops)
}

func TestRunForceFlushAt62(t *testing.T) {
	ops := encodeOps(t, repeatPixel(10, 20, 30, 63), 63, 1, 3, 0)
	assert.Equal(t, []byte{opRGB, 10, 20, 30, 0xFD}, ops)

	// One more pixel spills into a second run of length 1.
	ops = encodeOps(t, repeatPixel(10, 20, 30, 64), 64, 1, 3, 0)
	assert.Equal(t, []byte{opRGB, 10, 20, 30, 0xFD, opRun | 0}, ops)
}

func TestLeadingRunOnDefaultAnchor(t *testing.T) {
	// A black opaque pixel matches the initial anchor (0,0,0,255), so
	// the very first pixel can open a run.
	ops := encodeOps(t, []byte{0, 0, 0, 255}, 1, 1, 4, 0)
	assert.Equal(t, []byte{opRun | 0}, ops)
}

func TestIndexHit(t *testing.T) {
	a := Pixel{R: 10, G: 20, B: 30, A: 255}
	c := Pixel{R: 200, G: 150, B: 131, A: 255}
	require.NotEqual(t, a.Hash(), c.Hash(), "colors must not collide for this test")

	pix := []byte{
		a.R, a.G, a.B, a.A,
		c.R, c.G, c.B, c.A,
		a.R, a.G, a.B, a.A,
	}
	ops := encodeOps(t, pix, 3, 1, 4, 0)
	assert.Equal(t, []byte{
		opRGB, a.R, a.G, a.B,
		opRGB, c.R, c.G, c.B,
		opIndex | a.Hash(),
	}, ops)
}

func TestIndexMissAfterCollision(t *testing.T) {
	// a and b hash to the same slot; b evicts a, so re-encountering a
	// must fall through to a literal, not an index reference.
	a := Pixel{R: 10, G: 20, B: 30, A: 255}
	b := Pixel{R: 200, G: 150, B: 130, A: 255}
	require.Equal(t, a.Hash(), b.Hash(), "colors must collide for this test")
	require.NotEqual(t, a, b)

	pix := []byte{
		a.R, a.G, a.B, a.A,
		b.R, b.G, b.B, b.A,
		a.R, a.G, a.B, a.A,
	}
	ops := encodeOps(t, pix, 3, 1, 4, 0)
	assert.Equal(t, []byte{
		opRGB, a.R, a.G, a.B,
		opRGB, b.R, b.G, b.B,
		opRGB, a.R, a.G, a.B,
	}, ops)
}

func TestSinglePixelStream(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeRaw(&buf, []byte{10, 20, 30}, 1, 1, 3, nil)
	require.NoError(t, err)

	want := []byte{
		'q', 'o', 'i', 'f',
		0, 0, 0, 1,
		0, 0, 0, 1,
		3, 0,
		opRGB, 10, 20, 30,
		0, 0, 0, 0, 0, 0, 0, 1,
	}
	assert.Equal(t, want, buf.Bytes())
	assert.Equal(t, 26, buf.Len())
}

func TestAnchorFixedDuringRun(t *testing.T) {
	// With lossiness 2, drift accumulates against the anchor, not the
	// previous input pixel: 102 joins the run on anchor 100, 104 does
	// not (|104-100| > 2) even though |104-102| <= 2.
	pix := []byte{
		100, 100, 100,
		102, 102, 102,
		104, 104, 104,
	}
	ops := encodeOps(t, pix, 3, 1, 3, 2)
	assert.Equal(t, []byte{
		opRGB, 100, 100, 100,
		opRun | 0,
		opLuma | (4 + 32), 0x88, // dg=4, dr-dg=0, db-dg=0
	}, ops)
}

func TestHashMod64(t *testing.T) {
	for _, px := range []Pixel{
		{},
		{R: 255, G: 255, B: 255, A: 255},
		{R: 10, G: 20, B: 30, A: 255},
		{R: 1},
	} {
		h := px.Hash()
		assert.Less(t, h, uint8(64))
		want := uint8((int(px.R)*3 + int(px.G)*5 + int(px.B)*7 + int(px.A)*11) % 64)
		assert.Equal(t, want, h, "uint8 wraparound must agree with wide arithmetic for %+v", px)
	}
}

func TestNearAlphaExact(t *testing.T) {
	a := Pixel{R: 100, G: 100, B: 100, A: 255}
	b := Pixel{R: 105, G: 95, B: 100, A: 255}
	assert.True(t, a.Near(b, 5))
	assert.False(t, a.Near(b, 4))

	// Alpha never approximated, whatever the threshold.
	c := Pixel{R: 100, G: 100, B: 100, A: 254}
	assert.False(t, a.Near(c, 255))
}
