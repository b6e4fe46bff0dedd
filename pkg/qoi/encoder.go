package qoi

import "io"

// Opcode tags. The first four occupy the top two bits of the tag byte;
// the two literal tags use the full byte.
const (
	opIndex byte = 0x00
	opDiff  byte = 0x40
	opLuma  byte = 0x80
	opRun   byte = 0xC0
	opRGB   byte = 0xFE
	opRGBA  byte = 0xFF
)

// maxRun is the longest span one run opcode can carry. Lengths 62 and 63
// would put 0xFE/0xFF in the tag byte and collide with the literal
// opcodes, so the accumulator force-flushes at 62.
const maxRun = 62

// encoder holds the state of one encoding session. It is created per
// Encode/EncodeRaw call and never shared.
type encoder struct {
	sw *streamWriter
	// prev is the anchor: the last pixel committed by a non-run opcode.
	// Pixels absorbed into a run do not advance it.
	prev      Pixel
	run       int
	index     [64]Pixel
	lossiness int
}

func newEncoder(w io.Writer, lossiness int) *encoder {
	return &encoder{
		sw:        &streamWriter{w: w},
		prev:      Pixel{A: 255},
		lossiness: lossiness,
	}
}

// writePixel folds one pixel into the stream. A pixel within the session
// lossiness of the anchor extends the pending run; anything else flushes
// the run and goes through the opcode rule list.
func (e *encoder) writePixel(px Pixel) {
	if px.Near(e.prev, e.lossiness) {
		e.run++
		if e.run == maxRun {
			e.sw.writeByte(opRun | byte(e.run-1))
			e.run = 0
		}
		return
	}
	e.flushRun()

	c := opCandidate{
		px:   px,
		slot: px.Hash(),
		dr:   int(px.R) - int(e.prev.R),
		dg:   int(px.G) - int(e.prev.G),
		db:   int(px.B) - int(e.prev.B),
		da:   int(px.A) - int(e.prev.A),
	}
	// Every non-run pixel lands in its hash slot, hit or miss. A
	// collision evicts the previous occupant silently.
	c.indexHit = e.index[c.slot] == px
	e.index[c.slot] = px

	matchOp(c).emit(e.sw, c)
	e.prev = px
}

// flushRun emits the pending run opcode, if any. Called when a pixel
// breaks a run and once more at end of stream.
func (e *encoder) flushRun() {
	if e.run == 0 {
		return
	}
	e.sw.writeByte(opRun | byte(e.run-1))
	e.run = 0
}

// opCandidate carries everything the selection rules need for one
// non-run pixel: the pixel, its index slot, and the channel deltas
// against the anchor.
type opCandidate struct {
	px             Pixel
	slot           uint8
	indexHit       bool
	dr, dg, db, da int
}

// opRule pairs a predicate with the emission it authorizes.
type opRule struct {
	name  string
	match func(c opCandidate) bool
	emit  func(sw *streamWriter, c opCandidate)
}

// opRules is evaluated in order; the first match wins. The final rule
// matches unconditionally, so selection is total.
var opRules = []opRule{
	{
		name:  "index",
		match: func(c opCandidate) bool { return c.indexHit },
		emit: func(sw *streamWriter, c opCandidate) {
			sw.writeByte(opIndex | c.slot)
		},
	},
	{
		name: "diff",
		match: func(c opCandidate) bool {
			return c.da == 0 &&
				c.dr >= -2 && c.dr <= 1 &&
				c.dg >= -2 && c.dg <= 1 &&
				c.db >= -2 && c.db <= 1
		},
		emit: func(sw *streamWriter, c opCandidate) {
			sw.writeByte(opDiff | byte(c.dr+2)<<4 | byte(c.dg+2)<<2 | byte(c.db+2))
		},
	},
	{
		name: "luma",
		match: func(c opCandidate) bool {
			return c.da == 0 &&
				c.dg >= -32 && c.dg <= 31 &&
				c.dr-c.dg >= -8 && c.dr-c.dg <= 7 &&
				c.db-c.dg >= -8 && c.db-c.dg <= 7
		},
		emit: func(sw *streamWriter, c opCandidate) {
			sw.writeByte(opLuma | byte(c.dg+32))
			sw.writeByte(byte(c.dr-c.dg+8)<<4 | byte(c.db-c.dg+8))
		},
	},
	{
		name:  "rgb",
		match: func(c opCandidate) bool { return c.da == 0 },
		emit: func(sw *streamWriter, c opCandidate) {
			sw.write([]byte{opRGB, c.px.R, c.px.G, c.px.B})
		},
	},
	{
		name:  "rgba",
		match: func(c opCandidate) bool { return true },
		emit: func(sw *streamWriter, c opCandidate) {
			sw.write([]byte{opRGBA, c.px.R, c.px.G, c.px.B, c.px.A})
		},
	},
}

func matchOp(c opCandidate) *opRule {
	for i := range opRules {
		if opRules[i].match(c) {
			return &opRules[i]
		}
	}
	panic("qoi: no opcode rule matched") // rgba is unconditional
}
