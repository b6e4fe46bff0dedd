package qoi

// Pixel is one 4-channel color value. Sources with fewer channels are
// widened to this shape before encoding (see EncodeRaw).
type Pixel struct {
	R, G, B, A uint8
}

// Hash maps p to a slot in the 64-entry color index. Collisions are
// expected; the index only honors exact matches.
func (p Pixel) Hash() uint8 {
	return (p.R*3 + p.G*5 + p.B*7 + p.A*11) % 64
}

// Near reports whether p and o are interchangeable for run accumulation:
// each of r/g/b within threshold, alpha exactly equal. Transparency is
// never approximated, whatever the threshold.
func (p Pixel) Near(o Pixel, threshold int) bool {
	return absDiff(p.R, o.R) <= threshold &&
		absDiff(p.G, o.G) <= threshold &&
		absDiff(p.B, o.B) <= threshold &&
		p.A == o.A
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
