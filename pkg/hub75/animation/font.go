package animation

import "github.com/fcurrie/hub75/pkg/hub75"

// glyph5x5 is a 5-row bitmap, each row a 5-bit mask (MSB = leftmost
// column). Only a handful of characters are defined; anything else
// falls back to glyphBox, a solid outline that is visibly "no glyph"
// rather than blank.
type glyph5x5 [5]uint8

var glyphs = map[byte]glyph5x5{
	'A': {
		0b01110,
		0b10001,
		0b11111,
		0b10001,
		0b10001,
	},
	'0': {
		0b01110,
		0b10011,
		0b10101,
		0b11001,
		0b01110,
	},
	' ': {
		0b00000,
		0b00000,
		0b00000,
		0b00000,
		0b00000,
	},
}

var glyphBox = glyph5x5{
	0b11111,
	0b10001,
	0b10001,
	0b10001,
	0b11111,
}

// renderGlyph draws ch, centered, onto a new width x height frame buffer
// at the given bit depth. Pixels under a lit bit are White; the rest
// are Black. This is intentionally a minimal placeholder font — a
// larger bitmap font belongs at the command layer, not in this
// package's contract.
func renderGlyph(ch byte, width, height int, bits uint8) (*hub75.FrameBuffer, error) {
	fb, err := hub75.NewFrameBuffer(width, height, bits)
	if err != nil {
		return nil, err
	}
	g, ok := glyphs[ch]
	if !ok {
		g = glyphBox
	}

	offX := (width - 5) / 2
	offY := (height - 5) / 2
	white := hub75.White(bits)
	for row := 0; row < 5; row++ {
		y := offY + row
		if y < 0 || y >= height {
			continue
		}
		mask := g[row]
		for col := 0; col < 5; col++ {
			if mask&(1<<(4-col)) == 0 {
				continue
			}
			x := offX + col
			if x < 0 || x >= width {
				continue
			}
			fb.SetPixelUnchecked(x, y, white)
		}
	}
	return fb, nil
}
