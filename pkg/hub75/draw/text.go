package draw

import (
	"image"
	"image/color"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// TextOptions controls DrawText's placement and styling.
type TextOptions struct {
	X, Y    int // baseline origin, in Target pixel coordinates
	Color   color.Color
	SizePt  float64 // point size; 0 defaults to 10
	DPI     float64 // 0 defaults to 72
	Hinting font.Hinting
}

// DrawText renders s onto t using a parsed TrueType/OpenType font,
// through freetype's rasterizer — the scalable-font counterpart to the
// fixed 5x5 bitmap glyphs animation.renderGlyph draws for simple
// scrolling marquees. fontData is the raw .ttf/.otf file contents.
func DrawText(t *Target, fontData []byte, s string, opts TextOptions) error {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return err
	}
	size := opts.SizePt
	if size == 0 {
		size = 10
	}
	dpi := opts.DPI
	if dpi == 0 {
		dpi = 72
	}
	col := opts.Color
	if col == nil {
		col = color.White
	}

	c := freetype.NewContext()
	c.SetDPI(dpi)
	c.SetFont(f)
	c.SetFontSize(size)
	c.SetClip(t.Bounds())
	c.SetDst(t)
	c.SetSrc(image.NewUniform(col))
	c.SetHinting(opts.Hinting)

	pt := freetype.Pt(opts.X, opts.Y)
	_, err = c.DrawString(s, pt)
	return err
}
