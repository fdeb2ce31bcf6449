// Package draw adapts a hub75.FrameBuffer into the standard library's
// image/draw.Image interface, so third-party raster and font libraries
// can paint onto a panel buffer using their usual compositing calls
// instead of a bespoke drawing API.
package draw

import (
	"image"
	"image/color"

	"github.com/fcurrie/hub75/pkg/hub75"
)

// Target wraps a *hub75.FrameBuffer as an image/draw.Image. Writes
// outside the buffer's bounds are silently dropped before they reach
// FrameBuffer.SetPixelUnchecked, which does no bounds checking itself.
type Target struct {
	fb *hub75.FrameBuffer
}

// NewTarget wraps fb for drawing. fb is retained, not copied; callers
// typically pass an Engine's current back buffer.
func NewTarget(fb *hub75.FrameBuffer) *Target {
	return &Target{fb: fb}
}

// ColorModel reports color.RGBAModel: Target always converts through
// 8-bit RGBA before quantizing to the buffer's bit depth.
func (t *Target) ColorModel() color.Model { return color.RGBAModel }

// Bounds reports a zero-origin rectangle the size of the wrapped buffer.
func (t *Target) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.fb.Width, t.fb.Height)
}

// At reads back the pixel at (x,y), widened from the buffer's bit depth
// to 8-bit RGBA. Out-of-bounds reads return transparent black, matching
// image.Image's usual zero-value convention.
func (t *Target) At(x, y int) color.Color {
	if !image.Pt(x, y).In(t.Bounds()) {
		return color.RGBA{}
	}
	c := t.fb.GetPixelUnchecked(x, y)
	r, g, b := c.ToRGB8()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Set quantizes c down to the buffer's bit depth and writes it at
// (x,y). Out-of-bounds writes are dropped.
func (t *Target) Set(x, y int, c color.Color) {
	if !image.Pt(x, y).In(t.Bounds()) {
		return
	}
	r, g, b, _ := c.RGBA()
	// color.Color.RGBA returns 16-bit-scaled, alpha-premultiplied
	// values; shift back down to 8-bit before quantizing.
	t.fb.SetPixelUnchecked(x, y, hub75.ColorFromRGB8(t.fb.Bits(), uint8(r>>8), uint8(g>>8), uint8(b>>8)))
}

// Set565 writes a packed 5-6-5 color, as commonly produced by embedded
// graphics toolchains, directly without the color.Color round trip.
// Out-of-bounds coordinates are dropped silently.
func (t *Target) Set565(x, y int, rgb565 uint16) {
	if !image.Pt(x, y).In(t.Bounds()) {
		return
	}
	r5 := uint8(rgb565 >> 11 & 0x1F)
	g6 := uint8(rgb565 >> 5 & 0x3F)
	b5 := uint8(rgb565 & 0x1F)
	r8 := (r5<<3 | r5>>2)
	g8 := (g6<<2 | g6>>4)
	b8 := (b5<<3 | b5>>2)
	t.fb.SetPixelUnchecked(x, y, hub75.ColorFromRGB8(t.fb.Bits(), r8, g8, b8))
}
