// Package display adapts a hub75.Session to the generic types.Matrix
// interface, so code written against "a pixel sink" doesn't need to
// import pkg/hub75 directly.
package display

import (
	"image/color"

	"github.com/fcurrie/hub75/pkg/hub75"
)

// Panel wraps a *hub75.Session as a types.Matrix.
type Panel struct {
	session *hub75.Session
	bits    uint8
}

// NewPanel wraps session. bits must match the engine's own FrameBuffer
// bit depth; NewPanel does not check it against the engine.
func NewPanel(session *hub75.Session, bits uint8) *Panel {
	return &Panel{session: session, bits: bits}
}

// Clear blanks the back buffer and publishes it.
func (p *Panel) Clear() error {
	p.session.Draw(func(fb *hub75.FrameBuffer) { fb.Clear() })
	return nil
}

// SetPixel writes one pixel, quantized to the panel's bit depth, and
// publishes it immediately — callers wanting batched updates should use
// hub75.Session.Draw directly instead of this interface.
func (p *Panel) SetPixel(x, y int, c color.Color) error {
	var setErr error
	p.session.Draw(func(fb *hub75.FrameBuffer) {
		r, g, b, _ := c.RGBA()
		setErr = fb.SetPixel(x, y, hub75.ColorFromRGB8(p.bits, uint8(r>>8), uint8(g>>8), uint8(b>>8)))
	})
	return setErr
}

// Show is a no-op: the engine's refresh loop continuously scans out the
// front buffer once RunRefreshLoop is running, so there is no separate
// "push to hardware" step. It exists only to satisfy types.Matrix for
// code written against a push-based display model.
func (p *Panel) Show() error { return nil }

// Close is a no-op: Panel does not own the engine's GPIO lines or
// goroutines, only the caller that built the Session does.
func (p *Panel) Close() error { return nil }
