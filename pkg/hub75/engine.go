package hub75

import (
	"context"
	"fmt"
	"time"
)

// DefaultBaseTick is the per-bit-0 row delay — 100µs, yielding roughly
// a 10kHz row rate at plane 0.
const DefaultBaseTick = 100 * time.Microsecond

// Engine owns a PinGroup, a front buffer, a back buffer, brightness, and
// the base tick duration, and implements the BCM scanout that drives
// the panel. It is a plain owned object: no interior mutability, no
// hidden globals. Concurrent access from a drawing goroutine and a
// refresh goroutine must go through a Session.
type Engine struct {
	pins            *PinGroup
	front, back     *FrameBuffer
	brightness      Brightness
	baseTick        time.Duration
	doubleBuffering bool
}

// NewEngine runs pin init and allocates the front and back buffers.
// Construction fails with InvalidCoordinatesError if Height/2 exceeds
// the pin group's addressable row count.
func NewEngine(pins *PinGroup, width, height int, bits uint8) (*Engine, error) {
	if half := height / 2; half > pins.MaxAddressableRows() {
		return nil, &InvalidCoordinatesError{
			What: fmt.Sprintf("height/2 (%d) exceeds %d addressable rows", half, pins.MaxAddressableRows()),
		}
	}
	if err := pins.Init(); err != nil {
		return nil, err
	}
	front, err := NewFrameBuffer(width, height, bits)
	if err != nil {
		return nil, err
	}
	back, err := NewFrameBuffer(width, height, bits)
	if err != nil {
		return nil, err
	}
	return &Engine{
		pins:            pins,
		front:           front,
		back:            back,
		brightness:      DefaultBrightness,
		baseTick:        DefaultBaseTick,
		doubleBuffering: true,
	}, nil
}

// SetDoubleBuffering toggles double buffering. When off, BackBuffer and
// FrontBuffer alias the same buffer and SwapBuffers becomes a no-op.
func (e *Engine) SetDoubleBuffering(on bool) { e.doubleBuffering = on }

// DoubleBuffering reports the current mode.
func (e *Engine) DoubleBuffering() bool { return e.doubleBuffering }

// BackBuffer returns the buffer drawing operations should mutate: the
// true back buffer when double buffering is on, otherwise the front
// buffer, so single-buffered callers draw directly onto what's scanned
// out.
func (e *Engine) BackBuffer() *FrameBuffer {
	if e.doubleBuffering {
		return e.back
	}
	return e.front
}

// FrontBuffer returns the buffer the refresh loop scans out.
func (e *Engine) FrontBuffer() *FrameBuffer { return e.front }

// SwapBuffers republishes the back buffer as the front buffer. No-op
// when double buffering is disabled. Must be invoked outside the render
// lock window — Session enforces this by scoping swaps to the Draw
// closure, separate from RenderOnce.
func (e *Engine) SwapBuffers() {
	if !e.doubleBuffering {
		return
	}
	e.front.Swap(e.back)
}

// SetBrightness sets the monotonic knob on Delta.
func (e *Engine) SetBrightness(b Brightness) { e.brightness = b }

// Brightness returns the current brightness.
func (e *Engine) Brightness() Brightness { return e.brightness }

// SetRefreshInterval replaces the base tick duration.
func (e *Engine) SetRefreshInterval(d time.Duration) { e.baseTick = d }

// RefreshInterval returns the current base tick duration.
func (e *Engine) RefreshInterval() time.Duration { return e.baseTick }

// Clear, Fill, SetPixel and GetPixel forward to the active buffer
// (BackBuffer, which aliases the front buffer when double buffering is
// off).
func (e *Engine) Clear()             { e.BackBuffer().Clear() }
func (e *Engine) Fill(c Color)       { e.BackBuffer().Fill(c) }
func (e *Engine) SetPixel(x, y int, c Color) error { return e.BackBuffer().SetPixel(x, y, c) }
func (e *Engine) GetPixel(x, y int) (Color, error) { return e.BackBuffer().GetPixel(x, y) }

// Delta computes the BCM timing law for plane p: base_tick * 2^p *
// brightness/255. The brightness scaling is truncated once, before the
// doubling, so plane p+1 always delays exactly twice as long as plane p
// at a fixed brightness.
func (e *Engine) Delta(p uint8) time.Duration {
	scaled := e.baseTick.Nanoseconds() * int64(e.brightness) / 255
	return time.Duration(scaled << p)
}

// frameDuration estimates the wall-clock length of one full BCM pass
// (all planes, all rows) using the geometric-sum model
// base_tick * (2^BITS - 1) * brightness / 255, rather than the cruder
// base_tick*2^(BITS-1) approximation.
func (e *Engine) frameDuration() time.Duration {
	bits := e.front.Bits()
	sum := (int64(1) << bits) - 1
	ns := e.baseTick.Nanoseconds() * sum * int64(e.brightness) / 255
	return time.Duration(ns)
}

// RenderFrame runs one complete BCM pass over the front buffer: planes
// outermost, rows inner, columns innermost. Any GPIO error aborts the
// pass and is surfaced to the caller; ctx is only honored between
// row/plane units, never mid-shift-register-burst, so a cancelled
// context cannot leave a row half-clocked.
func (e *Engine) RenderFrame(ctx context.Context, sleeper Sleeper) error {
	fb := e.front
	bits := fb.Bits()
	half := fb.Height / 2

	for p := uint8(0); p < bits; p++ {
		delta := e.Delta(p)
		for r := 0; r < half; r++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err := e.pins.DisableOutput(); err != nil {
				return err
			}
			if err := e.pins.SetAddress(uint(r)); err != nil {
				return err
			}

			var shiftErr error
			err := fb.RowBitPlaneFunc(r, p, func(_ int, rb RowBit) {
				if shiftErr != nil {
					return
				}
				if err := e.pins.SetRGB(rb.UR, rb.UG, rb.UB, rb.LR, rb.LG, rb.LB); err != nil {
					shiftErr = err
					return
				}
				if err := e.pins.ClockPulse(); err != nil {
					shiftErr = err
				}
			})
			if err != nil {
				return err
			}
			if shiftErr != nil {
				return shiftErr
			}

			if err := e.pins.LatchPulse(); err != nil {
				return err
			}
			if err := e.pins.EnableOutput(); err != nil {
				return err
			}

			sleeper.DelayNS(uint32(delta.Nanoseconds()))

			// Tolerate failure here: the next row/plane iteration
			// re-asserts DisableOutput before touching the address bus.
			_ = e.pins.DisableOutput()
		}
	}
	return nil
}

// RefreshTask loops RenderFrame forever. A render error is swallowed
// and retried after a 1ms pause — the panel is more useful partially
// refreshing than not at all. RefreshTask returns only when ctx is
// cancelled.
func (e *Engine) RefreshTask(ctx context.Context, sleeper Sleeper) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := e.RenderFrame(ctx, sleeper); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			sleeper.DelayNS(1_000_000)
			continue
		}
	}
}

// DisplayFrame copies buf into the front buffer and renders until
// duration has elapsed, approximating one frame's length with
// frameDuration. It is cancellable between passes, never mid-row.
func (e *Engine) DisplayFrame(ctx context.Context, buf *FrameBuffer, duration time.Duration, sleeper Sleeper) error {
	if err := e.front.CopyFrom(buf); err != nil {
		return err
	}
	frameLen := e.frameDuration()
	if frameLen <= 0 {
		frameLen = time.Nanosecond
	}
	passes := int64(duration / frameLen)
	if passes < 1 {
		passes = 1
	}
	for i := int64(0); i < passes; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := e.RenderFrame(ctx, sleeper); err != nil {
			return err
		}
	}
	return nil
}
