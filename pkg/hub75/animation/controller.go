// Package animation drives frame sequences through transition effects.
// It is pure and deterministic — it never touches GPIO, mirroring the
// spec's separation between the Display Engine (hardware-facing) and
// the Animation Controller (a pure scheduler the engine's caller polls).
package animation

import (
	"fmt"
	"time"

	"github.com/fcurrie/hub75/pkg/hub75"
)

// Effect selects one of the four frame-transition styles.
type Effect int

const (
	None Effect = iota
	Slide
	Fade
	Wipe
)

// Decision is what Controller.Next returns on every poll: wait for the
// next tick, apply a fully-rendered frame, or stop — the animation has
// exhausted its data.
type Decision int

const (
	Wait Decision = iota
	Apply
	Done
)

// Source is a borrowed data source: a slice of pre-rendered frames, a
// flat RGB byte stream, or a text string rendered through the minimal
// 5x5 font. Exactly one of Frames, RGBData or Text should be set.
type Source struct {
	Frames  []*hub75.FrameBuffer
	RGBData []byte
	Text    string

	// Width, Height and Bits describe frames synthesized from RGBData or
	// Text. When Frames is set, Height and Bits are ignored (each frame
	// carries its own), but Width still sets the column count Slide and
	// Wipe step through, so it must be set for those effects.
	Width, Height int
	Bits          uint8
}

// FrameCount is the Source's length in the effect-independent unit:
// slice length, bytes/(W*H*3), or string length in bytes.
func (s *Source) FrameCount() (int, error) {
	switch {
	case s.Frames != nil:
		if len(s.Frames) == 0 {
			return 0, &hub75.AnimationError{Kind: hub75.InvalidData, What: "empty frame slice"}
		}
		return len(s.Frames), nil
	case s.RGBData != nil:
		frameBytes := s.Width * s.Height * 3
		if frameBytes <= 0 || len(s.RGBData)%frameBytes != 0 || len(s.RGBData) == 0 {
			return 0, &hub75.AnimationError{Kind: hub75.InvalidData, What: "rgb stream does not divide evenly into frames"}
		}
		return len(s.RGBData) / frameBytes, nil
	case s.Text != "":
		return len(s.Text), nil
	default:
		return 0, &hub75.AnimationError{Kind: hub75.InvalidData, What: "no data source set"}
	}
}

// Frame renders (or slices out) frame index k, independent of effect.
func (s *Source) Frame(k int) (*hub75.FrameBuffer, error) {
	switch {
	case s.Frames != nil:
		if k < 0 || k >= len(s.Frames) {
			return nil, &hub75.InvalidCoordinatesError{What: fmt.Sprintf("frame index %d out of range", k)}
		}
		return s.Frames[k], nil
	case s.RGBData != nil:
		frameBytes := s.Width * s.Height * 3
		start := k * frameBytes
		fb, err := hub75.NewFrameBuffer(s.Width, s.Height, s.Bits)
		if err != nil {
			return nil, err
		}
		if err := fb.FromRGBData(s.RGBData[start : start+frameBytes]); err != nil {
			return nil, err
		}
		return fb, nil
	case s.Text != "":
		if k < 0 || k >= len(s.Text) {
			return nil, &hub75.InvalidCoordinatesError{What: fmt.Sprintf("character index %d out of range", k)}
		}
		return renderGlyph(s.Text[k], s.Width, s.Height, s.Bits)
	default:
		return nil, &hub75.AnimationError{Kind: hub75.InvalidData, What: "no data source set"}
	}
}

// Controller consumes a Source, applies one Effect, and emits a
// Decision on each poll. It is restartable via Reset and never leaks
// state across Next calls beyond its own counters.
type Controller struct {
	source *Source
	effect Effect

	frameCount  int
	totalSteps  int
	step        int
	perStep     time.Duration
	startTime   time.Time
	started     bool
	done        bool
}

// NewController builds a time-based Controller: duration is the total
// wall-clock time the whole animation should take, divided evenly
// across total_steps(frame_count). Construction fails with
// AnimationError{TooFast} if duration/total_steps rounds to zero, and
// with AnimationError{InvalidDuration} if duration is not positive.
func NewController(source *Source, effect Effect, duration time.Duration) (*Controller, error) {
	if duration <= 0 {
		return nil, &hub75.AnimationError{Kind: hub75.InvalidDuration, What: "duration must be positive"}
	}
	frameCount, err := source.FrameCount()
	if err != nil {
		return nil, err
	}

	w := source.Width
	var steps int
	switch effect {
	case Slide, Wipe:
		steps = frameCount * w
	case Fade:
		steps = frameCount * 16
	default:
		steps = frameCount
	}
	if steps < frameCount {
		steps = frameCount
	}
	if steps < 1 {
		return nil, &hub75.AnimationError{Kind: hub75.InvalidData, What: "total_steps < 1"}
	}

	perStep := duration / time.Duration(steps)
	if perStep <= 0 {
		return nil, &hub75.AnimationError{Kind: hub75.TooFast, What: "duration/total_steps rounds to zero"}
	}

	return &Controller{
		source:     source,
		effect:     effect,
		frameCount: frameCount,
		totalSteps: steps,
		perStep:    perStep,
	}, nil
}

// Reset rewinds the controller to step 0, clearing Done-ness.
func (c *Controller) Reset() {
	c.step = 0
	c.started = false
	c.done = false
}

// TotalSteps returns total_steps(frame_count) for this controller.
func (c *Controller) TotalSteps() int { return c.totalSteps }

// Next polls the controller at wall-clock time now. Done is sticky:
// once reached it is returned on every subsequent call until Reset.
func (c *Controller) Next(now time.Time) (Decision, *hub75.FrameBuffer, error) {
	if c.done {
		return Done, nil, nil
	}
	if !c.started {
		c.startTime = now
		c.started = true
	}
	if c.step >= c.totalSteps {
		c.done = true
		return Done, nil, nil
	}

	due := c.startTime.Add(time.Duration(c.step) * c.perStep)
	if now.Before(due) {
		return Wait, nil, nil
	}

	frame, err := c.render(c.step)
	c.step++
	if err != nil {
		// A render failure mid-animation collapses to Done rather than
		// propagating, so a caller polling in a loop never has to
		// distinguish "finished" from "broke".
		c.done = true
		return Done, nil, nil
	}
	return Apply, frame, nil
}

// render computes the output frame for global step s according to the
// selected effect.
func (c *Controller) render(s int) (*hub75.FrameBuffer, error) {
	switch c.effect {
	case None:
		return c.source.Frame(s)
	case Slide:
		return c.renderSlide(s)
	case Fade:
		return c.renderFade(s)
	case Wipe:
		return c.renderWipe(s)
	default:
		return c.source.Frame(s)
	}
}

func (c *Controller) renderSlide(s int) (*hub75.FrameBuffer, error) {
	w := c.source.Width
	k := s / w
	sub := s % w
	cur, err := c.source.Frame(k)
	if err != nil {
		return nil, err
	}
	out, err := hub75.NewFrameBuffer(cur.Width, cur.Height, cur.Bits())
	if err != nil {
		return nil, err
	}
	var next *hub75.FrameBuffer
	if sub > 0 {
		n, err := c.source.Frame(k + 1)
		if err == nil {
			next = n
		}
	}
	for x := 0; x < cur.Width; x++ {
		srcX := x + sub
		for y := 0; y < cur.Height; y++ {
			var px hub75.Color
			if srcX < w {
				px = cur.GetPixelUnchecked(srcX, y)
			} else if next != nil {
				px = next.GetPixelUnchecked(srcX-w, y)
			} else {
				px = hub75.Black(cur.Bits())
			}
			out.SetPixelUnchecked(x, y, px)
		}
	}
	return out, nil
}

func (c *Controller) renderFade(s int) (*hub75.FrameBuffer, error) {
	k := s / 16
	sub := s % 16
	var alpha int
	if sub < 8 {
		alpha = sub
	} else {
		alpha = 15 - sub
	}
	cur, err := c.source.Frame(k)
	if err != nil {
		return nil, err
	}
	out, err := hub75.NewFrameBuffer(cur.Width, cur.Height, cur.Bits())
	if err != nil {
		return nil, err
	}
	for y := 0; y < cur.Height; y++ {
		for x := 0; x < cur.Width; x++ {
			px := cur.GetPixelUnchecked(x, y)
			r, g, b := px.ToRGB8()
			scaled := hub75.ColorFromRGB8(px.Bits(),
				uint8(int(r)*alpha/15),
				uint8(int(g)*alpha/15),
				uint8(int(b)*alpha/15))
			out.SetPixelUnchecked(x, y, scaled)
		}
	}
	return out, nil
}

func (c *Controller) renderWipe(s int) (*hub75.FrameBuffer, error) {
	w := c.source.Width
	k := s / w
	sub := s % w
	cur, err := c.source.Frame(k)
	if err != nil {
		return nil, err
	}
	out, err := hub75.NewFrameBuffer(cur.Width, cur.Height, cur.Bits())
	if err != nil {
		return nil, err
	}
	for y := 0; y < cur.Height; y++ {
		for x := 0; x <= sub && x < cur.Width; x++ {
			out.SetPixelUnchecked(x, y, cur.GetPixelUnchecked(x, y))
		}
	}
	return out, nil
}
