package hub75

import (
	"context"
	"sync"
	"time"
)

// Session wraps an Engine behind a mutex so a drawing goroutine and a
// refresh goroutine can share it safely: every exported method except
// Engine takes the lock around the underlying engine, the same discipline a
// concurrent frame producer/consumer pair needs regardless of which
// goroutine currently holds it.
type Session struct {
	mu     sync.Mutex
	engine *Engine
}

// NewSession wraps engine for concurrent use.
func NewSession(engine *Engine) *Session {
	return &Session{engine: engine}
}

// Draw acquires the lock, runs fn against the back buffer, invokes
// SwapBuffers, and releases — the producer side of the double-buffer
// ping-pong. fn must not retain the *FrameBuffer it's given past the
// call.
func (s *Session) Draw(fn func(*FrameBuffer)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine.BackBuffer())
	s.engine.SwapBuffers()
}

// RenderOnce acquires the lock and runs exactly one RenderFrame pass —
// the consumer side of the ping-pong pattern.
func (s *Session) RenderOnce(ctx context.Context, sleeper Sleeper) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.RenderFrame(ctx, sleeper)
}

// RunRefreshLoop repeatedly calls RenderOnce, sleeping idle between
// passes so the drawing goroutine gets fair access to the lock —
// without this pause a tight refresh loop can lock out the drawer
// indefinitely. Render errors are swallowed with a 1ms backoff, same
// policy as Engine.RefreshTask. Returns when ctx is cancelled.
func (s *Session) RunRefreshLoop(ctx context.Context, sleeper Sleeper, idle time.Duration) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := s.RenderOnce(ctx, sleeper); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			sleeper.DelayNS(1_000_000)
		}
		if idle > 0 {
			sleeper.DelayNS(uint32(idle.Nanoseconds()))
		}
	}
}

// Engine exposes the wrapped engine for read-only knobs (Brightness,
// RefreshInterval) that callers may want without going through Draw.
// Mutating methods should still be called from inside Draw to preserve
// the lock discipline.
func (s *Session) Engine() *Engine { return s.engine }
