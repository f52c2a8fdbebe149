package pointer

import (
	"time"

	"github.com/frudas24/pointerkit/internal/clock"
	"github.com/frudas24/pointerkit/internal/geom"
)

type recorder struct {
	cursors    []string
	rules      []string
	indicators []IndicatorState
	ghosts     []GhostState
}

func (r *recorder) ApplyCursor(cursor, rule string) {
	r.cursors = append(r.cursors, cursor)
	r.rules = append(r.rules, rule)
}

func (r *recorder) Indicator(st IndicatorState) { r.indicators = append(r.indicators, st) }
func (r *recorder) Ghost(st GhostState)         { r.ghosts = append(r.ghosts, st) }

func (r *recorder) lastIndicator() IndicatorState {
	if len(r.indicators) == 0 {
		return IndicatorState{}
	}
	return r.indicators[len(r.indicators)-1]
}

func (r *recorder) lastGhost() GhostState {
	if len(r.ghosts) == 0 {
		return GhostState{}
	}
	return r.ghosts[len(r.ghosts)-1]
}

// newTestContext returns a context on a fake clock with a 400x300 viewport.
func newTestContext(opts ...Option) (*Context, *clock.Fake, *recorder) {
	clk := clock.NewFake(time.Unix(1_700_000_000, 0))
	rec := &recorder{}
	base := []Option{
		WithClock(clk),
		WithCursorSink(rec),
		WithOverlay(rec),
		WithViewport(func() geom.Rect { return geom.Rect{W: 400, H: 300} }),
	}
	return New(append(base, opts...)...), clk, rec
}
