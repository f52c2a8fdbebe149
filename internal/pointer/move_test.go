package pointer

import (
	"testing"

	"github.com/frudas24/pointerkit/internal/geom"
	"github.com/frudas24/pointerkit/internal/input"
	"github.com/frudas24/pointerkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMove_StepRightInsideBounds verifies a free step reports no border.
func TestMove_StepRightInsideBounds(t *testing.T) {
	c, _, _ := newTestContext()
	var got []MoveDetail
	area := c.Move(testutil.Pointer(input.KindDown, 1, 100, 100, nil), MoveOptions{
		Bounds: &geom.Bounds{Left: 0, Top: 0, Right: 200, Bottom: 200},
		Move:   func(_ *input.Event, d MoveDetail) { got = append(got, d) },
	})
	assert.Equal(t, geom.Bounds{Right: 200, Bottom: 200}, area)
	c.Dispatch(testutil.Pointer(input.KindMove, 1, 105, 100, nil))

	require.Len(t, got, 1)
	assert.Equal(t, geom.DirRight, got[0].Dir)
	assert.Equal(t, geom.BorderNone, got[0].Border)
	assert.Equal(t, 5.0, got[0].DX)
	assert.Zero(t, got[0].DY)
	assert.False(t, got[0].InBorder.Any())
}

// TestMove_BorderTransitions verifies borderIn/borderOut fire on transitions only.
func TestMove_BorderTransitions(t *testing.T) {
	c, _, _ := newTestContext()
	var ins []geom.Border
	outs := 0
	var xs []float64
	c.Move(testutil.Pointer(input.KindDown, 1, 100, 100, nil), MoveOptions{
		Bounds:    &geom.Bounds{Right: 200, Bottom: 200},
		BorderIn:  func(_, _ float64, b geom.Border, _ *input.Event) { ins = append(ins, b) },
		BorderOut: func() { outs++ },
		Move:      func(_ *input.Event, d MoveDetail) { xs = append(xs, d.X) },
	})
	c.Dispatch(testutil.Pointer(input.KindMove, 1, 250, 100, nil))
	c.Dispatch(testutil.Pointer(input.KindMove, 1, 260, 100, nil))
	c.Dispatch(testutil.Pointer(input.KindMove, 1, 150, 100, nil))
	c.Dispatch(testutil.Pointer(input.KindUp, 1, 150, 100, nil))

	assert.Equal(t, []geom.Border{geom.BorderRight}, ins)
	assert.Equal(t, 1, outs)
	assert.Equal(t, []float64{199, 199, 150}, xs)
	assert.Zero(t, c.Listeners())
}

// TestMove_ObjectKeepsGrabOffset verifies the object's edges are clamped, not the pointer.
func TestMove_ObjectKeepsGrabOffset(t *testing.T) {
	c, _, _ := newTestContext()
	var last MoveDetail
	c.Move(testutil.Pointer(input.KindDown, 1, 55, 55, nil), MoveOptions{
		Bounds:     &geom.Bounds{Right: 100, Bottom: 100},
		ObjectRect: geom.Rect{X: 50, Y: 50, W: 20, H: 20},
		Move:       func(_ *input.Event, d MoveDetail) { last = d },
	})
	c.Dispatch(testutil.Pointer(input.KindMove, 1, 10, 55, nil))
	assert.Equal(t, 10.0, last.X)
	c.Dispatch(testutil.Pointer(input.KindMove, 1, -20, 55, nil))
	assert.Equal(t, 5.0, last.X)
	assert.True(t, last.InBorder.Left)
	assert.Equal(t, geom.BorderLeft, last.Border)
}

// TestMove_AreaElementSubtractsInsets verifies area bounds and offsets.
func TestMove_AreaElementSubtractsInsets(t *testing.T) {
	c, _, _ := newTestContext()
	area := testutil.NewBox("area", geom.Rect{X: 0, Y: 0, W: 100, H: 80})
	area.Pad = geom.Insets{Left: 10, Top: 5, Right: 10, Bottom: 5}
	got := c.Move(testutil.Pointer(input.KindDown, 1, 50, 40, nil), MoveOptions{
		Area:   area,
		Offset: geom.Bounds{Left: 1, Right: -1},
	})
	assert.Equal(t, geom.Bounds{Left: 11, Top: 5, Right: 89, Bottom: 75}, got)
}

// TestMove_DefaultsToViewport verifies the viewport fallback.
func TestMove_DefaultsToViewport(t *testing.T) {
	c, _, _ := newTestContext()
	got := c.Move(testutil.Pointer(input.KindDown, 1, 50, 40, nil), MoveOptions{})
	assert.Equal(t, geom.Bounds{Right: 400, Bottom: 300}, got)
}

// TestMove_CursorTrailAndHooks verifies ambient effects of a session.
func TestMove_CursorTrailAndHooks(t *testing.T) {
	c, _, rec := newTestContext()
	box := testutil.NewBox("win", geom.Rect{W: 50, H: 50})
	box.CursorName = "move"
	var order []string
	remove := c.AddMoveHook(MoveHook{
		Down: func(*input.Event, *MoveOptions) { order = append(order, "hook-down") },
		Up:   func(*input.Event, *MoveOptions) { order = append(order, "hook-up") },
	})
	var upTrail, endTrail []Sample
	c.Move(testutil.Pointer(input.KindDown, 1, 10, 10, box), MoveOptions{
		Start: func(x, y float64) Verdict {
			order = append(order, "start")
			assert.Equal(t, 10.0, x)
			return Continue
		},
		Up: func(tr []Sample, _ *input.Event) {
			order = append(order, "up")
			upTrail = tr
		},
		End: func(tr []Sample, _ *input.Event) {
			order = append(order, "end")
			endTrail = tr
		},
	})
	assert.True(t, c.Moving())
	assert.Equal(t, "move", c.Cursor())
	c.Dispatch(testutil.Pointer(input.KindMove, 1, 12, 10, box))
	c.Dispatch(testutil.Pointer(input.KindMove, 1, 12, 15, box))
	c.Dispatch(testutil.Pointer(input.KindUp, 1, 12, 15, box))

	assert.False(t, c.Moving())
	assert.Equal(t, []string{"move", ""}, rec.cursors)
	assert.Equal(t, []string{"hook-down", "start", "hook-up", "up", "end"}, order)
	require.Len(t, upTrail, 2)
	assert.Equal(t, upTrail, endTrail)
	assert.Equal(t, 2.0, upTrail[0].DX)
	assert.Equal(t, 5.0, upTrail[1].DY)

	remove()
	order = nil
	c.Move(testutil.Pointer(input.KindDown, 1, 10, 10, box), MoveOptions{Cursor: "grab"})
	c.Dispatch(testutil.Pointer(input.KindUp, 1, 10, 10, box))
	assert.Empty(t, order)
	assert.Equal(t, "grab", rec.cursors[2])
}

// TestMove_StartCancelResetsCursor verifies a refused start clears the override.
func TestMove_StartCancelResetsCursor(t *testing.T) {
	c, _, _ := newTestContext()
	moved := false
	c.Move(testutil.Pointer(input.KindDown, 1, 10, 10, nil), MoveOptions{
		Cursor: "move",
		Start:  func(float64, float64) Verdict { return Cancel },
		Move:   func(*input.Event, MoveDetail) { moved = true },
	})
	c.Dispatch(testutil.Pointer(input.KindMove, 1, 20, 10, nil))
	assert.Empty(t, c.Cursor())
	assert.False(t, moved)
	c.Dispatch(testutil.Pointer(input.KindUp, 1, 20, 10, nil))
	assert.Zero(t, c.Listeners())
}
