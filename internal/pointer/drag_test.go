package pointer

import (
	"testing"

	"github.com/frudas24/pointerkit/internal/geom"
	"github.com/frudas24/pointerkit/internal/input"
	"github.com/frudas24/pointerkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dragScene() (*testutil.Box, *testutil.Box, *testutil.Box, testutil.Hits) {
	src := testutil.NewBox("src", geom.Rect{X: 0, Y: 0, W: 50, H: 50})
	src.Drop = true
	a := testutil.NewBox("a", geom.Rect{X: 100, Y: 0, W: 50, H: 50})
	a.Drop = true
	b := testutil.NewBox("b", geom.Rect{X: 200, Y: 0, W: 50, H: 50})
	b.Drop = true
	return src, a, b, testutil.Hits{src, a, b}
}

// TestDrag_EnterLeaveDrop verifies the droppable transitions and payload.
func TestDrag_EnterLeaveDrop(t *testing.T) {
	src, a, b, hits := dragScene()
	c, _, rec := newTestContext(WithHitTester(hits))
	moves := 0
	ended := false
	c.Drag(testutil.Pointer(input.KindDown, 1, 10, 10, src), src, DragOptions{
		Data: "card-7",
		Move: func(*input.Event, MoveDetail) { moves++ },
		End:  func([]Sample, *input.Event) { ended = true },
	})
	assert.Equal(t, "card-7", c.DragData())

	c.Dispatch(testutil.Pointer(input.KindMove, 1, 20, 10, src))
	assert.Empty(t, src.Signals, "the dragged element is never a target")
	require.True(t, rec.lastGhost().Visible)
	assert.Equal(t, geom.Rect{X: 10, Y: 0, W: 50, H: 50}, rec.lastGhost().Rect)

	c.Dispatch(testutil.Pointer(input.KindMove, 1, 120, 10, src))
	assert.True(t, a.Hovered)
	assert.Equal(t, []string{input.SignalDragEnter}, a.SignalTypes())
	assert.Equal(t, "card-7", a.Signals[0].Value)

	c.Dispatch(testutil.Pointer(input.KindMove, 1, 125, 10, src))
	assert.Len(t, a.Signals, 1)

	c.Dispatch(testutil.Pointer(input.KindMove, 1, 220, 10, src))
	assert.False(t, a.Hovered)
	assert.True(t, b.Hovered)
	assert.Equal(t, []string{input.SignalDragEnter, input.SignalDragLeave}, a.SignalTypes())

	c.Dispatch(testutil.Pointer(input.KindUp, 1, 220, 10, src))
	assert.Equal(t, []string{input.SignalDragEnter, input.SignalDrop}, b.SignalTypes())
	assert.Equal(t, "card-7", b.Signals[1].Value)
	assert.False(t, b.Hovered)
	assert.False(t, rec.lastGhost().Visible)
	assert.Equal(t, 4, moves)
	assert.True(t, ended)
	assert.Nil(t, c.DragData())
	assert.Zero(t, c.Listeners())
}

// TestDrag_LeaveToEmptySpace verifies leaving all droppables issues dragleave.
func TestDrag_LeaveToEmptySpace(t *testing.T) {
	src, a, _, hits := dragScene()
	c, _, _ := newTestContext(WithHitTester(hits))
	c.Drag(testutil.Pointer(input.KindDown, 1, 10, 10, src), src, DragOptions{Data: 1})
	c.Dispatch(testutil.Pointer(input.KindMove, 1, 120, 10, src))
	c.Dispatch(testutil.Pointer(input.KindMove, 1, 120, 200, src))
	c.Dispatch(testutil.Pointer(input.KindUp, 1, 120, 200, src))
	assert.Equal(t, []string{input.SignalDragEnter, input.SignalDragLeave}, a.SignalTypes())
	assert.Nil(t, c.DragData())
}

// TestDrag_ReleaseWithoutMovingClearsPayload verifies the slot never leaks.
func TestDrag_ReleaseWithoutMovingClearsPayload(t *testing.T) {
	src, _, _, hits := dragScene()
	c, _, rec := newTestContext(WithHitTester(hits))
	c.Drag(testutil.Pointer(input.KindDown, 1, 10, 10, src), src, DragOptions{Data: "x"})
	c.SetDragData("y")
	assert.Equal(t, "y", c.DragData())
	c.Dispatch(testutil.Pointer(input.KindUp, 1, 10, 10, src))
	assert.Nil(t, c.DragData())
	assert.Empty(t, rec.ghosts)
}
