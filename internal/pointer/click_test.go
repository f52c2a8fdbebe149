package pointer

import (
	"testing"
	"time"

	"github.com/frudas24/pointerkit/internal/geom"
	"github.com/frudas24/pointerkit/internal/input"
	"github.com/frudas24/pointerkit/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func counter(n *int) ClickHandler {
	return func(*input.Event, float64, float64) { *n++ }
}

// TestClick_QuickStillReleaseFires verifies the happy path fires once.
func TestClick_QuickStillReleaseFires(t *testing.T) {
	c, clk, _ := newTestContext()
	n := 0
	c.Click(testutil.Pointer(input.KindDown, 1, 10, 10, nil), counter(&n))
	clk.Advance(249 * time.Millisecond)
	c.Dispatch(testutil.Pointer(input.KindUp, 1, 10, 10, nil))
	assert.Equal(t, 1, n)
	assert.Zero(t, c.Listeners())
}

// TestClick_Rejections verifies slow, moved, cancelled and secondary presses.
func TestClick_Rejections(t *testing.T) {
	t.Run("slow", func(t *testing.T) {
		c, clk, _ := newTestContext()
		n := 0
		c.Click(testutil.Pointer(input.KindDown, 1, 10, 10, nil), counter(&n))
		clk.Advance(250 * time.Millisecond)
		c.Dispatch(testutil.Pointer(input.KindUp, 1, 10, 10, nil))
		assert.Zero(t, n)
	})
	t.Run("moved and returned", func(t *testing.T) {
		c, _, _ := newTestContext()
		n := 0
		c.Click(testutil.Pointer(input.KindDown, 1, 10, 10, nil), counter(&n))
		c.Dispatch(testutil.Pointer(input.KindMove, 1, 11, 10, nil))
		c.Dispatch(testutil.Pointer(input.KindUp, 1, 10, 10, nil))
		assert.Zero(t, n)
		assert.Zero(t, c.Listeners())
	})
	t.Run("released elsewhere", func(t *testing.T) {
		c, _, _ := newTestContext()
		n := 0
		c.Click(testutil.Pointer(input.KindDown, 1, 10, 10, nil), counter(&n))
		c.Dispatch(testutil.Pointer(input.KindUp, 1, 12, 10, nil))
		assert.Zero(t, n)
	})
	t.Run("cancel", func(t *testing.T) {
		c, _, _ := newTestContext()
		n := 0
		c.Click(testutil.Pointer(input.KindDown, 1, 10, 10, nil), counter(&n))
		c.Dispatch(testutil.Pointer(input.KindCancel, 1, 10, 10, nil))
		assert.Zero(t, n)
		assert.Zero(t, c.Listeners())
	})
	t.Run("secondary button", func(t *testing.T) {
		c, _, _ := newTestContext()
		n := 0
		e := testutil.Pointer(input.KindDown, 1, 10, 10, nil)
		e.Button = input.ButtonSecondary
		c.Click(e, counter(&n))
		assert.Zero(t, c.Listeners())
	})
}

func clickAt(c *Context, x, y float64, h ClickHandler) {
	c.DblClick(testutil.Pointer(input.KindDown, 1, x, y, nil), h)
	c.Dispatch(testutil.Pointer(input.KindUp, 1, x, y, nil))
}

// TestDblClick_CollapsesAndResets verifies two clicks fire once and reset state.
func TestDblClick_CollapsesAndResets(t *testing.T) {
	c, clk, _ := newTestContext()
	n := 0
	clickAt(c, 10, 10, counter(&n))
	clk.Advance(100 * time.Millisecond)
	clickAt(c, 15, 12, counter(&n))
	assert.Equal(t, 1, n)

	clk.Advance(100 * time.Millisecond)
	clickAt(c, 15, 12, counter(&n))
	assert.Equal(t, 1, n, "third click must start fresh")
	clk.Advance(100 * time.Millisecond)
	clickAt(c, 15, 12, counter(&n))
	assert.Equal(t, 2, n)
}

// TestDblClick_WindowAndRadius verifies slow or distant clicks do not pair.
func TestDblClick_WindowAndRadius(t *testing.T) {
	c, clk, _ := newTestContext()
	n := 0
	clickAt(c, 10, 10, counter(&n))
	clk.Advance(301 * time.Millisecond)
	clickAt(c, 10, 10, counter(&n))
	assert.Zero(t, n)

	clk.Advance(50 * time.Millisecond)
	clickAt(c, 20, 10, counter(&n))
	assert.Zero(t, n)
}

// TestDblClick_SharedAcrossTargets verifies the context keeps one last click.
func TestDblClick_SharedAcrossTargets(t *testing.T) {
	c, _, _ := newTestContext()
	a := testutil.NewBox("a", geom.Rect{W: 50, H: 50})
	b := testutil.NewBox("b", geom.Rect{W: 50, H: 50})
	n := 0
	c.DblClick(testutil.Pointer(input.KindDown, 1, 5, 5, a), counter(&n))
	c.Dispatch(testutil.Pointer(input.KindUp, 1, 5, 5, a))
	c.DblClick(testutil.Pointer(input.KindDown, 1, 5, 5, b), counter(&n))
	c.Dispatch(testutil.Pointer(input.KindUp, 1, 5, 5, b))
	assert.Equal(t, 1, n)
}
