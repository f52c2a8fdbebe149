package pointer

import (
	"testing"
	"time"

	"github.com/frudas24/pointerkit/internal/input"
	"github.com/frudas24/pointerkit/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func contextMenu() *input.Event {
	return &input.Event{Kind: input.KindContextMenu, Family: input.FamilyPointer, PointerType: input.PointerMouse, PointerID: 1, Button: input.ButtonSecondary, Cancelable: true}
}

// TestMenu_SecondaryClick verifies right click opens the menu once.
func TestMenu_SecondaryClick(t *testing.T) {
	c, clk, _ := newTestContext()
	n := 0
	down := testutil.Pointer(input.KindDown, 1, 10, 10, nil)
	down.Button = input.ButtonSecondary
	c.Menu(down, func(*input.Event) error {
		n++
		return nil
	})
	first := contextMenu()
	c.Dispatch(first)
	c.Dispatch(contextMenu())
	assert.True(t, first.DefaultPrevented())
	assert.Equal(t, 1, n)

	c.Dispatch(testutil.Pointer(input.KindUp, 1, 10, 10, nil))
	late := contextMenu()
	c.Dispatch(late)
	assert.True(t, late.DefaultPrevented(), "suppression outlives the release briefly")
	clk.Advance(34 * time.Millisecond)
	assert.Zero(t, c.Listeners())
}

// TestMenu_PrimaryMouseIgnored verifies only the secondary button qualifies.
func TestMenu_PrimaryMouseIgnored(t *testing.T) {
	c, _, _ := newTestContext()
	c.Menu(testutil.Pointer(input.KindDown, 1, 10, 10, nil), func(*input.Event) error { return nil })
	assert.Zero(t, c.Listeners())
}

// TestMenu_TouchLongPress verifies touch menus open on long press.
func TestMenu_TouchLongPress(t *testing.T) {
	c, clk, _ := newTestContext()
	n := 0
	c.Menu(testutil.Touch(input.KindDown, 1, 10, 10, nil), func(*input.Event) error {
		n++
		return nil
	})
	clk.Advance(300 * time.Millisecond)
	assert.Equal(t, 1, n)

	native := contextMenu()
	c.Dispatch(native)
	assert.True(t, native.DefaultPrevented())
	assert.Equal(t, 1, n)

	c.Dispatch(testutil.Touch(input.KindUp, 1, 10, 10, nil))
	clk.Advance(34 * time.Millisecond)
	assert.Zero(t, c.Listeners())
}
