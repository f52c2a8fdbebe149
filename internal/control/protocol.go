// Package control runs the pointer recognizers for one remote client and
// speaks its JSON protocol.
package control

import (
	"time"

	"github.com/frudas24/pointerkit/internal/geom"
	"github.com/frudas24/pointerkit/internal/input"
	"github.com/frudas24/pointerkit/internal/pointer"
	"github.com/frudas24/pointerkit/internal/scene"
)

// Inbound message types.
const (
	MsgDown         = "down"
	MsgMove         = "move"
	MsgUp           = "up"
	MsgCancel       = "cancel"
	MsgWheel        = "wheel"
	MsgEnter        = "enter"
	MsgLeave        = "leave"
	MsgContextMenu  = "contextmenu"
	MsgViewport     = "viewport"
	MsgLayout       = "layout"
	MsgInputEnabled = "inputEnabled"
)

// Outbound notice types.
const (
	NoticeClick      = "click"
	NoticeDblClick   = "dblclick"
	NoticeLong       = "long"
	NoticeMenu       = "menu"
	NoticeMove       = "move"
	NoticeResize     = "resize"
	NoticeScale      = "scale"
	NoticeGesture    = "gesture"
	NoticeHoverEnter = "hoverenter"
	NoticeHoverMove  = "hovermove"
	NoticeHoverLeave = "hoverleave"
	NoticeCursor     = "cursor"
	NoticeIndicator  = "indicator"
	NoticeGhost      = "ghost"
	NoticeCapture    = "capture"
	NoticeError      = "error"
)

// Message is a control payload sent by the client.
type Message struct {
	T          string        `json:"t"`
	ID         int           `json:"id,omitempty"`
	Family     string        `json:"family,omitempty"`
	PType      string        `json:"ptype,omitempty"`
	Button     int           `json:"button,omitempty"`
	X          float64       `json:"x,omitempty"`
	Y          float64       `json:"y,omitempty"`
	DX         float64       `json:"dx,omitempty"`
	DY         float64       `json:"dy,omitempty"`
	Target     string        `json:"target,omitempty"`
	TS         int64         `json:"ts,omitempty"`
	Cancelable *bool         `json:"cancelable,omitempty"`
	W          float64       `json:"w,omitempty"`
	H          float64       `json:"h,omitempty"`
	Layout     *scene.Layout `json:"layout,omitempty"`
	Enabled    *bool         `json:"enabled,omitempty"`
}

// Notice is a recognizer result sent back to the client.
type Notice struct {
	T         string                  `json:"t"`
	Target    string                  `json:"target,omitempty"`
	X         float64                 `json:"x,omitempty"`
	Y         float64                 `json:"y,omitempty"`
	DX        float64                 `json:"dx,omitempty"`
	DY        float64                 `json:"dy,omitempty"`
	Factor    float64                 `json:"factor,omitempty"`
	Dir       geom.Direction          `json:"dir,omitempty"`
	Border    geom.Border             `json:"border,omitempty"`
	Rect      *geom.Rect              `json:"rect,omitempty"`
	Cursor    string                  `json:"cursor,omitempty"`
	Rule      string                  `json:"rule,omitempty"`
	Pointer   int                     `json:"pointer,omitempty"`
	Value     any                     `json:"value,omitempty"`
	Indicator *pointer.IndicatorState `json:"indicator,omitempty"`
	Ghost     *pointer.GhostState     `json:"ghost,omitempty"`
	Error     string                  `json:"error,omitempty"`
}

// isPointerEvent reports whether the message carries an input event.
func (m Message) isPointerEvent() bool {
	switch m.T {
	case MsgDown, MsgMove, MsgUp, MsgCancel, MsgWheel, MsgEnter, MsgLeave, MsgContextMenu:
		return true
	default:
		return false
	}
}

// Event converts the message into a normalized input event. Missing family
// defaults to pointer, missing pointer type to mouse and missing timestamp
// to zero (stamped at dispatch). Events are cancelable unless told otherwise.
func (m Message) Event(target input.Element) (*input.Event, bool) {
	if !m.isPointerEvent() {
		return nil, false
	}
	family := input.Family(m.Family)
	switch family {
	case input.FamilyPointer, input.FamilyMouse, input.FamilyTouch:
	case "":
		family = input.FamilyPointer
	default:
		return nil, false
	}
	ptype := input.PointerType(m.PType)
	if ptype == "" {
		ptype = input.PointerMouse
		if family == input.FamilyTouch {
			ptype = input.PointerTouch
		}
	}
	e := &input.Event{
		Kind:        input.Kind(m.T),
		Family:      family,
		PointerType: ptype,
		PointerID:   m.ID,
		Button:      m.Button,
		X:           m.X,
		Y:           m.Y,
		DeltaX:      m.DX,
		DeltaY:      m.DY,
		Target:      target,
		Cancelable:  m.Cancelable == nil || *m.Cancelable,
	}
	if m.TS > 0 {
		e.Time = time.UnixMilli(m.TS)
	}
	return e, true
}
