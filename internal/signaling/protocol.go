// Package signaling negotiates the WebRTC data channel that carries control
// messages.
package signaling

import "github.com/pion/webrtc/v3"

// Signaling message types.
const (
	MsgOffer   = "offer"
	MsgAnswer  = "answer"
	MsgICE     = "ice"
	MsgRestart = "restart"
)

// Message is a websocket signaling payload.
type Message struct {
	T         string                   `json:"t"`
	SDP       string                   `json:"sdp,omitempty"`
	Candidate *webrtc.ICECandidateInit `json:"candidate,omitempty"`
}
