package domain

import (
	"bytes"
	"encoding/json"

	"github.com/pion/webrtc/v3"
)

type SignalKind string

const (
	SignalOffer       SignalKind = "offer"
	SignalAnswer      SignalKind = "answer"
	SignalPranswer    SignalKind = "pranswer"
	SignalRollback    SignalKind = "rollback"
	SignalCandidate   SignalKind = "candidate"
	SignalRenegotiate SignalKind = "renegotiate"
	SignalUnknown     SignalKind = "unknown"
)

// signalShape matches the shapes browser peer libraries emit: a session
// description, a trickled candidate, or a renegotiation request.
type signalShape struct {
	Type        string                   `json:"type"`
	SDP         string                   `json:"sdp"`
	Candidate   *webrtc.ICECandidateInit `json:"candidate"`
	Renegotiate bool                     `json:"renegotiate"`
}

// ClassifySignal labels an opaque handshake payload for logging. The payload
// itself is never altered.
func ClassifySignal(raw json.RawMessage) SignalKind {
	var shape signalShape
	if err := json.Unmarshal(raw, &shape); err != nil {
		return SignalUnknown
	}

	if shape.Candidate != nil && shape.Candidate.Candidate != "" {
		return SignalCandidate
	}
	if shape.Renegotiate {
		return SignalRenegotiate
	}

	switch webrtc.NewSDPType(shape.Type) {
	case webrtc.SDPTypeOffer:
		return SignalOffer
	case webrtc.SDPTypeAnswer:
		return SignalAnswer
	case webrtc.SDPTypePranswer:
		return SignalPranswer
	case webrtc.SDPTypeRollback:
		return SignalRollback
	}

	return SignalUnknown
}

// IsEmptySignal reports whether raw carries nothing to forward.
func IsEmptySignal(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
