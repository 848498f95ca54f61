package domain

import "encoding/json"

// EventType is the wire name of an event. Chat uses the same name in both directions.
type EventType string

const (
	EventJoin           EventType = "join-room"
	EventMemberSnapshot EventType = "all-users"
	EventPeerJoined     EventType = "user-joined"
	EventRelaySignal    EventType = "sending-signal"
	EventPeerSignal     EventType = "user-signal"
	EventReturnSignal   EventType = "returning-signal"
	EventReturnedSignal EventType = "received-returned-signal"
	EventChat           EventType = "chat-message"
	EventPeerLeft       EventType = "user-left"
)

// Event is the closed set of messages exchanged with clients. Only types in
// this package implement it.
type Event interface {
	Type() EventType
	event()
}

// Join is sent by a client to enter a room.
type Join struct {
	RoomID   string `json:"roomId" validate:"required"`
	UserName string `json:"userName,omitempty"`
}

// RelaySignal carries a handshake payload from the initiator to one peer.
// CallerID is accepted for compatibility and ignored; the origin is always the
// sending connection.
type RelaySignal struct {
	UserToSignal string          `json:"userToSignal" validate:"required"`
	CallerID     string          `json:"callerId,omitempty"`
	Signal       json.RawMessage `json:"signal" validate:"payload"`
	CallerName   string          `json:"callerName,omitempty"`
}

// ReturnSignal answers a RelaySignal. CallerID names the target.
type ReturnSignal struct {
	CallerID string          `json:"callerId" validate:"required"`
	Signal   json.RawMessage `json:"signal" validate:"payload"`
}

// ChatMessage is a chat line submitted by a client.
type ChatMessage struct {
	RoomID   string `json:"roomId" validate:"required"`
	Message  string `json:"message" validate:"required,max=4000"`
	UserName string `json:"userName,omitempty"`
}

// Member identifies one participant on the wire.
type Member struct {
	SocketID string `json:"socketId"`
	UserName string `json:"userName"`
}

// MemberSnapshot lists the other members of a room at the moment of a join.
// It is encoded as a bare array.
type MemberSnapshot struct {
	Members []Member
}

func (s MemberSnapshot) MarshalJSON() ([]byte, error) {
	if s.Members == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.Members)
}

func (s *MemberSnapshot) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &s.Members)
}

type PeerJoined struct {
	SocketID string `json:"socketId"`
	UserName string `json:"userName"`
}

type PeerSignal struct {
	Signal     json.RawMessage `json:"signal"`
	CallerID   string          `json:"callerId"`
	CallerName string          `json:"callerName"`
}

type ReturnedSignal struct {
	Signal json.RawMessage `json:"signal"`
	ID     string          `json:"id"`
}

// ChatBroadcast is a chat line fanned out to a room. Timestamp is server time
// in unix milliseconds.
type ChatBroadcast struct {
	Message   string `json:"message"`
	UserName  string `json:"userName"`
	Timestamp int64  `json:"timestamp"`
}

// PeerLeft tells a room that a connection is gone. It is encoded as the bare
// connection id string.
type PeerLeft struct {
	SocketID string
}

func (l PeerLeft) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.SocketID)
}

func (l *PeerLeft) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &l.SocketID)
}

func (Join) Type() EventType           { return EventJoin }
func (RelaySignal) Type() EventType    { return EventRelaySignal }
func (ReturnSignal) Type() EventType   { return EventReturnSignal }
func (ChatMessage) Type() EventType    { return EventChat }
func (MemberSnapshot) Type() EventType { return EventMemberSnapshot }
func (PeerJoined) Type() EventType     { return EventPeerJoined }
func (PeerSignal) Type() EventType     { return EventPeerSignal }
func (ReturnedSignal) Type() EventType { return EventReturnedSignal }
func (ChatBroadcast) Type() EventType  { return EventChat }
func (PeerLeft) Type() EventType       { return EventPeerLeft }

func (Join) event()           {}
func (RelaySignal) event()    {}
func (ReturnSignal) event()   {}
func (ChatMessage) event()    {}
func (MemberSnapshot) event() {}
func (PeerJoined) event()     {}
func (PeerSignal) event()     {}
func (ReturnedSignal) event() {}
func (ChatBroadcast) event()  {}
func (PeerLeft) event()       {}

// NewInbound returns a zero value of the client-to-server event named by t.
// The bool is false for unknown names and for server-to-client events.
func NewInbound(t EventType) (Event, bool) {
	switch t {
	case EventJoin:
		return &Join{}, true
	case EventRelaySignal:
		return &RelaySignal{}, true
	case EventReturnSignal:
		return &ReturnSignal{}, true
	case EventChat:
		return &ChatMessage{}, true
	default:
		return nil, false
	}
}

// NewOutbound is the server-to-client counterpart of NewInbound, used by clients
// and tests to decode what the server sends.
func NewOutbound(t EventType) (Event, bool) {
	switch t {
	case EventMemberSnapshot:
		return &MemberSnapshot{}, true
	case EventPeerJoined:
		return &PeerJoined{}, true
	case EventPeerSignal:
		return &PeerSignal{}, true
	case EventReturnedSignal:
		return &ReturnedSignal{}, true
	case EventChat:
		return &ChatBroadcast{}, true
	case EventPeerLeft:
		return &PeerLeft{}, true
	default:
		return nil, false
	}
}
