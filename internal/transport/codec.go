package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/immxrtalbeast/meetrelay/internal/domain"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	SubprotocolJSON    = "meetrelay.json"
	SubprotocolMsgpack = "meetrelay.msgpack"
)

var (
	ErrUnknownEventType = errors.New("unknown event type")
	ErrMalformedFrame   = errors.New("malformed frame")
)

// EventLookup returns an empty event to decode a payload of type t into.
type EventLookup func(t domain.EventType) (domain.Event, bool)

// Codec turns events into websocket frames and back. Every frame is an
// envelope of {type, payload}.
type Codec interface {
	Name() string
	MessageType() int
	Encode(event domain.Event) ([]byte, error)
	Decode(data []byte) (domain.Event, error)
}

// CodecFor picks the codec for a negotiated subprotocol; JSON is the default.
func CodecFor(subprotocol string, lookup EventLookup) Codec {
	if subprotocol == SubprotocolMsgpack {
		return NewMsgpackCodec(lookup)
	}
	return NewJSONCodec(lookup)
}

type jsonEnvelope struct {
	Type    domain.EventType `json:"type"`
	Payload json.RawMessage  `json:"payload,omitempty"`
}

type JSONCodec struct {
	lookup EventLookup
}

func NewJSONCodec(lookup EventLookup) *JSONCodec {
	return &JSONCodec{lookup: lookup}
}

func (c *JSONCodec) Name() string     { return SubprotocolJSON }
func (c *JSONCodec) MessageType() int { return websocket.TextMessage }

func (c *JSONCodec) Encode(event domain.Event) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", event.Type(), err)
	}
	return json.Marshal(jsonEnvelope{Type: event.Type(), Payload: payload})
}

func (c *JSONCodec) Decode(data []byte) (domain.Event, error) {
	var env jsonEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFrame, err)
	}
	return decodePayload(c.lookup, env.Type, env.Payload)
}

type msgpackEnvelope struct {
	Type    domain.EventType `msgpack:"type"`
	Payload any              `msgpack:"payload"`
}

type msgpackFrame struct {
	Type    domain.EventType   `msgpack:"type"`
	Payload msgpack.RawMessage `msgpack:"payload"`
}

// MsgpackCodec carries the same envelope as JSONCodec in binary frames.
// Payloads pass through their JSON form so both codecs validate identically.
type MsgpackCodec struct {
	lookup EventLookup
}

func NewMsgpackCodec(lookup EventLookup) *MsgpackCodec {
	return &MsgpackCodec{lookup: lookup}
}

func (c *MsgpackCodec) Name() string     { return SubprotocolMsgpack }
func (c *MsgpackCodec) MessageType() int { return websocket.BinaryMessage }

func (c *MsgpackCodec) Encode(event domain.Event) ([]byte, error) {
	raw, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", event.Type(), err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", event.Type(), err)
	}

	return msgpack.Marshal(msgpackEnvelope{Type: event.Type(), Payload: normalizeNumbers(generic)})
}

func (c *MsgpackCodec) Decode(data []byte) (domain.Event, error) {
	var frame msgpackFrame
	if err := msgpack.Unmarshal(data, &frame); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFrame, err)
	}

	var payload json.RawMessage
	if len(frame.Payload) > 0 {
		var generic any
		if err := msgpack.Unmarshal(frame.Payload, &generic); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedFrame, err)
		}
		b, err := json.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedFrame, err)
		}
		payload = b
	}

	return decodePayload(c.lookup, frame.Type, payload)
}

func decodePayload(lookup EventLookup, t domain.EventType, payload json.RawMessage) (domain.Event, error) {
	event, ok := lookup(t)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, t)
	}
	if len(payload) == 0 {
		return event, nil
	}
	if err := json.Unmarshal(payload, event); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedFrame, t, err)
	}
	return event, nil
}

// normalizeNumbers turns json.Number values into int64 where exact, float64
// otherwise, so msgpack writes numbers rather than strings.
func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}
		return val
	default:
		return v
	}
}
