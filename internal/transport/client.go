package transport

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/immxrtalbeast/meetrelay/internal/domain"
	"github.com/immxrtalbeast/meetrelay/lib/logger/sl"
)

// EventHandler consumes decoded inbound events. A returned error rejects the
// single event; the connection stays open.
type EventHandler interface {
	HandleEvent(connectionID string, event domain.Event) error
}

type Options struct {
	ReadLimit  int64
	WriteWait  time.Duration
	PongWait   time.Duration
	PingPeriod time.Duration
	SendBuffer int
}

func DefaultOptions() Options {
	return Options{
		ReadLimit:  64 * 1024,
		WriteWait:  10 * time.Second,
		PongWait:   60 * time.Second,
		PingPeriod: 54 * time.Second,
		SendBuffer: 256,
	}
}

// Client is one live websocket connection. Reads happen on the goroutine that
// calls Run, writes on a dedicated pump fed by a buffered queue.
type Client struct {
	ID string

	hub     *Hub
	conn    *websocket.Conn
	codec   Codec
	handler EventHandler
	opts    Options
	log     *slog.Logger

	mu     sync.Mutex
	closed bool
	send   chan domain.Event

	unregisterOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, codec Codec, handler EventHandler, opts Options, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	id := uuid.New().String()
	return &Client{
		ID:      id,
		hub:     hub,
		conn:    conn,
		codec:   codec,
		handler: handler,
		opts:    opts,
		log:     log.With(slog.String("connection_id", id), slog.String("codec", codec.Name())),
		send:    make(chan domain.Event, opts.SendBuffer),
	}
}

// Run registers the client and blocks until the connection is gone.
func (c *Client) Run() {
	c.hub.Register(c)
	go c.writePump()
	c.readPump()
}

// enqueue queues event for the write pump without blocking. Events for a
// closed client or a full queue are dropped.
func (c *Client) enqueue(event domain.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- event:
		return true
	default:
		c.log.Debug("send queue full, dropping event", slog.String("type", string(event.Type())))
		return false
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.opts.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.log.Warn("connection closed unexpectedly", sl.Err(err))
			}
			return
		}

		event, err := c.codec.Decode(data)
		if err != nil {
			c.log.Warn("dropping undecodable frame", sl.Err(err))
			continue
		}

		if err := c.handler.HandleEvent(c.ID, event); err != nil {
			c.log.Warn("event rejected", slog.String("type", string(event.Type())), sl.Err(err))
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.opts.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := c.codec.Encode(event)
			if err != nil {
				c.log.Error("failed to encode event", slog.String("type", string(event.Type())), sl.Err(err))
				continue
			}
			if err := c.conn.WriteMessage(c.codec.MessageType(), data); err != nil {
				c.log.Debug("write failed", sl.Err(err))
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
