package transport

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/immxrtalbeast/meetrelay/internal/domain"
)

// Hub is the connection registry and the broadcast-group primitive. Group
// membership is keyed by connection id, so a group never outlives the
// connections in it.
type Hub struct {
	log *slog.Logger

	mu      sync.RWMutex
	clients map[string]*Client
	groups  map[string]map[string]struct{}
	joined  map[string]map[string]struct{}
	onClose []func(connectionID string)
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		log:     log,
		clients: make(map[string]*Client),
		groups:  make(map[string]map[string]struct{}),
		joined:  make(map[string]map[string]struct{}),
	}
}

// OnClose registers fn to run once for every connection that goes away.
func (h *Hub) OnClose(fn func(connectionID string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onClose = append(h.onClose, fn)
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c.ID] = c
	total := len(h.clients)
	h.mu.Unlock()

	h.log.Debug("connection registered", slog.String("connection_id", c.ID), slog.Int("connections", total))
}

// Unregister removes c from the registry and every group, runs the close
// callbacks and stops its write pump. Extra calls are no-ops.
func (h *Hub) Unregister(c *Client) {
	c.unregisterOnce.Do(func() {
		h.mu.Lock()
		delete(h.clients, c.ID)
		for group := range h.joined[c.ID] {
			h.removeFromGroup(group, c.ID)
		}
		delete(h.joined, c.ID)
		callbacks := append([]func(string){}, h.onClose...)
		total := len(h.clients)
		h.mu.Unlock()

		for _, fn := range callbacks {
			fn(c.ID)
		}
		c.closeSend()

		h.log.Debug("connection unregistered", slog.String("connection_id", c.ID), slog.Int("connections", total))
	})
}

func (h *Hub) Send(connectionID string, event domain.Event) bool {
	h.mu.RLock()
	c, ok := h.clients[connectionID]
	h.mu.RUnlock()

	if !ok {
		return false
	}
	return c.enqueue(event)
}

func (h *Hub) Broadcast(group string, event domain.Event, exclude string) int {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.groups[group]))
	for id := range h.groups[group] {
		if id == exclude {
			continue
		}
		if c, ok := h.clients[id]; ok {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range targets {
		if c.enqueue(event) {
			sent++
		}
	}
	return sent
}

// JoinGroup adds a registered connection to group. Unknown connections are ignored.
func (h *Hub) JoinGroup(group, connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[connectionID]; !ok {
		return
	}

	members, ok := h.groups[group]
	if !ok {
		members = make(map[string]struct{})
		h.groups[group] = members
	}
	members[connectionID] = struct{}{}

	groups, ok := h.joined[connectionID]
	if !ok {
		groups = make(map[string]struct{})
		h.joined[connectionID] = groups
	}
	groups[group] = struct{}{}
}

func (h *Hub) LeaveGroup(group, connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromGroup(group, connectionID)
	if groups, ok := h.joined[connectionID]; ok {
		delete(groups, group)
		if len(groups) == 0 {
			delete(h.joined, connectionID)
		}
	}
}

func (h *Hub) removeFromGroup(group, connectionID string) {
	members, ok := h.groups[group]
	if !ok {
		return
	}
	delete(members, connectionID)
	if len(members) == 0 {
		delete(h.groups, group)
	}
}

// GroupSize reports how many connections are in group.
func (h *Hub) GroupSize(group string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[group])
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close sends a going-away close frame to every live connection and closes it.
// Their read pumps then unregister them as usual.
func (h *Hub) Close() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	deadline := time.Now().Add(time.Second)
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for _, c := range clients {
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, deadline)
		_ = c.conn.Close()
	}

	h.log.Info("closed live connections", slog.Int("count", len(clients)))
}
