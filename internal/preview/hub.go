package preview

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/domhelper/pkg/dom"
)

const writeTimeout = 5 * time.Second

// liveMessage is one frame of the /live stream.
// Seq counts op requests. A snapshot carries the seq it reflects; clients
// apply patch frames with a higher seq in seq order.
type liveMessage struct {
	Seq     uint64      `json:"seq"`
	HTML    string      `json:"html,omitempty"`
	Patches []dom.Patch `json:"patches,omitempty"`
}

type client struct {
	writeMu sync.Mutex
	conn    *websocket.Conn
}

func (c *client) send(msg liveMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(msg)
}

// hub fans patches out to live clients.
type hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	logger  *slog.Logger
}

func newHub(logger *slog.Logger) *hub {
	return &hub{clients: make(map[*client]struct{}), logger: logger}
}

func (h *hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.conn.Close()
	}
}

func (h *hub) snapshot() []*client {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		out = append(out, c)
	}
	return out
}

// broadcast sends msg to clients, dropping the ones that fail.
func (h *hub) broadcast(clients []*client, msg liveMessage) {
	if len(msg.Patches) == 0 {
		return
	}
	for _, c := range clients {
		if err := c.send(msg); err != nil {
			h.logger.Debug("dropping live client", "error", err)
			h.remove(c)
		}
	}
}

func (h *hub) closeAll() {
	for _, c := range h.snapshot() {
		h.remove(c)
	}
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
