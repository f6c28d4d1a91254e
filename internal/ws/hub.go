package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"ShelfGuardian/entity"
	"ShelfGuardian/internal/lib/sl"
)

type delivery struct {
	userID int64
	data   []byte
}

// Hub keeps the active WebSocket clients grouped by user and delivers
// events to every connection of the addressed user.
type Hub struct {
	clients    map[int64]map[*Client]bool
	deliver    chan *delivery
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	log        *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		deliver:    make(chan *delivery, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log.With(sl.Module("ws.hub")),
	}
}

// Run is the hub's event loop; it returns when ctx is done. It must be
// called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case d := <-h.deliver:
			h.mu.Lock()
			for client := range h.clients[d.userID] {
				select {
				case client.send <- d.data:
				default:
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// remove must be called with mu held.
func (h *Hub) remove(client *Client) {
	conns, ok := h.clients[client.userID]
	if !ok || !conns[client] {
		return
	}
	delete(conns, client)
	close(client.send)
	if len(conns) == 0 {
		delete(h.clients, client.userID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conns := range h.clients {
		for client := range conns {
			h.remove(client)
		}
	}
}

// Publish queues event for userID. Events are dropped when the queue is
// full rather than blocking the caller.
func (h *Hub) Publish(userID int64, event entity.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.With(slog.String("type", event.Type), sl.Err(err)).Error("encoding event")
		return
	}

	select {
	case h.deliver <- &delivery{userID: userID, data: data}:
	default:
		h.log.With(
			slog.Int64("user_id", userID),
			slog.String("type", event.Type),
		).Warn("event queue full, dropping event")
	}
}

// ConnectedUsers lists users with at least one open connection.
func (h *Hub) ConnectedUsers() []int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]int64, 0, len(h.clients))
	for id := range h.clients {
		users = append(users, id)
	}
	return users
}
