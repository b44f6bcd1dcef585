package sse

import (
	"context"
	"sync"

	"memory_mapping/internal/model"
)

// Client receives new memories. An empty Owner subscribes to every memory.
type Client struct {
	Owner string
	Ch    chan model.Memory
}

type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan model.Memory
	feeds      map[string]map[*Client]struct{}
	mu         sync.RWMutex
	done       chan struct{}
	stopOnce   sync.Once
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan model.Memory, 64),
		feeds:      make(map[string]map[*Client]struct{}),
		done:       make(chan struct{}),
	}
}

// Register, Unregister and Broadcast become no-ops once Run has returned.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) Broadcast(memory model.Memory) {
	select {
	case h.broadcast <- memory:
	case <-h.done:
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer h.stopOnce.Do(func() { close(h.done) })
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case memory := <-h.broadcast:
			h.deliver("", memory)
			if memory.Owner != "" {
				h.deliver(memory.Owner, memory)
			}
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.feeds[client.Owner] == nil {
		h.feeds[client.Owner] = make(map[*Client]struct{})
	}
	h.feeds[client.Owner][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	feed := h.feeds[client.Owner]
	if feed == nil {
		return
	}
	delete(feed, client)
	if len(feed) == 0 {
		delete(h.feeds, client.Owner)
	}
}

func (h *Hub) deliver(owner string, memory model.Memory) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.feeds[owner] {
		select {
		case client.Ch <- memory:
		default:
			// Drop if the client is too slow.
		}
	}
}
