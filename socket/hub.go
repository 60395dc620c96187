package socket

import (
	"context"
	"encoding/json"
	"sync"

	"stylesuggest/internal/suggestion/model"
	"stylesuggest/pkg/logger"
)

const (
	ConnectedType = "CONNECTED" // Sent once after the hub registers a socket
	CreatedType   = "CREATED"   // A suggestion was added
	UpdatedType   = "UPDATED"   // A suggestion was edited in place
	DeletedType   = "DELETED"   // A suggestion was removed; only the id is set
)

type Event struct {
	Type       string            `json:"type"`
	Suggestion *model.Suggestion `json:"suggestion,omitempty"`
}

// Hub fans store mutations out to every connected websocket.
type Hub struct {
	Broadcast  chan Event
	Register   chan *Client
	Unregister chan *Client

	mu      sync.Mutex
	clients map[*Client]bool
	done    chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan Event, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		done:       make(chan struct{}),
	}
}

// Publish queues an event without blocking the caller. Events are dropped when
// the queue is full.
func (h *Hub) Publish(evt Event) {
	select {
	case h.Broadcast <- evt:
	default:
		logger.Sugar.Warnf("Hub broadcast queue is full, dropping %s event", evt.Type)
	}
}

// ClientCount reports the number of registered sockets.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Run is the hub's event loop. It returns when ctx is cancelled, closing every
// client's send channel.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			return

		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

			hello, _ := json.Marshal(Event{Type: ConnectedType})
			client.Send <- hello
			logger.Sugar.Infof("Change feed client connected: %s", client.UserID)

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case evt := <-h.Broadcast:
			payload, err := json.Marshal(evt)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling broadcast event: %v", err)
				continue
			}

			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- payload:
				default:
					// The client is lagging; drop it so the hub never blocks.
					logger.Sugar.Warnf("Client %s's send buffer is full. Unregistering.", client.UserID)
					delete(h.clients, client)
					close(client.Send)
				}
			}
			h.mu.Unlock()
		}
	}
}
