// Package ws is the realtime feed: authenticated clients subscribe to
// essay ids and receive analysis and essay events as they happen.
package ws

import (
	"sync"

	"essaylab_backend/internal/logger"
)

// Event is the wire format pushed to subscribers.
type Event struct {
	Type    string      `json:"type"`
	EssayID string      `json:"essay_id"`
	Payload interface{} `json:"payload,omitempty"`
}

type WebSocketManager struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	events     chan Event
	done       chan struct{}
	mu         sync.RWMutex
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan Event, 64),
		done:       make(chan struct{}),
	}
}

// Run owns the client set. Call it once, on its own goroutine.
func (m *WebSocketManager) Run() {
	for {
		select {
		case <-m.done:
			m.mu.Lock()
			for client := range m.clients {
				delete(m.clients, client)
				close(client.send)
			}
			m.mu.Unlock()
			return

		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = struct{}{}
			m.mu.Unlock()
			logger.Debug("ws client connected", "user_id", client.UserID, "total", m.Count())

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				close(client.send)
			}
			m.mu.Unlock()
			logger.Debug("ws client disconnected", "user_id", client.UserID, "total", m.Count())

		case event := <-m.events:
			m.dispatch(event)
		}
	}
}

// Publish satisfies the services.EventPublisher interface.
func (m *WebSocketManager) Publish(essayID string, eventType string, payload interface{}) {
	select {
	case m.events <- Event{Type: eventType, EssayID: essayID, Payload: payload}:
	default:
		// The feed is best-effort; polling covers a dropped event.
		logger.Warn("ws event dropped", "type", eventType, "essay_id", essayID)
	}
}

// Stop tears down the hub and disconnects every client.
func (m *WebSocketManager) Stop() {
	close(m.done)
}

func (m *WebSocketManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *WebSocketManager) dispatch(event Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for client := range m.clients {
		if !client.subscribed(event.EssayID) {
			continue
		}
		select {
		case client.send <- event:
		default:
			// Slow consumer: drop the connection rather than block the hub.
			go func(c *Client) { m.unregister <- c }(client)
		}
	}
}
