package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"essaylab_backend/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4096
)

// IncomingMessage is what clients send: subscribe/unsubscribe to essays.
type IncomingMessage struct {
	Action  string `json:"action"` // subscribe | unsubscribe
	EssayID string `json:"essay_id"`
}

type Client struct {
	UserID string

	conn    *websocket.Conn
	send    chan Event
	manager *WebSocketManager

	mu     sync.RWMutex
	essays map[string]struct{}
}

func newClient(manager *WebSocketManager, conn *websocket.Conn, userID string) *Client {
	return &Client{
		UserID:  userID,
		conn:    conn,
		send:    make(chan Event, 16),
		manager: manager,
		essays:  make(map[string]struct{}),
	}
}

func (c *Client) subscribed(essayID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.essays[essayID]
	return ok
}

func (c *Client) subscribe(essayID string) {
	c.mu.Lock()
	c.essays[essayID] = struct{}{}
	c.mu.Unlock()
}

func (c *Client) unsubscribe(essayID string) {
	c.mu.Lock()
	delete(c.essays, essayID)
	c.mu.Unlock()
}

// readPump consumes subscription messages until the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("ws read error", "user_id", c.UserID, "error", err.Error())
			}
			return
		}

		var msg IncomingMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Action {
		case "subscribe":
			if msg.EssayID != "" {
				c.subscribe(msg.EssayID)
			}
		case "unsubscribe":
			c.unsubscribe(msg.EssayID)
		}
	}
}

// writePump pushes events and keepalive pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
