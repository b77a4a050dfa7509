// File: /realtime/hub.go
package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Message is the payload broadcast to challenge rooms.
type Message struct {
	Type        string      `json:"type"` // LEADERBOARD_UPDATED, STATUS_CHANGED
	Payload     interface{} `json:"payload"`
	ChallengeID string      `json:"challenge_id,omitempty"`
}

const (
	MessageLeaderboardUpdated = "LEADERBOARD_UPDATED"
	MessageStatusChanged      = "STATUS_CHANGED"
)

// Client is one websocket subscriber, attached to a single challenge room.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	room string

	mu     sync.Mutex
	closed bool
}

// Hub fans messages out to clients grouped into per-challenge rooms.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

// Run processes registrations. Call it once in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.room]; ok {
				if _, found := clients[client]; found {
					client.mu.Lock()
					if !client.closed {
						close(client.send)
						client.closed = true
					}
					client.mu.Unlock()
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.rooms, client.room)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToChallenge sends a message to every client in a challenge room.
// Slow clients are skipped rather than blocking the hub.
func (h *Hub) BroadcastToChallenge(challengeID string, msg Message) {
	msg.ChallengeID = challengeID

	raw, err := json.Marshal(msg)
	if err != nil {
		log.Printf("realtime: failed to marshal message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[challengeID] {
		client.mu.Lock()
		if client.closed {
			client.mu.Unlock()
			continue
		}
		select {
		case client.send <- raw:
		default:
		}
		client.mu.Unlock()
	}
}

// RoomSize reports the subscriber count of a challenge room.
func (h *Hub) RoomSize(challengeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[challengeID])
}

// NewClient attaches a websocket connection to a challenge room and starts
// its read/write pumps.
func (h *Hub) NewClient(conn *websocket.Conn, challengeID string) *Client {
	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 16),
		room: challengeID,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()

	return client
}

// readPump discards inbound frames; the socket is broadcast-only. It exists
// to notice disconnects and answer pings.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case raw, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
