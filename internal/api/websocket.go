package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer; clients only send tiny commands
	maxMessageSize = 512

	// Per-client outbound buffer; slow readers get dropped, not waited on
	clientSendBuffer = 64

	// Hub-wide broadcast buffer
	hubBroadcastBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return IsAllowedOrigin(r.Header.Get("Origin"))
	},
}

// wsMessage is the envelope every broadcast wears on the wire.
type wsMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// outbound pairs a target session with an encoded frame.
type outbound struct {
	sessionID string
	payload   []byte
}

// wsClient is one connected spectator, pinned to a single session's stream.
type wsClient struct {
	hub       *WebSocketHub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// WebSocketHub fans controller events out to connected clients. All client
// registry mutation happens on the Run goroutine via channels.
type WebSocketHub struct {
	clients    map[*wsClient]bool
	register   chan *wsClient
	unregister chan *wsClient
	broadcast  chan outbound
	stopChan   chan struct{}
}

// NewWebSocketHub creates a hub. Call Run in a goroutine to start it.
func NewWebSocketHub() *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*wsClient]bool),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		broadcast:  make(chan outbound, hubBroadcastBuffer),
		stopChan:   make(chan struct{}),
	}
}

// Run owns the client registry. Runs until Stop.
func (h *WebSocketHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			RecordWSConnect()
			log.Printf("🔌 WS client connected (session=%s, %d total)", client.sessionID, len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				RecordWSDisconnect()
			}

		case msg := <-h.broadcast:
			for client := range h.clients {
				if client.sessionID != msg.sessionID {
					continue
				}
				select {
				case client.send <- msg.payload:
				default:
					// Slow reader: drop it rather than stall the hub
					delete(h.clients, client)
					close(client.send)
					RecordWSDisconnect()
				}
			}

		case <-h.stopChan:
			for client := range h.clients {
				close(client.send)
			}
			h.clients = make(map[*wsClient]bool)
			return
		}
	}
}

// Stop shuts the hub down.
func (h *WebSocketHub) Stop() {
	close(h.stopChan)
}

// Broadcast encodes one event and queues it for fan-out. Never blocks: the
// callers sit inside the session frame lock.
func (h *WebSocketHub) Broadcast(sessionID, msgType string, data interface{}) {
	payload, err := json.Marshal(wsMessage{
		Type:      msgType,
		SessionID: sessionID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	})
	if err != nil {
		return
	}

	select {
	case h.broadcast <- outbound{sessionID: sessionID, payload: payload}:
	default:
		// Hub backlog full; this frame is stale by the next tick anyway
	}
}

// ServeWS upgrades an HTTP request to a websocket subscribed to one session.
func (h *WebSocketHub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		RecordConnectionRejected("origin")
		log.Printf("⚠️ WS upgrade failed: %v", err)
		return
	}

	client := &wsClient{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, clientSendBuffer),
		sessionID: sessionID,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump drains (and discards) client messages so pings/pongs flow and
// disconnects are noticed. The command surface is HTTP, not the socket.
func (c *wsClient) readPump() {
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

// writePump pushes queued frames and keepalive pings to the peer.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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
