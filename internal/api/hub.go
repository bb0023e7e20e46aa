package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
	livePingPeriod = livePongWait * 9 / 10
)

// liveHub fans out change notifications to connected admin panels.
type liveHub struct {
	clients    map[*liveClient]bool
	broadcast  chan []byte
	register   chan *liveClient
	unregister chan *liveClient
	done       chan struct{}
	stopOnce   sync.Once
	upgrader   websocket.Upgrader
}

type liveClient struct {
	hub   *liveHub
	conn  *websocket.Conn
	send  chan []byte
	email string
}

// LiveEvent is one message on the admin feed, for example
// {"type":"hoteles.actualizado","payload":{"id":"..."}}.
type LiveEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type eventRef struct {
	ID string `json:"id"`
}

func newLiveHub() *liveHub {
	return &liveHub{
		clients:    make(map[*liveClient]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *liveClient),
		unregister: make(chan *liveClient),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			// Requests already carry a verified token; CORS rules do not
			// apply to websocket handshakes.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *liveHub) run() {
	for {
		select {
		case <-h.done:
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			log.Printf("[live] %s connected (%d clients)", c.email, len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				log.Printf("[live] %s disconnected", c.email)
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Too slow to keep up; drop it.
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

func (h *liveHub) stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// publish never blocks a request: when the queue is full the event is lost.
func (h *liveHub) publish(eventType string, payload any) {
	data, err := json.Marshal(LiveEvent{Type: eventType, Payload: mustJSON(payload)})
	if err != nil {
		return
	}
	select {
	case h.broadcast <- data:
	default:
		log.Printf("[live] queue full, dropped %s", eventType)
	}
}

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return data
}

func (s *Server) handleLiveFeed(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	conn, err := s.hub.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[live] upgrade error: %v", err)
		return
	}

	c := &liveClient{
		hub:   s.hub,
		conn:  conn,
		send:  make(chan []byte, 64),
		email: claims.Email,
	}
	c.send <- mustJSON(LiveEvent{Type: "hello", Payload: mustJSON(map[string]string{"usuario": claims.Email})})

	select {
	case s.hub.register <- c:
	case <-s.hub.done:
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// readPump only watches for pongs and the close frame; clients do not send
// commands.
func (c *liveClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(4 << 10)
	_ = c.conn.SetReadDeadline(time.Now().Add(livePongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(livePongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *liveClient) writePump() {
	ticker := time.NewTicker(livePingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
