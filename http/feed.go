package http

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"housepricer/house"
)

// PredictionEvent is broadcast to feed subscribers after each served
// prediction.
type PredictionEvent struct {
	Input     house.Input    `json:"input"`
	Estimate  house.Estimate `json:"estimate"`
	Cached    bool           `json:"cached"`
	Timestamp time.Time      `json:"timestamp"`
}

// FeedHub fans prediction events out to connected websocket clients.
type FeedHub struct {
	mu       sync.Mutex
	clients  map[*feedClient]bool
	upgrader websocket.Upgrader
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

var feedHub = newFeedHub()

func newFeedHub() *FeedHub {
	return &FeedHub{
		clients: make(map[*feedClient]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func RegisterFeedHandlers(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/ws/feed", feedHub.serveWS)
}

func (h *FeedHub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &feedClient{conn: conn, send: make(chan []byte, 16)}
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	go client.writePump(h)
	go client.readPump(h)
}

func (h *FeedHub) remove(client *feedClient) {
	h.mu.Lock()
	if h.clients[client] {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
	client.conn.Close()
}

// Broadcast sends the event to every connected client; slow clients are
// dropped rather than blocking the prediction path.
func (h *FeedHub) Broadcast(event PredictionEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("failed to encode feed event", zap.Error(err))
		return
	}

	h.mu.Lock()
	var stalled []*feedClient
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			stalled = append(stalled, client)
		}
	}
	h.mu.Unlock()

	for _, client := range stalled {
		h.remove(client)
	}
}

func (c *feedClient) writePump(h *FeedHub) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case payload, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.remove(c)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(c)
				return
			}
		}
	}
}

// readPump drains client frames so pings and close messages are handled.
func (c *feedClient) readPump(h *FeedHub) {
	defer h.remove(c)
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func broadcastPrediction(input house.Input, estimate house.Estimate, cached bool) {
	feedHub.Broadcast(PredictionEvent{
		Input:     input,
		Estimate:  estimate,
		Cached:    cached,
		Timestamp: time.Now(),
	})
}
