package web

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tripdash/internal/trip"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// livePayload is pushed to map/dashboard clients whenever the followed
// trip gains events.
type livePayload struct {
	Key        string             `json:"key"`
	EventCount int                `json:"event_count"`
	Timeline   []trip.TimelineRow `json:"timeline"`
}

// tripHub fans live updates for one trip out to its websocket clients.
type tripHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func newTripHub() *tripHub {
	return &tripHub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *tripHub) add(c *websocket.Conn)    { h.mu.Lock(); h.clients[c] = struct{}{}; h.mu.Unlock() }
func (h *tripHub) remove(c *websocket.Conn) { h.mu.Lock(); delete(h.clients, c); h.mu.Unlock() }

func (h *tripHub) broadcast(p livePayload) {
	data, _ := json.Marshal(p)
	h.mu.Lock()
	for c := range h.clients {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			c.Close()
			delete(h.clients, c)
		}
	}
	h.mu.Unlock()
}

// hub returns the hub for a trip key, creating it on first use.
func (s *Server) hub(key string) *tripHub {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hubs[key]
	if !ok {
		h = newTripHub()
		s.hubs[key] = h
	}
	return h
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	rec, err := s.store.Get(key)
	if err != nil {
		http.Error(w, "trip not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ws upgrade", zap.Error(err))
		return
	}
	// Immediate snapshot so a fresh client does not wait for the next
	// poll tick. Written before the hub learns about the connection:
	// gorilla/websocket allows only one concurrent writer, and once the
	// hub has the conn the poller may broadcast to it at any moment.
	snapshot := livePayload{
		Key:        key,
		EventCount: len(rec.Events),
		Timeline:   trip.BuildTimeline(rec.Events),
	}
	data, _ := json.Marshal(snapshot)
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		_ = conn.Close()
		return
	}

	h := s.hub(key)
	h.add(conn)
	go readPump(h, conn)
}

func readPump(h *tripHub, c *websocket.Conn) {
	defer func() {
		h.remove(c)
		_ = c.Close()
	}()
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
