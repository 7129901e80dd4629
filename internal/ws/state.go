// Package ws streams applied animation frames and diagnostics to
// browser clients so a headless run can be watched live. It sits
// outside the engine core: the scheduler just sees a Surface.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	diag "github.com/notekit/notekit/internal/diagnostics"
	"github.com/notekit/notekit/internal/surface"
)

// State wraps a placement surface: every successful PlaceAt is
// forwarded to the inner surface and broadcast to /ws clients.
type State struct {
	mu    sync.RWMutex
	inner surface.Surface

	frameID   uint64
	startTime time.Time

	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool

	// topology sent to clients on connect
	Items  int
	TickMS int
}

func NewState(inner surface.Surface, items, tickMS int) *State {
	return &State{
		inner:       inner,
		startTime:   time.Now(),
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
		Items:       items,
		TickMS:      tickMS,
	}
}

// PlaceAt implements surface.Surface.
func (s *State) PlaceAt(target surface.Target, container surface.Container, x, y int) error {
	if err := s.inner.PlaceAt(target, container, x, y); err != nil {
		return err
	}
	s.mu.Lock()
	s.frameID++
	id := s.frameID
	s.mu.Unlock()

	type frame struct {
		T       int64          `json:"t"`
		FrameID uint64         `json:"frame_id"`
		Target  surface.Target `json:"target"`
		X       int            `json:"x"`
		Y       int            `json:"y"`
	}
	b, _ := json.Marshal(frame{T: time.Now().UnixNano(), FrameID: id, Target: target, X: x, Y: y})
	s.broadcast(s.clients, b)
	return nil
}

func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()
	s.sendTopology(conn)

	go s.discardReads(conn, s.clients)
}

func (s *State) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.diagClients[conn] = true
	s.mu.Unlock()

	go s.discardReads(conn, s.diagClients)
}

func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp := map[string]any{
		"frame_id": s.frameID,
		"uptime_s": time.Since(s.startTime).Seconds(),
		"items":    s.Items,
		"tick_ms":  s.TickMS,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// PushDiag broadcasts a diagnostic to /diag clients.
func (s *State) PushDiag(d diag.Diagnostic) {
	b, _ := json.Marshal(d)
	s.broadcast(s.diagClients, b)
}

func (s *State) sendTopology(conn *websocket.Conn) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	top := map[string]any{
		"items":   s.Items,
		"tick_ms": s.TickMS,
	}
	b, _ := json.Marshal(top)
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

func (s *State) broadcast(clients map[*websocket.Conn]bool, b []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range clients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("ws write")
		}
	}
}

// discardReads keeps the connection's read side serviced and drops the
// client once it goes away.
func (s *State) discardReads(conn *websocket.Conn, clients map[*websocket.Conn]bool) {
	defer func() {
		s.mu.Lock()
		delete(clients, conn)
		s.mu.Unlock()
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
