package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"LocalCanvas/internal/board"
	"LocalCanvas/internal/gesture"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Message is an event sent by a browser front-end.
type Message struct {
	Type    string   `json:"type"`
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	Tool    string   `json:"tool,omitempty"`
	Color   string   `json:"color,omitempty"`
	Width   int      `json:"width,omitempty"`
	Confirm bool     `json:"confirm,omitempty"`
}

// point returns nil unless both coordinates were sent.
func (m Message) point() *gesture.Point {
	if m.X == nil || m.Y == nil {
		return nil
	}
	return &gesture.Point{X: *m.X, Y: *m.Y}
}

// Reply is pushed to front-ends after every event.
type Reply struct {
	Type        string          `json:"type"`
	Stage       json.RawMessage `json:"stage,omitempty"`
	Step        int             `json:"step"`
	Length      int             `json:"length"`
	CanUndo     bool            `json:"canUndo"`
	CanRedo     bool            `json:"canRedo"`
	Tool        string          `json:"tool,omitempty"`
	Color       string          `json:"color,omitempty"`
	StrokeWidth int             `json:"strokeWidth,omitempty"`
	Error       string          `json:"error,omitempty"`
}

func statusReply(st board.Status) Reply {
	r := Reply{
		Type:        "stage",
		Step:        st.Step,
		Length:      st.Length,
		CanUndo:     st.CanUndo,
		CanRedo:     st.CanRedo,
		Tool:        string(st.Session.Tool),
		Color:       st.Session.Color,
		StrokeWidth: st.Session.StrokeWidth,
	}
	if st.Stage != "" {
		r.Stage = json.RawMessage(st.Stage)
	}
	return r
}

// Peer is one connected front-end.
type Peer struct {
	ID   string
	Conn *websocket.Conn
	mu   sync.Mutex
}

// Send writes one reply. Writes on a connection are serialized.
func (p *Peer) Send(r Reply) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.Conn.WriteJSON(r)
}

// PeerManager tracks every open view of the session.
type PeerManager struct {
	peers map[string]*Peer
	mu    sync.RWMutex
}

// NewPeerManager creates a new manager.
func NewPeerManager() *PeerManager {
	return &PeerManager{
		peers: make(map[string]*Peer),
	}
}

// Add registers a peer that just connected.
func (pm *PeerManager) Add(peer *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.peers[peer.ID] = peer
	log.Printf("[WS] Client %s connected from %s", peer.ID, peer.Conn.RemoteAddr())
}

// Remove forgets a peer.
func (pm *PeerManager) Remove(id string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if _, ok := pm.peers[id]; ok {
		delete(pm.peers, id)
		log.Printf("[WS] Client %s disconnected", id)
	}
}

// Len returns the number of connected peers.
func (pm *PeerManager) Len() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// Broadcast sends r to every peer. Peers that fail to receive are dropped.
func (pm *PeerManager) Broadcast(r Reply) {
	pm.mu.RLock()
	peers := make([]*Peer, 0, len(pm.peers))
	for _, p := range pm.peers {
		peers = append(peers, p)
	}
	pm.mu.RUnlock()

	for _, p := range peers {
		if err := p.Send(r); err != nil {
			log.Printf("[WS] Dropping client %s: %v", p.ID, err)
			p.Conn.Close()
			pm.Remove(p.ID)
		}
	}
}

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

// ErrUnconfirmedClear is returned when a clear arrives without confirmation.
var ErrUnconfirmedClear = errors.New("clear requires confirmation")

// Server exposes a board to browser front-ends over websockets.
type Server struct {
	board    *board.Board
	peers    *PeerManager
	upgrader websocket.Upgrader
}

// NewServer wraps a loaded board.
func NewServer(b *board.Board) *Server {
	return &Server{
		board: b,
		peers: NewPeerManager(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Front-ends are served from anywhere on the local network.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Peers returns the connection manager.
func (s *Server) Peers() *PeerManager {
	return s.peers
}

// Handler routes /ws to the websocket endpoint and /state to a JSON status
// snapshot.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("GET /state", s.handleState)
	return mux
}

// ListenAndServe serves on port until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Printf("[WS] Canvas server listening on port %d...", port)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(statusReply(s.board.Status())); err != nil {
		log.Printf("[WS] Writing state failed: %v", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade failed: %v", err)
		return
	}
	peer := &Peer{ID: uuid.NewString(), Conn: conn}
	s.peers.Add(peer)
	defer func() {
		conn.Close()
		s.peers.Remove(peer.ID)
	}()

	if err := peer.Send(statusReply(s.board.Status())); err != nil {
		return
	}

	conn.SetReadLimit(maxMessageSize)
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Read from %s failed: %v", peer.ID, err)
			}
			return
		}
		if err := s.Apply(msg); err != nil {
			if err := peer.Send(Reply{Type: "error", Error: err.Error()}); err != nil {
				return
			}
			continue
		}
		s.peers.Broadcast(statusReply(s.board.Status()))
	}
}

// Apply performs one front-end event on the board.
func (s *Server) Apply(msg Message) error {
	switch msg.Type {
	case "down":
		s.board.PointerDown(msg.point())
	case "move":
		s.board.PointerMove(msg.point())
	case "up":
		s.board.PointerUp()
	case "leave":
		s.board.PointerLeave()
	case "tool":
		t, ok := gesture.ParseTool(msg.Tool)
		if !ok {
			return fmt.Errorf("unknown tool %q", msg.Tool)
		}
		s.board.SetTool(t)
	case "color":
		if !s.board.SetColor(msg.Color) {
			return fmt.Errorf("color %q is not in the palette", msg.Color)
		}
	case "stroke":
		s.board.SetStrokeWidth(msg.Width)
	case "undo":
		s.board.Undo()
	case "redo":
		s.board.Redo()
	case "clear":
		if !msg.Confirm {
			return ErrUnconfirmedClear
		}
		s.board.Clear()
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}
