package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"card-room/internal/app/table"
	"card-room/internal/game"
)

type Client struct {
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
	tableID string
	name    string // empty for spectators
	cancel  func()
}

// Server fans table updates out to websocket clients and feeds their
// actions into the table service. A dropped connection is treated as an
// explicit leave, never a silent stall.
type Server struct {
	svc      *table.Service
	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[*Client]bool
}

func NewServer(svc *table.Service) *Server {
	return &Server{
		svc:      svc,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		clients:  map[*Client]bool{},
	}
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{conn: conn, send: make(chan []byte, 16), done: make(chan struct{})}
	s.mu.Lock()
	s.clients[client] = true
	s.mu.Unlock()

	go s.writeLoop(client)
	s.readLoop(client)
}

func (s *Server) readLoop(c *Client) {
	defer func() {
		s.unregister(c)
		_ = c.conn.Close()
	}()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var base struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &base); err != nil {
			continue
		}
		switch base.Type {
		case "join":
			s.handleJoin(c, data)
		case "spectate":
			s.handleSpectate(c, data)
		case "action":
			s.handleAction(c, data)
		case "leave":
			return
		}
	}
}

func (s *Server) handleJoin(c *Client, data []byte) {
	var msg JoinMessage
	if err := json.Unmarshal(data, &msg); err != nil || msg.TableID == "" || msg.Name == "" {
		s.sendJSON(c, JoinResult{Type: "join_result", ProtocolVersion: game.ProtocolVersion, Ok: false, Error: "invalid_request"})
		return
	}
	if c.tableID != "" {
		s.sendJSON(c, JoinResult{Type: "join_result", ProtocolVersion: game.ProtocolVersion, Ok: false, Error: "already_joined"})
		return
	}
	if err := s.svc.Join(context.Background(), msg.TableID, msg.Name); err != nil {
		s.sendJSON(c, JoinResult{Type: "join_result", ProtocolVersion: game.ProtocolVersion, Ok: false, Error: err.Error()})
		return
	}
	c.tableID = msg.TableID
	c.name = msg.Name
	s.subscribe(c)
	s.sendJSON(c, JoinResult{Type: "join_result", ProtocolVersion: game.ProtocolVersion, Ok: true, TableID: msg.TableID})
	s.pushState(c)
	log.Info().Str("table_id", msg.TableID).Str("player", msg.Name).Msg("ws player joined")
}

func (s *Server) handleSpectate(c *Client, data []byte) {
	var msg SpectateMessage
	if err := json.Unmarshal(data, &msg); err != nil || msg.TableID == "" {
		s.sendJSON(c, JoinResult{Type: "join_result", ProtocolVersion: game.ProtocolVersion, Ok: false, Error: "invalid_request"})
		return
	}
	if c.tableID != "" {
		s.sendJSON(c, JoinResult{Type: "join_result", ProtocolVersion: game.ProtocolVersion, Ok: false, Error: "already_joined"})
		return
	}
	c.tableID = msg.TableID
	s.subscribe(c)
	s.sendJSON(c, JoinResult{Type: "join_result", ProtocolVersion: game.ProtocolVersion, Ok: true, TableID: msg.TableID})
	s.pushState(c)
}

func (s *Server) handleAction(c *Client, data []byte) {
	if c.tableID == "" || c.name == "" {
		s.sendJSON(c, ActionResult{Type: "action_result", ProtocolVersion: game.ProtocolVersion, Ok: false, Error: "not_joined"})
		return
	}
	var msg ActionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendJSON(c, ActionResult{Type: "action_result", ProtocolVersion: game.ProtocolVersion, Ok: false, Error: "invalid_request"})
		return
	}
	action := game.ActionType(msg.Action)
	if msg.Action == "bet" {
		// Bots speak "bet" for an opening raise.
		action = game.ActionRaise
	}
	if _, err := s.svc.Act(context.Background(), c.tableID, c.name, action, msg.Amount); err != nil {
		s.sendJSON(c, ActionResult{Type: "action_result", ProtocolVersion: game.ProtocolVersion, Ok: false, Error: err.Error()})
		return
	}
	s.sendJSON(c, ActionResult{Type: "action_result", ProtocolVersion: game.ProtocolVersion, Ok: true})
}

// subscribe starts forwarding table updates to the client: a fresh
// per-viewer snapshot on every change, plus hand_end on settlement.
func (s *Server) subscribe(c *Client) {
	updates, cancel, err := s.svc.Subscribe(c.tableID)
	if err != nil {
		return
	}
	c.cancel = cancel
	go func() {
		for {
			select {
			case <-c.done:
				return
			case u := <-updates:
				if u.Result != nil {
					s.sendJSON(c, HandEnd{
						Type:            "hand_end",
						ProtocolVersion: game.ProtocolVersion,
						TableID:         u.Result.TableID,
						HandID:          u.Result.HandID,
						Winners:         u.Result.Winners,
						Pot:             u.Result.Pot,
						Awards:          u.Result.Awards,
						Showdown:        u.Result.Showdown,
					})
				}
				s.pushState(c)
			}
		}
	}()
}

func (s *Server) pushState(c *Client) {
	snap, err := s.svc.PublicState(c.tableID, c.name)
	if err != nil {
		return
	}
	s.sendJSON(c, snap)
}

func (s *Server) sendJSON(c *Client, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
		// Slow consumer: drop; the next state push is a full snapshot.
	}
}

func (s *Server) writeLoop(c *Client) {
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}
}

func (s *Server) unregister(c *Client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	close(c.done)
	if c.cancel != nil {
		c.cancel()
	}
	if c.tableID != "" && c.name != "" {
		if err := s.svc.Leave(context.Background(), c.tableID, c.name); err != nil {
			log.Debug().Err(err).Str("table_id", c.tableID).Str("player", c.name).Msg("leave on disconnect")
		} else {
			log.Info().Str("table_id", c.tableID).Str("player", c.name).Msg("ws player left")
		}
	}
}
