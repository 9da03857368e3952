package main

import (
	"encoding/json"
	"log"
	"math/rand"
	"time"

	"github.com/gorilla/websocket"

	"card-room/internal/config"
)

// dumb-bot joins a table and plays random legal actions. Useful for
// exercising a server by hand: run the game-server, create a table, and
// point two or more bots at it.

type snapshot struct {
	Type         string     `json:"type"`
	CurrentBet   int64      `json:"current_bet"`
	MinRaise     int64      `json:"min_raise"`
	CurrentActor string     `json:"current_actor"`
	Seats        []seatView `json:"seats"`
}

type seatView struct {
	Name     string `json:"name"`
	CallOwed int64  `json:"call_owed"`
}

type joinMsg struct {
	Type    string `json:"type"`
	TableID string `json:"table_id"`
	Name    string `json:"name"`
}

type actionMsg struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Amount int64  `json:"amount,omitempty"`
}

func main() {
	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.TableID == "" {
		log.Fatal("TABLE_ID is required")
	}

	conn, _, err := websocket.DefaultDialer.Dial(cfg.WSURL, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	join, _ := json.Marshal(joinMsg{Type: "join", TableID: cfg.TableID, Name: cfg.PlayerName})
	_ = conn.WriteMessage(websocket.TextMessage, join)

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var base struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &base); err != nil {
			continue
		}
		if base.Type != "state_update" {
			continue
		}
		var snap snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			continue
		}
		if snap.CurrentActor != cfg.PlayerName {
			continue
		}
		action := decide(rnd, snap, cfg.PlayerName)
		payload, _ := json.Marshal(action)
		_ = conn.WriteMessage(websocket.TextMessage, payload)
	}
}

func decide(rnd *rand.Rand, s snapshot, name string) actionMsg {
	var owed int64
	for _, seat := range s.Seats {
		if seat.Name == name {
			owed = seat.CallOwed
		}
	}
	if owed == 0 {
		if rnd.Intn(3) == 0 {
			return actionMsg{Type: "action", Action: "raise", Amount: s.CurrentBet + s.MinRaise}
		}
		return actionMsg{Type: "action", Action: "check"}
	}
	switch rnd.Intn(4) {
	case 0:
		return actionMsg{Type: "action", Action: "fold"}
	case 1:
		return actionMsg{Type: "action", Action: "raise", Amount: s.CurrentBet + s.MinRaise}
	default:
		return actionMsg{Type: "action", Action: "call"}
	}
}
