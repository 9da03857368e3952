package ws

import "card-room/internal/game"

type JoinMessage struct {
	Type    string `json:"type"`
	TableID string `json:"table_id"`
	Name    string `json:"name"`
}

type SpectateMessage struct {
	Type    string `json:"type"`
	TableID string `json:"table_id"`
}

type ActionMessage struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Amount int64  `json:"amount"`
}

type JoinResult struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Ok              bool   `json:"ok"`
	Error           string `json:"error,omitempty"`
	TableID         string `json:"table_id,omitempty"`
}

type ActionResult struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Ok              bool   `json:"ok"`
	Error           string `json:"error,omitempty"`
}

// HandEnd is broadcast once per hand when it resolves, by fold-out or
// showdown.
type HandEnd struct {
	Type            string          `json:"type"`
	ProtocolVersion string          `json:"protocol_version"`
	TableID         string          `json:"table_id"`
	HandID          string          `json:"hand_id,omitempty"`
	Winners         []string        `json:"winners"`
	Pot             int64           `json:"pot"`
	Awards          []game.PotAward `json:"awards,omitempty"`
	Showdown        bool            `json:"showdown"`
}
