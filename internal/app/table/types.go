package table

import (
	"time"

	"card-room/internal/game"
)

// Config carries the table-level knobs the server wires in from env.
type Config struct {
	SmallBlind    int64
	BigBlind      int64
	DefaultBuyIn  int64
	ActionTimeout time.Duration // zero disables the turn timer
}

// TableInfo is the public listing entry for one table.
type TableInfo struct {
	ID         string `json:"id"`
	Players    int    `json:"players"`
	Pending    int    `json:"pending"`
	HandActive bool   `json:"hand_active"`
	SmallBlind int64  `json:"small_blind"`
	BigBlind   int64  `json:"big_blind"`
}

// Update is pushed to subscribers whenever a table changes. Result is set
// only when the change resolved a hand.
type Update struct {
	TableID string
	Result  *game.HandResult
}
