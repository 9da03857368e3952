package game

import "errors"

type ActionType string

const (
	ActionFold  ActionType = "fold"
	ActionCheck ActionType = "check"
	ActionCall  ActionType = "call"
	ActionRaise ActionType = "raise"
)

var (
	ErrInvalidAction    = errors.New("invalid_action")
	ErrNotYourTurn      = errors.New("not_your_turn")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrRaiseTooSmall    = errors.New("raise_below_minimum")
	ErrNoHandInProgress = errors.New("no_hand_in_progress")
	ErrUnknownPlayer    = errors.New("unknown_player")
	ErrNotEnoughPlayers = errors.New("not_enough_players")
	ErrHandInProgress   = errors.New("hand_in_progress")
	ErrTableFull        = errors.New("table_full")
	ErrNameTaken        = errors.New("name_taken")
)

// validateAction enforces turn order and action legality without mutating
// anything: a rejected action must leave the table byte-for-byte intact.
func (t *TableState) validateAction(idx int, action ActionType, amount int64) error {
	if !t.HandActive {
		return ErrNoHandInProgress
	}
	if idx != t.CurrentPos {
		return ErrNotYourTurn
	}
	s := t.Seats[idx]
	if !s.CanAct() {
		return ErrInvalidAction
	}
	if amount < 0 {
		return ErrInvalidAmount
	}
	owed := t.CurrentBet - s.RoundBet
	switch action {
	case ActionFold:
		return nil
	case ActionCheck:
		if owed > 0 {
			return ErrInvalidAction
		}
		return nil
	case ActionCall:
		// Calling with nothing owed is a check; always legal.
		return nil
	case ActionRaise:
		if amount <= 0 {
			return ErrInvalidAmount
		}
		if amount >= s.Chips {
			// All-in for less than a full raise is allowed.
			return nil
		}
		if s.RoundBet+amount < t.CurrentBet+t.MinRaise {
			return ErrRaiseTooSmall
		}
		return nil
	default:
		return ErrInvalidAction
	}
}
