package game

type SeatStatus string

const (
	StatusActive SeatStatus = "active"
	StatusFolded SeatStatus = "folded"
	StatusAllIn  SeatStatus = "all-in"
)

// Seat is one player's chair at the table. Chips live here and nowhere
// else; the engine moves them into the pot and back at settlement.
type Seat struct {
	Name     string
	Chips    int64
	Hole     []Card
	Status   SeatStatus
	RoundBet int64 // contribution to the current betting round
	HandBet  int64 // contribution to the whole hand, drives side pots
	HasActed bool
	Leaving  bool // seat departs once the current hand resolves
}

// Bet commits up to amount chips. Betting the whole stack (or more) puts
// the seat all-in for exactly what it has. Returns the chips committed;
// negative amounts are the caller's job to reject beforehand.
func (s *Seat) Bet(amount int64) int64 {
	if amount >= s.Chips {
		amount = s.Chips
		s.Status = StatusAllIn
	}
	s.Chips -= amount
	s.RoundBet += amount
	s.HandBet += amount
	return amount
}

// Fold is terminal for the remainder of the hand.
func (s *Seat) Fold() {
	s.Status = StatusFolded
}

// Award credits winnings at settlement.
func (s *Seat) Award(amount int64) {
	s.Chips += amount
}

func (s *Seat) ResetForHand() {
	s.Status = StatusActive
	s.Hole = nil
	s.RoundBet = 0
	s.HandBet = 0
	s.HasActed = false
}

// InHand reports whether the seat can still win the pot.
func (s *Seat) InHand() bool {
	return s.Status != StatusFolded
}

// CanAct reports whether the seat has a decision left this hand.
func (s *Seat) CanAct() bool {
	return s.Status == StatusActive && s.Chips > 0
}
