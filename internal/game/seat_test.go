package game

import "testing"

func TestSeatBetCapsAtStack(t *testing.T) {
	s := &Seat{Name: "a", Chips: 100, Status: StatusActive}
	paid := s.Bet(250)
	if paid != 100 {
		t.Fatalf("paid = %d, want 100", paid)
	}
	if s.Chips != 0 || s.Status != StatusAllIn {
		t.Fatalf("expected broke all-in seat, got chips=%d status=%s", s.Chips, s.Status)
	}
	if s.RoundBet != 100 || s.HandBet != 100 {
		t.Fatalf("bet bookkeeping off: round=%d hand=%d", s.RoundBet, s.HandBet)
	}
}

func TestSeatBetAccumulates(t *testing.T) {
	s := &Seat{Name: "a", Chips: 100, Status: StatusActive}
	s.Bet(10)
	s.Bet(30)
	if s.Chips != 60 || s.RoundBet != 40 || s.HandBet != 40 {
		t.Fatalf("got chips=%d round=%d hand=%d", s.Chips, s.RoundBet, s.HandBet)
	}
	if s.Status != StatusActive {
		t.Fatalf("partial bets must not change status, got %s", s.Status)
	}
}

func TestSeatFoldAndReset(t *testing.T) {
	s := &Seat{Name: "a", Chips: 100, Status: StatusActive}
	s.Bet(40)
	s.Fold()
	if s.InHand() {
		t.Fatal("folded seat is out of the hand")
	}
	if s.CanAct() {
		t.Fatal("folded seat cannot act")
	}
	s.ResetForHand()
	if s.Status != StatusActive || s.RoundBet != 0 || s.HandBet != 0 || s.HasActed {
		t.Fatalf("reset incomplete: %+v", s)
	}
	if s.Chips != 60 {
		t.Fatalf("reset must not touch chips, got %d", s.Chips)
	}
}

func TestSeatAllInStaysInHand(t *testing.T) {
	s := &Seat{Name: "a", Chips: 50, Status: StatusActive}
	s.Bet(50)
	if !s.InHand() {
		t.Fatal("all-in seat is still in the hand")
	}
	if s.CanAct() {
		t.Fatal("all-in seat has no decisions left")
	}
}
