package game

import (
	"math/rand"
	"testing"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(1)))
	if d.Remaining() != 52 {
		t.Fatalf("Remaining() = %d, want 52", d.Remaining())
	}
	cards, err := d.Deal(52)
	if err != nil {
		t.Fatalf("deal 52: %v", err)
	}
	seen := map[Card]bool{}
	for _, c := range cards {
		if seen[c] {
			t.Fatalf("duplicate card %s", c)
		}
		seen[c] = true
	}
}

func TestDeckExhaustion(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(1)))
	if _, err := d.Deal(50); err != nil {
		t.Fatalf("deal 50: %v", err)
	}
	if _, err := d.Deal(3); err != ErrDeckExhausted {
		t.Fatalf("expected ErrDeckExhausted, got %v", err)
	}
	if _, err := d.Deal(2); err != nil {
		t.Fatalf("deal last 2: %v", err)
	}
	if d.Remaining() != 0 {
		t.Fatalf("Remaining() = %d, want 0", d.Remaining())
	}
}

func TestDeckSeededOrderIsDeterministic(t *testing.T) {
	a := NewDeck(rand.New(rand.NewSource(7)))
	b := NewDeck(rand.New(rand.NewSource(7)))
	ca, _ := a.Deal(52)
	cb, _ := b.Deal(52)
	for i := range ca {
		if ca[i] != cb[i] {
			t.Fatalf("card %d differs: %s vs %s", i, ca[i], cb[i])
		}
	}
}

func TestCardString(t *testing.T) {
	cases := map[Card]string{
		{Ace, Spades}:    "As",
		{Ten, Hearts}:    "Th",
		{Two, Clubs}:     "2c",
		{King, Diamonds}: "Kd",
	}
	for c, want := range cases {
		if c.String() != want {
			t.Fatalf("String() = %q, want %q", c.String(), want)
		}
	}
}
