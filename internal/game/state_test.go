package game

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSnapshotHidesOtherHoleCards(t *testing.T) {
	e := newTestEngine(t, 21, nil, "a", "b", "c")
	snap := e.State.SnapshotFor("a")
	if len(snap.HoleCards) != 2 {
		t.Fatalf("viewer hole cards = %v", snap.HoleCards)
	}
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// Preflop there is no board, and one deck never repeats a card, so
	// another seat's card strings must not appear anywhere in a's view.
	for _, name := range []string{"b", "c"} {
		_, s := e.State.seatByName(name)
		for _, c := range s.Hole {
			if strings.Contains(string(data), `"`+c.String()+`"`) {
				t.Fatalf("snapshot for a leaks %s's card %s: %s", name, c, data)
			}
		}
	}
}

func TestSnapshotSpectatorGetsNoHoleCards(t *testing.T) {
	e := newTestEngine(t, 21, nil, "a", "b")
	for _, viewer := range []string{"", "stranger"} {
		snap := e.State.SnapshotFor(viewer)
		if len(snap.HoleCards) != 0 {
			t.Fatalf("viewer %q got hole cards %v", viewer, snap.HoleCards)
		}
	}
}

func TestSnapshotMarksTurnAndDealer(t *testing.T) {
	e := newTestEngine(t, 21, nil, "a", "b", "c")
	snap := e.State.SnapshotFor("")
	if snap.CurrentActor != currentName(e) {
		t.Fatalf("current_actor = %q, want %q", snap.CurrentActor, currentName(e))
	}
	dealers, turns := 0, 0
	for _, sv := range snap.Seats {
		if sv.IsDealer {
			dealers++
		}
		if sv.IsTurn {
			turns++
			if sv.Name != snap.CurrentActor {
				t.Fatalf("turn marker on %q, actor %q", sv.Name, snap.CurrentActor)
			}
		}
	}
	if dealers != 1 || turns != 1 {
		t.Fatalf("dealers=%d turns=%d", dealers, turns)
	}
}

func TestSnapshotCallOwed(t *testing.T) {
	e := newTestEngine(t, 21, nil, "a", "b", "c")
	snap := e.State.SnapshotFor("")
	for _, sv := range snap.Seats {
		switch sv.Name {
		case "a":
			if sv.CallOwed != 20 {
				t.Fatalf("a owes %d, want 20", sv.CallOwed)
			}
		case "b":
			if sv.CallOwed != 10 {
				t.Fatalf("b owes %d, want 10", sv.CallOwed)
			}
		case "c":
			if sv.CallOwed != 0 {
				t.Fatalf("c owes %d, want 0", sv.CallOwed)
			}
		}
	}
}
