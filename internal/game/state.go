package game

type Round int

const (
	RoundPreflop Round = iota
	RoundFlop
	RoundTurn
	RoundRiver
	RoundShowdown
)

func (r Round) String() string {
	switch r {
	case RoundPreflop:
		return "preflop"
	case RoundFlop:
		return "flop"
	case RoundTurn:
		return "turn"
	case RoundRiver:
		return "river"
	case RoundShowdown:
		return "showdown"
	default:
		return "unknown"
	}
}

// MaxSeats caps a table at six players, as the original room did.
const MaxSeats = 6

// TableState is everything one table owns: seats, board, pot and the
// betting-round bookkeeping. It is only ever touched by its Engine.
type TableState struct {
	TableID    string
	HandID     string
	Seats      []*Seat
	Community  []Card
	Round      Round
	Pot        int64
	DealerPos  int
	SBPos      int
	BBPos      int
	CurrentPos int
	SmallBlind int64
	BigBlind   int64
	MinRaise   int64
	CurrentBet int64
	HandActive bool
}

// SeatView is the public slice of a seat: never hole cards.
type SeatView struct {
	Name     string `json:"name"`
	Chips    int64  `json:"chips"`
	Status   string `json:"status"`
	Bet      int64  `json:"bet"`
	CallOwed int64  `json:"call_owed"`
	IsDealer bool   `json:"is_dealer"`
	IsTurn   bool   `json:"is_turn"`
}

// Snapshot is the serializable per-viewer state. HoleCards is populated
// only when the viewer owns a seat; everyone else's stay private.
type Snapshot struct {
	Type            string     `json:"type"`
	ProtocolVersion string     `json:"protocol_version"`
	TableID         string     `json:"table_id"`
	HandID          string     `json:"hand_id,omitempty"`
	Round           string     `json:"round"`
	Pot             int64      `json:"pot"`
	CurrentBet      int64      `json:"current_bet"`
	MinRaise        int64      `json:"min_raise"`
	SmallBlind      int64      `json:"small_blind"`
	BigBlind        int64      `json:"big_blind"`
	CommunityCards  []string   `json:"community_cards"`
	Seats           []SeatView `json:"seats"`
	CurrentActor    string     `json:"current_actor,omitempty"`
	HandActive      bool       `json:"hand_active"`
	HoleCards       []string   `json:"hole_cards,omitempty"`
}

const ProtocolVersion = "1.0"

// SnapshotFor renders the table as seen by viewer. An unknown or empty
// viewer gets the spectator view.
func (t *TableState) SnapshotFor(viewer string) Snapshot {
	community := []string{}
	for _, c := range t.Community {
		community = append(community, c.String())
	}
	seats := make([]SeatView, 0, len(t.Seats))
	var hole []string
	for i, s := range t.Seats {
		owed := t.CurrentBet - s.RoundBet
		if owed < 0 || !s.CanAct() {
			owed = 0
		}
		seats = append(seats, SeatView{
			Name:     s.Name,
			Chips:    s.Chips,
			Status:   string(s.Status),
			Bet:      s.RoundBet,
			CallOwed: owed,
			IsDealer: t.HandActive && i == t.DealerPos,
			IsTurn:   t.HandActive && i == t.CurrentPos,
		})
		if s.Name == viewer {
			for _, c := range s.Hole {
				hole = append(hole, c.String())
			}
		}
	}
	actor := ""
	if t.HandActive && t.CurrentPos >= 0 && t.CurrentPos < len(t.Seats) {
		actor = t.Seats[t.CurrentPos].Name
	}
	return Snapshot{
		Type:            "state_update",
		ProtocolVersion: ProtocolVersion,
		TableID:         t.TableID,
		HandID:          t.HandID,
		Round:           t.Round.String(),
		Pot:             t.Pot,
		CurrentBet:      t.CurrentBet,
		MinRaise:        t.MinRaise,
		SmallBlind:      t.SmallBlind,
		BigBlind:        t.BigBlind,
		CommunityCards:  community,
		Seats:           seats,
		CurrentActor:    actor,
		HandActive:      t.HandActive,
		HoleCards:       hole,
	}
}

func (t *TableState) seatByName(name string) (int, *Seat) {
	for i, s := range t.Seats {
		if s.Name == name {
			return i, s
		}
	}
	return -1, nil
}
