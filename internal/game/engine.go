package game

import (
	"context"
	"fmt"
	"math/rand"
)

// Recorder persists hand history. All engine calls to it are best-effort:
// a failing recorder never changes the outcome of a hand.
type Recorder interface {
	CreateHand(ctx context.Context, tableID string) (string, error)
	RecordAction(ctx context.Context, handID, player, action string, amount int64) error
	FinishHand(ctx context.Context, handID string, winners []string, pot int64) error
}

// HandResult reports what an action did to the hand. Ended carries the
// settlement; an ongoing hand has Ended false and nothing else set.
type HandResult struct {
	Ended    bool       `json:"ended"`
	TableID  string     `json:"table_id"`
	HandID   string     `json:"hand_id,omitempty"`
	Winners  []string   `json:"winners,omitempty"`
	Pot      int64      `json:"pot,omitempty"`
	Awards   []PotAward `json:"awards,omitempty"`
	Showdown bool       `json:"showdown,omitempty"`
}

// Engine drives a single table. It is not safe for concurrent use; the
// owning service serializes access with one lock per table, and separate
// tables never share state.
type Engine struct {
	State    *TableState
	Deck     *Deck
	Recorder Recorder
	Events   Events
	Rand     *rand.Rand

	handSeq int
}

func NewEngine(tableID string, smallBlind, bigBlind int64) *Engine {
	return &Engine{
		State: &TableState{
			TableID:    tableID,
			SmallBlind: smallBlind,
			BigBlind:   bigBlind,
			MinRaise:   bigBlind,
			DealerPos:  -1,
			CurrentPos: -1,
		},
		Events: NopEvents{},
	}
}

// AddSeat seats a new player. Seating is rejected mid-hand; the caller
// queues the player for the next hand instead.
func (e *Engine) AddSeat(name string, chips int64) error {
	t := e.State
	if t.HandActive {
		return ErrHandInProgress
	}
	if len(t.Seats) >= MaxSeats {
		return ErrTableFull
	}
	if _, s := t.seatByName(name); s != nil {
		return ErrNameTaken
	}
	t.Seats = append(t.Seats, &Seat{Name: name, Chips: chips, Status: StatusActive})
	return nil
}

// RemoveSeat takes a player off the table. Mid-hand the seat folds first
// so the pot and turn order stay consistent, and the chair is cleared
// once the hand resolves. The result is non-nil when the removal ended
// the hand.
func (e *Engine) RemoveSeat(ctx context.Context, name string) (*HandResult, error) {
	t := e.State
	idx, s := t.seatByName(name)
	if s == nil {
		return nil, ErrUnknownPlayer
	}
	if !t.HandActive {
		t.Seats = append(t.Seats[:idx], t.Seats[idx+1:]...)
		if idx <= t.DealerPos {
			t.DealerPos--
		}
		return nil, nil
	}
	s.Leaving = true
	if !s.CanAct() {
		// Already folded or all-in: no decision pending, the chair
		// clears at hand end. An all-in leaver stays eligible for the
		// layers it funded.
		return nil, nil
	}
	wasTurn := idx == t.CurrentPos
	s.Fold()
	s.HasActed = true

	if t.countInHand() == 1 {
		awards := t.awardUncontested()
		return e.finish(ctx, awards, false), nil
	}
	if t.roundClosed() {
		return e.runOut(ctx)
	}
	if wasTurn {
		t.CurrentPos = t.nextCanAct(t.CurrentPos)
		if t.CurrentPos == -1 {
			return e.runOut(ctx)
		}
	}
	return &HandResult{Ended: false, TableID: t.TableID, HandID: t.HandID}, nil
}

// StartHand deals the next hand: dealer rotation, blinds, hole cards.
// Requires at least two seats with chips. The returned result is non-nil
// only in the degenerate case where blinds put everyone all-in and the
// hand resolves with no betting at all.
func (e *Engine) StartHand(ctx context.Context) (*HandResult, error) {
	t := e.State
	if t.HandActive {
		return nil, ErrHandInProgress
	}
	e.purgeLeavers()

	eligible := 0
	for _, s := range t.Seats {
		if s.Chips > 0 {
			eligible++
		}
	}
	if eligible < 2 {
		return nil, ErrNotEnoughPlayers
	}

	t.Pot = 0
	t.Community = nil
	t.Round = RoundPreflop
	t.CurrentBet = 0
	t.MinRaise = t.BigBlind
	for _, s := range t.Seats {
		s.ResetForHand()
		if s.Chips == 0 {
			// Broke seats sit the hand out.
			s.Status = StatusFolded
			s.HasActed = true
		}
	}

	t.DealerPos = t.nextWithChips(t.DealerPos)
	if eligible == 2 {
		// Heads-up: the dealer posts the small blind.
		t.SBPos = t.DealerPos
		t.BBPos = t.nextWithChips(t.SBPos)
	} else {
		t.SBPos = t.nextWithChips(t.DealerPos)
		t.BBPos = t.nextWithChips(t.SBPos)
	}

	e.handSeq++
	t.HandID = fmt.Sprintf("%s-%d", t.TableID, e.handSeq)
	if e.Recorder != nil {
		if id, err := e.Recorder.CreateHand(ctx, t.TableID); err == nil && id != "" {
			t.HandID = id
		}
	}

	e.Deck = NewDeck(e.Rand)
	for _, s := range t.Seats {
		if s.Status != StatusActive {
			continue
		}
		hole, err := e.Deck.Deal(2)
		if err != nil {
			return nil, err
		}
		s.Hole = hole
	}

	sbSeat := t.Seats[t.SBPos]
	bbSeat := t.Seats[t.BBPos]
	sbPaid := sbSeat.Bet(t.SmallBlind)
	bbPaid := bbSeat.Bet(t.BigBlind)
	sbSeat.HasActed = true
	bbSeat.HasActed = true
	t.Pot += sbPaid + bbPaid
	t.CurrentBet = sbSeat.RoundBet
	if bbSeat.RoundBet > t.CurrentBet {
		t.CurrentBet = bbSeat.RoundBet
	}

	t.HandActive = true
	e.events().HandStarted(t.TableID, t.HandID, t.Seats[t.DealerPos].Name, sbSeat.Name, bbSeat.Name, eligible)
	e.events().BlindsPosted(t.TableID, t.HandID, sbSeat.Name, sbPaid, bbSeat.Name, bbPaid)

	if eligible == 2 {
		// The big blind opens the action when only two seats are in.
		t.CurrentPos = t.BBPos
	} else {
		t.CurrentPos = t.nextCanAct(t.BBPos)
	}
	if t.CurrentPos == -1 || !t.Seats[t.CurrentPos].CanAct() {
		// Blinds consumed every stack; nothing left to decide.
		return e.runOut(ctx)
	}
	return &HandResult{Ended: false, TableID: t.TableID, HandID: t.HandID}, nil
}

// Apply validates and applies one action for the named player, then
// advances the hand: next turn, next round, or settlement. A rejected
// action returns an error and mutates nothing.
func (e *Engine) Apply(ctx context.Context, name string, action ActionType, amount int64) (*HandResult, error) {
	t := e.State
	idx, s := t.seatByName(name)
	if s == nil {
		return nil, ErrUnknownPlayer
	}
	if err := t.validateAction(idx, action, amount); err != nil {
		return nil, err
	}

	paid := int64(0)
	switch action {
	case ActionFold:
		s.Fold()
	case ActionCheck:
		// no chips move
	case ActionCall:
		owed := t.CurrentBet - s.RoundBet
		if owed > 0 {
			paid = s.Bet(owed)
			t.Pot += paid
		}
	case ActionRaise:
		paid = s.Bet(amount)
		t.Pot += paid
		if s.RoundBet > t.CurrentBet {
			t.MinRaise = s.RoundBet - t.CurrentBet
			t.CurrentBet = s.RoundBet
		}
	}
	s.HasActed = true

	if e.Recorder != nil {
		_ = e.Recorder.RecordAction(ctx, t.HandID, name, string(action), paid)
	}

	return e.advance(ctx)
}

// advance moves the hand forward after a state change: fold-out win,
// turn rotation, round closure, board run-out, showdown.
func (e *Engine) advance(ctx context.Context) (*HandResult, error) {
	t := e.State
	if t.countInHand() == 1 {
		awards := t.awardUncontested()
		return e.finish(ctx, awards, false), nil
	}
	if !t.roundClosed() {
		t.CurrentPos = t.nextCanAct(t.CurrentPos)
		if t.CurrentPos == -1 {
			return e.runOut(ctx)
		}
		return &HandResult{Ended: false, TableID: t.TableID, HandID: t.HandID}, nil
	}
	return e.runOut(ctx)
}

// runOut closes betting rounds until either a round with live betting
// opens or the board is complete and the hand goes to showdown.
func (e *Engine) runOut(ctx context.Context) (*HandResult, error) {
	t := e.State
	for {
		if t.Round == RoundRiver {
			return e.settleShowdown(ctx)
		}
		if err := e.dealNextRound(); err != nil {
			return nil, err
		}
		if t.bettingPossible() {
			t.CurrentPos = t.nextCanAct(t.DealerPos)
			return &HandResult{Ended: false, TableID: t.TableID, HandID: t.HandID}, nil
		}
	}
}

func (e *Engine) dealNextRound() error {
	t := e.State
	var n int
	switch t.Round {
	case RoundPreflop:
		n = 3
	case RoundFlop, RoundTurn:
		n = 1
	default:
		return nil
	}
	cards, err := e.Deck.Deal(n)
	if err != nil {
		return err
	}
	t.Community = append(t.Community, cards...)
	t.Round++
	for _, s := range t.Seats {
		s.RoundBet = 0
		s.HasActed = false
	}
	t.CurrentBet = 0
	t.MinRaise = t.BigBlind

	community := make([]string, 0, len(t.Community))
	for _, c := range t.Community {
		community = append(community, c.String())
	}
	e.events().RoundAdvanced(t.TableID, t.HandID, t.Round.String(), community, t.Pot)
	return nil
}

func (e *Engine) settleShowdown(ctx context.Context) (*HandResult, error) {
	t := e.State
	t.Round = RoundShowdown
	awards, err := t.resolvePots()
	if err != nil {
		// Invariant violation (bad card count). Fail the hand safely:
		// return every contribution rather than produce a bogus ranking.
		for _, s := range t.Seats {
			s.Award(s.HandBet)
		}
		t.Pot = 0
		e.finish(ctx, nil, true)
		return nil, err
	}
	return e.finish(ctx, awards, true), nil
}

func (e *Engine) finish(ctx context.Context, awards []PotAward, showdown bool) *HandResult {
	t := e.State
	t.HandActive = false
	t.CurrentPos = -1

	res := &HandResult{
		Ended:    true,
		TableID:  t.TableID,
		HandID:   t.HandID,
		Awards:   awards,
		Showdown: showdown,
	}
	seen := map[string]bool{}
	for _, a := range awards {
		res.Pot += a.Amount
		for _, w := range a.Winners {
			if !seen[w] {
				seen[w] = true
				res.Winners = append(res.Winners, w)
			}
		}
	}

	e.events().HandSettled(t.TableID, t.HandID, awards, res.Pot, showdown)
	if e.Recorder != nil {
		_ = e.Recorder.FinishHand(ctx, t.HandID, res.Winners, res.Pot)
	}
	e.purgeLeavers()
	return res
}

func (e *Engine) purgeLeavers() {
	t := e.State
	kept := t.Seats[:0]
	for i, s := range t.Seats {
		if s.Leaving {
			if i <= t.DealerPos {
				t.DealerPos--
			}
			continue
		}
		kept = append(kept, s)
	}
	t.Seats = kept
}

func (e *Engine) events() Events {
	if e.Events == nil {
		return NopEvents{}
	}
	return e.Events
}

func (t *TableState) countInHand() int {
	n := 0
	for _, s := range t.Seats {
		if s.InHand() {
			n++
		}
	}
	return n
}

func (t *TableState) countCanAct() int {
	n := 0
	for _, s := range t.Seats {
		if s.CanAct() {
			n++
		}
	}
	return n
}

func (t *TableState) bettingPossible() bool {
	return t.countCanAct() >= 2
}

// roundClosed reports whether the betting round is settled: every seat
// that still has a decision has acted and matched the highest bet.
func (t *TableState) roundClosed() bool {
	for _, s := range t.Seats {
		if !s.CanAct() {
			continue
		}
		if !s.HasActed || s.RoundBet != t.CurrentBet {
			return false
		}
	}
	return true
}

// nextCanAct finds the next seat after from (wrapping) that can still
// act, or -1 when none exists.
func (t *TableState) nextCanAct(from int) int {
	n := len(t.Seats)
	if n == 0 {
		return -1
	}
	if from < 0 {
		from = n - 1
	}
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if t.Seats[idx].CanAct() {
			return idx
		}
	}
	return -1
}

func (t *TableState) nextWithChips(from int) int {
	n := len(t.Seats)
	if n == 0 {
		return -1
	}
	if from < 0 {
		from = n - 1
	}
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if t.Seats[idx].Chips > 0 {
			return idx
		}
	}
	return -1
}
