package table

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"card-room/internal/game"
	"card-room/internal/store"
)

// Service is the owned registry of tables. Each entry has its own lock,
// so one table's actions are fully serialized while separate tables run
// in parallel. Nothing here is ambient: the server holds the only
// reference.
type Service struct {
	cfg Config
	rec game.Recorder
	log zerolog.Logger

	mu     sync.Mutex
	tables map[string]*tableEntry
}

type tableEntry struct {
	mu      sync.Mutex
	eng     *game.Engine
	pending []string
	subs    map[chan Update]struct{}
	turnGen int
	timer   *time.Timer
}

func NewService(cfg Config, rec game.Recorder, log zerolog.Logger) *Service {
	return &Service{
		cfg:    cfg,
		rec:    rec,
		log:    log,
		tables: make(map[string]*tableEntry),
	}
}

// CreateTable opens a new empty table and returns its id.
func (s *Service) CreateTable() string {
	id := store.NewID()
	eng := game.NewEngine(id, s.cfg.SmallBlind, s.cfg.BigBlind)
	eng.Recorder = s.rec
	eng.Events = game.LogEvents{Log: s.log.With().Str("table_id", id).Logger()}
	e := &tableEntry{
		eng:  eng,
		subs: make(map[chan Update]struct{}),
	}
	s.mu.Lock()
	s.tables[id] = e
	s.mu.Unlock()
	s.log.Info().Str("event", "table_created").Str("table_id", id).Msg("table created")
	return id
}

// Tables lists every open table.
func (s *Service) Tables() []TableInfo {
	s.mu.Lock()
	entries := make(map[string]*tableEntry, len(s.tables))
	for id, e := range s.tables {
		entries[id] = e
	}
	s.mu.Unlock()

	out := make([]TableInfo, 0, len(entries))
	for id, e := range entries {
		e.mu.Lock()
		out = append(out, TableInfo{
			ID:         id,
			Players:    len(e.eng.State.Seats),
			Pending:    len(e.pending),
			HandActive: e.eng.State.HandActive,
			SmallBlind: e.eng.State.SmallBlind,
			BigBlind:   e.eng.State.BigBlind,
		})
		e.mu.Unlock()
	}
	return out
}

func (s *Service) entry(tableID string) (*tableEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.tables[tableID]
	if !ok {
		return nil, ErrTableNotFound
	}
	return e, nil
}

// Join seats a player, or queues them for the next hand when one is
// already running. Buy-in comes from the service config.
func (s *Service) Join(ctx context.Context, tableID, name string) error {
	e, err := s.entry(tableID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, seated := e.seat(name); seated || e.isPending(name) {
		return game.ErrNameTaken
	}
	if len(e.eng.State.Seats)+len(e.pending) >= game.MaxSeats {
		return game.ErrTableFull
	}
	if e.eng.State.HandActive {
		e.pending = append(e.pending, name)
		s.log.Info().Str("event", "player_queued").Str("table_id", tableID).Str("player", name).Msg("queued for next hand")
		s.notifyLocked(e, Update{TableID: tableID})
		return nil
	}
	if err := e.eng.AddSeat(name, s.cfg.DefaultBuyIn); err != nil {
		return err
	}
	s.log.Info().Str("event", "player_join").Str("table_id", tableID).Str("player", name).Msg("player joined")
	s.startNextHandLocked(ctx, tableID, e)
	s.notifyLocked(e, Update{TableID: tableID})
	return nil
}

// Leave removes a player. Mid-hand the engine folds the seat first; if
// that resolves the hand the settlement is pushed to subscribers. An
// emptied table is closed.
func (s *Service) Leave(ctx context.Context, tableID, name string) error {
	e, err := s.entry(tableID)
	if err != nil {
		return err
	}
	e.mu.Lock()

	if e.isPending(name) {
		kept := e.pending[:0]
		for _, p := range e.pending {
			if p != name {
				kept = append(kept, p)
			}
		}
		e.pending = kept
		s.notifyLocked(e, Update{TableID: tableID})
		e.mu.Unlock()
		return nil
	}

	res, err := e.eng.RemoveSeat(ctx, name)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	s.log.Info().Str("event", "player_leave").Str("table_id", tableID).Str("player", name).Msg("player left")
	if res != nil && res.Ended {
		s.notifyLocked(e, Update{TableID: tableID, Result: res})
		s.startNextHandLocked(ctx, tableID, e)
	}
	s.notifyLocked(e, Update{TableID: tableID})
	s.scheduleTurnTimerLocked(tableID, e)

	empty := len(e.eng.State.Seats) == 0 && len(e.pending) == 0
	e.mu.Unlock()

	if empty {
		s.mu.Lock()
		delete(s.tables, tableID)
		s.mu.Unlock()
		s.log.Info().Str("event", "table_closed").Str("table_id", tableID).Msg("table closed")
	}
	return nil
}

// Act applies one player action. The returned result reports whether the
// hand ended; when it did, the next hand starts immediately with queued
// players seated and busted seats excluded.
func (s *Service) Act(ctx context.Context, tableID, name string, action game.ActionType, amount int64) (*game.HandResult, error) {
	e, err := s.entry(tableID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	res, err := e.eng.Apply(ctx, name, action, amount)
	if err != nil {
		return nil, err
	}
	if res.Ended {
		s.notifyLocked(e, Update{TableID: tableID, Result: res})
		s.startNextHandLocked(ctx, tableID, e)
	}
	s.notifyLocked(e, Update{TableID: tableID})
	s.scheduleTurnTimerLocked(tableID, e)
	return res, nil
}

// PublicState renders the table for a viewer. Only the viewer's own hole
// cards are included; an empty viewer gets the spectator view.
func (s *Service) PublicState(tableID, viewer string) (game.Snapshot, error) {
	e, err := s.entry(tableID)
	if err != nil {
		return game.Snapshot{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eng.State.SnapshotFor(viewer), nil
}

// PrivateHand returns the named player's hole cards.
func (s *Service) PrivateHand(tableID, name string) ([]string, error) {
	e, err := s.entry(tableID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, seated := e.seat(name); !seated {
		return nil, ErrNotSeated
	}
	return e.eng.State.SnapshotFor(name).HoleCards, nil
}

// Subscribe registers for table updates. The channel is buffered and
// slow consumers lose intermediate updates, never the lock.
func (s *Service) Subscribe(tableID string) (<-chan Update, func(), error) {
	e, err := s.entry(tableID)
	if err != nil {
		return nil, nil, err
	}
	ch := make(chan Update, 16)
	e.mu.Lock()
	e.subs[ch] = struct{}{}
	e.mu.Unlock()
	cancel := func() {
		e.mu.Lock()
		delete(e.subs, ch)
		e.mu.Unlock()
	}
	return ch, cancel, nil
}

func (e *tableEntry) seat(name string) (int, bool) {
	for i, st := range e.eng.State.Seats {
		if st.Name == name {
			return i, true
		}
	}
	return -1, false
}

func (e *tableEntry) isPending(name string) bool {
	for _, p := range e.pending {
		if p == name {
			return true
		}
	}
	return false
}

// startNextHandLocked seats queued players and deals the next hand when
// at least two seats can fund it. Degenerate hands that resolve on the
// blinds alone are settled in a loop.
func (s *Service) startNextHandLocked(ctx context.Context, tableID string, e *tableEntry) {
	for !e.eng.State.HandActive {
		kept := e.pending[:0]
		for _, name := range e.pending {
			if err := e.eng.AddSeat(name, s.cfg.DefaultBuyIn); err != nil {
				kept = append(kept, name)
			}
		}
		e.pending = kept

		res, err := e.eng.StartHand(ctx)
		if err != nil {
			// Fewer than two funded seats: stay in waiting.
			return
		}
		if res == nil || !res.Ended {
			s.scheduleTurnTimerLocked(tableID, e)
			return
		}
		s.notifyLocked(e, Update{TableID: tableID, Result: res})
	}
}

func (s *Service) notifyLocked(e *tableEntry, u Update) {
	for ch := range e.subs {
		select {
		case ch <- u:
		default:
		}
	}
}

// scheduleTurnTimerLocked arms the auto-act timer for the current actor.
// The generation counter makes a stale timer a no-op: it only fires
// against the turn it was armed for.
func (s *Service) scheduleTurnTimerLocked(tableID string, e *tableEntry) {
	if s.cfg.ActionTimeout <= 0 {
		return
	}
	e.turnGen++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	st := e.eng.State
	if !st.HandActive || st.CurrentPos < 0 || st.CurrentPos >= len(st.Seats) {
		return
	}
	gen := e.turnGen
	e.timer = time.AfterFunc(s.cfg.ActionTimeout, func() {
		s.expireTurn(tableID, e, gen)
	})
}

func (s *Service) expireTurn(tableID string, e *tableEntry, gen int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.turnGen {
		return
	}
	st := e.eng.State
	if !st.HandActive || st.CurrentPos < 0 || st.CurrentPos >= len(st.Seats) {
		return
	}
	seat := st.Seats[st.CurrentPos]
	action := game.ActionFold
	if st.CurrentBet <= seat.RoundBet {
		action = game.ActionCheck
	}
	s.log.Warn().
		Str("event", "turn_timeout").
		Str("table_id", tableID).
		Str("player", seat.Name).
		Str("auto_action", string(action)).
		Msg("turn timed out")

	ctx := context.Background()
	res, err := e.eng.Apply(ctx, seat.Name, action, 0)
	if err != nil {
		return
	}
	if res.Ended {
		s.notifyLocked(e, Update{TableID: tableID, Result: res})
		s.startNextHandLocked(ctx, tableID, e)
	}
	s.notifyLocked(e, Update{TableID: tableID})
	s.scheduleTurnTimerLocked(tableID, e)
}
