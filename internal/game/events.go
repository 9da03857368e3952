package game

import "github.com/rs/zerolog"

// Events receives table transition events. The engine emits these at
// well-defined points (hand start, blind posting, round advance,
// settlement) and knows nothing about where they go.
type Events interface {
	HandStarted(tableID, handID string, dealer, smallBlind, bigBlind string, players int)
	BlindsPosted(tableID, handID string, smallBlind string, smallAmount int64, bigBlind string, bigAmount int64)
	RoundAdvanced(tableID, handID, round string, community []string, pot int64)
	HandSettled(tableID, handID string, awards []PotAward, pot int64, showdown bool)
}

// NopEvents drops everything; the engine default.
type NopEvents struct{}

func (NopEvents) HandStarted(string, string, string, string, string, int)   {}
func (NopEvents) BlindsPosted(string, string, string, int64, string, int64) {}
func (NopEvents) RoundAdvanced(string, string, string, []string, int64)     {}
func (NopEvents) HandSettled(string, string, []PotAward, int64, bool)       {}

// LogEvents writes each transition as a structured log line.
type LogEvents struct {
	Log zerolog.Logger
}

func (l LogEvents) HandStarted(tableID, handID, dealer, sb, bb string, players int) {
	l.Log.Info().
		Str("event", "hand_start").
		Str("table_id", tableID).
		Str("hand_id", handID).
		Str("dealer", dealer).
		Str("small_blind", sb).
		Str("big_blind", bb).
		Int("players", players).
		Msg("hand started")
}

func (l LogEvents) BlindsPosted(tableID, handID, sb string, sbAmount int64, bb string, bbAmount int64) {
	l.Log.Info().
		Str("event", "blinds_posted").
		Str("table_id", tableID).
		Str("hand_id", handID).
		Str("small_blind", sb).
		Int64("small_amount", sbAmount).
		Str("big_blind", bb).
		Int64("big_amount", bbAmount).
		Msg("blinds posted")
}

func (l LogEvents) RoundAdvanced(tableID, handID, round string, community []string, pot int64) {
	l.Log.Info().
		Str("event", "round_advance").
		Str("table_id", tableID).
		Str("hand_id", handID).
		Str("round", round).
		Strs("community", community).
		Int64("pot", pot).
		Msg("round advanced")
}

func (l LogEvents) HandSettled(tableID, handID string, awards []PotAward, pot int64, showdown bool) {
	winners := make([]string, 0, len(awards))
	seen := map[string]bool{}
	for _, a := range awards {
		for _, w := range a.Winners {
			if !seen[w] {
				seen[w] = true
				winners = append(winners, w)
			}
		}
	}
	l.Log.Info().
		Str("event", "settlement").
		Str("table_id", tableID).
		Str("hand_id", handID).
		Int64("pot", pot).
		Bool("showdown", showdown).
		Int("pots", len(awards)).
		Strs("winners", winners).
		Msg("hand settled")
}
