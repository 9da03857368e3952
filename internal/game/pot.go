package game

import "sort"

// PotAward is one pot layer paid out at settlement: the main pot, or a
// side pot created by unequal all-in contributions.
type PotAward struct {
	Amount   int64    `json:"amount"`
	Winners  []string `json:"winners"`
	Category string   `json:"category,omitempty"`
}

// resolvePots settles the whole pot as layered side pots. Each distinct
// whole-hand contribution value is a layer boundary; a layer is sized at
// (level - previous level) x contributors at that level and can only be
// won by seats that paid into it. A layer whose contributors all folded
// goes back to them, so an uncalled excess is returned and no chip is
// ever lost.
func (t *TableState) resolvePots() ([]PotAward, error) {
	ranks := make(map[int]HandRank)
	for i, s := range t.Seats {
		if !s.InHand() {
			continue
		}
		all := append(append([]Card{}, s.Hole...), t.Community...)
		r, err := Evaluate7(all)
		if err != nil {
			return nil, err
		}
		ranks[i] = r
	}

	levels := contributionLevels(t.Seats)
	awards := make([]PotAward, 0, len(levels))
	prev := int64(0)
	for _, level := range levels {
		contributors := make([]int, 0, len(t.Seats))
		for i, s := range t.Seats {
			if s.HandBet >= level {
				contributors = append(contributors, i)
			}
		}
		amount := (level - prev) * int64(len(contributors))
		prev = level
		if amount == 0 {
			continue
		}

		winners := make([]int, 0, len(contributors))
		var best HandRank
		for _, i := range contributors {
			r, ok := ranks[i]
			if !ok {
				continue
			}
			if len(winners) == 0 || r.BetterThan(best) {
				best = r
				winners = []int{i}
				continue
			}
			if r.Equal(best) {
				winners = append(winners, i)
			}
		}
		if len(winners) == 0 {
			winners = contributors
			best = HandRank{Category: -1}
		}

		share := amount / int64(len(winners))
		odd := amount % int64(len(winners))
		names := make([]string, 0, len(winners))
		for _, w := range winners {
			t.Seats[w].Award(share)
			names = append(names, t.Seats[w].Name)
		}
		// Remainder chips go to the eligible seat earliest in seat order,
		// deterministically.
		for j := int64(0); j < odd; j++ {
			t.Seats[winners[j%int64(len(winners))]].Award(1)
		}
		category := ""
		if best.Category >= HighCard {
			category = best.Category.String()
		}
		awards = append(awards, PotAward{Amount: amount, Winners: names, Category: category})
	}

	t.Pot = 0
	return awards, nil
}

// awardUncontested pays the entire pot to the one seat left in the hand.
// No cards are revealed.
func (t *TableState) awardUncontested() []PotAward {
	for _, s := range t.Seats {
		if s.InHand() {
			s.Award(t.Pot)
			award := PotAward{Amount: t.Pot, Winners: []string{s.Name}}
			t.Pot = 0
			return []PotAward{award}
		}
	}
	return nil
}

func contributionLevels(seats []*Seat) []int64 {
	seen := map[int64]bool{}
	levels := make([]int64, 0, len(seats))
	for _, s := range seats {
		if s.HandBet == 0 || seen[s.HandBet] {
			continue
		}
		seen[s.HandBet] = true
		levels = append(levels, s.HandBet)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })
	return levels
}
