package game

import (
	"sort"

	"github.com/lantos1618/pocketaces/internal/deck"
	"github.com/lantos1618/pocketaces/internal/evaluator"
)

// potTier is one contribution tier of the pot. When players are all-in for
// different totals the pot partitions into tiers; each tier is contested
// only by contenders who contributed at least its threshold.
type potTier struct {
	amount   int
	eligible []*Player
}

// settleShowdown evaluates every contender's best hand, partitions the pot
// into contribution tiers, and pays each tier to the best eligible hand(s).
// Ties split a tier evenly; an indivisible remainder chip goes to the tied
// winner closest clockwise from the dealer.
func (s *State) settleShowdown() error {
	contenders := s.Contenders()
	if len(contenders) < 2 {
		return Consistencyf("showdown with %d contenders", len(contenders))
	}
	if len(s.Community) != 5 {
		return Consistencyf("showdown with %d community cards", len(s.Community))
	}

	ranks := make(map[string]evaluator.HandRank, len(contenders))
	for _, p := range contenders {
		cards := make([]deck.Card, 0, 7)
		cards = append(cards, p.HoleCards...)
		cards = append(cards, s.Community...)
		rank, err := evaluator.Evaluate(cards)
		if err != nil {
			return consistencyWrap(err, "evaluating showdown hand")
		}
		ranks[p.ID] = rank
	}

	tiers := s.potTiers()

	var first []*Player
	for i, tier := range tiers {
		winners := bestEligible(tier.eligible, ranks)
		if i == 0 {
			first = winners
		}
		s.payTier(tier.amount, winners)
	}

	s.Winners = make([]string, 0, len(first))
	for _, w := range first {
		s.Winners = append(s.Winners, w.ID)
	}
	if len(first) > 0 {
		wh := ranks[first[0].ID]
		s.WinningHand = &wh
	}

	s.Pot = 0
	s.ActivePlayer = -1
	s.Phase = Finished
	return nil
}

// potTiers partitions the pot by distinct total-contribution levels,
// ascending. A tier's amount is what every player (folded included)
// contributed between the previous level and this one; its eligible set is
// the contenders who contributed at least this level. Money whose tier no
// contender can claim (a folder's excess) rolls into the adjacent tier.
func (s *State) potTiers() []potTier {
	levelSet := make(map[int]bool)
	for _, p := range s.Players {
		if p.TotalBet > 0 {
			levelSet[p.TotalBet] = true
		}
	}
	levels := make([]int, 0, len(levelSet))
	for l := range levelSet {
		levels = append(levels, l)
	}
	sort.Ints(levels)

	var tiers []potTier
	carry := 0
	prev := 0
	for _, level := range levels {
		amount := carry
		for _, p := range s.Players {
			amount += min(p.TotalBet, level) - min(p.TotalBet, prev)
		}
		prev = level
		carry = 0

		var eligible []*Player
		for _, p := range s.Players {
			if p.InHand() && p.TotalBet >= level {
				eligible = append(eligible, p)
			}
		}

		if amount == 0 {
			continue
		}
		if len(eligible) == 0 {
			// Only folders reached this level; merge into the last
			// contested tier (or the next one if none exists yet).
			if len(tiers) > 0 {
				tiers[len(tiers)-1].amount += amount
			} else {
				carry = amount
			}
			continue
		}
		tiers = append(tiers, potTier{amount: amount, eligible: eligible})
	}
	return tiers
}

// bestEligible returns the players holding the strongest hand among the
// eligible set, in seat order.
func bestEligible(eligible []*Player, ranks map[string]evaluator.HandRank) []*Player {
	var winners []*Player
	var best evaluator.HandRank
	for _, p := range eligible {
		rank := ranks[p.ID]
		if winners == nil {
			winners = []*Player{p}
			best = rank
			continue
		}
		switch rank.Compare(best) {
		case 1:
			winners = []*Player{p}
			best = rank
		case 0:
			winners = append(winners, p)
		}
	}
	return winners
}

// payTier splits a tier evenly among its winners. Any remainder chip goes
// to the winner closest clockwise from the dealer, a defined deterministic
// tie-break.
func (s *State) payTier(amount int, winners []*Player) {
	if len(winners) == 0 || amount <= 0 {
		return
	}

	share := amount / len(winners)
	remainder := amount % len(winners)
	for _, w := range winners {
		w.Chips += share
		s.Payouts[w.ID] += share
	}
	if remainder > 0 {
		w := s.firstFromDealer(winners)
		w.Chips += remainder
		s.Payouts[w.ID] += remainder
	}
}

// firstFromDealer returns the candidate seated closest clockwise from the
// dealer.
func (s *State) firstFromDealer(candidates []*Player) *Player {
	n := len(s.Players)
	for off := 1; off <= n; off++ {
		seat := (s.Dealer + off) % n
		for _, c := range candidates {
			if c.Seat == seat {
				return c
			}
		}
	}
	return candidates[0]
}
