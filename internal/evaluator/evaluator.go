package evaluator

// Best-five hand evaluation by exhaustive subset enumeration. Every 5-card
// subset of the supplied cards (21 subsets for a full 7-card hand) is
// classified and the strongest kept. Classification produces a category plus
// a tiebreak vector, so hands in the same category compare correctly on
// grouped ranks and kickers rather than on category alone.

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lantos1618/pocketaces/internal/deck"
)

// Category represents a hand category, HighCard (1) through RoyalFlush (10).
type Category int

const (
	HighCard Category = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns a human-readable name for the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandRank is the strength of a 5-card hand: a category plus a tiebreak
// vector of grouped card values followed by kickers, descending. Two ranks
// compare first on category, then lexicographically on the tiebreaks.
type HandRank struct {
	Category  Category
	Tiebreaks []int
	Cards     []deck.Card // the best five cards
}

// Compare returns 1 if h is the stronger hand, -1 if other is, 0 on a tie.
func (h HandRank) Compare(other HandRank) int {
	if h.Category != other.Category {
		if h.Category > other.Category {
			return 1
		}
		return -1
	}
	for i := 0; i < len(h.Tiebreaks) && i < len(other.Tiebreaks); i++ {
		if h.Tiebreaks[i] != other.Tiebreaks[i] {
			if h.Tiebreaks[i] > other.Tiebreaks[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// String returns a description like "Full House [K♠ K♥ K♦ 2♣ 2♠]"
func (h HandRank) String() string {
	cards := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		cards[i] = c.String()
	}
	return fmt.Sprintf("%s [%s]", h.Category, strings.Join(cards, " "))
}

// Evaluate returns the best 5-card HandRank that can be made from the given
// cards (typically 2 hole cards plus up to 5 community cards). It is a pure
// function: no randomness, and the result does not depend on input order.
// At least 5 cards are required.
func Evaluate(cards []deck.Card) (HandRank, error) {
	if len(cards) < 5 {
		return HandRank{}, fmt.Errorf("evaluate: need at least 5 cards, got %d", len(cards))
	}

	var best HandRank
	combos := combinations(len(cards), 5)
	for _, idx := range combos {
		five := [5]deck.Card{cards[idx[0]], cards[idx[1]], cards[idx[2]], cards[idx[3]], cards[idx[4]]}
		rank := classify(five)
		if best.Category == 0 || rank.Compare(best) > 0 {
			best = rank
		}
	}
	return best, nil
}

// combinations returns every k-element index subset of [0, n)
func combinations(n, k int) [][]int {
	var result [][]int
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		combo := make([]int, k)
		copy(combo, idx)
		result = append(result, combo)

		// Advance to the next combination
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return result
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// classify evaluates exactly five cards, checking categories from highest
// to lowest.
func classify(five [5]deck.Card) HandRank {
	cards := five[:]
	sorted := make([]deck.Card, 5)
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Rank != sorted[j].Rank {
			return sorted[i].Rank > sorted[j].Rank
		}
		return sorted[i].Suit < sorted[j].Suit
	})

	flush := isFlush(sorted)
	straightHigh, straight := straightHighCard(sorted)

	if flush && straight {
		if straightHigh == int(deck.Ace) {
			return HandRank{Category: RoyalFlush, Tiebreaks: []int{straightHigh}, Cards: sorted}
		}
		return HandRank{Category: StraightFlush, Tiebreaks: []int{straightHigh}, Cards: sorted}
	}

	groups := groupByValue(sorted)

	switch {
	case groups[0].count == 4:
		return HandRank{
			Category:  FourOfAKind,
			Tiebreaks: []int{groups[0].value, groups[1].value},
			Cards:     sorted,
		}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandRank{
			Category:  FullHouse,
			Tiebreaks: []int{groups[0].value, groups[1].value},
			Cards:     sorted,
		}
	case flush:
		return HandRank{Category: Flush, Tiebreaks: values(sorted), Cards: sorted}
	case straight:
		return HandRank{Category: Straight, Tiebreaks: []int{straightHigh}, Cards: sorted}
	case groups[0].count == 3:
		return HandRank{
			Category:  ThreeOfAKind,
			Tiebreaks: []int{groups[0].value, groups[1].value, groups[2].value},
			Cards:     sorted,
		}
	case groups[0].count == 2 && groups[1].count == 2:
		return HandRank{
			Category:  TwoPair,
			Tiebreaks: []int{groups[0].value, groups[1].value, groups[2].value},
			Cards:     sorted,
		}
	case groups[0].count == 2:
		return HandRank{
			Category:  OnePair,
			Tiebreaks: []int{groups[0].value, groups[1].value, groups[2].value, groups[3].value},
			Cards:     sorted,
		}
	default:
		return HandRank{Category: HighCard, Tiebreaks: values(sorted), Cards: sorted}
	}
}

func isFlush(cards []deck.Card) bool {
	suit := cards[0].Suit
	for _, c := range cards[1:] {
		if c.Suit != suit {
			return false
		}
	}
	return true
}

// straightHighCard reports whether the five cards (sorted descending) form a
// straight and returns its high card. The Ace-low wheel A-2-3-4-5 is a
// straight with effective high card 5, strictly below the 6-high straight.
func straightHighCard(cards []deck.Card) (int, bool) {
	run := true
	for i := 0; i < 4; i++ {
		if cards[i].Value() != cards[i+1].Value()+1 {
			run = false
			break
		}
	}
	if run {
		return cards[0].Value(), true
	}

	// Wheel: A,5,4,3,2 in descending order
	if cards[0].IsAce() &&
		cards[1].Rank == deck.Five &&
		cards[2].Rank == deck.Four &&
		cards[3].Rank == deck.Three &&
		cards[4].Rank == deck.Two {
		return int(deck.Five), true
	}

	return 0, false
}

type valueGroup struct {
	value int
	count int
}

// groupByValue groups cards by value, ordered by count descending then by
// value descending. Group values followed by singletons form the tiebreak
// vector for the paired categories.
func groupByValue(cards []deck.Card) []valueGroup {
	counts := make(map[int]int)
	for _, c := range cards {
		counts[c.Value()]++
	}

	groups := make([]valueGroup, 0, len(counts))
	for v, n := range counts {
		groups = append(groups, valueGroup{value: v, count: n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].value > groups[j].value
	})
	return groups
}

func values(cards []deck.Card) []int {
	vs := make([]int, len(cards))
	for i, c := range cards {
		vs[i] = c.Value()
	}
	return vs
}
