package evaluator

import (
	"testing"

	"github.com/lantos1618/pocketaces/internal/deck"
	"github.com/lantos1618/pocketaces/internal/randutil"
)

func parseCards(t *testing.T, strs ...string) []deck.Card {
	t.Helper()
	cards := make([]deck.Card, 0, len(strs))
	for _, s := range strs {
		card, err := deck.Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		cards = append(cards, card)
	}
	return cards
}

func evaluate(t *testing.T, strs ...string) HandRank {
	t.Helper()
	rank, err := Evaluate(parseCards(t, strs...))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	return rank
}

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    []string
		expected Category
	}{
		{"high card", []string{"As", "Kh", "Qd", "Jc", "9s", "7h", "5d"}, HighCard},
		{"one pair", []string{"As", "Ah", "Kd", "Qc", "Js", "9h", "7d"}, OnePair},
		{"two pair", []string{"As", "Ah", "Kd", "Kc", "Qs", "9h", "7d"}, TwoPair},
		{"three of a kind", []string{"As", "Ah", "Ad", "Kc", "Qs", "9h", "7d"}, ThreeOfAKind},
		{"straight", []string{"As", "Kh", "Qd", "Jc", "Ts", "9h", "7d"}, Straight},
		{"wheel straight", []string{"As", "2h", "3d", "4c", "5s", "Kh", "Qd"}, Straight},
		{"flush", []string{"As", "Ks", "Qs", "Js", "9s", "7h", "5d"}, Flush},
		{"full house", []string{"As", "Ah", "Ad", "Kc", "Kh", "9h", "7d"}, FullHouse},
		{"four of a kind", []string{"As", "Ah", "Ad", "Ac", "Ks", "9h", "7d"}, FourOfAKind},
		{"straight flush", []string{"9s", "8s", "7s", "6s", "5s", "Ah", "Kd"}, StraightFlush},
		{"royal flush", []string{"As", "Ks", "Qs", "Js", "Ts", "9h", "7d"}, RoyalFlush},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rank := evaluate(t, tt.cards...)
			if rank.Category != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, rank)
			}
		})
	}
}

func TestEvaluateTooFewCards(t *testing.T) {
	t.Parallel()

	if _, err := Evaluate(parseCards(t, "As", "Kh", "Qd", "Jc")); err == nil {
		t.Error("Evaluate with 4 cards should fail")
	}
}

func TestWheelIsLowestStraight(t *testing.T) {
	t.Parallel()

	wheel := evaluate(t, "As", "2h", "3d", "4c", "5s")
	sixHigh := evaluate(t, "2s", "3h", "4d", "5c", "6s")

	if wheel.Category != Straight || sixHigh.Category != Straight {
		t.Fatalf("Both should be straights: %s, %s", wheel, sixHigh)
	}
	if wheel.Compare(sixHigh) != -1 {
		t.Errorf("Wheel must lose to the 6-high straight: %v vs %v", wheel.Tiebreaks, sixHigh.Tiebreaks)
	}
	if wheel.Tiebreaks[0] != 5 {
		t.Errorf("Wheel high card should be 5, got %d", wheel.Tiebreaks[0])
	}
}

func TestCompareHands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hand1    []string
		hand2    []string
		expected int
	}{
		{
			name:     "pair beats high card",
			hand1:    []string{"As", "Ah", "Kd", "Qc", "Js", "9h", "7d"},
			hand2:    []string{"As", "Kh", "Qd", "Jc", "9s", "7h", "5d"},
			expected: 1,
		},
		{
			name:     "higher pair wins",
			hand1:    []string{"As", "Ah", "Kd", "Qc", "Js"},
			hand2:    []string{"Ks", "Kh", "Ad", "Qc", "Js"},
			expected: 1,
		},
		{
			name:     "kicker decides equal pairs",
			hand1:    []string{"As", "Ah", "Kd", "Qc", "Js"},
			hand2:    []string{"Ac", "Ad", "Kh", "Qs", "Tc"},
			expected: 1,
		},
		{
			name:     "higher two pair wins over pair ranks",
			hand1:    []string{"As", "Ah", "2d", "2c", "Js"},
			hand2:    []string{"Ks", "Kh", "Qd", "Qc", "Js"},
			expected: 1,
		},
		{
			name:     "identical board ranks tie across suits",
			hand1:    []string{"As", "Kh", "Qd", "Jc", "9s"},
			hand2:    []string{"Ad", "Ks", "Qh", "Jd", "9c"},
			expected: 0,
		},
		{
			name:     "flush kickers compared in order",
			hand1:    []string{"As", "Ks", "Qs", "Js", "9s"},
			hand2:    []string{"Ah", "Kh", "Qh", "Jh", "8h"},
			expected: 1,
		},
		{
			name:     "full house compares trips first",
			hand1:    []string{"Qs", "Qh", "Qd", "2c", "2s"},
			hand2:    []string{"Js", "Jh", "Jd", "Ac", "As"},
			expected: 1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r1 := evaluate(t, tt.hand1...)
			r2 := evaluate(t, tt.hand2...)
			if got := r1.Compare(r2); got != tt.expected {
				t.Errorf("Compare = %d, want %d (%s vs %s)", got, tt.expected, r1, r2)
			}
		})
	}
}

func TestEvaluateOrderInvariant(t *testing.T) {
	t.Parallel()

	cards := parseCards(t, "As", "Ah", "Kd", "Kc", "Qs", "9h", "7d")
	base, err := Evaluate(cards)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	rng := randutil.New(99)
	for i := 0; i < 50; i++ {
		shuffled := make([]deck.Card, len(cards))
		copy(shuffled, cards)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		rank, err := Evaluate(shuffled)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if rank.Category != base.Category {
			t.Fatalf("Order changed category: %s vs %s", rank, base)
		}
		if rank.Compare(base) != 0 {
			t.Fatalf("Order changed strength: %v vs %v", rank.Tiebreaks, base.Tiebreaks)
		}
	}
}

func TestBestFiveFromSeven(t *testing.T) {
	t.Parallel()

	// Board pairs the deuce but the best hand ignores it
	rank := evaluate(t, "As", "Ks", "Qs", "Js", "Ts", "2h", "2d")
	if rank.Category != RoyalFlush {
		t.Errorf("Expected royal flush from 7 cards, got %s", rank)
	}
	if len(rank.Cards) != 5 {
		t.Errorf("Best hand should have 5 cards, got %d", len(rank.Cards))
	}
}
