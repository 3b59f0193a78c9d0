package game

import (
	"testing"

	"github.com/lantos1618/pocketaces/internal/deck"
	"github.com/lantos1618/pocketaces/internal/evaluator"
	"github.com/lantos1618/pocketaces/internal/randutil"
)

func cards(t *testing.T, strs ...string) []deck.Card {
	t.Helper()
	out := make([]deck.Card, 0, len(strs))
	for _, s := range strs {
		c, err := deck.Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		out = append(out, c)
	}
	return out
}

// riverState builds a hand frozen at the river with the given players and
// board, ready for settlement.
func riverState(t *testing.T, dealer int, board []string, players []*Player) *State {
	t.Helper()
	st := NewState("g1", "r1", players, dealer, 10, 20, randutil.New(1))
	st.Phase = River
	st.Community = cards(t, board...)
	for _, p := range players {
		st.Pot += p.TotalBet
	}
	return st
}

func TestShowdownSidePotTiers(t *testing.T) {
	t.Parallel()

	// Three all-ins for 50, 100 and 150. The strongest hand is capped at
	// the main pot, the middle hand takes the first side pot, and the
	// shallow third tier returns to its only contributor.
	players := []*Player{
		{ID: "a", Chips: 0, Status: StatusAllIn, TotalBet: 50},
		{ID: "b", Chips: 0, Status: StatusAllIn, TotalBet: 100},
		{ID: "c", Chips: 0, Status: StatusAllIn, TotalBet: 150},
	}
	st := riverState(t, 0, []string{"Qs", "Jd", "9c", "7h", "2s"}, players)
	players[0].HoleCards = cards(t, "Ah", "Ad")
	players[1].HoleCards = cards(t, "Kh", "Kd")
	players[2].HoleCards = cards(t, "3s", "4c")

	if err := st.settleShowdown(); err != nil {
		t.Fatalf("settleShowdown: %v", err)
	}

	if st.Payouts["a"] != 150 {
		t.Errorf("Main pot (3x50) should go to the aces, got %d", st.Payouts["a"])
	}
	if st.Payouts["b"] != 100 {
		t.Errorf("First side pot (2x50) should go to the kings, got %d", st.Payouts["b"])
	}
	if st.Payouts["c"] != 50 {
		t.Errorf("Uncalled 50 should return to its contributor, got %d", st.Payouts["c"])
	}

	if len(st.Winners) != 1 || st.Winners[0] != "a" {
		t.Errorf("Winners should be the main pot takers, got %v", st.Winners)
	}
	if st.WinningHand == nil || st.WinningHand.Category != evaluator.OnePair {
		t.Errorf("Winning hand should be the pair of aces, got %v", st.WinningHand)
	}
	if st.Pot != 0 {
		t.Errorf("Pot should be empty, got %d", st.Pot)
	}
	if st.TotalChips() != 300 {
		t.Errorf("Chips not conserved: %d", st.TotalChips())
	}
}

func TestShowdownSplitPotRemainder(t *testing.T) {
	t.Parallel()

	// Two hands play the board and tie for an odd pot; the extra chip goes
	// to the winner closest clockwise from the dealer.
	players := []*Player{
		{ID: "a", Chips: 100, Status: StatusActive, TotalBet: 33},
		{ID: "b", Chips: 100, Status: StatusActive, TotalBet: 33},
		{ID: "c", Chips: 100, Status: StatusFolded, TotalBet: 33},
	}
	st := riverState(t, 2, []string{"Ah", "Kd", "Qc", "Js", "9h"}, players)
	players[0].HoleCards = cards(t, "2h", "3d")
	players[1].HoleCards = cards(t, "2c", "3c")
	players[2].HoleCards = cards(t, "6h", "6d")

	if err := st.settleShowdown(); err != nil {
		t.Fatalf("settleShowdown: %v", err)
	}

	if st.Payouts["a"] != 50 {
		t.Errorf("Seat after the dealer should take the odd chip (50), got %d", st.Payouts["a"])
	}
	if st.Payouts["b"] != 49 {
		t.Errorf("Other winner should take 49, got %d", st.Payouts["b"])
	}
	if st.Payouts["c"] != 0 {
		t.Errorf("Folded player should win nothing, got %d", st.Payouts["c"])
	}
	if len(st.Winners) != 2 {
		t.Errorf("Expected a two-way tie, got %v", st.Winners)
	}
	if st.TotalChips() != 399 {
		t.Errorf("Chips not conserved: %d", st.TotalChips())
	}
}

func TestShowdownFolderExcessGoesToContenders(t *testing.T) {
	t.Parallel()

	// The folder contributed more than any contender; the excess has no
	// eligible tier of its own and rolls into the contested pot.
	players := []*Player{
		{ID: "a", Chips: 100, Status: StatusActive, TotalBet: 50},
		{ID: "b", Chips: 100, Status: StatusActive, TotalBet: 50},
		{ID: "c", Chips: 100, Status: StatusFolded, TotalBet: 80},
	}
	st := riverState(t, 0, []string{"Qs", "Jd", "9c", "7h", "2s"}, players)
	players[0].HoleCards = cards(t, "Ah", "Ad")
	players[1].HoleCards = cards(t, "Kh", "Kd")
	players[2].HoleCards = cards(t, "3s", "4c")

	if err := st.settleShowdown(); err != nil {
		t.Fatalf("settleShowdown: %v", err)
	}

	if st.Payouts["a"] != 180 {
		t.Errorf("Winner should take the whole 180 pot, got %d", st.Payouts["a"])
	}
	if st.TotalChips() != 480 {
		t.Errorf("Chips not conserved: %d", st.TotalChips())
	}
}

func TestShowdownConsistencyChecks(t *testing.T) {
	t.Parallel()

	t.Run("single contender", func(t *testing.T) {
		t.Parallel()
		players := []*Player{
			{ID: "a", Status: StatusActive, TotalBet: 20},
			{ID: "b", Status: StatusFolded, TotalBet: 20},
		}
		st := riverState(t, 0, []string{"Qs", "Jd", "9c", "7h", "2s"}, players)
		err := st.settleShowdown()
		if !IsConsistency(err) {
			t.Errorf("Expected a consistency error, got %v", err)
		}
	})

	t.Run("short board", func(t *testing.T) {
		t.Parallel()
		players := []*Player{
			{ID: "a", Status: StatusActive, TotalBet: 20},
			{ID: "b", Status: StatusActive, TotalBet: 20},
		}
		st := riverState(t, 0, []string{"Qs", "Jd", "9c", "7h"}, players)
		players[0].HoleCards = cards(t, "Ah", "Ad")
		players[1].HoleCards = cards(t, "Kh", "Kd")
		err := st.settleShowdown()
		if !IsConsistency(err) {
			t.Errorf("Expected a consistency error, got %v", err)
		}
	})
}
