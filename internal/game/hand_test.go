package game

import (
	"fmt"
	"testing"

	"github.com/lantos1618/pocketaces/internal/randutil"
)

func newTestState(dealer int, chips ...int) *State {
	players := make([]*Player, len(chips))
	for i, c := range chips {
		players[i] = &Player{
			ID:    fmt.Sprintf("p%d", i),
			Name:  fmt.Sprintf("player-%d", i),
			Chips: c,
		}
	}
	return NewState("g1", "r1", players, dealer, 10, 20, randutil.New(42))
}

func TestStartHandPostsBlinds(t *testing.T) {
	t.Parallel()

	st := newTestState(0, 500, 500, 500)
	if err := st.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	if st.Phase != PreFlop {
		t.Errorf("Expected PreFlop, got %s", st.Phase)
	}
	if st.Players[1].Bet != 10 {
		t.Errorf("Seat 1 should post small blind 10, got %d", st.Players[1].Bet)
	}
	if st.Players[2].Bet != 20 {
		t.Errorf("Seat 2 should post big blind 20, got %d", st.Players[2].Bet)
	}
	if st.Pot != 30 {
		t.Errorf("Pot should be 30, got %d", st.Pot)
	}
	if st.CurrentBet != 20 || st.MinRaise != 20 {
		t.Errorf("CurrentBet/MinRaise should be 20/20, got %d/%d", st.CurrentBet, st.MinRaise)
	}
	if st.ActivePlayer != 0 {
		t.Errorf("First to act should be seat 0 (after big blind), got %d", st.ActivePlayer)
	}
	for _, p := range st.Players {
		if len(p.HoleCards) != 2 {
			t.Errorf("Player %s should hold 2 cards, got %d", p.ID, len(p.HoleCards))
		}
	}
	if len(st.History) != 0 {
		t.Errorf("Blinds should not appear in the action history, got %d records", len(st.History))
	}
}

func TestStartHandHeadsUp(t *testing.T) {
	t.Parallel()

	st := newTestState(0, 500, 500)
	if err := st.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	// Heads-up the dealer posts the small blind and acts first preflop
	if st.Players[0].Bet != 10 {
		t.Errorf("Dealer should post small blind, got %d", st.Players[0].Bet)
	}
	if st.Players[1].Bet != 20 {
		t.Errorf("Other seat should post big blind, got %d", st.Players[1].Bet)
	}
	if st.ActivePlayer != 0 {
		t.Errorf("Dealer should act first heads-up, got seat %d", st.ActivePlayer)
	}
}

func TestStartHandShortBigBlind(t *testing.T) {
	t.Parallel()

	st := newTestState(0, 500, 500, 15)
	if err := st.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	bb := st.Players[2]
	if bb.Bet != 15 || bb.Chips != 0 {
		t.Errorf("Short stack should post its whole 15, got bet %d chips %d", bb.Bet, bb.Chips)
	}
	if bb.Status != StatusAllIn {
		t.Errorf("Short big blind should be all-in, got %s", bb.Status)
	}
	// The table still owes a full big blind to see the flop
	if st.CurrentBet != 20 {
		t.Errorf("CurrentBet should stay at the full big blind 20, got %d", st.CurrentBet)
	}
}

func TestStartHandNeedsTwoPlayers(t *testing.T) {
	t.Parallel()

	st := newTestState(0, 500)
	if err := st.StartHand(); err != ErrCannotStart {
		t.Errorf("Expected ErrCannotStart, got %v", err)
	}
}

func TestBlindsAllInRunsOutBoard(t *testing.T) {
	t.Parallel()

	// Both stacks consumed by the blinds: no betting is possible and the
	// board runs out to showdown immediately
	st := newTestState(0, 10, 20)
	if err := st.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	if st.Phase != Finished {
		t.Fatalf("Expected Finished, got %s", st.Phase)
	}
	if len(st.Community) != 5 {
		t.Errorf("Expected a full board, got %d cards", len(st.Community))
	}
	if len(st.Winners) == 0 {
		t.Error("Expected at least one winner")
	}
	if st.TotalChips() != 30 {
		t.Errorf("Chips not conserved: %d", st.TotalChips())
	}
	paid := 0
	for _, amount := range st.Payouts {
		paid += amount
	}
	if paid != 30 {
		t.Errorf("Expected 30 chips paid out, got %d", paid)
	}
}
