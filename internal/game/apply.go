package game

import (
	"fmt"
	"time"
)

// ApplyAction validates and applies a single player action. On a validation
// failure the state is untouched and the caller may re-prompt. After a
// successful mutation the turn advances and, if the betting round has
// closed, the phase advances (dealing community cards or resolving the
// showdown). A ConsistencyError aborts the hand and must not be retried.
//
// The caller is responsible for holding the game's lock for the full
// duration of the call.
func (s *State) ApplyAction(playerID string, action Action, amount int, now time.Time) error {
	if s.Phase < PreFlop || s.Phase > River {
		return fmt.Errorf("%w: phase is %s", ErrHandOver, s.Phase)
	}

	p, ok := s.Player(playerID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	if !p.CanAct() {
		return fmt.Errorf("%w: %s is %s", ErrPlayerCannotAct, playerID, p.Status)
	}
	if s.ActivePlayer != p.Seat {
		return fmt.Errorf("%w: waiting on seat %d", ErrNotPlayersTurn, s.ActivePlayer)
	}

	recorded := amount
	switch action {
	case Fold:
		p.Status = StatusFolded
		recorded = 0

	case Check:
		if p.Bet != s.CurrentBet {
			return fmt.Errorf("%w: %d to call", ErrCannotCheck, s.CurrentBet-p.Bet)
		}
		recorded = 0

	case Call:
		callAmount := s.CurrentBet - p.Bet
		if p.Chips < callAmount {
			// A short stack must submit AllIn explicitly; a call never
			// silently downgrades.
			return fmt.Errorf("%w: call of %d exceeds stack %d", ErrInsufficientChips, callAmount, p.Chips)
		}
		p.Chips -= callAmount
		p.Bet = s.CurrentBet
		p.TotalBet += callAmount
		s.Pot += callAmount
		if p.Chips == 0 {
			p.Status = StatusAllIn
		}
		recorded = callAmount

	case Raise:
		if amount < s.CurrentBet+s.MinRaise {
			return fmt.Errorf("%w: minimum is %d", ErrRaiseTooSmall, s.CurrentBet+s.MinRaise)
		}
		delta := amount - p.Bet
		if delta > p.Chips {
			return fmt.Errorf("%w: raise to %d needs %d more", ErrInsufficientChips, amount, delta)
		}
		p.Chips -= delta
		p.TotalBet += delta
		p.Bet = amount
		s.Pot += delta
		s.MinRaise = amount - s.CurrentBet
		s.CurrentBet = amount
		s.reopenAction(p.Seat)
		if p.Chips == 0 {
			p.Status = StatusAllIn
		}

	case AllIn:
		if p.Chips == 0 {
			return fmt.Errorf("%w: nothing left to bet", ErrInsufficientChips)
		}
		allIn := p.Chips
		p.Chips = 0
		p.Bet += allIn
		p.TotalBet += allIn
		s.Pot += allIn
		p.Status = StatusAllIn
		// An all-in above the current bet acts as a raise and reopens the
		// action; an all-in below it never lowers the table's current bet.
		if p.Bet > s.CurrentBet {
			s.MinRaise = p.Bet - s.CurrentBet
			s.CurrentBet = p.Bet
			s.reopenAction(p.Seat)
		}
		recorded = allIn

	default:
		return fmt.Errorf("%w: %d", ErrInvalidAction, int(action))
	}

	s.actedSinceRaise[p.Seat] = true
	s.History = append(s.History, ActionRecord{
		PlayerID: playerID,
		Action:   action,
		Amount:   recorded,
		Time:     now,
	})

	// A hand with one contender left ends immediately, no evaluation
	if len(s.Contenders()) == 1 {
		s.settleFoldWin()
		return nil
	}

	next := s.nextActive(p.Seat + 1)
	if next == -1 || s.roundClosed() {
		return s.advancePhase()
	}
	s.ActivePlayer = next
	return nil
}

// roundClosed reports whether betting for the current phase is complete:
// every active player has matched the table bet and has acted since the
// last raise. The preflop big-blind option falls out of the acted flags,
// since posting a blind does not count as acting.
func (s *State) roundClosed() bool {
	for _, p := range s.Players {
		if !p.CanAct() {
			continue
		}
		if p.Bet != s.CurrentBet || !s.actedSinceRaise[p.Seat] {
			return false
		}
	}
	return true
}

// advancePhase closes the current betting round: bets reset, the next
// street is dealt, and action starts at the first active seat after the
// dealer. When no seat can act (everyone all-in) it keeps advancing until
// the showdown. On river closure the showdown resolves.
func (s *State) advancePhase() error {
	for {
		for _, p := range s.Players {
			p.Bet = 0
		}
		s.CurrentBet = 0
		s.MinRaise = s.BigBlind
		s.resetActed()

		switch s.Phase {
		case PreFlop:
			if err := s.dealCommunity(3); err != nil {
				return err
			}
			s.Phase = Flop
		case Flop:
			if err := s.dealCommunity(1); err != nil {
				return err
			}
			s.Phase = Turn
		case Turn:
			if err := s.dealCommunity(1); err != nil {
				return err
			}
			s.Phase = River
		case River:
			s.Phase = Showdown
			s.ActivePlayer = -1
			return s.settleShowdown()
		default:
			return Consistencyf("cannot advance from phase %s", s.Phase)
		}

		s.ActivePlayer = s.nextActive(s.Dealer + 1)
		if s.ActivePlayer != -1 {
			return nil
		}
		// All remaining contenders are all-in; run out the next street
	}
}

func (s *State) dealCommunity(k int) error {
	cards, err := s.deck.DealCommunity(k)
	if err != nil {
		return consistencyWrap(err, "deck exhausted mid-hand")
	}
	s.Community = append(s.Community, cards...)
	return nil
}

// settleFoldWin awards the entire pot to the last contender. No hands are
// evaluated.
func (s *State) settleFoldWin() {
	winner := s.Contenders()[0]
	winner.Chips += s.Pot
	s.Winners = []string{winner.ID}
	s.WinningHand = nil
	s.Payouts[winner.ID] += s.Pot
	s.Pot = 0
	s.ActivePlayer = -1
	s.Phase = Finished
}
