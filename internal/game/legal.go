package game

// LegalActions returns the actions the given player could legally submit
// right now. It mirrors the validation in ApplyAction: a player who cannot
// cover a call is not offered Call, only AllIn.
func (s *State) LegalActions(playerID string) []Action {
	p, ok := s.Player(playerID)
	if !ok || !p.CanAct() || s.ActivePlayer != p.Seat {
		return nil
	}
	if s.Phase < PreFlop || s.Phase > River {
		return nil
	}

	actions := []Action{Fold}
	toCall := s.CurrentBet - p.Bet

	if toCall == 0 {
		actions = append(actions, Check)
	} else if p.Chips >= toCall {
		actions = append(actions, Call)
	}

	minRaiseTo := s.CurrentBet + s.MinRaise
	if p.Chips >= minRaiseTo-p.Bet {
		actions = append(actions, Raise)
	}
	if p.Chips > 0 {
		actions = append(actions, AllIn)
	}
	return actions
}
