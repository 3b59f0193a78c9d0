package game

// StartHand begins a new hand: fresh shuffled deck, two hole cards per
// player in seat order, blinds posted, phase to PreFlop. The first player to
// act is the first active seat after the big blind.
func (s *State) StartHand() error {
	if s.Phase != Waiting {
		return Consistencyf("hand already started (phase %s)", s.Phase)
	}
	if len(s.Players) < 2 {
		return ErrCannotStart
	}

	for _, p := range s.Players {
		p.Status = StatusActive
		p.Bet = 0
		p.TotalBet = 0
		p.HoleCards = nil
	}

	s.deck.Reset()
	hands := s.deck.DealHole(len(s.Players))
	for i, p := range s.Players {
		p.HoleCards = hands[i]
	}

	bbSeat := s.postBlinds()

	s.Phase = PreFlop
	s.resetActed()
	s.ActivePlayer = s.nextActive(bbSeat + 1)

	// Everyone all-in from the blinds: run the board out immediately
	if s.ActivePlayer == -1 {
		return s.advancePhase()
	}
	return nil
}

// postBlinds posts the small and big blinds and returns the big blind seat.
// Heads-up the dealer posts the small blind; otherwise dealer+1 posts small
// and dealer+2 posts big. A short stack posts what it has and is all-in,
// but the table's current bet stays at the full big blind.
func (s *State) postBlinds() int {
	n := len(s.Players)

	var sbSeat, bbSeat int
	if n == 2 {
		sbSeat = s.Dealer
		bbSeat = (s.Dealer + 1) % n
	} else {
		sbSeat = (s.Dealer + 1) % n
		bbSeat = (s.Dealer + 2) % n
	}

	s.post(sbSeat, s.SmallBlind)
	s.post(bbSeat, s.BigBlind)

	s.CurrentBet = s.BigBlind
	s.MinRaise = s.BigBlind
	return bbSeat
}

func (s *State) post(seat, amount int) {
	p := s.Players[seat]
	posted := min(amount, p.Chips)
	p.Chips -= posted
	p.Bet += posted
	p.TotalBet += posted
	s.Pot += posted
	if p.Chips == 0 {
		p.Status = StatusAllIn
	}
}
