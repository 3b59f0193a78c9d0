package game

import "github.com/lantos1618/pocketaces/internal/deck"

// Player represents a player in a hand. Chips, Bet and TotalBet are mutated
// only by the hand state machine while the game's lock is held.
type Player struct {
	ID        string
	Name      string
	Seat      int
	Chips     int
	Status    Status
	HoleCards []deck.Card
	Bet       int // chips committed this betting round
	TotalBet  int // chips committed this hand

	// Human and AgentID describe who controls the seat. The core never
	// consults them for game logic; rooms use them for start policy.
	Human   bool
	AgentID string
}

// CanAct returns true if the player may take an action this round
func (p *Player) CanAct() bool {
	return p.Status == StatusActive
}

// InHand returns true if the player still contends for the pot
// (active or all-in, not folded and not sitting out).
func (p *Player) InHand() bool {
	return p.Status == StatusActive || p.Status == StatusAllIn
}

func (p *Player) clone() *Player {
	cp := *p
	cp.HoleCards = append([]deck.Card(nil), p.HoleCards...)
	return &cp
}
