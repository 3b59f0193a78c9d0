package game

import (
	rand "math/rand/v2"
	"time"

	"github.com/thoas/go-funk"

	"github.com/lantos1618/pocketaces/internal/deck"
	"github.com/lantos1618/pocketaces/internal/evaluator"
)

// ActionRecord is one applied action in a hand's history
type ActionRecord struct {
	PlayerID string
	Action   Action
	Amount   int
	Time     time.Time
}

// State is the canonical state of a single poker hand. It is mutated only
// while the owning store holds the game's lock, so methods assume exclusive
// access and never lock internally.
//
// Invariants maintained across every mutation:
//   - the sum of player chips plus the pot is constant per action
//   - community card count matches the phase (0/3/4/5)
//   - ActivePlayer indexes an active player, or is -1 when none can act
//   - no card appears twice among the deck, hole cards and board
type State struct {
	ID           string
	RoomID       string
	Phase        Phase
	Players      []*Player // seat order; Players[i].Seat == i
	Community    []deck.Card
	Pot          int
	CurrentBet   int
	MinRaise     int
	ActivePlayer int
	Dealer       int
	SmallBlind   int
	BigBlind     int
	History      []ActionRecord
	Winners      []string
	WinningHand  *evaluator.HandRank
	Payouts      map[string]int
	CreatedAt    time.Time

	deck *deck.Deck

	// actedSinceRaise tracks, per seat, whether the player has acted since
	// the last raise this round. A raise clears every other seat, which is
	// what reopens the action.
	actedSinceRaise []bool
}

// NewState creates a hand state in the Waiting phase. Players must be given
// in seat order; the slice is owned by the state afterwards.
func NewState(id, roomID string, players []*Player, dealer, smallBlind, bigBlind int, rng *rand.Rand) *State {
	for i, p := range players {
		p.Seat = i
	}
	return &State{
		ID:              id,
		RoomID:          roomID,
		Phase:           Waiting,
		Players:         players,
		Dealer:          dealer,
		SmallBlind:      smallBlind,
		BigBlind:        bigBlind,
		ActivePlayer:    -1,
		Payouts:         make(map[string]int),
		deck:            deck.New(rng),
		actedSinceRaise: make([]bool, len(players)),
	}
}

// Player returns the player with the given id
func (s *State) Player(id string) (*Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// ActivePlayers returns players who can still act this round
func (s *State) ActivePlayers() []*Player {
	return funk.Filter(s.Players, func(p *Player) bool {
		return p.Status == StatusActive
	}).([]*Player)
}

// Contenders returns players still contending for the pot (active or all-in)
func (s *State) Contenders() []*Player {
	return funk.Filter(s.Players, func(p *Player) bool {
		return p.InHand()
	}).([]*Player)
}

// TotalChips returns the sum of all player stacks plus the pot. It is
// constant across any single action application; the store checks it before
// and after every mutation.
func (s *State) TotalChips() int {
	total := s.Pot
	for _, p := range s.Players {
		total += p.Chips
	}
	return total
}

// nextActive returns the seat of the next active player at or after from,
// in seat order, or -1 if no player can act.
func (s *State) nextActive(from int) int {
	n := len(s.Players)
	for i := 0; i < n; i++ {
		seat := (from + i) % n
		if s.Players[seat].CanAct() {
			return seat
		}
	}
	return -1
}

func (s *State) resetActed() {
	for i := range s.actedSinceRaise {
		s.actedSinceRaise[i] = false
	}
}

// reopenAction clears every seat's acted flag except the raiser's, giving
// all other active players another turn before the round can close.
func (s *State) reopenAction(raiserSeat int) {
	s.resetActed()
	s.actedSinceRaise[raiserSeat] = true
}

// Clone returns a deep copy of the state for handing to callers. The copy
// shares nothing mutable with the canonical state and carries no deck, so a
// holder cannot deal cards or otherwise corrupt the live game.
func (s *State) Clone() *State {
	cp := *s
	cp.deck = nil
	cp.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		cp.Players[i] = p.clone()
	}
	cp.Community = append([]deck.Card(nil), s.Community...)
	cp.History = append([]ActionRecord(nil), s.History...)
	cp.Winners = append([]string(nil), s.Winners...)
	cp.actedSinceRaise = append([]bool(nil), s.actedSinceRaise...)
	cp.Payouts = make(map[string]int, len(s.Payouts))
	for k, v := range s.Payouts {
		cp.Payouts[k] = v
	}
	if s.WinningHand != nil {
		wh := *s.WinningHand
		wh.Tiebreaks = append([]int(nil), s.WinningHand.Tiebreaks...)
		wh.Cards = append([]deck.Card(nil), s.WinningHand.Cards...)
		cp.WinningHand = &wh
	}
	return &cp
}
