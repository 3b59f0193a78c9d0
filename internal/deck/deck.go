package deck

import (
	"fmt"
	rand "math/rand/v2"
)

// Deck represents a deck of playing cards. A freshly created or reset deck
// holds the 52 unique cards; dealing pops from the top. The deck never
// contains duplicates, so any sequence of deals within a single hand yields
// distinct cards.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a full 52-card deck using the provided RNG for shuffling.
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	d.fill()
	return d
}

func (d *Deck) fill() {
	d.cards = d.cards[:0]
	for suit := Hearts; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
}

// Shuffle randomizes the order of the remaining cards in the deck.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Reset restores the deck to the full 52 cards and shuffles it.
func (d *Deck) Reset() {
	d.fill()
	d.Shuffle()
}

// Deal removes and returns the top card from the deck.
func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, fmt.Errorf("deal: deck is empty")
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// DealHole deals two hole cards to each of n players, in seat order. If
// fewer than 2n cards remain (stale deck from a previous hand) the deck is
// reinitialized and reshuffled first; this is only valid between hands.
func (d *Deck) DealHole(n int) [][]Card {
	if len(d.cards) < 2*n {
		d.Reset()
	}

	hands := make([][]Card, n)
	for i := 0; i < n; i++ {
		hands[i] = make([]Card, 0, 2)
		for j := 0; j < 2; j++ {
			card, _ := d.Deal()
			hands[i] = append(hands[i], card)
		}
	}
	return hands
}

// DealCommunity deals k cards for the board. Unlike DealHole it never
// reshuffles: running out of cards mid-hand is a consistency failure that
// must surface to the caller.
func (d *Deck) DealCommunity(k int) ([]Card, error) {
	if len(d.cards) < k {
		return nil, fmt.Errorf("deal community: need %d cards, %d remain", k, len(d.cards))
	}

	cards := make([]Card, 0, k)
	for i := 0; i < k; i++ {
		card, err := d.Deal()
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
