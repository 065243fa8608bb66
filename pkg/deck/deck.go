package deck

import (
	"ridethebus-server/internal/rng"
)

// Deck represents a playing deck
// Cards are drawn from a uniformly random position, so the order of Cards is not significant
type Deck struct {
	Cards []*Card `json:"cards"`

	// Epoch is the number of times the deck was rebuilt after running out
	Epoch int `json:"epoch"`

	rng rng.Generator
}

// New returns a full 52-card deck that draws with a crypto-backed generator
func New() *Deck {
	return NewWithGenerator(rng.Crypto{})
}

// NewWithGenerator returns a full 52-card deck that draws with gen
func NewWithGenerator(gen rng.Generator) *Deck {
	d := &Deck{rng: gen}
	d.buildDeck()
	return d
}

// SetGenerator replaces the random source
// This should only be used by tests
func (d *Deck) SetGenerator(gen rng.Generator) {
	d.rng = gen
}

func (d *Deck) buildDeck() {
	cards := make([]*Card, 0, 52)
	for _, suit := range Suits() {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, &Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	d.Cards = cards
}

// Draw removes and returns a uniformly random card
// An empty deck is rebuilt to a full 52 cards before drawing, so Draw always returns a card
func (d *Deck) Draw() *Card {
	if len(d.Cards) == 0 {
		d.buildDeck()
		d.Epoch++
	}

	i := d.rng.Intn(len(d.Cards))
	card := d.Cards[i]

	n := len(d.Cards) - 1
	d.Cards[i] = d.Cards[n]
	d.Cards[n] = nil
	d.Cards = d.Cards[:n]

	return card
}

// Contains returns true if the card is still in the deck
func (d *Deck) Contains(card *Card) bool {
	for _, c := range d.Cards {
		if c.Equal(card) {
			return true
		}
	}

	return false
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}
