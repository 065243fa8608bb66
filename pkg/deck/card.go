package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Spades   Suit = "spades"
	Clubs    Suit = "clubs"
)

// Suits returns the four suits in deck order
func Suits() []Suit {
	return []Suit{Hearts, Diamonds, Spades, Clubs}
}

// ParseSuit returns the Suit for a case-insensitive name ("hearts") or letter ("h")
func ParseSuit(s string) (Suit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hearts", "h":
		return Hearts, nil
	case "diamonds", "d":
		return Diamonds, nil
	case "spades", "s":
		return Spades, nil
	case "clubs", "c":
		return Clubs, nil
	}

	return "", fmt.Errorf("unknown suit: %s", s)
}

// Color is the color of a suit
type Color string

// color constants
const (
	Black Color = "black"
	Red   Color = "red"
)

// ParseColor returns the Color for a case-insensitive name
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black":
		return Black, nil
	case "red":
		return Red, nil
	}

	return "", fmt.Errorf("unknown color: %s", s)
}

// Color returns the suit's color
func (s Suit) Color() Color {
	if s == Spades || s == Clubs {
		return Black
	}

	return Red
}

// Card is an individual playing card
// Cards are never mutated after they are built
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// face cards
const (
	Jack  = 11
	Queen = 12
	King  = 13
	Ace   = 14
)

// Color returns black for spades and clubs, red otherwise
func (c *Card) Color() Color {
	return c.Suit.Color()
}

// Face returns the printed value of the card (A, 2..10, J, Q, K)
func (c *Card) Face() string {
	switch c.Rank {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}

	return strconv.Itoa(c.Rank)
}

func (c *Card) String() string {
	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	default:
		panic("unknown suit")
	}

	return fmt.Sprintf("%s%s", c.Face(), suit)
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c *Card) Equal(card *Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

var cardRx = regexp.MustCompile(`(?i)^([2-9]|1[0-4])([cdhs])\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <rank><suit> where rank >= 2 and <= 14 and suit in [cdhs]
func CardFromString(s string) *Card {
	if s == "" {
		return nil
	}

	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	rank, err := strconv.Atoi(match[1])
	if err != nil {
		panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
	}

	suit, err := ParseSuit(match[2])
	if err != nil {
		// should never be hit due to the regexp
		panic(err)
	}

	return &Card{
		Rank: rank,
		Suit: suit,
	}
}

// CardsFromString will returns a slice of cards
func CardsFromString(s string) []*Card {
	if s == "" {
		return []*Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]*Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardToString converts a card (Ace of Clubs) to a string (14c)
func CardToString(card *Card) string {
	if card == nil {
		return ""
	}

	return fmt.Sprintf("%d%s", card.Rank, string(card.Suit)[:1])
}

// CardsToString will convert a slice of cards to a string in the format of 2c,3h,4s,...
func CardsToString(cards []*Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
