package ridethebus

import (
	"sort"

	"ridethebus-server/pkg/deck"
	"ridethebus-server/pkg/playable"
)

// RoundState is the state of the current round
type RoundState string

// RoundState constants
const (
	// RoundStateAwaitingColor is before the first card is drawn
	RoundStateAwaitingColor RoundState = "awaiting-color"

	// RoundStateAwaitingHighLow means the first card is showing
	RoundStateAwaitingHighLow RoundState = "awaiting-high-low"

	// RoundStateAwaitingInOut means the first two cards are showing
	RoundStateAwaitingInOut RoundState = "awaiting-in-out"

	// RoundStateAwaitingSuit means three cards are showing
	RoundStateAwaitingSuit RoundState = "awaiting-suit"

	// RoundStateLost means a guess was wrong and the bet was lost
	RoundStateLost RoundState = "lost"

	// RoundStateWon means all four guesses were right
	RoundStateWon RoundState = "won"
)

// IsResolved returns true once the round was won or lost
func (r RoundState) IsResolved() bool {
	return r == RoundStateLost || r == RoundStateWon
}

// Round is a single trip through the four stages
type Round struct {
	ID           string     `json:"id"`
	State        RoundState `json:"state"`
	PotentialWin int        `json:"potentialWin"`
	Hint         string     `json:"hint"`

	// the cards drawn for each stage, nil until the stage is played
	First  *deck.Card `json:"first"`
	Second *deck.Card `json:"second"`
	Third  *deck.Card `json:"third"`
	Fourth *deck.Card `json:"fourth"`
}

// Cards returns the cards drawn this round in stage order
func (r *Round) Cards() []*deck.Card {
	cards := make([]*deck.Card, 0, 4)
	for _, card := range []*deck.Card{r.First, r.Second, r.Third, r.Fourth} {
		if card != nil {
			cards = append(cards, card)
		}
	}

	return cards
}

// GameState is the current state of the game as shown to the player
type GameState struct {
	RoundID      string               `json:"roundId"`
	State        RoundState           `json:"state"`
	Bet          int                  `json:"bet"`
	MinBet       int                  `json:"minBet"`
	WagerLocked  bool                 `json:"wagerLocked"`
	Bankroll     int                  `json:"bankroll"`
	PotentialWin int                  `json:"potentialWin"`
	Cards        []*deck.Card         `json:"cards"`
	Controls     []playable.ControlID `json:"controls"`
	Hint         string               `json:"hint"`
	Multipliers  map[string]float64   `json:"multipliers"`
	CardsLeft    int                  `json:"cardsLeft"`
}

// NOTE: must be called with the lock held
func (g *Game) getGameState() *GameState {
	controls := make([]playable.ControlID, 0, len(g.controls))
	for id, enabled := range g.controls {
		if enabled {
			controls = append(controls, id)
		}
	}
	sort.Slice(controls, func(i, j int) bool {
		return controls[i] < controls[j]
	})

	return &GameState{
		RoundID:      g.round.ID,
		State:        g.round.State,
		Bet:          g.wager.Amount(),
		MinBet:       g.wager.Min(),
		WagerLocked:  g.wager.IsLocked(),
		Bankroll:     g.bankroll.Balance(),
		PotentialWin: g.round.PotentialWin,
		Cards:        g.round.Cards(),
		Controls:     controls,
		Hint:         g.round.Hint,
		Multipliers:  Multipliers(),
		CardsLeft:    g.deck.CardsLeft(),
	}
}
