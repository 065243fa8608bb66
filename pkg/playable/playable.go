package playable

import (
	"time"

	"ridethebus-server/pkg/deck"
)

// ControlID identifies a player control the presenter can enable or disable
type ControlID string

// ControlID constants
const (
	ControlBlack    ControlID = "black"
	ControlRed      ControlID = "red"
	ControlHigher   ControlID = "higher"
	ControlLower    ControlID = "lower"
	ControlIn       ControlID = "in"
	ControlOut      ControlID = "out"
	ControlHearts   ControlID = "hearts"
	ControlDiamonds ControlID = "diamonds"
	ControlSpades   ControlID = "spades"
	ControlClubs    ControlID = "clubs"

	// ControlSuits is the container holding the four suit controls
	ControlSuits ControlID = "suits"
)

// Presenter is everything a game needs from the presentation layer
// Calls are fire-and-forget and must not call back into the game
type Presenter interface {
	// RenderCard displays a card face
	RenderCard(card *deck.Card)

	// Notify shows a transient banner
	Notify(message, color string, duration time.Duration)

	// Celebrate shows a visual flourish, intensity is roughly the amount of confetti
	Celebrate(intensity int)

	// SetControlsEnabled enables or disables player controls
	SetControlsEnabled(ids []ControlID, enabled bool)

	// SetWagerBounds updates the bet control range
	SetWagerBounds(min, max int)

	// ShowHint displays the rule text for the current stage, an empty string clears it
	ShowHint(text string)

	// ClearCards removes rendered card history
	ClearCards()
}

// Discard is a Presenter that ignores everything
type Discard struct{}

// RenderCard does nothing
func (Discard) RenderCard(*deck.Card) {}

// Notify does nothing
func (Discard) Notify(string, string, time.Duration) {}

// Celebrate does nothing
func (Discard) Celebrate(int) {}

// SetControlsEnabled does nothing
func (Discard) SetControlsEnabled([]ControlID, bool) {}

// SetWagerBounds does nothing
func (Discard) SetWagerBounds(int, int) {}

// ShowHint does nothing
func (Discard) ShowHint(string) {}

// ClearCards does nothing
func (Discard) ClearCards() {}
