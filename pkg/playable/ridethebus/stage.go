package ridethebus

import (
	"fmt"
	"math"

	"ridethebus-server/pkg/playable"
)

// Stage is one of the four guessing steps
type Stage int

// Stage constants, in the order they are played
const (
	StageColor Stage = iota
	StageHighLow
	StageInOut
	StageSuit
)

var multipliers = map[Stage]float64{
	StageColor:   1.5,
	StageHighLow: 2,
	StageInOut:   4,
	StageSuit:    200,
}

var hints = map[Stage]string{
	StageColor:   "Guess the color of the first card: black or red.",
	StageHighLow: "Will the second card be higher or lower than the first?",
	StageInOut:   "Will the third card land in between the first two, or outside of them?",
	StageSuit:    "Guess the suit of the fourth card.",
}

var (
	colorControls   = []playable.ControlID{playable.ControlBlack, playable.ControlRed}
	highLowControls = []playable.ControlID{playable.ControlHigher, playable.ControlLower}
	inOutControls   = []playable.ControlID{playable.ControlIn, playable.ControlOut}
	suitControls    = []playable.ControlID{playable.ControlHearts, playable.ControlDiamonds, playable.ControlSpades, playable.ControlClubs}
)

// allGuessControls is every control that submits a guess
var allGuessControls = concatControls(colorControls, highLowControls, inOutControls, suitControls)

func concatControls(groups ...[]playable.ControlID) []playable.ControlID {
	all := make([]playable.ControlID, 0)
	for _, g := range groups {
		all = append(all, g...)
	}

	return all
}

// String returns the stage name
func (s Stage) String() string {
	switch s {
	case StageColor:
		return "color"
	case StageHighLow:
		return "highLow"
	case StageInOut:
		return "inOut"
	case StageSuit:
		return "suit"
	}

	panic(fmt.Sprintf("unknown stage: %d", s))
}

// Multiplier returns the payout multiplier for the stage
func (s Stage) Multiplier() float64 {
	return multipliers[s]
}

// PotentialWin returns floor(bet * multiplier)
func (s Stage) PotentialWin(bet int) int {
	return int(math.Floor(float64(bet) * s.Multiplier()))
}

// Hint returns the rule text for the stage
func (s Stage) Hint() string {
	return hints[s]
}

// Controls returns the controls that submit a guess for this stage
func (s Stage) Controls() []playable.ControlID {
	switch s {
	case StageColor:
		return colorControls
	case StageHighLow:
		return highLowControls
	case StageInOut:
		return inOutControls
	case StageSuit:
		return suitControls
	}

	return nil
}

// State returns the state that awaits this stage's guess
func (s Stage) State() RoundState {
	switch s {
	case StageColor:
		return RoundStateAwaitingColor
	case StageHighLow:
		return RoundStateAwaitingHighLow
	case StageInOut:
		return RoundStateAwaitingInOut
	case StageSuit:
		return RoundStateAwaitingSuit
	}

	panic(fmt.Sprintf("unknown stage: %d", s))
}

// isFinal returns true for the last stage
func (s Stage) isFinal() bool {
	return s == StageSuit
}

// Multipliers returns a copy of the stage multipliers keyed by stage name
func Multipliers() map[string]float64 {
	m := make(map[string]float64, len(multipliers))
	for stage, mult := range multipliers {
		m[stage.String()] = mult
	}

	return m
}
