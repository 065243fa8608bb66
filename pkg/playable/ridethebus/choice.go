package ridethebus

import (
	"fmt"
	"strings"

	"ridethebus-server/pkg/deck"
)

// HighLow is the guess for the second card
type HighLow string

// HighLow constants
const (
	Higher HighLow = "higher"
	Lower  HighLow = "lower"
)

// ParseHighLow returns a HighLow from a case-insensitive string
func ParseHighLow(s string) (HighLow, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "higher", "high", "h":
		return Higher, nil
	case "lower", "low", "l":
		return Lower, nil
	}

	return "", fmt.Errorf("unknown high/low choice: %s", s)
}

// InOut is the guess for the third card
type InOut string

// InOut constants
const (
	In  InOut = "in"
	Out InOut = "out"
)

// ParseInOut returns an InOut from a case-insensitive string
func ParseInOut(s string) (InOut, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "inside", "between":
		return In, nil
	case "out", "outside":
		return Out, nil
	}

	return "", fmt.Errorf("unknown in/out choice: %s", s)
}

// isHighLowCorrect compares the second card to the first
func isHighLowCorrect(first, second *deck.Card, guess HighLow, ties TiePolicy) bool {
	if first.Rank == second.Rank {
		return ties == TiesWin
	}

	if guess == Higher {
		return second.Rank > first.Rank
	}

	return second.Rank < first.Rank
}

// isInOutCorrect checks the third card against the range made by the first two
// In is strictly between, Out includes both boundaries
func isInOutCorrect(first, second, third *deck.Card, guess InOut) bool {
	low, high := first.Rank, second.Rank
	if low > high {
		low, high = high, low
	}

	inside := third.Rank > low && third.Rank < high
	if guess == In {
		return inside
	}

	return !inside
}
