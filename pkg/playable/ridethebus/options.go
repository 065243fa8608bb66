package ridethebus

import (
	"fmt"
	"strings"
	"time"

	"ridethebus-server/pkg/bankroll"
)

// TiePolicy decides who wins a HighLow guess when both cards have the same rank
type TiePolicy int

// TiePolicy constants
const (
	// TiesWin means Higher wins with T2 >= T1 and Lower wins with T2 <= T1
	TiesWin TiePolicy = iota
	// TiesLose means both Higher and Lower lose on a tie
	TiesLose
)

// String returns the policy name
func (t TiePolicy) String() string {
	switch t {
	case TiesWin:
		return "win"
	case TiesLose:
		return "lose"
	}

	panic(fmt.Sprintf("unknown tie policy: %d", t))
}

// GetTiePolicy returns the TiePolicy based on the string
func GetTiePolicy(s string) (TiePolicy, error) {
	switch strings.ToLower(s) {
	case "", "win":
		return TiesWin, nil
	case "lose":
		return TiesLose, nil
	}

	return -1, fmt.Errorf("unknown tie policy: %s", s)
}

// Options contains options for creating a new game of Ride the Bus
type Options struct {
	HighLowTies    TiePolicy
	LossResetDelay time.Duration
	WinResetDelay  time.Duration
	Bankroll       bankroll.Options
	Wager          bankroll.WagerOptions

	// Seed makes the deck reproducible, 0 uses crypto/rand
	Seed int64
}

// DefaultOptions returns the default set of options
func DefaultOptions() Options {
	return Options{
		HighLowTies:    TiesWin,
		LossResetDelay: time.Second * 2,
		WinResetDelay:  time.Second * 3,
		Bankroll:       bankroll.DefaultOptions(),
		Wager:          bankroll.DefaultWagerOptions(),
	}
}
