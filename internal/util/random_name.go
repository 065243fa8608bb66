package util

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var adjectives = []string{
	"Fast", "Slow", "Quick", "Lucky", "Bold", "Daring", "Careful", "Reckless", "Happy", "Funny",
	"Red", "Black", "Golden", "Silver", "Fuzzy", "Smiling", "Tall", "Grand", "Ultimate", "Prime",
	"Jumping", "Running", "Charging", "Bouncing", "Leaping",
}

var riders = []string{
	"Driver", "Conductor", "Commuter", "Passenger", "Ticket Taker", "Hitchhiker", "Tourist",
	"Dog", "Cat", "Otter", "Fox", "Panda", "Hedgehog", "Okapi", "Armadillo",
}

var (
	randomLock sync.Mutex
	random     = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec
)

// GetRandomName returns a random name by combining an adjective with a bus rider
func GetRandomName() string {
	randomLock.Lock()
	defer randomLock.Unlock()

	adjectivesIndex := random.Intn(len(adjectives))
	ridersIndex := random.Intn(len(riders))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], riders[ridersIndex])
}
