package bankroll

// WagerOptions control the bet bounds
type WagerOptions struct {
	// Min is the smallest bet the bet control allows
	Min int
	// Default is the restart stake used when the wager drops below Min
	Default int
}

// DefaultWagerOptions returns the default set of wager options
func DefaultWagerOptions() WagerOptions {
	return WagerOptions{
		Min:     1,
		Default: 100,
	}
}

// Wager is the amount at risk for the current round
type Wager struct {
	amount  int
	locked  bool
	options WagerOptions
}

// NewWager returns an unlocked wager
func NewWager(amount int, options WagerOptions) *Wager {
	return &Wager{
		amount:  amount,
		options: options,
	}
}

// Amount returns the current bet
func (w *Wager) Amount() int {
	return w.amount
}

// Min returns the minimum bet
func (w *Wager) Min() int {
	return w.options.Min
}

// IsLocked returns true while a round is in progress
func (w *Wager) IsLocked() bool {
	return w.locked
}

// Lock prevents the wager from being changed
func (w *Wager) Lock() {
	w.locked = true
}

// Unlock allows the wager to be changed
func (w *Wager) Unlock() {
	w.locked = false
}

// Set changes the wager to v, clamped to [min, max]
// Returns false and leaves the wager alone if it is locked
func (w *Wager) Set(v, max int) bool {
	if w.locked {
		return false
	}

	if v > max {
		v = max
	}

	if v < w.options.Min {
		v = w.options.Min
	}

	w.amount = v
	return true
}

// Clamp lowers the wager to max if it exceeds it
// This follows the bankroll, not the player, so it applies even while locked
func (w *Wager) Clamp(max int) {
	if w.amount > max {
		w.amount = max
	}
}

// Reset unlocks the wager and fits it to the bankroll
// Returns true if the wager fell below the minimum and was reset to the default stake
func (w *Wager) Reset(bankroll int) (redefaulted bool) {
	w.locked = false
	w.Clamp(bankroll)

	if w.amount < w.options.Min {
		w.amount = w.options.Default
		return true
	}

	return false
}
