package bankroll

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Options control the bankroll safety rules
type Options struct {
	// StartingBalance is used when the store has no balance, or a balance of zero
	StartingBalance int
	// ReimbursementFloor replaces any balance that would go negative
	ReimbursementFloor int
}

// DefaultOptions returns the default set of options
func DefaultOptions() Options {
	return Options{
		StartingBalance:    100,
		ReimbursementFloor: 10,
	}
}

// Bankroll is the player's persisted balance
// The balance is never observably negative
type Bankroll struct {
	store   Store
	options Options
	logger  logrus.FieldLogger
	balance int
}

// New returns a bankroll loaded from the store
func New(ctx context.Context, logger logrus.FieldLogger, store Store, options Options) (*Bankroll, error) {
	b := &Bankroll{
		store:   store,
		options: options,
		logger:  logger,
	}

	if err := b.Reload(ctx); err != nil {
		return nil, err
	}

	return b, nil
}

// Balance returns the current balance
func (b *Bankroll) Balance() int {
	return b.balance
}

// Reload re-reads the balance from the store
// A missing or non-positive balance starts over at the starting balance
func (b *Bankroll) Reload(ctx context.Context) error {
	balance, ok, err := b.store.GetBankroll(ctx)
	if err != nil {
		return err
	}

	if !ok || balance <= 0 {
		balance = b.options.StartingBalance
	}

	b.balance = balance
	return nil
}

// Credit adds amount to the balance and persists it
func (b *Bankroll) Credit(ctx context.Context, amount int) int {
	return b.adjust(ctx, amount)
}

// Debit removes amount from the balance and persists it
// If the balance would drop below zero, it is set to the reimbursement floor instead
func (b *Bankroll) Debit(ctx context.Context, amount int) int {
	return b.adjust(ctx, -amount)
}

func (b *Bankroll) adjust(ctx context.Context, amount int) int {
	b.balance += amount
	if b.balance < 0 {
		b.logger.WithField("balance", b.balance).Info("reimbursing negative balance")
		b.balance = b.options.ReimbursementFloor
	}

	// the in-memory balance stays authoritative until the next reload
	if err := b.store.SetBankroll(ctx, b.balance); err != nil {
		b.logger.WithError(err).WithField("balance", b.balance).Error("could not persist bankroll")
	}

	return b.balance
}
