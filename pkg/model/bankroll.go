package model

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ridethebus-server/pkg/db"
)

const bankrollColumns = `
bankrolls.key,
bankrolls.balance,
bankrolls.created,
bankrolls.updated`

// ErrEmptyKey is returned when a store is created without a key
var ErrEmptyKey = errors.New("bankroll key must not be empty")

// Bankroll is a record in the `bankrolls` table
type Bankroll struct {
	Key     string    `json:"key"`
	Balance int       `json:"balance"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

func getBankrollByRow(row db.Scanner) (*Bankroll, error) {
	var b Bankroll
	if err := row.Scan(&b.Key, &b.Balance, &b.Created, &b.Updated); err != nil {
		return nil, err
	}

	return &b, nil
}

// GetBankrollByKey returns the bankroll record for key
// sql.ErrNoRows is returned if nothing has been stored yet
func GetBankrollByKey(ctx context.Context, dbh *sql.DB, key string) (*Bankroll, error) {
	const query = `
SELECT ` + bankrollColumns + `
FROM bankrolls
WHERE key = $1`

	row := dbh.QueryRowContext(ctx, query, key)
	return getBankrollByRow(row)
}

// BankrollStore persists a single player's bankroll in Postgres
type BankrollStore struct {
	db  *sql.DB
	key string
}

// NewBankrollStore returns a store for the bankroll identified by key
func NewBankrollStore(dbh *sql.DB, key string) (*BankrollStore, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	return &BankrollStore{db: dbh, key: key}, nil
}

// GetBankroll returns the stored balance
func (b *BankrollStore) GetBankroll(ctx context.Context) (int, bool, error) {
	record, err := GetBankrollByKey(ctx, b.db, b.key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}

		return 0, false, err
	}

	return record.Balance, true, nil
}

// SetBankroll inserts or updates the balance
func (b *BankrollStore) SetBankroll(ctx context.Context, balance int) error {
	const query = `
INSERT INTO bankrolls (key, balance)
VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE
SET balance = EXCLUDED.balance,
    updated = (NOW() AT TIME ZONE 'utc')`

	_, err := b.db.ExecContext(ctx, query, b.key, balance)
	return err
}

// Delete removes the stored balance
func (b *BankrollStore) Delete(ctx context.Context) error {
	const query = `DELETE FROM bankrolls WHERE key = $1`

	_, err := b.db.ExecContext(ctx, query, b.key)
	return err
}
