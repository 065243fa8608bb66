package bankroll

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var cbg = context.Background()

func TestNew(t *testing.T) {
	a := assert.New(t)

	b, err := New(cbg, logrus.StandardLogger(), NewMemoryStore(), DefaultOptions())
	a.NoError(err)
	a.Equal(100, b.Balance())

	b, err = New(cbg, logrus.StandardLogger(), NewMemoryStoreWithBalance(250), DefaultOptions())
	a.NoError(err)
	a.Equal(250, b.Balance())

	// a zero balance is treated the same as a missing one
	b, err = New(cbg, logrus.StandardLogger(), NewMemoryStoreWithBalance(0), DefaultOptions())
	a.NoError(err)
	a.Equal(100, b.Balance())
}

type failingStore struct{}

func (failingStore) GetBankroll(context.Context) (int, bool, error) {
	return 0, false, errors.New("store unavailable")
}

func (failingStore) SetBankroll(context.Context, int) error {
	return errors.New("store unavailable")
}

func TestNew_storeError(t *testing.T) {
	b, err := New(cbg, logrus.StandardLogger(), failingStore{}, DefaultOptions())
	assert.Nil(t, b)
	assert.EqualError(t, err, "store unavailable")
}

func TestBankroll_CreditDebit(t *testing.T) {
	a := assert.New(t)
	store := NewMemoryStoreWithBalance(100)
	b, _ := New(cbg, logrus.StandardLogger(), store, DefaultOptions())

	a.Equal(300, b.Credit(cbg, 200))
	persisted, ok, _ := store.GetBankroll(cbg)
	a.True(ok)
	a.Equal(300, persisted)

	a.Equal(270, b.Debit(cbg, 30))
	a.Equal(0, b.Debit(cbg, 270))

	// going negative is reimbursed
	a.Equal(10, b.Debit(cbg, 1))
	a.Equal(10, b.Debit(cbg, 500))
	persisted, _, _ = store.GetBankroll(cbg)
	a.Equal(10, persisted)
}

func TestBankroll_neverNegative(t *testing.T) {
	b, _ := New(cbg, logrus.StandardLogger(), NewMemoryStoreWithBalance(50), DefaultOptions())
	adjustments := []int{-20, 35, -100, 5, -16, -16, 200, -1000, 1}
	for _, adj := range adjustments {
		var got int
		if adj < 0 {
			got = b.Debit(cbg, -adj)
		} else {
			got = b.Credit(cbg, adj)
		}

		assert.GreaterOrEqual(t, got, 0)
	}
}

func TestBankroll_persistErrorKeepsBalance(t *testing.T) {
	a := assert.New(t)
	b := &Bankroll{
		store:   failingStore{},
		options: DefaultOptions(),
		logger:  logrus.StandardLogger(),
		balance: 40,
	}

	a.Equal(60, b.Credit(cbg, 20))
	a.Equal(60, b.Balance())
}

func TestBankroll_Reload(t *testing.T) {
	a := assert.New(t)
	store := NewMemoryStoreWithBalance(100)
	b, _ := New(cbg, logrus.StandardLogger(), store, DefaultOptions())

	_ = store.SetBankroll(cbg, 42)
	a.Equal(100, b.Balance())
	a.NoError(b.Reload(cbg))
	a.Equal(42, b.Balance())
}
