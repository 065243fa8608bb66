package bankroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWager_Set(t *testing.T) {
	a := assert.New(t)
	w := NewWager(100, DefaultWagerOptions())

	a.True(w.Set(50, 100))
	a.Equal(50, w.Amount())

	a.True(w.Set(500, 100))
	a.Equal(100, w.Amount())

	a.True(w.Set(0, 100))
	a.Equal(1, w.Amount())

	a.True(w.Set(-5, 100))
	a.Equal(1, w.Amount())

	w.Lock()
	a.True(w.IsLocked())
	a.False(w.Set(20, 100))
	a.Equal(1, w.Amount())

	w.Unlock()
	a.True(w.Set(20, 100))
	a.Equal(20, w.Amount())
}

func TestWager_Clamp(t *testing.T) {
	w := NewWager(30, DefaultWagerOptions())
	w.Lock()
	w.Clamp(100)
	assert.Equal(t, 30, w.Amount())
	w.Clamp(10)
	assert.Equal(t, 10, w.Amount())
}

func TestWager_Reset(t *testing.T) {
	a := assert.New(t)

	w := NewWager(30, DefaultWagerOptions())
	w.Lock()
	a.False(w.Reset(10))
	a.False(w.IsLocked())
	a.Equal(10, w.Amount())

	w = NewWager(30, DefaultWagerOptions())
	a.False(w.Reset(100))
	a.Equal(30, w.Amount())

	w = NewWager(0, DefaultWagerOptions())
	a.True(w.Reset(100))
	a.Equal(100, w.Amount())
}
