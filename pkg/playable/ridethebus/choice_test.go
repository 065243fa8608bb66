package ridethebus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"ridethebus-server/pkg/deck"
)

func TestParseHighLow(t *testing.T) {
	a := assert.New(t)

	hl, err := ParseHighLow("Higher")
	a.NoError(err)
	a.Equal(Higher, hl)

	hl, err = ParseHighLow("l")
	a.NoError(err)
	a.Equal(Lower, hl)

	_, err = ParseHighLow("sideways")
	a.EqualError(err, "unknown high/low choice: sideways")
}

func TestParseInOut(t *testing.T) {
	a := assert.New(t)

	io, err := ParseInOut("IN")
	a.NoError(err)
	a.Equal(In, io)

	io, err = ParseInOut("outside")
	a.NoError(err)
	a.Equal(Out, io)

	_, err = ParseInOut("around")
	a.EqualError(err, "unknown in/out choice: around")
}

func Test_isHighLowCorrect(t *testing.T) {
	a := assert.New(t)
	seven := deck.CardFromString("7s")
	otherSeven := deck.CardFromString("7h")

	a.True(isHighLowCorrect(seven, otherSeven, Higher, TiesWin))
	a.True(isHighLowCorrect(seven, otherSeven, Lower, TiesWin))
	a.False(isHighLowCorrect(seven, otherSeven, Higher, TiesLose))
	a.True(isHighLowCorrect(seven, deck.CardFromString("14c"), Higher, TiesLose))
	a.False(isHighLowCorrect(seven, deck.CardFromString("14c"), Lower, TiesWin))
}

func Test_isInOutCorrect(t *testing.T) {
	a := assert.New(t)
	five := deck.CardFromString("5s")
	ten := deck.CardFromString("10h")

	a.False(isInOutCorrect(five, ten, deck.CardFromString("5d"), In))
	a.True(isInOutCorrect(five, ten, deck.CardFromString("5d"), Out))
	a.False(isInOutCorrect(five, ten, deck.CardFromString("10d"), In))
	a.True(isInOutCorrect(ten, five, deck.CardFromString("7d"), In))
	a.True(isInOutCorrect(five, ten, deck.CardFromString("14d"), Out))

	// a pair leaves nothing strictly inside
	a.False(isInOutCorrect(five, deck.CardFromString("5h"), deck.CardFromString("5d"), In))
}
