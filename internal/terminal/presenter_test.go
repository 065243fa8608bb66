package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"ridethebus-server/pkg/deck"
	"ridethebus-server/pkg/playable"
)

var _ playable.Presenter = &Presenter{}

func TestPresenter_RenderCard(t *testing.T) {
	var buf bytes.Buffer
	p := NewPresenter(&buf, NewPlainStyles())

	p.RenderCard(deck.CardFromString("14s"))
	p.RenderCard(deck.CardFromString("10h"))
	p.ClearCards()
	p.RenderCard(deck.CardFromString("2c"))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"[A♠]",
		"[A♠] [10♡]",
		strings.Repeat("-", 32),
		"[2♣]",
	}, lines)
}

func TestPresenter_Notify(t *testing.T) {
	var buf bytes.Buffer
	p := NewPresenter(&buf, NewPlainStyles())

	p.Notify("You lost $100!", "red", time.Second)
	p.ShowHint("")
	p.ShowHint("Guess the suit")
	p.Celebrate(0)
	p.Celebrate(1000)
	p.Error(errors.New("oops"))

	assert.Equal(t, "You lost $100!\nGuess the suit\n*\n**********\noops\n", buf.String())
}

func TestPresenter_Prompt(t *testing.T) {
	var buf bytes.Buffer
	p := NewPresenter(&buf, NewPlainStyles())

	p.SetControlsEnabled([]playable.ControlID{playable.ControlRed, playable.ControlBlack}, true)
	p.SetControlsEnabled([]playable.ControlID{playable.ControlSuits, playable.ControlHearts}, true)
	p.SetControlsEnabled([]playable.ControlID{playable.ControlHearts}, false)
	p.SetWagerBounds(1, 100)
	p.Prompt(25, 100)

	assert.Equal(t, "bankroll $100, bet $25 (bet 1-100) > black | red | cash | reset | state | quit\n", buf.String())
	assert.Equal(t, []playable.ControlID{playable.ControlBlack, playable.ControlRed, playable.ControlSuits}, p.enabledControls())
}

func TestNewStyles(t *testing.T) {
	s := NewStyles()
	for _, color := range []string{"gold", "lightgreen", "red", "yellow"} {
		_, ok := s.Notify[color]
		assert.True(t, ok, color)
	}

	// unknown colors fall back to an unstyled message
	assert.Equal(t, "hi", s.notify("purple").Render("hi"))
}
