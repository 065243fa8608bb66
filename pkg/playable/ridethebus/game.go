package ridethebus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"ridethebus-server/internal/rng"
	"ridethebus-server/pkg/bankroll"
	"ridethebus-server/pkg/deck"
	"ridethebus-server/pkg/playable"
)

// ErrInvalidState is returned when a guess is made for a stage that is not active
// The game state is never changed when this is returned
var ErrInvalidState = errors.New("that guess is not available right now")

// ErrWagerLocked is returned when the wager is changed during a round
var ErrWagerLocked = errors.New("the wager is locked until the round is over")

// notification colors and durations
const (
	colorStep          = "gold"
	colorCashOut       = "lightgreen"
	colorLoss          = "red"
	colorReimbursement = "yellow"

	stepCelebration    = 200
	victoryCelebration = 1000

	shortNotification = 1500 * time.Millisecond
	longNotification  = 3000 * time.Millisecond
)

// Game is a single player's game of Ride the Bus
type Game struct {
	lock sync.Mutex

	options   Options
	logger    logrus.FieldLogger
	presenter playable.Presenter
	clock     quartz.Clock
	rng       rng.Generator

	bankroll *bankroll.Bankroll
	wager    *bankroll.Wager
	deck     *deck.Deck
	round    *Round
	controls map[playable.ControlID]bool

	resetTimer *quartz.Timer
}

// NewGame returns a new game, ready for a color guess
// The opening wager is the whole bankroll
func NewGame(ctx context.Context, logger logrus.FieldLogger, presenter playable.Presenter, store bankroll.Store, clock quartz.Clock, options Options) (*Game, error) {
	if options.Wager.Min < 1 {
		return nil, errors.New("minimum wager must be >= 1")
	}

	if options.Wager.Default < options.Wager.Min {
		return nil, errors.New("default wager must be >= the minimum wager")
	}

	if options.Bankroll.ReimbursementFloor < 0 {
		return nil, errors.New("reimbursement floor must be >= 0")
	}

	br, err := bankroll.New(ctx, logger, store, options.Bankroll)
	if err != nil {
		return nil, fmt.Errorf("could not load bankroll: %w", err)
	}

	gen := rng.FromSeed(options.Seed)
	g := &Game{
		options:   options,
		logger:    logger,
		presenter: presenter,
		clock:     clock,
		rng:       gen,
		bankroll:  br,
		wager:     bankroll.NewWager(br.Balance(), options.Wager),
		controls:  make(map[playable.ControlID]bool),
	}

	g.resetRound(ctx)
	return g, nil
}

// State returns a snapshot of the game
func (g *Game) State() *GameState {
	g.lock.Lock()
	defer g.lock.Unlock()

	return g.getGameState()
}

// SetWager changes the bet for the next round
// The amount is clamped to [min, bankroll]
func (g *Game) SetWager(amount int) (int, error) {
	g.lock.Lock()
	defer g.lock.Unlock()

	if !g.wager.Set(amount, g.bankroll.Balance()) {
		return g.wager.Amount(), ErrWagerLocked
	}

	g.presenter.SetWagerBounds(g.wager.Min(), g.bankroll.Balance())
	return g.wager.Amount(), nil
}

// ChooseColor plays the first stage
func (g *Game) ChooseColor(ctx context.Context, choice deck.Color) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	r := g.round
	if r.State != RoundStateAwaitingColor {
		return ErrInvalidState
	}

	g.wager.Lock()
	card := g.enterStage(StageColor)
	r.First = card

	g.finishStage(ctx, StageColor, card.Color() == choice)
	return nil
}

// ChooseHighLow plays the second stage
func (g *Game) ChooseHighLow(ctx context.Context, choice HighLow) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	r := g.round
	if r.State != RoundStateAwaitingHighLow || r.First == nil {
		return ErrInvalidState
	}

	card := g.enterStage(StageHighLow)
	r.Second = card

	g.finishStage(ctx, StageHighLow, isHighLowCorrect(r.First, card, choice, g.options.HighLowTies))
	return nil
}

// ChooseInOut plays the third stage
func (g *Game) ChooseInOut(ctx context.Context, choice InOut) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	r := g.round
	if r.State != RoundStateAwaitingInOut || r.First == nil || r.Second == nil {
		return ErrInvalidState
	}

	card := g.enterStage(StageInOut)
	r.Third = card

	g.finishStage(ctx, StageInOut, isInOutCorrect(r.First, r.Second, card, choice))
	return nil
}

// ChooseSuit plays the final stage
func (g *Game) ChooseSuit(ctx context.Context, choice deck.Suit) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	r := g.round
	if r.State != RoundStateAwaitingSuit || r.First == nil || r.Second == nil || r.Third == nil {
		return ErrInvalidState
	}

	card := g.enterStage(StageSuit)
	r.Fourth = card

	g.finishStage(ctx, StageSuit, card.Suit == choice)
	return nil
}

// CashOutOrReset banks the potential win of an unresolved round, then starts a new round
// Returns the amount banked
func (g *Game) CashOutOrReset(ctx context.Context) int {
	g.lock.Lock()
	defer g.lock.Unlock()

	r := g.round
	banked := 0
	if r.PotentialWin > 0 && !r.State.IsResolved() {
		banked = r.PotentialWin
		balance := g.bankroll.Credit(ctx, banked)
		g.presenter.Notify(fmt.Sprintf("You won $%d! good job!", banked), colorCashOut, shortNotification)
		g.log().WithFields(logrus.Fields{
			"banked":   banked,
			"bankroll": balance,
		}).Info("cashed out")
	}

	g.resetRound(ctx)
	return banked
}

// ResetRound abandons the current round and starts a new one
func (g *Game) ResetRound(ctx context.Context) {
	g.lock.Lock()
	defer g.lock.Unlock()

	g.resetRound(ctx)
}

// Close stops any pending automatic reset
func (g *Game) Close() {
	g.lock.Lock()
	defer g.lock.Unlock()

	g.stopResetTimer()
}

// enterStage runs the entry action shared by every stage
// NOTE: must be called with the lock held
func (g *Game) enterStage(stage Stage) *deck.Card {
	g.round.PotentialWin = stage.PotentialWin(g.wager.Amount())

	card := g.deck.Draw()
	g.presenter.RenderCard(card)
	g.log().WithFields(logrus.Fields{
		"stage": stage.String(),
		"card":  card.String(),
	}).Debug("card drawn")

	return card
}

// finishStage runs the exit action for the stage
// NOTE: must be called with the lock held
func (g *Game) finishStage(ctx context.Context, stage Stage, correct bool) {
	switch {
	case !correct:
		g.lose(ctx)
	case stage.isFinal():
		g.win(ctx)
	default:
		g.step(stage)
	}
}

func (g *Game) step(stage Stage) {
	next := stage + 1
	r := g.round

	g.presenter.Notify(fmt.Sprintf("You can win +$%d Keep going", r.PotentialWin), colorStep, shortNotification)
	g.presenter.Celebrate(stepCelebration)

	g.setControls(stage.Controls(), false)
	if next == StageSuit {
		g.setControls([]playable.ControlID{playable.ControlSuits}, true)
	}
	g.setControls(next.Controls(), true)

	r.State = next.State()
	r.Hint = next.Hint()
	g.presenter.ShowHint(r.Hint)

	g.log().WithField("potentialWin", r.PotentialWin).Debug("advanced")
}

func (g *Game) win(ctx context.Context) {
	r := g.round
	balance := g.bankroll.Credit(ctx, r.PotentialWin)

	g.presenter.Notify("YOU WIN THE GAME!", colorStep, longNotification)
	g.presenter.Celebrate(victoryCelebration)
	g.resolve(RoundStateWon, balance, g.options.WinResetDelay)

	g.log().WithField("won", r.PotentialWin).Info("round won")
}

func (g *Game) lose(ctx context.Context) {
	bet := g.wager.Amount()
	balance := g.bankroll.Debit(ctx, bet)
	g.wager.Clamp(balance)

	g.presenter.Notify(fmt.Sprintf("You lost $%d!", bet), colorLoss, shortNotification)
	g.resolve(RoundStateLost, balance, g.options.LossResetDelay)

	g.log().WithField("lost", bet).Info("round lost")
}

// resolve ends the round and schedules the automatic reset
func (g *Game) resolve(state RoundState, balance int, delay time.Duration) {
	r := g.round
	r.State = state
	r.Hint = ""

	g.setControls(allGuessControls, false)
	g.setControls([]playable.ControlID{playable.ControlSuits}, false)
	g.presenter.SetWagerBounds(g.wager.Min(), balance)

	g.scheduleReset(r.ID, delay)
}

// scheduleReset resets the round after delay, unless the round has already moved on
func (g *Game) scheduleReset(roundID string, delay time.Duration) {
	g.stopResetTimer()
	g.resetTimer = g.clock.AfterFunc(delay, func() {
		g.lock.Lock()
		defer g.lock.Unlock()

		if g.round.ID != roundID {
			return
		}

		g.resetTimer = nil
		g.resetRound(context.Background())
	}, "ridethebus", "reset")
}

func (g *Game) stopResetTimer() {
	if g.resetTimer != nil {
		g.resetTimer.Stop()
		g.resetTimer = nil
	}
}

// resetRound re-establishes every invariant from the persisted bankroll
// NOTE: must be called with the lock held
func (g *Game) resetRound(ctx context.Context) {
	g.stopResetTimer()

	if err := g.bankroll.Reload(ctx); err != nil {
		g.logger.WithError(err).Error("could not reload bankroll, keeping the current balance")
	}

	balance := g.bankroll.Balance()
	if g.wager.Reset(balance) {
		g.presenter.Notify(fmt.Sprintf("Here you go, $%d, go and win now", g.wager.Amount()), colorReimbursement, shortNotification)
	}

	g.deck = deck.NewWithGenerator(g.rng)
	g.round = &Round{
		ID:    uuid.New().String(),
		State: RoundStateAwaitingColor,
	}

	g.presenter.SetWagerBounds(g.wager.Min(), balance)
	g.setControls(colorControls, true)
	g.setControls(concatControls(highLowControls, inOutControls, suitControls), false)
	g.setControls([]playable.ControlID{playable.ControlSuits}, false)
	g.presenter.ShowHint("")
	g.presenter.ClearCards()

	g.log().Debug("new round")
}

func (g *Game) setControls(ids []playable.ControlID, enabled bool) {
	for _, id := range ids {
		g.controls[id] = enabled
	}

	g.presenter.SetControlsEnabled(ids, enabled)
}

func (g *Game) log() logrus.FieldLogger {
	return g.logger.WithFields(logrus.Fields{
		"round":    g.round.ID,
		"state":    g.round.State,
		"bet":      g.wager.Amount(),
		"bankroll": g.bankroll.Balance(),
	})
}
