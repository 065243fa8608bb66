package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ridethebus-server/pkg/deck"
	"ridethebus-server/pkg/playable/ridethebus"
)

// ErrQuit is returned by Execute when the player asks to leave
var ErrQuit = errors.New("quit")

// Execute runs a single command line against the game
func Execute(ctx context.Context, game *ridethebus.Game, p *Presenter, line string) error {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "quit", "exit", "q":
		return ErrQuit
	case "bet", "wager":
		if len(fields) != 2 {
			return errors.New("usage: bet <amount>")
		}

		amount, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("invalid amount: %s", fields[1])
		}

		bet, err := game.SetWager(amount)
		if err != nil {
			return err
		}

		p.Println(fmt.Sprintf("bet is now $%d", bet))
		return nil
	case "cash", "cashout", "cash-out":
		if banked := game.CashOutOrReset(ctx); banked == 0 {
			p.Println("new round")
		}
		return nil
	case "reset":
		game.ResetRound(ctx)
		return nil
	case "state":
		printState(p, game.State())
		return nil
	}

	if len(fields) != 1 {
		return fmt.Errorf("unknown command: %s", line)
	}

	return guess(ctx, game, fields[0])
}

// guess parses the choice for the stage the round is at
// h is hearts at the suit stage and higher before it
func guess(ctx context.Context, game *ridethebus.Game, choice string) error {
	switch game.State().State {
	case ridethebus.RoundStateAwaitingColor:
		if color, err := deck.ParseColor(choice); err == nil {
			return game.ChooseColor(ctx, color)
		}
	case ridethebus.RoundStateAwaitingHighLow:
		if highLow, err := ridethebus.ParseHighLow(choice); err == nil {
			return game.ChooseHighLow(ctx, highLow)
		}
	case ridethebus.RoundStateAwaitingInOut:
		if inOut, err := ridethebus.ParseInOut(choice); err == nil {
			return game.ChooseInOut(ctx, inOut)
		}
	case ridethebus.RoundStateAwaitingSuit:
		if suit, err := deck.ParseSuit(choice); err == nil {
			return game.ChooseSuit(ctx, suit)
		}
	}

	if isGuess(choice) {
		return ridethebus.ErrInvalidState
	}

	return fmt.Errorf("unknown command: %s", choice)
}

func isGuess(choice string) bool {
	if _, err := deck.ParseColor(choice); err == nil {
		return true
	}

	if _, err := ridethebus.ParseHighLow(choice); err == nil {
		return true
	}

	if _, err := ridethebus.ParseInOut(choice); err == nil {
		return true
	}

	_, err := deck.ParseSuit(choice)
	return err == nil
}

// Run reads commands from r until it is exhausted or the player quits
func Run(ctx context.Context, r io.Reader, game *ridethebus.Game, p *Presenter) error {
	p.Header("Ride the Bus")

	scanner := bufio.NewScanner(r)
	for {
		state := game.State()
		p.Prompt(state.Bet, state.Bankroll)

		if !scanner.Scan() {
			return scanner.Err()
		}

		if err := Execute(ctx, game, p, scanner.Text()); err != nil {
			if errors.Is(err, ErrQuit) {
				p.Println(fmt.Sprintf("leaving with $%d", game.State().Bankroll))
				return nil
			}

			p.Error(err)
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func printState(p *Presenter, state *ridethebus.GameState) {
	cards := make([]string, 0, len(state.Cards))
	for _, c := range state.Cards {
		cards = append(cards, c.String())
	}

	p.Println(fmt.Sprintf("round %s: %s", state.RoundID, state.State))
	p.Println(fmt.Sprintf("cards: %s", strings.Join(cards, " ")))
	p.Println(fmt.Sprintf("bet $%d, bankroll $%d, potential win $%d", state.Bet, state.Bankroll, state.PotentialWin))
	if state.Hint != "" {
		p.Println(state.Hint)
	}
}
