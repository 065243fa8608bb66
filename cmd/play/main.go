package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"ridethebus-server/internal/terminal"
	"ridethebus-server/pkg/bankroll"
	"ridethebus-server/pkg/playable/ridethebus"
)

type cli struct {
	Bankroll string `kong:"default='.ridethebus.yaml',help='File the bankroll is kept in'"`
	Ties     string `kong:"default='win',enum='win,lose',help='Who wins a higher/lower guess on the same rank (win or lose)'"`
	Seed     int64  `kong:"default='0',help='Deck seed, 0 shuffles randomly'"`
	Color    bool   `kong:"default='true',negatable,help='Colored output when stdout is a terminal'"`
	Debug    bool   `kong:"help='Log game transitions to stderr'"`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("ridethebus"),
		kong.Description("Play Ride the Bus in the terminal"),
		kong.UsageOnError(),
	)

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if c.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	ties, err := ridethebus.GetTiePolicy(c.Ties)
	kctx.FatalIfErrorf(err)

	options := ridethebus.DefaultOptions()
	options.HighLowTies = ties
	options.Seed = c.Seed

	styles := terminal.NewPlainStyles()
	if c.Color && term.IsTerminal(int(os.Stdout.Fd())) {
		styles = terminal.NewStyles()
	}

	presenter := terminal.NewPresenter(os.Stdout, styles)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	game, err := ridethebus.NewGame(ctx, logger, presenter, bankroll.NewFileStore(c.Bankroll), quartz.NewReal(), options)
	kctx.FatalIfErrorf(err)
	defer game.Close()

	if err := terminal.Run(ctx, os.Stdin, game, presenter); err != nil && ctx.Err() == nil {
		kctx.FatalIfErrorf(err)
	}
}
