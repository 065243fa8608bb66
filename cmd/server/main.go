package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/quartz"
	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"ridethebus-server/internal/config"
	"ridethebus-server/internal/jwt"
	"ridethebus-server/internal/mux"
	"ridethebus-server/pkg/bankroll"
	"ridethebus-server/pkg/db"
	"ridethebus-server/pkg/model"
	"ridethebus-server/pkg/room"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const idleTimeout = time.Hour

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()

	// a missing .env is fine
	_ = godotenv.Load()

	setupLogger()

	// fail fast
	jwt.LoadSecret()

	cfg := config.Instance()
	gameOptions, err := cfg.GameOptions()
	if err != nil {
		logrus.WithError(err).Fatal("invalid game configuration")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pitBoss := room.NewPitBoss(logrus.StandardLogger(), quartz.NewReal(), storeFactory(cfg), room.Options{
		Game:        gameOptions,
		IdleTimeout: idleTimeout,
	})
	pitBoss.StartShift(ctx)
	defer pitBoss.Close()

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		ExposedHeaders: []string{"RideTheBus-SessionID"},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, pitBoss))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), writeTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("could not shut down cleanly")
		}
	}()

	logrus.WithFields(logrus.Fields{
		"addr":    srv.Addr,
		"store":   cfg.Store,
		"version": Version,
	}).Info("listening")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func storeFactory(cfg config.Config) room.StoreFactory {
	if cfg.Store != config.StorePostgres {
		return room.NewMemoryStoreFactory()
	}

	// run the db migrations
	dbh := db.Instance()
	if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	return func(_ context.Context, sessionID string) (bankroll.Store, error) {
		return model.NewBankrollStore(dbh, sessionID)
	}
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
