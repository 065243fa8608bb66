package main

import (
	"database/sql"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"ridethebus-server/internal/config"
	"ridethebus-server/pkg/db"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Instance()
	dbh := waitForDB(cfg.PGDSN)
	defer dbh.Close()

	if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	logrus.Info("migrations complete")
}

func waitForDB(dsn string) *sql.DB {
	timeout := time.NewTimer(time.Second * 10)
	defer timeout.Stop()

	for {
		dbh, err := db.Open(dsn)
		if err == nil {
			return dbh
		}

		select {
		case <-timeout.C:
			logrus.WithError(err).Fatal("could not connect to database")
		case <-time.After(time.Millisecond * 500):
		}
	}
}
