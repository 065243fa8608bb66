package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // needed
	_ "github.com/lib/pq"                                // needed
	"github.com/sirupsen/logrus"
	"ridethebus-server/internal/config"
)

var (
	instance     *sql.DB
	instanceLock sync.Mutex
)

// Instance returns a database instance
func Instance() *sql.DB {
	instanceLock.Lock()
	defer instanceLock.Unlock()

	if instance == nil {
		db, err := Open(config.Instance().PGDSN)
		if err != nil {
			panic(err)
		}

		instance = db
	}

	return instance
}

// Open connects to the database and verifies the connection
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs the migrations found at migrationsPath
// A path without a scheme is treated as a directory
func Migrate(db *sql.DB, migrationsPath string) error {
	if !strings.Contains(migrationsPath, "://") {
		migrationsPath = fmt.Sprintf("file://%s", migrationsPath)
	}

	logrus.WithField("migrationsPath", migrationsPath).Info("running migrations")
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// Scanner is an interface that sql should've provided
// No snark here...
type Scanner interface {
	Scan(...interface{}) error
}
