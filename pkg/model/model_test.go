package model

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"ridethebus-server/pkg/db"
)

var cbg = context.Background()

// testDB returns a migrated database, or skips the test if RTB_PG_DSN is not set
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("RTB_PG_DSN")
	if dsn == "" {
		t.Skip("RTB_PG_DSN is not set")
	}

	dbh, err := db.Open(dsn)
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { _ = dbh.Close() })

	if err := db.Migrate(dbh, "../../sql"); err != nil {
		t.Fatal(err)
	}

	return dbh
}
