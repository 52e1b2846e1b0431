package testdb

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5"
)

// ErrNoTestDB signals that no disposable database is configured. The
// DB-backed tests are skipped rather than failed in that case.
var ErrNoTestDB = errors.New("TEST_DATABASE_URI is not set")

// TestDBInstance points the DB-backed tests at a disposable Postgres
// database. Down wipes the whole schema, so the DSN must never point at
// anything worth keeping.
type TestDBInstance struct {
	DSN string
}

func NewTestDBInstance() (*TestDBInstance, error) {
	dsn := os.Getenv("TEST_DATABASE_URI")
	if dsn == "" {
		return nil, ErrNoTestDB
	}
	return &TestDBInstance{DSN: dsn}, nil
}

// Down resets the database so the next run starts from empty.
func (t *TestDBInstance) Down() {
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, t.DSN)
	if err != nil {
		return
	}
	defer conn.Close(ctx)
	_, _ = conn.Exec(ctx, `DROP SCHEMA public CASCADE; CREATE SCHEMA public`)
}
