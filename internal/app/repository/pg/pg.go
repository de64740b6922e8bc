package pg

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/lib/pq"

	"audio2text/internal/app/repository"
)

//go:embed schema.sql
var schema string

// Open connects to PostgreSQL with a postgres:// connection string and
// applies the schema.
func Open(ctx context.Context, connectionString string) (*repository.CommonDB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return initialize(ctx, db)
}

func initialize(ctx context.Context, db *sql.DB) (*repository.CommonDB, error) {
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return repository.NewCommonDB(db, "postgres"), nil
}
