package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"audio2text/internal/app/repository"
	"audio2text/internal/app/repository/pg"
	"audio2text/internal/app/repository/sqlite"
)

// NewSQLiteHistory opens a run history in a temporary SQLite file that is
// closed when the test ends.
func NewSQLiteHistory(t *testing.T) repository.RunHistoryDAO {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// NewPostgresHistory connects to POSTGRES_TEST_URL and skips the test when
// it is not set.
func NewPostgresHistory(t *testing.T) repository.RunHistoryDAO {
	t.Helper()
	url := os.Getenv("POSTGRES_TEST_URL")
	if url == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}
	db, err := pg.Open(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
