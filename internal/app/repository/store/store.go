// Package store opens the run history backend named by a DSN.
package store

import (
	"context"
	"strings"

	apperrors "audio2text/internal/app/errors"
	"audio2text/internal/app/repository"
	"audio2text/internal/app/repository/pg"
	"audio2text/internal/app/repository/sqlite"
)

var (
	_ repository.RunHistoryDAO = (*repository.CommonDB)(nil)
)

// Open accepts sqlite3://path/to/file.db, sqlite://..., postgres://... or
// postgresql://... and returns a ready history DAO.
func Open(ctx context.Context, dsn string) (repository.RunHistoryDAO, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return nil, apperrors.RequiredField("history DSN")
	case strings.HasPrefix(dsn, "sqlite3://"):
		return openSQLite(ctx, strings.TrimPrefix(dsn, "sqlite3://"))
	case strings.HasPrefix(dsn, "sqlite://"):
		return openSQLite(ctx, strings.TrimPrefix(dsn, "sqlite://"))
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		db, err := pg.Open(ctx, dsn)
		if err != nil {
			return nil, apperrors.KindWrap(apperrors.ErrStorage, err, "history database unavailable")
		}
		return db, nil
	default:
		return nil, apperrors.InvalidField("history DSN", "expected sqlite3:// or postgres:// scheme")
	}
}

func openSQLite(ctx context.Context, path string) (repository.RunHistoryDAO, error) {
	if path == "" {
		return nil, apperrors.InvalidField("history DSN", "missing sqlite file path")
	}
	db, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, apperrors.KindWrap(apperrors.ErrStorage, err, "history database unavailable")
	}
	return db, nil
}
