package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"audio2text/internal/app/model"
)

// CommonDB provides the run history queries shared by every SQL backend
type CommonDB struct {
	db           *sql.DB
	driverName   string
	placeholders PlaceholderFunc
}

// PlaceholderFunc generates parameter placeholders for different SQL dialects
type PlaceholderFunc func(n int) string

// NewCommonDB creates a new CommonDB instance
func NewCommonDB(db *sql.DB, driverName string) *CommonDB {
	var placeholders PlaceholderFunc

	switch driverName {
	case "postgres":
		placeholders = func(n int) string { return fmt.Sprintf("$%d", n) }
	default:
		placeholders = func(n int) string { return "?" }
	}

	return &CommonDB{
		db:           db,
		driverName:   driverName,
		placeholders: placeholders,
	}
}

func (c *CommonDB) DriverName() string { return c.driverName }

func (c *CommonDB) Close() error {
	return c.db.Close()
}

func (c *CommonDB) placeholderList(n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = c.placeholders(i + 1)
	}
	return strings.Join(ps, ", ")
}

// Record inserts one run record
func (c *CommonDB) Record(ctx context.Context, rec model.RunRecord) error {
	query := fmt.Sprintf(
		`INSERT INTO runs (id, kind, source, output, provider, status, error_message, audio_seconds, created_at) VALUES (%s)`,
		c.placeholderList(9),
	)
	_, err := c.db.ExecContext(ctx, query,
		rec.ID, string(rec.Kind), rec.Source, rec.Output, rec.Provider,
		rec.Status, rec.ErrorMessage, rec.AudioSeconds, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert run failed: %w", err)
	}
	return nil
}

// List retrieves run records, newest first
func (c *CommonDB) List(ctx context.Context, kind model.RunKind) ([]model.RunRecord, error) {
	query := `SELECT id, kind, source, output, provider, status, error_message, audio_seconds, created_at FROM runs`
	args := make([]interface{}, 0, 1)
	if kind != "" {
		query += " WHERE kind = " + c.placeholders(1)
		args = append(args, string(kind))
	}
	query += " ORDER BY created_at DESC"

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	records := make([]model.RunRecord, 0)
	for rows.Next() {
		var (
			r       model.RunRecord
			runKind string
		)
		if err := rows.Scan(&r.ID, &runKind, &r.Source, &r.Output, &r.Provider,
			&r.Status, &r.ErrorMessage, &r.AudioSeconds, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		r.Kind = model.RunKind(runKind)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return records, nil
}
