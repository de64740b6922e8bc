package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"audio2text/internal/app/model"
)

var columns = []string{"id", "kind", "source", "output", "provider", "status", "error_message", "audio_seconds", "created_at"}

func TestCommonDB_Record(t *testing.T) {
	tests := []struct {
		driver string
		values string
	}{
		{driver: "sqlite3", values: "?, ?, ?, ?, ?, ?, ?, ?, ?"},
		{driver: "postgres", values: "$1, $2, $3, $4, $5, $6, $7, $8, $9"},
	}

	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := model.RunRecord{
		ID:           "9a0f3c1e-1b7e-4a62-9d8e-2f1a3b4c5d6e",
		Kind:         model.RunTranscribe,
		Source:       "audio_files/lecture.mp3",
		Output:       "lecture.txt",
		Provider:     "openai",
		Status:       "ok",
		AudioSeconds: 61.5,
		CreatedAt:    created,
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO runs (id, kind, source, output, provider, status, error_message, audio_seconds, created_at) VALUES (" + tt.values + ")")).
				WithArgs(rec.ID, "transcribe", rec.Source, rec.Output, rec.Provider, "ok", "", 61.5, created).
				WillReturnResult(sqlmock.NewResult(1, 1))

			require.NoError(t, NewCommonDB(db, tt.driver).Record(context.Background(), rec))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCommonDB_RecordError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO runs").WillReturnError(errors.New("disk full"))

	err = NewCommonDB(db, "sqlite3").Record(context.Background(), model.RunRecord{ID: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestCommonDB_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(columns).
		AddRow("b", "convert", "b.wma", "b.mp3", "", "converted", "", 12.0, now).
		AddRow("a", "convert", "a.wma", "", "", "failed", "ffmpeg failed", 0.0, now.Add(-time.Minute))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, kind, source, output, provider, status, error_message, audio_seconds, created_at FROM runs WHERE kind = $1 ORDER BY created_at DESC")).
		WithArgs("convert").
		WillReturnRows(rows)

	records, err := NewCommonDB(db, "postgres").List(context.Background(), model.RunConvert)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[0].ID)
	assert.Equal(t, model.RunConvert, records[0].Kind)
	assert.Equal(t, "ffmpeg failed", records[1].ErrorMessage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommonDB_ListAllKinds(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM runs ORDER BY created_at DESC")).
		WithoutArgs().
		WillReturnRows(sqlmock.NewRows(columns))

	records, err := NewCommonDB(db, "sqlite3").List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type failingDAO struct {
	records []model.RunRecord
	err     error
}

func (f *failingDAO) Close() error { return nil }
func (f *failingDAO) Record(_ context.Context, rec model.RunRecord) error {
	f.records = append(f.records, rec)
	return f.err
}
func (f *failingDAO) List(context.Context, model.RunKind) ([]model.RunRecord, error) {
	return f.records, nil
}

func TestRecorder(t *testing.T) {
	dao := &failingDAO{}
	r := NewRecorder(dao, zap.NewNop())
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	r.Record(context.Background(), model.RunRecord{Kind: model.RunVideo, Source: "talk.mp4"})
	require.Len(t, dao.records, 1)
	assert.Len(t, dao.records[0].ID, 36)
	assert.Equal(t, fixed, dao.records[0].CreatedAt)

	dao.err = errors.New("locked")
	assert.NotPanics(t, func() {
		r.Record(context.Background(), model.RunRecord{Kind: model.RunVideo})
	})
}

func TestRecorderDisabled(t *testing.T) {
	var nilRecorder *Recorder
	assert.False(t, nilRecorder.Enabled())
	nilRecorder.Record(context.Background(), model.RunRecord{})
	assert.NoError(t, nilRecorder.Close())

	r := NewRecorder(nil, nil)
	assert.False(t, r.Enabled())
	r.Record(context.Background(), model.RunRecord{})
}
