package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"audio2text/internal/app/model"
)

// RunHistoryDAO stores one row per transcription, conversion or video run.
type RunHistoryDAO interface {
	Close() error

	Record(ctx context.Context, rec model.RunRecord) error

	// List returns records newest first; an empty kind lists every kind.
	List(ctx context.Context, kind model.RunKind) ([]model.RunRecord, error)
}

// Recorder writes run records without ever failing the caller. A nil
// Recorder or one without a DAO does nothing.
type Recorder struct {
	dao    RunHistoryDAO
	logger *zap.Logger
	now    func() time.Time
}

func NewRecorder(dao RunHistoryDAO, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{dao: dao, logger: logger, now: time.Now}
}

// Enabled reports whether records are persisted.
func (r *Recorder) Enabled() bool {
	return r != nil && r.dao != nil
}

// Record fills ID and CreatedAt when empty and stores rec.
func (r *Recorder) Record(ctx context.Context, rec model.RunRecord) {
	if !r.Enabled() {
		return
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.now().UTC()
	}
	if err := r.dao.Record(ctx, rec); err != nil {
		r.logger.Warn("failed to record run history",
			zap.String("kind", string(rec.Kind)),
			zap.String("source", rec.Source),
			zap.Error(err))
	}
}

func (r *Recorder) Close() error {
	if !r.Enabled() {
		return nil
	}
	return r.dao.Close()
}
