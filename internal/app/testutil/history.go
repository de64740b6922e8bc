package testutil

import (
	"context"
	"sort"
	"sync"

	"audio2text/internal/app/model"
)

// MemoryHistory is an in-memory repository.RunHistoryDAO. RecordErr, when
// set, is returned from every Record call instead of storing the row.
type MemoryHistory struct {
	RecordErr error

	mu      sync.Mutex
	records []model.RunRecord
	closed  bool
}

func (h *MemoryHistory) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}

func (h *MemoryHistory) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

func (h *MemoryHistory) Record(_ context.Context, rec model.RunRecord) error {
	if h.RecordErr != nil {
		return h.RecordErr
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, rec)
	return nil
}

func (h *MemoryHistory) List(_ context.Context, kind model.RunKind) ([]model.RunRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]model.RunRecord, 0, len(h.records))
	for _, r := range h.records {
		if kind == "" || r.Kind == kind {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Records returns the stored rows in insertion order.
func (h *MemoryHistory) Records() []model.RunRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]model.RunRecord(nil), h.records...)
}

// Statuses maps each recorded source base name to its status.
func (h *MemoryHistory) Statuses() map[string]string {
	out := make(map[string]string)
	for _, r := range h.Records() {
		out[baseName(r.Source)] = r.Status
	}
	return out
}
