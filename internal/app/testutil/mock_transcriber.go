package testutil

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockTranscriber is a testify mock of api.Transcriber.
type MockTranscriber struct {
	mock.Mock
}

func (m *MockTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	args := m.Called(ctx, inputFilePath)
	return args.String(0), args.Error(1)
}

// StaticTranscriber returns the same text for every file and records the
// paths it was asked to transcribe.
type StaticTranscriber struct {
	Text string
	Err  error

	mu    sync.Mutex
	Calls []string
}

func (s *StaticTranscriber) Transcript(_ context.Context, inputFilePath string) (string, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, inputFilePath)
	s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	return s.Text, nil
}
