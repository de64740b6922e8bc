package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"audio2text/internal/app/model"
)

// SampleRuns is a small history spanning every run kind and outcome.
var SampleRuns = []model.RunRecord{
	{
		ID:           "0b4f2c1e-0001-4000-8000-000000000001",
		Kind:         model.RunConvert,
		Source:       "audio_files/interview.wma",
		Output:       "audio_files/interview.mp3",
		Status:       string(model.StatusConverted),
		AudioSeconds: 1800.5,
		CreatedAt:    time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	},
	{
		ID:           "0b4f2c1e-0001-4000-8000-000000000002",
		Kind:         model.RunConvert,
		Source:       "audio_files/dictation.dss",
		Output:       "audio_files/dictation.mp3",
		Status:       string(model.StatusFailed),
		ErrorMessage: "ffmpeg failed: Invalid data found when processing input",
		CreatedAt:    time.Date(2024, 1, 15, 10, 31, 0, 0, time.UTC),
	},
	{
		ID:           "0b4f2c1e-0001-4000-8000-000000000003",
		Kind:         model.RunTranscribe,
		Source:       "audio_files/interview.mp3",
		Output:       "stdout",
		Provider:     "openai",
		Status:       "transcribed",
		AudioSeconds: 1800.5,
		CreatedAt:    time.Date(2024, 1, 16, 14, 45, 0, 0, time.UTC),
	},
	{
		ID:           "0b4f2c1e-0001-4000-8000-000000000004",
		Kind:         model.RunVideo,
		Source:       "videos/lecture.mp4",
		Output:       "videos/lecture_transcription.txt",
		Provider:     "openai",
		Status:       string(model.StatusConverted),
		AudioSeconds: 3600,
		CreatedAt:    time.Date(2024, 1, 17, 9, 15, 0, 0, time.UTC),
	},
}

// Touch creates each named file under dir, with parents, holding a few
// placeholder bytes. It returns the full paths in argument order.
func Touch(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("RIFF0000fake"), 0o644))
		paths = append(paths, p)
	}
	return paths
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func baseName(path string) string {
	return filepath.Base(path)
}
