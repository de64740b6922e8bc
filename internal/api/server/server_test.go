package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audio2text/internal/app/api/openai"
	"audio2text/internal/app/api/openai/whisper"
	"audio2text/internal/app/api/provider"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	cfg.Host = "127.0.0.1"
	cfg.Port = "0"
	cfg.Environment = "test"
	srv := NewServer(cfg, nil)
	require.NoError(t, srv.Start())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv
}

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lecture.mp3")
	require.NoError(t, os.WriteFile(path, []byte("ID3 fake audio"), 0o644))
	return path
}

func TestHealth(t *testing.T) {
	srv := NewServer(Config{Environment: "test"}, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestUnknownRoute(t *testing.T) {
	srv := NewServer(Config{Environment: "test"}, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/models", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found_error")
}

func TestWhisperClientAgainstStub(t *testing.T) {
	srv := newTestServer(t, Config{Transcript: "hello world"})

	client := openai.NewClient("sk-test", srv.BaseURL())
	text, err := whisper.NewRemoteTranscriber(client).Transcript(context.Background(), writeAudio(t))
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestStubRejectsWrongKey(t *testing.T) {
	srv := newTestServer(t, Config{APIKey: "sk-expected"})

	client := openai.NewClient("sk-wrong", srv.BaseURL())
	_, err := whisper.NewRemoteTranscriber(client).Transcript(context.Background(), writeAudio(t))
	require.Error(t, err)

	var terr *provider.TranscriptionError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, provider.CodeAuthenticationFailed, terr.Code)
	assert.Equal(t, http.StatusUnauthorized, terr.StatusCode)
}

func TestStubFileTooLarge(t *testing.T) {
	srv := newTestServer(t, Config{MaxBytes: 4})

	client := openai.NewClient("sk-test", srv.BaseURL())
	_, err := whisper.NewRemoteTranscriber(client).Transcript(context.Background(), writeAudio(t))

	var terr *provider.TranscriptionError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, provider.CodeFileTooLarge, terr.Code)
}
