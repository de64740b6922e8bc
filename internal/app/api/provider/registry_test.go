package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audio2text/internal/app/api"
	apperrors "audio2text/internal/app/errors"
)

type echoTranscriber struct{ cfg Config }

func (e *echoTranscriber) Transcript(_ context.Context, path string) (string, error) {
	return e.cfg.Model + ":" + path, nil
}

func TestRegistry(t *testing.T) {
	RegisterProvider("echo-test", func(cfg Config) (api.Transcriber, error) {
		return &echoTranscriber{cfg: cfg}, nil
	})

	assert.Contains(t, ListRegisteredProviders(), "echo-test")

	tr, err := Create("echo-test", Config{APIKey: "k", Model: "m"})
	require.NoError(t, err)
	text, err := tr.Transcript(context.Background(), "a.mp3")
	require.NoError(t, err)
	assert.Equal(t, "m:a.mp3", text)

	_, err = Create("echo-test", Config{})
	assert.True(t, errors.Is(err, apperrors.ErrMissingAPIKey))

	_, err = Create("does-not-exist", Config{APIKey: "k"})
	assert.True(t, errors.Is(err, apperrors.ErrProviderNotFound))
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status    int
		code      string
		retryable bool
	}{
		{401, CodeAuthenticationFailed, false},
		{403, CodeAuthenticationFailed, false},
		{429, CodeRateLimitExceeded, true},
		{413, CodeFileTooLarge, false},
		{400, CodeUnsupportedFormat, false},
		{415, CodeUnsupportedFormat, false},
		{500, CodeAPIError, true},
		{404, CodeAPIError, false},
	}
	for _, tt := range tests {
		e := FromStatus("openai", tt.status, "detail", nil)
		assert.Equal(t, tt.code, e.Code, tt.status)
		assert.Equal(t, tt.retryable, e.Retryable, tt.status)
		assert.Equal(t, tt.status, e.StatusCode)
		assert.Contains(t, e.Error(), "detail")
		assert.True(t, errors.Is(e, apperrors.ErrRemoteAPI))
	}
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	e := NetworkError("gemini", cause)
	assert.Equal(t, CodeNetworkError, e.Code)
	assert.ErrorIs(t, e, cause)
	assert.True(t, errors.Is(e, apperrors.ErrRemoteAPI))

	var te *TranscriptionError
	require.True(t, errors.As(error(e), &te))
	assert.Equal(t, "gemini", te.Provider)
}
