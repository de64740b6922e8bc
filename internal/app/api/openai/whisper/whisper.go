package whisper

import (
	"context"
	"errors"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"audio2text/internal/app/api/provider"
)

const providerName = "openai"

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client   *openai.Client
	model    string
	language string
	prompt   string
	logger   *zap.Logger
}

type Option func(*RemoteTranscriber)

func WithModel(model string) Option {
	return func(rt *RemoteTranscriber) {
		if model != "" {
			rt.model = model
		}
	}
}

func WithLanguage(language string) Option {
	return func(rt *RemoteTranscriber) { rt.language = language }
}

func WithPrompt(prompt string) Option {
	return func(rt *RemoteTranscriber) { rt.prompt = prompt }
}

func WithLogger(logger *zap.Logger) Option {
	return func(rt *RemoteTranscriber) {
		if logger != nil {
			rt.logger = logger
		}
	}
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, opts ...Option) *RemoteTranscriber {
	rt := &RemoteTranscriber{
		client: client,
		model:  openai.Whisper1,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Model is the model name sent with every request.
func (rt *RemoteTranscriber) Model() string { return rt.model }

// Transcript uploads inputFilePath and returns the plain transcript.
func (rt *RemoteTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	req := openai.AudioRequest{
		Model:    rt.model,
		FilePath: inputFilePath,
		Language: rt.language,
		Prompt:   rt.prompt,
	}

	start := time.Now()
	rt.logger.Debug("uploading audio", zap.String("file", inputFilePath), zap.String("model", rt.model))
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", classifyError(err)
	}
	rt.logger.Debug("transcription received",
		zap.String("file", inputFilePath),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("chars", len(resp.Text)))

	return resp.Text, nil
}

// classifyError converts OpenAI client errors to a TranscriptionError.
func classifyError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == 429 || apiErr.Type == "insufficient_quota" {
			return provider.FromStatus(providerName, 429, apiErr.Message, err)
		}
		return provider.FromStatus(providerName, apiErr.HTTPStatusCode, apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return provider.FromStatus(providerName, reqErr.HTTPStatusCode, "", err)
	}

	if provider.IsTransportError(err) {
		return provider.NetworkError(providerName, err)
	}

	return &provider.TranscriptionError{
		Code:     provider.CodeAPIError,
		Message:  "transcription request failed",
		Provider: providerName,
		Cause:    err,
	}
}
