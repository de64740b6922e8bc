package gemini

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"audio2text/internal/app/api/provider"
)

const (
	providerName = "gemini"
	DefaultModel = "gemini-2.0-flash"

	// MaxInlineBytes is the request size limit for inline audio data.
	MaxInlineBytes = 20 * 1024 * 1024

	instruction = "Generate a verbatim transcript of the speech in this audio. " +
		"Return only the transcript text without timestamps, speaker labels or commentary."
)

var mimeTypes = map[string]string{
	".mp3":  "audio/mp3",
	".mpga": "audio/mp3",
	".mpeg": "audio/mp3",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".m4a":  "audio/aac",
	".aac":  "audio/aac",
	".aiff": "audio/aiff",
	".webm": "audio/webm",
	".mp4":  "audio/mp4",
}

// Transcriber sends audio inline to a Gemini model with a transcription prompt.
type Transcriber struct {
	client   *genai.Client
	model    string
	language string
	logger   *zap.Logger
}

// New creates a Gemini client for apiKey. baseURL overrides the public endpoint.
func New(ctx context.Context, apiKey, baseURL, model, language string, logger *zap.Logger) (*Transcriber, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transcriber{client: client, model: model, language: language, logger: logger}, nil
}

func (t *Transcriber) Model() string { return t.model }

func (t *Transcriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	mime, ok := mimeTypes[strings.ToLower(filepath.Ext(inputFilePath))]
	if !ok {
		return "", &provider.TranscriptionError{
			Code:        provider.CodeUnsupportedFormat,
			Message:     "no audio MIME type for " + filepath.Base(inputFilePath),
			Provider:    providerName,
			Suggestions: []string{"Convert the file to mp3 with 'a2t convert'"},
		}
	}

	data, err := os.ReadFile(inputFilePath)
	if err != nil {
		return "", err
	}
	if len(data) > MaxInlineBytes {
		return "", provider.FromStatus(providerName, 413, "inline audio is limited to 20 MiB", nil)
	}

	prompt := instruction
	if t.language != "" {
		prompt += " The spoken language is " + t.language + "."
	}
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(data, mime),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	t.logger.Debug("sending audio to gemini",
		zap.String("file", inputFilePath),
		zap.String("model", t.model),
		zap.Int("bytes", len(data)))
	resp, err := t.client.Models.GenerateContent(ctx, t.model, contents, nil)
	if err != nil {
		return "", classifyError(err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

func classifyError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &apiErrPtr):
		apiErr = *apiErrPtr
	default:
		if provider.IsTransportError(err) {
			return provider.NetworkError(providerName, err)
		}
		return &provider.TranscriptionError{
			Code:     provider.CodeAPIError,
			Message:  "generate content failed",
			Provider: providerName,
			Cause:    err,
		}
	}

	status := apiErr.Code
	// An invalid key comes back as 400 INVALID_ARGUMENT.
	if status == 400 && strings.Contains(strings.ToLower(apiErr.Message), "api key") {
		status = 401
	}
	if apiErr.Status == "RESOURCE_EXHAUSTED" {
		status = 429
	}
	return provider.FromStatus(providerName, status, apiErr.Message, err)
}
