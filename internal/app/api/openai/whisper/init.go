package whisper

import (
	"audio2text/internal/app/api"
	openaiclient "audio2text/internal/app/api/openai"
	"audio2text/internal/app/api/provider"
)

func init() {
	provider.RegisterProvider(providerName, createOpenAIProvider)
}

func createOpenAIProvider(cfg provider.Config) (api.Transcriber, error) {
	client := openaiclient.NewClient(cfg.APIKey, cfg.BaseURL)
	return NewRemoteTranscriber(client,
		WithModel(cfg.Model),
		WithLanguage(cfg.Language),
		WithPrompt(cfg.Prompt),
		WithLogger(cfg.Logger),
	), nil
}
