package gemini

import (
	"context"

	"audio2text/internal/app/api"
	"audio2text/internal/app/api/provider"
)

func init() {
	provider.RegisterProvider(providerName, func(cfg provider.Config) (api.Transcriber, error) {
		return New(context.Background(), cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Language, cfg.Logger)
	})
}
