package app

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"audio2text/internal/app/api"
	"audio2text/internal/app/api/cache"
	"audio2text/internal/app/api/provider"
	"audio2text/internal/app/audio"
	"audio2text/internal/app/converter"
	apperrors "audio2text/internal/app/errors"
	"audio2text/internal/app/output"
	"audio2text/internal/app/repository"
	"audio2text/internal/app/repository/store"
	"audio2text/internal/app/storage/objectstore"
	"audio2text/internal/config"
)

// Selection is the provider choice made on the command line. Empty fields
// fall back to the settings file.
type Selection struct {
	Provider string
	Model    string
	Language string
}

// ProviderName is the resolved backend name used for history rows, metrics
// labels and cache keys.
type ProviderName string

func provideEngine(logger *zap.Logger) audio.Engine {
	return audio.NewFFmpeg(logger)
}

func provideAPIKeys() *config.APIKeys {
	return config.GetAPIKeys()
}

func provideProviderName(sel Selection, settings *config.Settings) ProviderName {
	return ProviderName(lo.Ternary(sel.Provider != "", sel.Provider, settings.Provider))
}

// provideRecorder opens the run history when a DSN is configured. An
// unreachable store only disables history.
func provideRecorder(ctx context.Context, settings *config.Settings, logger *zap.Logger) *repository.Recorder {
	if settings.History.DSN == "" {
		return repository.NewRecorder(nil, logger)
	}
	dao, err := store.Open(ctx, settings.History.DSN)
	if err != nil {
		logger.Warn("run history disabled", zap.Error(err))
		return repository.NewRecorder(nil, logger)
	}
	return repository.NewRecorder(dao, logger)
}

func provideRedis(settings *config.Settings, logger *zap.Logger) (redis.Cmdable, func(), error) {
	if settings.Cache.RedisURL == "" {
		return nil, func() {}, nil
	}
	client, err := cache.NewClient(settings.Cache.RedisURL)
	if err != nil {
		return nil, nil, apperrors.KindWrap(apperrors.ErrInvalidConfig, err, "REDIS_URL is invalid")
	}
	logger.Debug("transcript cache enabled", zap.Duration("ttl", settings.Cache.TTL))
	return client, func() { _ = client.Close() }, nil
}

// provideTranscriber builds the selected backend and, when Redis is
// available, wraps it in the transcript cache.
func provideTranscriber(name ProviderName, sel Selection, settings *config.Settings, keys *config.APIKeys,
	rdb redis.Cmdable, logger *zap.Logger) (api.Transcriber, error) {
	baseURL := settings.OpenAIBaseURL
	if name == "gemini" {
		baseURL = settings.GeminiBaseURL
	}
	key, err := config.RequireKeyFor(string(name), keys, baseURL)
	if err != nil {
		return nil, err
	}

	model := lo.Ternary(sel.Model != "", sel.Model, settings.Model)

	cfg := provider.Config{
		APIKey:   key,
		Model:    model,
		Language: lo.Ternary(sel.Language != "", sel.Language, settings.Language),
		BaseURL:  baseURL,
		Logger:   logger,
	}
	transcriber, err := provider.Create(string(name), cfg)
	if err != nil {
		return nil, err
	}
	if rdb == nil {
		return transcriber, nil
	}
	scope := cache.Scope{Provider: string(name), Model: model, Language: cfg.Language, Prompt: cfg.Prompt}
	return cache.New(transcriber, rdb, scope, settings.Cache.TTL, logger), nil
}

func provideObjectStore(settings *config.Settings, logger *zap.Logger) (output.ObjectPutter, error) {
	if settings.Storage.Endpoint == "" {
		return nil, nil
	}
	s, err := objectstore.New(settings.Storage, logger)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func provideWriter(objects output.ObjectPutter, logger *zap.Logger) *output.Writer {
	return output.NewWriter(os.Stdout, objects, logger)
}

func provideTranscriptionService(engine audio.Engine, transcriber api.Transcriber, writer *output.Writer,
	name ProviderName, hooks converter.Hooks, logger *zap.Logger) *converter.TranscriptionService {
	return converter.NewTranscriptionService(engine, transcriber, writer, string(name), hooks, logger)
}
