//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"audio2text/internal/app/converter"
	"audio2text/internal/app/metrics"
	"audio2text/internal/config"
)

var hookSet = wire.NewSet(
	provideRecorder,
	metrics.New,
	converter.NewProgressManager,
	wire.Struct(new(converter.Hooks), "*"),
)

func InitializeConverter(ctx context.Context, settings *config.Settings, progress converter.ProgressConfig, logger *zap.Logger) *converter.Converter {
	wire.Build(hookSet, provideEngine, converter.NewConverter)
	return &converter.Converter{}
}

func InitializeTranscriptionService(ctx context.Context, settings *config.Settings, sel Selection, progress converter.ProgressConfig, logger *zap.Logger) (*converter.TranscriptionService, func(), error) {
	wire.Build(
		hookSet,
		provideEngine,
		provideAPIKeys,
		provideProviderName,
		provideRedis,
		provideTranscriber,
		provideObjectStore,
		provideWriter,
		provideTranscriptionService,
	)
	return nil, nil, nil
}
