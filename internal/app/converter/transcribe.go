package converter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"audio2text/internal/app/api"
	"audio2text/internal/app/audio"
	"audio2text/internal/app/model"
	"audio2text/internal/app/output"
	"audio2text/internal/app/util/files"
	"audio2text/internal/config"
)

type TranscribeOptions struct {
	Input    string
	AudioDir string
	// Output is a file path, an s3:// URL, or empty for stdout.
	Output string
	// Bitrate is used when the input must be converted before upload.
	Bitrate string
}

type TranscribeResult struct {
	Source string
	Audio  string
	Output string
	Text   string
}

// TranscriptionService resolves an audio file, makes it acceptable to the
// remote API and delivers the transcript.
type TranscriptionService struct {
	engine      audio.Engine
	transcriber api.Transcriber
	writer      *output.Writer
	provider    string
	hooks       Hooks
	logger      *zap.Logger
}

func NewTranscriptionService(engine audio.Engine, transcriber api.Transcriber, writer *output.Writer,
	providerName string, hooks Hooks, logger *zap.Logger) *TranscriptionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptionService{
		engine:      engine,
		transcriber: transcriber,
		writer:      writer,
		provider:    providerName,
		hooks:       hooks,
		logger:      logger,
	}
}

func (s *TranscriptionService) Close() error {
	s.hooks.Progress.Shutdown()
	return s.hooks.Recorder.Close()
}

func (s *TranscriptionService) WriteMetrics(path string) error {
	return s.hooks.Metrics.WriteTextfile(path)
}

func (s *TranscriptionService) Transcribe(ctx context.Context, opts TranscribeOptions) (*TranscribeResult, error) {
	source, err := files.ResolveAudioPath(opts.Input, opts.AudioDir)
	if err != nil {
		return nil, err
	}

	rec := model.RunRecord{Kind: model.RunTranscribe, Source: source, Provider: s.provider}
	fail := func(err error) (*TranscribeResult, error) {
		rec.Status = string(model.StatusFailed)
		rec.ErrorMessage = err.Error()
		s.hooks.Recorder.Record(context.WithoutCancel(ctx), rec)
		return nil, err
	}

	audioPath, err := s.prepareUpload(ctx, source, opts.Bitrate)
	if err != nil {
		return fail(err)
	}

	text, err := s.transcribe(ctx, audioPath)
	if err != nil {
		return fail(err)
	}
	if text == "" {
		s.logger.Warn("transcription returned no text", zap.String("file", audioPath))
	}

	where, err := s.writer.Write(ctx, opts.Output, text)
	if err != nil {
		return fail(err)
	}

	rec.Output = where
	rec.Status = "transcribed"
	rec.AudioSeconds = s.audioSeconds(ctx, audioPath)
	s.hooks.Recorder.Record(context.WithoutCancel(ctx), rec)

	return &TranscribeResult{Source: source, Audio: audioPath, Output: where, Text: text}, nil
}

// prepareUpload converts containers the API rejects into an MP3 sibling. An
// existing sibling is reused.
func (s *TranscriptionService) prepareUpload(ctx context.Context, path string, bitrate string) (string, error) {
	if !api.NeedsConversion(path) {
		s.warnIfTooLarge(path)
		return path, nil
	}

	dest := files.ReplaceExt(path, "mp3")
	if fileExists(dest) {
		s.logger.Info("using existing mp3", zap.String("source", path), zap.String("mp3", dest))
		s.warnIfTooLarge(dest)
		return dest, nil
	}

	if bitrate == "" {
		bitrate = config.DefaultBitrate
	}
	if err := config.ValidateBitrate(bitrate); err != nil {
		return "", err
	}

	s.logger.Info("converting to mp3 before upload", zap.String("source", path), zap.String("mp3", dest))
	start := time.Now()
	if err := s.engine.ConvertToMp3(ctx, model.ConversionJob{Source: path, Destination: dest, Bitrate: bitrate}); err != nil {
		_ = os.Remove(dest)
		s.hooks.Metrics.ObserveConversion(string(model.StatusFailed), time.Since(start))
		return "", err
	}
	s.hooks.Metrics.ObserveConversion(string(model.StatusConverted), time.Since(start))
	s.warnIfTooLarge(dest)
	return dest, nil
}

func (s *TranscriptionService) warnIfTooLarge(path string) {
	info, err := os.Stat(path)
	if err == nil && info.Size() > api.MaxUploadBytes {
		s.logger.Warn("file exceeds the upload limit and will likely be rejected",
			zap.String("file", path),
			zap.Int64("bytes", info.Size()),
			zap.Int64("limit", api.MaxUploadBytes))
	}
}

func (s *TranscriptionService) transcribe(ctx context.Context, path string) (string, error) {
	s.logger.Info("transcribing", zap.String("file", path), zap.String("provider", s.provider))
	start := time.Now()
	text, err := s.transcriber.Transcript(ctx, path)
	s.hooks.Metrics.ObserveTranscription(s.provider, err, time.Since(start))
	if err != nil {
		return "", err
	}
	return text, nil
}

// audioSeconds measures path for the run history: MP3s by walking their
// frames, anything else with the engine's probe. Zero means unknown.
func (s *TranscriptionService) audioSeconds(ctx context.Context, path string) float64 {
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		if d, err := audio.VerifyMp3(path); err == nil {
			return d.Seconds()
		}
	}
	secs, err := s.engine.Duration(ctx, path)
	if err != nil {
		s.logger.Debug("could not measure duration", zap.String("file", path), zap.Error(err))
		return 0
	}
	return secs
}
