package converter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"audio2text/internal/app/api"
	apperrors "audio2text/internal/app/errors"
	"audio2text/internal/app/model"
	"audio2text/internal/app/util/files"
)

const DefaultChunkLength = 5 * time.Minute

var VideoExtensions = []string{"mp4"}

type VideoOptions struct {
	Path string
	// OutputDir receives <name>_transcription.txt; empty means beside the
	// video. An s3://bucket/prefix URL is accepted.
	OutputDir   string
	Recursive   bool
	ChunkLength time.Duration
	FailFast    bool
	// MaxUploadBytes is the size above which audio is split, default
	// api.MaxUploadBytes.
	MaxUploadBytes int64
	// ChunkDir is where per-video chunk directories are created, default
	// os.TempDir().
	ChunkDir string
}

// TranscribeVideos extracts the audio track of every video under opts.Path
// and transcribes it. Failures follow the same policy as ConvertPath.
func (s *TranscriptionService) TranscribeVideos(ctx context.Context, opts VideoOptions) (*model.BatchSummary, error) {
	if opts.Path == "" {
		return nil, apperrors.RequiredField("video path")
	}
	if opts.ChunkLength <= 0 {
		opts.ChunkLength = DefaultChunkLength
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = api.MaxUploadBytes
	}

	videos, err := files.DiscoverFiles(opts.Path, opts.Recursive, VideoExtensions)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, apperrors.Kind(apperrors.ErrNoEligibleFiles, "no mp4 files found in %s", opts.Path)
	}

	summary := &model.BatchSummary{Results: make([]model.ConversionResult, 0, len(videos))}
	bar := s.hooks.Progress.CreateBar(len(videos), "Transcribing videos")
	defer s.hooks.Progress.Wait()
	defer bar.Complete()

	var errs error
	for _, v := range videos {
		if err := ctx.Err(); err != nil {
			summary.Aborted = true
			return summary, multierr.Append(errs,
				apperrors.Wrapf(err, "interrupted after %d of %d videos", len(summary.Results), len(videos)))
		}

		res := s.processVideo(ctx, v.FullPath, opts)
		summary.Results = append(summary.Results, res)
		s.recordVideo(ctx, res)
		bar.Step(res.Elapsed)

		if res.Status == model.StatusFailed {
			errs = multierr.Append(errs, apperrors.Wrapf(res.Err, "%s", v.FullPath))
			if opts.FailFast {
				summary.Aborted = true
				break
			}
		}
	}

	if errs != nil {
		return summary, apperrors.Wrapf(errs, "%d of %d videos failed", summary.Failed(), len(videos))
	}
	return summary, nil
}

func transcriptPath(video string, outputDir string) string {
	name := strings.TrimSuffix(filepath.Base(video), filepath.Ext(video)) + "_transcription.txt"
	switch {
	case outputDir == "":
		return filepath.Join(filepath.Dir(video), name)
	case strings.HasPrefix(strings.ToLower(outputDir), "s3://"):
		return strings.TrimSuffix(outputDir, "/") + "/" + name
	default:
		return filepath.Join(outputDir, name)
	}
}

func (s *TranscriptionService) processVideo(ctx context.Context, video string, opts VideoOptions) model.ConversionResult {
	dest := transcriptPath(video, opts.OutputDir)
	res := model.ConversionResult{Job: model.ConversionJob{Source: video, Destination: dest}}
	log := s.logger.With(zap.String("video", video))
	start := time.Now()

	fail := func(err error) model.ConversionResult {
		res.Status = model.StatusFailed
		res.Err = err
		res.Elapsed = time.Since(start)
		log.Error("video failed", zap.Error(err))
		return res
	}

	mp3Path := files.ReplaceExt(video, "mp3")
	if fileExists(mp3Path) {
		log.Info("audio already extracted", zap.String("mp3", mp3Path))
	} else {
		log.Info("extracting audio", zap.String("mp3", mp3Path))
		if err := s.engine.ExtractAudio(ctx, video, mp3Path); err != nil {
			_ = os.Remove(mp3Path)
			return fail(err)
		}
	}

	text, err := s.transcribeLarge(ctx, mp3Path, opts)
	if err != nil {
		return fail(err)
	}
	if strings.TrimSpace(text) == "" {
		return fail(apperrors.Kind(apperrors.ErrRemoteAPI, "empty transcript for %s", filepath.Base(video)))
	}

	if _, err := s.writer.Write(ctx, dest, text); err != nil {
		return fail(err)
	}

	res.Status = model.StatusConverted
	res.Elapsed = time.Since(start)
	res.AudioDuration = time.Duration(s.audioSeconds(ctx, video) * float64(time.Second))
	return res
}

// transcribeLarge sends mp3Path whole when it fits the upload limit.
// Otherwise it is split into chunks in a fresh temporary directory that are
// transcribed in order and joined with a single space. The directory is
// always removed afterwards.
func (s *TranscriptionService) transcribeLarge(ctx context.Context, mp3Path string, opts VideoOptions) (string, error) {
	info, err := os.Stat(mp3Path)
	if err != nil {
		return "", &files.PathNotFoundError{Input: mp3Path}
	}
	if info.Size() <= opts.MaxUploadBytes {
		return s.transcribe(ctx, mp3Path)
	}

	s.logger.Info("audio exceeds the upload limit, splitting",
		zap.String("mp3", mp3Path),
		zap.Int64("bytes", info.Size()),
		zap.Duration("chunk", opts.ChunkLength))

	chunkDir, err := os.MkdirTemp(opts.ChunkDir, "a2t-chunks-")
	if err != nil {
		return "", apperrors.KindWrap(apperrors.ErrFileWriteFailed, err, "failed to create chunk directory")
	}
	defer func() {
		if err := os.RemoveAll(chunkDir); err != nil {
			s.logger.Warn("failed to remove chunks", zap.String("dir", chunkDir), zap.Error(err))
		}
	}()

	chunks, err := s.engine.Split(ctx, mp3Path, opts.ChunkLength, chunkDir)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(chunks))
	for i, c := range chunks {
		text, err := s.transcribe(ctx, c)
		if err != nil {
			return "", apperrors.Wrapf(err, "chunk %d of %d", i+1, len(chunks))
		}
		parts = append(parts, strings.TrimSpace(text))
	}
	return strings.Join(parts, " "), nil
}

func (s *TranscriptionService) recordVideo(ctx context.Context, res model.ConversionResult) {
	rec := model.RunRecord{
		Kind:         model.RunVideo,
		Source:       res.Job.Source,
		Output:       res.Job.Destination,
		Provider:     s.provider,
		Status:       string(res.Status),
		AudioSeconds: res.AudioDuration.Seconds(),
	}
	if res.Err != nil {
		rec.ErrorMessage = res.Err.Error()
	}
	s.hooks.Recorder.Record(context.WithoutCancel(ctx), rec)
}
