package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "audio2text/internal/app/errors"
	"audio2text/internal/app/model"
)

const (
	// VideoAudioBitrate and VideoSampleRate keep extracted speech small enough
	// that most talks fit under the upload limit without chunking.
	VideoAudioBitrate = "128k"
	VideoSampleRate   = 22050
)

// Engine is the transcoding backend used by the converter and the video pipeline.
type Engine interface {
	ConvertToMp3(ctx context.Context, job model.ConversionJob) error
	ExtractAudio(ctx context.Context, videoPath, mp3Path string) error
	Split(ctx context.Context, mp3Path string, segment time.Duration, dir string) ([]string, error)
	Duration(ctx context.Context, path string) (float64, error)
}

// Runner executes an external command and returns its stdout. Stderr output
// is captured separately so it can be attached to errors.
type Runner func(ctx context.Context, name string, args ...string) (stdout []byte, stderr []byte, err error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// FFmpeg drives the ffmpeg and ffprobe binaries.
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	run         Runner
	logger      *zap.Logger
}

type Option func(*FFmpeg)

// WithRunner replaces process execution, used by tests.
func WithRunner(r Runner) Option {
	return func(f *FFmpeg) { f.run = r }
}

// WithBinaries overrides the ffmpeg and ffprobe executables.
func WithBinaries(ffmpegPath, ffprobePath string) Option {
	return func(f *FFmpeg) {
		if ffmpegPath != "" {
			f.ffmpegPath = ffmpegPath
		}
		if ffprobePath != "" {
			f.ffprobePath = ffprobePath
		}
	}
}

func NewFFmpeg(logger *zap.Logger, opts ...Option) *FFmpeg {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &FFmpeg{
		ffmpegPath:  "ffmpeg",
		ffprobePath: "ffprobe",
		run:         execRunner,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Mp3Args builds the ffmpeg arguments for a single conversion.
func Mp3Args(src, dst, bitrate string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", src,
		"-vn",
		"-acodec", "libmp3lame",
		"-b:a", bitrate,
		dst,
	}
}

// ExtractArgs builds the arguments that pull a mono speech track out of a video.
func ExtractArgs(videoPath, mp3Path string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", videoPath,
		"-vn",
		"-acodec", "libmp3lame",
		"-b:a", VideoAudioBitrate,
		"-ar", strconv.Itoa(VideoSampleRate),
		"-ac", "1",
		mp3Path,
	}
}

// SplitArgs builds the segment muxer arguments; pattern must contain a %03d verb.
func SplitArgs(mp3Path string, segment time.Duration, pattern string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", mp3Path,
		"-f", "segment",
		"-segment_time", strconv.Itoa(int(segment.Seconds())),
		"-c", "copy",
		pattern,
	}
}

func (f *FFmpeg) ConvertToMp3(ctx context.Context, job model.ConversionJob) error {
	f.logger.Debug("converting to mp3",
		zap.String("source", job.Source),
		zap.String("destination", job.Destination),
		zap.String("bitrate", job.Bitrate))
	return f.ffmpeg(ctx, Mp3Args(job.Source, job.Destination, job.Bitrate))
}

func (f *FFmpeg) ExtractAudio(ctx context.Context, videoPath, mp3Path string) error {
	f.logger.Debug("extracting audio", zap.String("video", videoPath), zap.String("mp3", mp3Path))
	return f.ffmpeg(ctx, ExtractArgs(videoPath, mp3Path))
}

// Split cuts mp3Path into segment-long chunks inside dir and returns the chunk
// paths in playback order. dir must be empty: every chunk file in it is
// returned.
func (f *FFmpeg) Split(ctx context.Context, mp3Path string, segment time.Duration, dir string) ([]string, error) {
	if segment <= 0 {
		return nil, apperrors.InvalidField("segment length", segment.String())
	}
	if dir == "" {
		return nil, apperrors.RequiredField("chunk directory")
	}
	stem := strings.TrimSuffix(filepath.Base(mp3Path), filepath.Ext(mp3Path))
	pattern := filepath.Join(dir, stem+"_chunk%03d.mp3")
	if err := f.ffmpeg(ctx, SplitArgs(mp3Path, segment, pattern)); err != nil {
		return nil, err
	}

	chunks, err := filepath.Glob(filepath.Join(dir, stem+"_chunk[0-9][0-9][0-9].mp3"))
	if err != nil {
		return nil, err
	}
	sort.Strings(chunks)
	if len(chunks) == 0 {
		return nil, apperrors.Kind(apperrors.ErrEngine, "ffmpeg produced no chunks for %s", mp3Path)
	}
	return chunks, nil
}

// Duration returns the container duration in seconds as reported by ffprobe.
func (f *FFmpeg) Duration(ctx context.Context, path string) (float64, error) {
	stdout, stderr, err := f.run(ctx, f.ffprobePath,
		"-v", "error", "-print_format", "json", "-show_format", path)
	if err != nil {
		return 0, engineError(f.ffprobePath, err, stderr)
	}

	var probe model.FFProbeOutput
	if err := json.Unmarshal(stdout, &probe); err != nil {
		return 0, apperrors.KindWrap(apperrors.ErrEngine, err, "failed to parse ffprobe output")
	}
	if probe.Format.Duration <= 0 {
		return 0, apperrors.Kind(apperrors.ErrEngine, "ffprobe reported no duration for %s", path)
	}
	return probe.Format.Duration, nil
}

func (f *FFmpeg) ffmpeg(ctx context.Context, args []string) error {
	_, stderr, err := f.run(ctx, f.ffmpegPath, args...)
	if err != nil {
		return engineError(f.ffmpegPath, err, stderr)
	}
	return nil
}

func engineError(binary string, err error, stderr []byte) error {
	if errors.Is(err, exec.ErrNotFound) {
		return apperrors.KindWrap(apperrors.ErrEngineMissing, err, "%s not found in PATH", binary)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		return apperrors.KindWrap(apperrors.ErrEngine, err, "%s failed", binary)
	}
	return apperrors.KindWrap(apperrors.ErrEngine, err, "%s failed: %s", binary, msg)
}

// IsEngineError reports whether err came from the transcoding engine.
func IsEngineError(err error) bool {
	return errors.Is(err, apperrors.ErrEngine) || errors.Is(err, apperrors.ErrEngineMissing)
}

// String is used in log lines.
func (f *FFmpeg) String() string {
	return fmt.Sprintf("ffmpeg(%s)", f.ffmpegPath)
}
