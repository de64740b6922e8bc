package converter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"audio2text/internal/app/audio"
	apperrors "audio2text/internal/app/errors"
	"audio2text/internal/app/metrics"
	"audio2text/internal/app/model"
	"audio2text/internal/app/repository"
	"audio2text/internal/app/util/files"
	"audio2text/internal/config"
)

// Hooks are the optional side channels shared by the converter and the
// transcription service. Every field may be nil.
type Hooks struct {
	Recorder *repository.Recorder
	Metrics  *metrics.Metrics
	Progress *ProgressManager
}

type ConvertOptions struct {
	Path       string
	Output     string
	Recursive  bool
	Extensions []string
	Bitrate    string
	Overwrite  bool
	FailFast   bool
}

func (o *ConvertOptions) normalize() error {
	if o.Path == "" {
		return apperrors.RequiredField("input path")
	}
	if o.Bitrate == "" {
		o.Bitrate = config.DefaultBitrate
	}
	if err := config.ValidateBitrate(o.Bitrate); err != nil {
		return err
	}
	o.Extensions = config.NormalizeExtensions(o.Extensions)
	if len(o.Extensions) == 0 {
		o.Extensions = append([]string(nil), config.DefaultExtensions...)
	}
	return nil
}

type Converter struct {
	engine audio.Engine
	hooks  Hooks
	logger *zap.Logger
	verify func(path string) (time.Duration, error)
}

func NewConverter(engine audio.Engine, hooks Hooks, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		engine: engine,
		hooks:  hooks,
		logger: logger,
		verify: audio.VerifyMp3,
	}
}

func (c *Converter) Close() error {
	c.hooks.Progress.Shutdown()
	return c.hooks.Recorder.Close()
}

// WriteMetrics writes the run's counters in the node_exporter textfile format.
// An empty path does nothing.
func (c *Converter) WriteMetrics(path string) error {
	return c.hooks.Metrics.WriteTextfile(path)
}

// Plan discovers the eligible files under opts.Path and pairs each with its
// MP3 destination.
func (c *Converter) Plan(opts ConvertOptions) ([]model.ConversionJob, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}

	info, err := os.Stat(opts.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &files.PathNotFoundError{Input: opts.Path}
		}
		return nil, err
	}

	found, err := files.DiscoverFiles(opts.Path, opts.Recursive, opts.Extensions)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, apperrors.Kind(apperrors.ErrNoEligibleFiles,
			"no %s files found in %s", strings.Join(opts.Extensions, "/"), opts.Path)
	}

	jobs := make([]model.ConversionJob, 0, len(found))
	for _, f := range found {
		jobs = append(jobs, model.ConversionJob{
			Source:      f.FullPath,
			Destination: destinationFor(opts.Path, info.IsDir(), f.FullPath, opts.Output),
			Bitrate:     opts.Bitrate,
		})
	}
	return jobs, nil
}

// destinationFor places the MP3 beside its source unless output is set. A
// directory batch mirrors its layout under output; a single file treats an
// output ending in .mp3 as the exact destination.
func destinationFor(root string, rootIsDir bool, src string, output string) string {
	if output == "" {
		return files.ReplaceExt(src, "mp3")
	}
	name := files.ReplaceExt(filepath.Base(src), "mp3")
	if !rootIsDir {
		if strings.EqualFold(filepath.Ext(output), ".mp3") {
			return output
		}
		return filepath.Join(output, name)
	}
	rel, err := filepath.Rel(root, filepath.Dir(src))
	if err != nil {
		rel = "."
	}
	return filepath.Join(output, rel, name)
}

// ConvertPath converts every eligible file under opts.Path, one at a time.
// Failures do not stop the batch unless opts.FailFast is set; the returned
// error then aggregates every failure and the summary is still returned.
func (c *Converter) ConvertPath(ctx context.Context, opts ConvertOptions) (*model.BatchSummary, error) {
	jobs, err := c.Plan(opts)
	if err != nil {
		return nil, err
	}

	c.logger.Info("starting conversion",
		zap.String("path", opts.Path),
		zap.Int("files", len(jobs)),
		zap.String("bitrate", jobs[0].Bitrate))

	summary := &model.BatchSummary{Results: make([]model.ConversionResult, 0, len(jobs))}
	bar := c.hooks.Progress.CreateBar(len(jobs), "Converting")
	defer c.hooks.Progress.Wait()
	defer bar.Complete()

	var errs error
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			summary.Aborted = true
			return summary, multierr.Append(errs,
				apperrors.Wrapf(err, "conversion interrupted after %d of %d files", len(summary.Results), len(jobs)))
		}

		res := c.convertOne(ctx, job, opts.Overwrite)
		summary.Results = append(summary.Results, res)
		c.hooks.Metrics.ObserveConversion(string(res.Status), res.Elapsed)
		c.record(ctx, res)
		bar.Step(res.Elapsed)

		if res.Status == model.StatusFailed {
			errs = multierr.Append(errs, apperrors.Wrapf(res.Err, "%s", job.Source))
			if opts.FailFast {
				summary.Aborted = true
				break
			}
		}
	}

	if errs != nil {
		return summary, apperrors.Wrapf(errs, "%d of %d files failed to convert", summary.Failed(), len(jobs))
	}
	return summary, nil
}

func (c *Converter) convertOne(ctx context.Context, job model.ConversionJob, overwrite bool) model.ConversionResult {
	res := model.ConversionResult{Job: job}
	log := c.logger.With(zap.String("source", job.Source), zap.String("destination", job.Destination))

	if samePath(job.Source, job.Destination) {
		res.Status = model.StatusSkipped
		res.Reason = "source is already an mp3"
		log.Info("skipping file", zap.String("reason", res.Reason))
		return res
	}
	if !overwrite && fileExists(job.Destination) {
		res.Status = model.StatusSkipped
		res.Reason = "destination exists"
		log.Info("skipping file", zap.String("reason", res.Reason))
		return res
	}

	if err := files.EnsureDir(filepath.Dir(job.Destination)); err != nil {
		return failed(res, err, log)
	}

	start := time.Now()
	err := c.engine.ConvertToMp3(ctx, job)
	res.Elapsed = time.Since(start)
	if err != nil {
		_ = os.Remove(job.Destination)
		return failed(res, err, log)
	}

	duration, err := c.verify(job.Destination)
	if err != nil {
		_ = os.Remove(job.Destination)
		return failed(res, err, log)
	}

	res.Status = model.StatusConverted
	res.AudioDuration = duration
	log.Info("converted",
		zap.Duration("elapsed", res.Elapsed),
		zap.Duration("audio", duration))
	return res
}

func failed(res model.ConversionResult, err error, log *zap.Logger) model.ConversionResult {
	res.Status = model.StatusFailed
	res.Err = err
	log.Error("conversion failed", zap.Error(err))
	return res
}

func (c *Converter) record(ctx context.Context, res model.ConversionResult) {
	rec := model.RunRecord{
		Kind:         model.RunConvert,
		Source:       res.Job.Source,
		Output:       res.Job.Destination,
		Status:       string(res.Status),
		AudioSeconds: res.AudioDuration.Seconds(),
	}
	if res.Err != nil {
		rec.ErrorMessage = res.Err.Error()
	} else if res.Reason != "" {
		rec.ErrorMessage = res.Reason
	}
	c.hooks.Recorder.Record(context.WithoutCancel(ctx), rec)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
