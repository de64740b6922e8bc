package video

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"audio2text/cmd/a2t/cmd/cli"
	"audio2text/internal/app"
	"audio2text/internal/app/converter"
	apperrors "audio2text/internal/app/errors"
)

var (
	outputDir    string
	chunkMinutes int
	recursive    bool
	failFast     bool
	progress     bool
	metricsFile  string
	sel          app.Selection
)

func init() {
	Cmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory or s3://bucket/prefix for transcripts (default beside each video)")
	Cmd.Flags().IntVar(&chunkMinutes, "chunk-minutes", int(converter.DefaultChunkLength/time.Minute), "chunk length when audio exceeds the upload limit")
	Cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "descend into subdirectories")
	Cmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop at the first failed video")
	Cmd.Flags().BoolVar(&progress, "progress", false, "show a progress bar even when stderr is not a terminal")
	Cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus textfile metrics here when done")
	Cmd.Flags().StringVar(&sel.Provider, "provider", "", "transcription backend: openai or gemini")
	Cmd.Flags().StringVar(&sel.Model, "model", "", "model name passed to the provider")
	Cmd.Flags().StringVar(&sel.Language, "language", "", "ISO-639-1 language hint, e.g. en")
}

// Cmd represents the video command
var Cmd = &cobra.Command{
	Use:   "video <path>",
	Short: "Transcribe the audio track of mp4 videos",
	Long: `Transcribe the audio track of one mp4 file or every mp4 in a directory.

- The audio is extracted to an MP3 beside the video, reused when already present
- Audio over the 25 MiB upload limit is split into chunks and the texts are joined
- Each transcript is written as <name>_transcription.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if chunkMinutes <= 0 {
			return apperrors.InvalidField("chunk-minutes", "must be positive")
		}

		logger, settings, err := cli.Bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		svc, cleanup, err := app.InitializeTranscriptionService(cmd.Context(), settings, sel,
			converter.ProgressConfig{Enabled: converter.ShouldShowProgress(progress)}, logger)
		if err != nil {
			return err
		}
		defer cleanup()
		defer svc.Close()

		summary, err := svc.TranscribeVideos(cmd.Context(), converter.VideoOptions{
			Path:        args[0],
			OutputDir:   outputDir,
			Recursive:   recursive,
			ChunkLength: time.Duration(chunkMinutes) * time.Minute,
			FailFast:    failFast,
		})
		converter.WriteSummary(cmd.OutOrStdout(), "Transcribed", summary)

		if merr := svc.WriteMetrics(metricsFile); merr != nil {
			logger.Warn("failed to write metrics", zap.String("path", metricsFile), zap.Error(merr))
		}
		return err
	},
}
