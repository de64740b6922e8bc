package convert

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"audio2text/cmd/a2t/cmd/cli"
	"audio2text/internal/app"
	"audio2text/internal/app/converter"
)

var (
	output      string
	recursive   bool
	bitrate     string
	types       []string
	overwrite   bool
	failFast    bool
	progress    bool
	metricsFile string
)

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "output file or directory (default beside each source)")
	Cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "descend into subdirectories")
	Cmd.Flags().StringVarP(&bitrate, "bitrate", "b", "", "MP3 bitrate such as 192k or 320k (default from settings, 192k)")
	Cmd.Flags().StringSliceVarP(&types, "types", "t", nil, "comma separated source extensions (default wma,dss)")
	Cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace existing MP3 files")
	Cmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop at the first failed file")
	Cmd.Flags().BoolVar(&progress, "progress", false, "show a progress bar even when stderr is not a terminal")
	Cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus textfile metrics here when done")
}

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert <path>",
	Short: "Convert audio files to MP3 with ffmpeg",
	Long: `Convert a file or every matching file in a directory to MP3.

- Only the listed extensions are converted; existing MP3 outputs are skipped unless --overwrite
- A failed file is reported and the batch continues unless --fail-fast
- The exit status is non-zero when no file matched or any file failed`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, settings, err := cli.Bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		conv := app.InitializeConverter(cmd.Context(), settings,
			converter.ProgressConfig{Enabled: converter.ShouldShowProgress(progress)}, logger)
		defer conv.Close()

		summary, err := conv.ConvertPath(cmd.Context(), converter.ConvertOptions{
			Path:       args[0],
			Output:     output,
			Recursive:  recursive,
			Extensions: lo.Ternary(len(types) > 0, types, settings.Convert.Extensions),
			Bitrate:    lo.Ternary(bitrate != "", bitrate, settings.Convert.Bitrate),
			Overwrite:  overwrite,
			FailFast:   failFast,
		})
		converter.WriteSummary(cmd.OutOrStdout(), "Converted", summary)

		if merr := conv.WriteMetrics(metricsFile); merr != nil {
			logger.Warn("failed to write metrics", zap.String("path", metricsFile), zap.Error(merr))
		}
		return err
	},
}
