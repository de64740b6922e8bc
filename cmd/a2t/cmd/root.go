package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"audio2text/cmd/a2t/cmd/cli"
	"audio2text/cmd/a2t/cmd/compare"
	"audio2text/cmd/a2t/cmd/convert"
	"audio2text/cmd/a2t/cmd/export"
	"audio2text/cmd/a2t/cmd/transcribe"
	"audio2text/cmd/a2t/cmd/version"
	"audio2text/cmd/a2t/cmd/video"
	apperrors "audio2text/internal/app/errors"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "a2t",
	Short: "Transcribe audio recordings and convert legacy audio formats to MP3",
	Long: `a2t sends audio files to a hosted speech-to-text API and converts
formats the API rejects (WMA, DSS, ...) to MP3 with ffmpeg.

- a2t transcribe lecture.mp3 -o lecture.txt
- a2t convert ./recordings -r -b 320k
- a2t video ./talks -o transcripts`,
	SilenceUsage:     true,
	SilenceErrors:    true,
	TraverseChildren: true,
}

// Execute runs the command tree with a context cancelled on SIGINT or
// SIGTERM and exits 1 on any error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err once. Input mistakes get a pointer to the help text.
func reportError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", err)
	if apperrors.IsValidationError(err) {
		fmt.Fprintln(w, "Run 'a2t <command> --help' for usage.")
	}
}

func init() {
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(convert.Cmd)
	rootCmd.AddCommand(video.Cmd)
	rootCmd.AddCommand(compare.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&cli.Verbose, "verbose", "V", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&cli.ConfigPath, "config", "", "settings file (default ./a2t.yaml when present)")
}
