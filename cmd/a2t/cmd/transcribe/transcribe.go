package transcribe

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"audio2text/cmd/a2t/cmd/cli"
	"audio2text/internal/app"
	"audio2text/internal/app/converter"
)

var (
	outputFile string
	audioDir   string
	sel        app.Selection
)

func init() {
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the transcript to this file or s3://bucket/key (default stdout)")
	Cmd.Flags().StringVarP(&audioDir, "audio-dir", "d", "", "directory searched when the argument is not an existing path (default audio_files)")
	Cmd.Flags().StringVar(&sel.Provider, "provider", "", "transcription backend: openai or gemini")
	Cmd.Flags().StringVar(&sel.Model, "model", "", "model name passed to the provider")
	Cmd.Flags().StringVar(&sel.Language, "language", "", "ISO-639-1 language hint, e.g. en")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe <filename|path>",
	Short: "Transcribe one audio file",
	Long: `Transcribe one audio file with the configured provider.

- The argument is used as given when it exists, otherwise it is looked up in the audio directory
- WMA, DSS and other formats the API rejects are converted to MP3 first
- The transcript goes to stdout unless -o is set`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, settings, err := cli.Bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		svc, cleanup, err := app.InitializeTranscriptionService(cmd.Context(), settings, sel, converter.ProgressConfig{}, logger)
		if err != nil {
			return err
		}
		defer cleanup()
		defer svc.Close()

		res, err := svc.Transcribe(cmd.Context(), converter.TranscribeOptions{
			Input:    args[0],
			AudioDir: lo.Ternary(audioDir != "", audioDir, settings.AudioDir),
			Output:   outputFile,
			Bitrate:  settings.Convert.Bitrate,
		})
		if err != nil {
			return err
		}
		if res.Output != "stdout" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Transcript written to %s\n", res.Output)
		}
		return nil
	},
}
