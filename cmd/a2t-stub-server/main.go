// Command a2t-stub-server serves an OpenAI-compatible transcription endpoint
// that answers every upload with a fixed transcript.
//
//	a2t-stub-server --port 8080 --transcript "hello world"
//	OPENAI_BASE_URL=http://127.0.0.1:8080/v1 a2t transcribe lecture.mp3
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"audio2text/internal/api/server"
	"audio2text/internal/app/logging"
)

func main() {
	cfg := server.Config{
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
		IdleTimeout:  2 * time.Minute,
	}
	var verbose bool

	cmd := &cobra.Command{
		Use:           "a2t-stub-server",
		Short:         "Serve a fake Whisper endpoint for offline end-to-end checks",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.NewLogger(verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			srv := server.NewServer(cfg, logger)
			if err := srv.Start(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&cfg.Host, "host", "127.0.0.1", "address to bind")
	cmd.Flags().StringVarP(&cfg.Port, "port", "p", "8080", "port to listen on")
	cmd.Flags().StringVarP(&cfg.Transcript, "transcript", "t", server.DefaultTranscript, "text returned for every upload")
	cmd.Flags().StringVar(&cfg.APIKey, "api-key", "", "require this bearer token (empty accepts any)")
	cmd.Flags().Int64Var(&cfg.MaxBytes, "max-bytes", 0, "reject uploads larger than this (default 25 MiB)")
	cmd.Flags().StringVar(&cfg.Environment, "env", "production", "gin mode: production, debug or test")
	cmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "verbose output")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
