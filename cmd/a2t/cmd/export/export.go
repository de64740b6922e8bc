package export

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"audio2text/cmd/a2t/cmd/cli"
	"audio2text/internal/app/converter/export"
	apperrors "audio2text/internal/app/errors"
	"audio2text/internal/app/model"
	"audio2text/internal/app/repository/store"
)

var outputFilePath string
var kind string

var kinds = []model.RunKind{model.RunTranscribe, model.RunConvert, model.RunVideo}

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "output", "o", "", "workbook to write, e.g. runs.xlsx")
	Cmd.Flags().StringVar(&kind, "kind", "", "only export transcribe, convert or video runs")

	Cmd.MarkFlagRequired("output")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the run history to an Excel workbook",
	Long: `Export the run history to an Excel workbook

- Requires history.dsn in a2t.yaml or A2T_HISTORY_DSN
- Rows are ordered newest first`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if kind != "" && !lo.Contains(kinds, model.RunKind(kind)) {
			return apperrors.InvalidField("kind", "expected transcribe, convert or video")
		}

		logger, settings, err := cli.Bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if settings.History.DSN == "" {
			return apperrors.RequiredField("history DSN (set A2T_HISTORY_DSN)")
		}
		db, err := store.Open(cmd.Context(), settings.History.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		records, err := db.List(cmd.Context(), model.RunKind(kind))
		if err != nil {
			return err
		}
		if err := export.ToExcel(records, outputFilePath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "export finished, %d run(s) written to %s\n", len(records), outputFilePath)
		return nil
	},
}
