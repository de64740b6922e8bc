package compare

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"audio2text/internal/app/compare"
)

var (
	maxDiffs   int
	reportPath string
	visualize  bool
)

func init() {
	Cmd.Flags().IntVar(&maxDiffs, "diff", 0, "list up to this many word differences (-1 for all)")
	Cmd.Flags().StringVar(&reportPath, "report", "", "write a colour-coded word alignment workbook (.xlsx) to this path")
	Cmd.Flags().BoolVar(&visualize, "visualize", false, "write the alignment workbook beside the reference as comparison_<ref>_<hyp>.xlsx")
}

// Cmd represents the compare command
var Cmd = &cobra.Command{
	Use:   "compare <reference> <hypothesis>",
	Short: "Score one transcript against another",
	Long: `Score a hypothesis transcript against a reference transcript. Both may
be .txt or .docx files.

Both texts are normalised first: "inaudible" markers are dropped, common
expanded forms become contractions, compound words are split and words are
lower-cased without punctuation. The word error rate is measured against
the reference.

--report or --visualize also saves the word alignment as a workbook with
matching words in green and differing words in red or amber.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := compare.CompareFiles(args[0], args[1])
		if err != nil {
			return err
		}
		compare.WriteReport(cmd.OutOrStdout(), result, maxDiffs)

		path := reportPath
		if path == "" && visualize {
			path = compare.ReportPath(args[0], args[1])
		}
		if path == "" {
			return nil
		}
		if err := compare.WriteVisualReport(path, filepath.Base(args[0]), filepath.Base(args[1]), result); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nVisualization saved as: %s\n", path)
		return nil
	},
}
