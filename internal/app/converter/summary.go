package converter

import (
	"fmt"
	"io"
	"path/filepath"

	"audio2text/internal/app/model"
)

// WriteSummary prints one line per file followed by the totals. done names
// the successful outcome, e.g. "Converted" or "Transcribed".
func WriteSummary(w io.Writer, done string, summary *model.BatchSummary) {
	if summary == nil {
		return
	}
	for _, r := range summary.Results {
		name := filepath.Base(r.Job.Source)
		switch r.Status {
		case model.StatusConverted:
			fmt.Fprintf(w, "  ✓ %s -> %s (%.1fs of audio)\n", name, r.Job.Destination, r.AudioDuration.Seconds())
		case model.StatusSkipped:
			fmt.Fprintf(w, "  - %s: skipped, %s\n", name, r.Reason)
		case model.StatusFailed:
			fmt.Fprintf(w, "  ✗ %s: %v\n", name, r.Err)
		}
	}

	fmt.Fprintf(w, "%s %d, skipped %d, failed %d of %d file(s)\n",
		done, summary.Converted(), summary.Skipped(), summary.Failed(), len(summary.Results))
	if summary.Aborted {
		fmt.Fprintln(w, "Stopped early; remaining files were not processed.")
	}
}
